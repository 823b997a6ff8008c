package handlers

import (
	"net/http"

	"quarhire/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/drivers
func (h *Handler) GetDrivers(c *gin.Context) {
	drivers, err := h.Drivers.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GET /api/drivers/:id
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	d, err := h.Drivers.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers
func (h *Handler) CreateDriver(c *gin.Context) {
	var in services.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.Drivers.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/drivers/:id
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in services.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.Drivers.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/drivers/:id
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.Drivers.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
