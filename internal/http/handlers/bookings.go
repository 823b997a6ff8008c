package handlers

import (
	"net/http"
	"strings"

	"quarhire/internal/domain/models"
	"quarhire/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var in services.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.Bookings.Create(c.Request.Context(), in)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/bookings/by-ref?ref=
func (h *Handler) GetBookingByRef(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("ref"))
	b, err := h.Bookings.GetPendingByReference(c.Request.Context(), ref)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// GET /api/bookings
func (h *Handler) ListBookings(c *gin.Context) {
	p := paginationFromQuery(c)
	out, err := h.Bookings.List(c.Request.Context(), services.ListBookingsInput{
		Status:     c.Query("status"),
		Search:     strings.TrimSpace(c.Query("q")),
		Pagination: p,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "page": p.Page, "pageSize": p.PageSize})
}

// GET /api/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/bookings/:id/status
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), models.BookingStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type driverAssignment struct {
	DriverID *int64 `json:"driverId"`
}

// PUT /api/bookings/:id/driver
func (h *Handler) AssignBookingDriver(c *gin.Context) {
	var req driverAssignment
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.Bookings.AssignDriver(c.Request.Context(), c.Param("id"), req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
