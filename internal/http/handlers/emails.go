package handlers

import (
	"net/http"

	"quarhire/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/booking/email
func (h *Handler) SendBookingEmail(c *gin.Context) {
	var in services.BookingEmailInput
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.Notify.SendBookingEmails(c.Request.Context(), in)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// POST /api/contact/email
func (h *Handler) SendContactEmail(c *gin.Context) {
	var in services.ContactInput
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.Notify.SendContact(c.Request.Context(), in)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// POST /api/invoices/send-email
func (h *Handler) SendInvoiceEmail(c *gin.Context) {
	var in services.InvoiceEmailInput
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.Notify.SendInvoice(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}
