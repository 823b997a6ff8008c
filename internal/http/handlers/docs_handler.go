package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBookingInvoicePDF returns the invoice of one booking (inline).
func (h *Handler) GetBookingInvoicePDF(c *gin.Context) {
	pdfBytes, filename, err := h.Docs.GenerateInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
