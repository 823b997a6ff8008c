package handlers

import (
	"net/http"
	"strings"

	"quarhire/internal/services"

	"github.com/gin-gonic/gin"
)

// GetFinanceReport handles the finance summary with an optional pickup date range.
func (h *Handler) GetFinanceReport(c *gin.Context) {
	report, err := h.Reports.GetFinanceReport(c.Request.Context(), services.FinanceReportFilter{
		From: strings.TrimSpace(c.Query("from")),
		To:   strings.TrimSpace(c.Query("to")),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
