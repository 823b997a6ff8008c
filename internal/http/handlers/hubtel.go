package handlers

import (
	"io"
	"net/http"
	"strings"

	"quarhire/internal/domain/models"
	"quarhire/internal/services"

	"github.com/gin-gonic/gin"
)

const maxCallbackBody = 1 << 20

// POST /api/hubtel/checkout
func (h *Handler) InitiateCheckout(c *gin.Context) {
	var in services.CheckoutInput
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.Payments.InitiateCheckout(c.Request.Context(), in)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// POST /api/hubtel/callback
func (h *Handler) HubtelCallback(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallbackBody))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cannot read callback body", err)
		return
	}
	res, err := h.Payments.HandleCallback(c.Request.Context(), raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "result": res})
}

// GET /api/hubtel/callback answers liveness probes; it never touches bookings.
func (h *Handler) HubtelCallbackPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "hubtel callback endpoint is reachable, use POST"})
}

type referenceRequest struct {
	ClientReference string `json:"clientReference"`
}

func (h *Handler) referenceFrom(c *gin.Context) (string, bool) {
	if c.Request.Method == http.MethodGet {
		return strings.TrimSpace(c.Query("clientReference")), true
	}
	var req referenceRequest
	if !BindJSONOrError(c, &req) {
		return "", false
	}
	return strings.TrimSpace(req.ClientReference), true
}

// POST /api/hubtel/status-check, GET /api/hubtel/status
func (h *Handler) HubtelStatus(c *gin.Context) {
	ref, ok := h.referenceFrom(c)
	if !ok {
		return
	}
	res, err := h.Payments.Verify(c.Request.Context(), ref, services.VerifyOptions{Source: models.SourceStatusCheck})
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST|GET /api/hubtel/verify records an audit row for every poll.
func (h *Handler) HubtelVerify(c *gin.Context) {
	ref, ok := h.referenceFrom(c)
	if !ok {
		return
	}
	res, err := h.Payments.Verify(c.Request.Context(), ref, services.VerifyOptions{Audit: true, Source: models.SourceManualVerify})
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/hubtel/confirm-email re-sends payment emails for a paid booking.
func (h *Handler) ConfirmPaymentEmail(c *gin.Context) {
	ref, ok := h.referenceFrom(c)
	if !ok {
		return
	}
	b, err := h.Payments.ResendConfirmation(c.Request.Context(), ref)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true, "clientReference": b.ClientReference, "status": b.Status})
}

// GET /api/hubtel/callbacks
func (h *Handler) ListCallbacks(c *gin.Context) {
	p := paginationFromQuery(c)
	rows, err := h.Payments.ListCallbacks(c.Request.Context(),
		strings.TrimSpace(c.Query("clientReference")),
		strings.TrimSpace(c.Query("source")),
		p,
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"callbacks": rows, "page": p.Page, "pageSize": p.PageSize})
}

type paystackRequest struct {
	Reference string `json:"reference"`
}

// POST /api/paystack/verify
func (h *Handler) PaystackVerify(c *gin.Context) {
	var req paystackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Payments.VerifyPaystack(c.Request.Context(), req.Reference)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
