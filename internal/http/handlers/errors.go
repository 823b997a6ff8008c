package handlers

import (
	"net/http"

	"quarhire/internal/domain"
	"quarhire/internal/http/middleware"
	"quarhire/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Support is the manual fallback shown to customers when an automated step fails.
type Support struct {
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
}

func errorBody(c *gin.Context, status int, code, message string, details any) gin.H {
	if code == "" {
		code = http.StatusText(status)
	}
	body := gin.H{
		"error":   message,
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		body["request_id"] = reqID
	}
	return body
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, errorBody(c, status, code, message, details))
}

// classify maps a domain error to status, code, message and details.
func classify(c *gin.Context, err error) (int, string, string, any) {
	if ve, ok := domain.AsValidation(err); ok {
		details := gin.H{}
		if len(ve.Missing) > 0 {
			details["missing"] = ve.Missing
		}
		if len(ve.Invalid) > 0 {
			details["invalid"] = ve.Invalid
		}
		if ve.Field != "" {
			details["field"] = ve.Field
		}
		return http.StatusBadRequest, "validation_error", err.Error(), details
	}
	if up, ok := domain.AsUpstream(err); ok {
		utils.LogWarn(middleware.GetRequestID(c), up.Service, "upstream", err)
		details := gin.H{
			"service":      up.Service,
			"statusCode":   up.StatusCode,
			"responseCode": up.ResponseCode,
		}
		if up.Body != "" {
			details["body"] = up.Body
		}
		if up.IPNotAllowed {
			details["hint"] = up.Hint()
			return http.StatusForbidden, "ip_not_allowed", err.Error(), details
		}
		return http.StatusInternalServerError, "upstream_error", err.Error(), details
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, "not_found", err.Error(), nil
	case domain.IsState(err):
		return http.StatusBadRequest, "invalid_state", err.Error(), nil
	case domain.IsConflict(err):
		return http.StatusConflict, "conflict", err.Error(), nil
	case domain.IsForbidden(err):
		return http.StatusForbidden, "forbidden", err.Error(), nil
	case domain.IsConfig(err):
		utils.LogWarn(middleware.GetRequestID(c), "config", "request", err)
		return http.StatusInternalServerError, "not_configured", err.Error(), nil
	}
	utils.LogWarn(middleware.GetRequestID(c), "http", "request", err)
	return http.StatusInternalServerError, "internal_error", "internal server error", nil
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	status, code, message, details := classify(c, err)
	respondError(c, status, code, message, details)
}

// respondCustomerError is RespondDomainError plus the support contacts, for
// endpoints the booking site calls directly.
func (h *Handler) respondCustomerError(c *gin.Context, err error) {
	status, code, message, details := classify(c, err)
	body := errorBody(c, status, code, message, details)
	body["support"] = h.Support
	c.JSON(status, body)
}
