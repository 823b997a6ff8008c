package middleware

import (
	"context"
	"net/http"

	"quarhire/internal/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "admin_session"

// AdminGate is satisfied by services.AuthService.
type AdminGate interface {
	RequireAdmin(ctx context.Context, bearer string) *services.AdminSession
}

// RequireAdmin stops the request with 403 unless the bearer token belongs to
// an admin or staff profile.
func RequireAdmin(gate AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := gate.RequireAdmin(c.Request.Context(), c.GetHeader("Authorization"))
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      services.ErrNoSession.Error(),
				"code":       "forbidden",
				"request_id": GetRequestID(c),
				"message":    services.ErrNoSession.Error(),
			})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// Session returns the session stored by RequireAdmin.
func Session(c *gin.Context) *services.AdminSession {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*services.AdminSession); ok {
			return s
		}
	}
	return nil
}
