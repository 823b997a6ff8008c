package handlers

import (
	"net/http"

	"quarhire/internal/http/middleware"
	"quarhire/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	sess := middleware.Session(c)
	if sess == nil {
		respondError(c, http.StatusForbidden, "forbidden", services.ErrNoSession.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    gin.H{"id": sess.UserID, "email": sess.Email},
		"profile": sess.Profile,
	})
}
