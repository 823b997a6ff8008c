package handlers

import (
	"context"
	"net/http"
	"time"

	intdb "quarhire/internal/db"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "quarhire backend is running"})
}

// DBCheck pings the database and reports which owned tables exist.
func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database is not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		RespondError(c, http.StatusInternalServerError, "database ping failed", err)
		return
	}
	tables := gin.H{}
	for _, t := range intdb.Tables {
		tables[t] = intdb.HasTable(ctx, h.DB, t)
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "tables": tables})
}
