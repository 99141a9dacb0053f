package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/resto/backend/internal/infrastructure/logger"
	"github.com/resto/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "ok",
	})
}

// Ping responds with a static pong for liveness probes
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Info returns basic service information
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": h.appName,
		"env":  h.env,
	})
}
