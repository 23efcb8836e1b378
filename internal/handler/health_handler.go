package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/store"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	store  store.Store
	driver string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Store, driver string) *HealthHandler {
	return &HealthHandler{store: s, driver: driver}
}

// GetHealth responds with service and storage status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	storeStatus := "connected"
	if _, err := h.store.Get(c.Request.Context(), store.KeySettings); err != nil && err != store.ErrKeyNotFound {
		storeStatus = "disconnected"
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "2.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"store": gin.H{
			"driver": h.driver,
			"status": storeStatus,
		},
	})
}
