package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	cacheEnabled bool
}

func NewHealthHandler(cacheEnabled bool) *HealthHandler {
	return &HealthHandler{cacheEnabled: cacheEnabled}
}

// GetHealth returns 200 while the process is serving
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": "catdraft",
		"cache":   h.cacheEnabled,
	})
}
