package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allinone/manager/internal/pkg/response"
)

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Seconds(),
	})
}
