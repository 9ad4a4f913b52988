package handlers

import (
	"net/http"

	"tripdiary/internal/domain/models"
	"tripdiary/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/ping
func (h Handlers) Ping(c *gin.Context) {
	msg := h.PingMessage
	if msg == "" {
		msg = "ping"
	}
	c.JSON(http.StatusOK, models.PingResponse{Message: msg})
}

// GET /api/health
func (h Handlers) Health(c *gin.Context) {
	svc := h.Trips.WithRequestID(middleware.GetRequestID(c))
	n, err := svc.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"store":  h.StoreName,
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": h.StoreName, "trips": n})
}
