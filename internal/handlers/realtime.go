package handlers

import (
	"plantastic/internal/realtime"

	"github.com/gin-gonic/gin"
)

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Stream handles GET /ws.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
