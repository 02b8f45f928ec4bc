package handlers

import (
	"net/http"
	"restaurant_pos/internal/notifications"
	"time"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	hub *notifications.Hub
}

func NewNotificationHandler(hub *notifications.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Stream opens a long-lived server-sent-events connection. The listener is
// pruned from the hub when the transport closes; heartbeats keep proxies
// from cutting the idle connection.
func (h *NotificationHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	id, events := h.hub.Register()
	defer h.hub.Unregister(id)

	heartbeat := time.NewTicker(notifications.HeartbeatInterval)
	defer heartbeat.Stop()

	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			return
		case frame := <-events:
			if _, err := c.Writer.Write(frame); err != nil {
				return
			}
			c.Writer.Flush()
		case <-heartbeat.C:
			if _, err := c.Writer.Write(notifications.Heartbeat); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
