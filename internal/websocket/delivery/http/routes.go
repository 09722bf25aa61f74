package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the WebSocket route. Authentication happens inside the handler since
// browsers cannot send an Authorization header on the handshake.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws", h.HandleWebSocket)
}
