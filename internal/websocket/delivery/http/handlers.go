package http

import (
	"alert-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// HandleWebSocket upgrades the HTTP connection to a WebSocket connection.
// @Summary Connect to the live alert channel
// @Description Upgrade HTTP to WebSocket. The client then sends start_monitoring, stop_monitoring or ping frames and receives alert, action, stats and error events. Requires a valid JWT in the 'token' query parameter or the Authorization header.
// @Tags Monitoring
// @Param token query string false "JWT Token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Failure 429 {object} response.Resp "Too many connections for this user"
// @Failure 503 {object} response.Resp "Maximum connections reached"
// @Router /ws [GET]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processUpgradeRequest(c)
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	if err := h.uc.Admit(ctx, toAdmitInput(sc)); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	// The upgrader writes the HTTP error itself.
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnf(ctx, "internal.websocket.delivery.http.HandleWebSocket.Upgrade: %v", err)
		return
	}

	if err := h.uc.Register(ctx, toConnectionInput(conn, sc)); err != nil {
		h.logger.Errorf(ctx, "internal.websocket.delivery.http.HandleWebSocket.Register: %v", err)
		conn.Close()
	}
}
