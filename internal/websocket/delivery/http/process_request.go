package http

import (
	"alert-srv/internal/model"
	"alert-srv/internal/websocket"
	"alert-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// processUpgradeRequest authenticates the caller before the upgrade. Browsers cannot set headers on
// a WebSocket handshake, so the token comes from the query and the Authorization header is the fallback.
func (h *Handler) processUpgradeRequest(c *gin.Context) (model.Scope, error) {
	var req UpgradeReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return model.Scope{}, websocket.ErrMissingToken
	}

	if req.Token == "" {
		req.Token = scope.BearerToken(c.GetHeader("Authorization"))
	}

	if err := req.validate(); err != nil {
		return model.Scope{}, err
	}

	payload, err := h.jwtMgr.Verify(req.Token)
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "internal.websocket.delivery.http.processUpgradeRequest.Verify: %v", err)
		return model.Scope{}, websocket.ErrInvalidToken
	}
	return payload.Scope(), nil
}
