package http

import (
	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// processCommandRequest binds and validates the command body and returns it with the caller's scope.
func (h *Handler) processCommandRequest(c *gin.Context) (CommandReq, model.Scope, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return CommandReq{}, model.Scope{}, errMissingScope
	}

	var req CommandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.alert.delivery.http.processCommandRequest.ShouldBindJSON: %v", err)
		return CommandReq{}, model.Scope{}, &alert.ProtocolError{Message: "invalid request body"}
	}
	if err := req.validate(); err != nil {
		return CommandReq{}, model.Scope{}, err
	}
	return req, sc, nil
}
