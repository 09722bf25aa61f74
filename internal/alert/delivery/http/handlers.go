package http

import (
	"context"

	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/pkg/paginator"
	"alert-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Command runs one alert command for the caller's tenant.
// @Summary Run an alert command
// @Description Single entry point of the alert API. The body carries an action (get_alerts, mark_as_read, mark_as_actioned, execute_action, save_configuration, get_configuration) and its parameters.
// @Tags Alert
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CommandReq true "Command"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Unknown action or invalid parameters"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Failure 403 {object} response.Resp "Forbidden"
// @Failure 404 {object} response.Resp "Alert not found"
// @Failure 409 {object} response.Resp "Action already executing or finished"
// @Router /api/v1/alerts/command [POST]
func (h *Handler) Command(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processCommandRequest(c)
	if err != nil {
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	data, err := h.dispatch(ctx, sc, req)
	if err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Command.%s: %v", req.Action, err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}
	response.OK(c, data)
}

func (h *Handler) dispatch(ctx context.Context, sc model.Scope, req CommandReq) (any, error) {
	switch req.Action {
	case actionGetAlerts:
		return h.getAlerts(ctx, sc, req)
	case actionMarkAsRead:
		a, err := h.uc.MarkRead(ctx, sc, req.AlertID)
		if err != nil {
			return nil, err
		}
		return AlertResp{Alert: a}, nil
	case actionMarkAsActioned:
		a, err := h.uc.MarkActioned(ctx, sc, req.AlertID)
		if err != nil {
			return nil, err
		}
		return AlertResp{Alert: a}, nil
	case actionExecuteAction:
		st, err := h.uc.ExecuteAction(ctx, sc, alert.ExecuteActionInput{AlertID: req.AlertID, ActionID: req.ActionID})
		if err != nil {
			return nil, err
		}
		return ActionResp{AlertID: req.AlertID, Action: st}, nil
	case actionSaveConfiguration:
		cfg, err := h.settings.Save(ctx, sc, *req.Configuration.toModel())
		if err != nil {
			return nil, err
		}
		return ConfigurationResp{Configuration: newConfigurationDTO(cfg)}, nil
	case actionGetConfiguration:
		cfg, err := h.settings.Get(ctx, sc)
		if err != nil {
			return nil, err
		}
		return ConfigurationResp{Configuration: newConfigurationDTO(cfg)}, nil
	}
	return nil, &alert.ProtocolError{Message: "unknown action: " + req.Action}
}

// getAlerts runs one stateless sweep with the request configuration, or the tenant's saved one.
func (h *Handler) getAlerts(ctx context.Context, sc model.Scope, req CommandReq) (AlertsResp, error) {
	cfg, err := h.settings.Resolve(ctx, sc, req.Configuration.toModel())
	if err != nil {
		return AlertsResp{}, err
	}

	out, err := h.uc.Sweep(ctx, sc, alert.SweepInput{NotifyMinSeverity: cfg.NotifyMinSeverity})
	if err != nil {
		return AlertsResp{}, err
	}
	resp := AlertsResp{Alerts: out.Active, Stats: out.Stats}
	if req.IsSet() {
		page, p := paginator.Slice(out.Active, req.PaginateQuery)
		resp.Alerts, resp.Paginator = page, &p
	}
	return resp, nil
}
