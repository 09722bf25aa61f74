package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/internal/monitor"
	"alert-srv/internal/settings"
	ws "alert-srv/internal/websocket"
)

const (
	codeProtocolError        = "protocol_error"
	codeInvalidConfiguration = "invalid_configuration"
	codeMonitoringFailed     = "monitoring_failed"
)

func (c *Connection) handleMessage(ctx context.Context, data []byte) {
	var msg ws.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.replyProtocolError(ctx, &alert.ProtocolError{Message: "invalid message"})
		return
	}

	switch msg.Type {
	case ws.ClientStartMonitoring:
		c.startMonitoring(ctx, msg)
	case ws.ClientStopMonitoring:
		c.stopMonitoring(ctx)
	case ws.ClientPing:
		c.reply(ctx, monitor.NewPongMessage(c.uc.monitor.IsMonitoring(c.id), c.uc.clock()))
	case "":
		c.replyProtocolError(ctx, &alert.ProtocolError{Message: "missing message type"})
	default:
		c.replyProtocolError(ctx, &alert.ProtocolError{Message: "unknown message type: " + string(msg.Type)})
	}
}

func (c *Connection) startMonitoring(ctx context.Context, msg ws.ClientMessage) {
	cfg, err := c.uc.settings.Resolve(ctx, c.scope, toMonitoringConfig(msg.Configuration))
	if err != nil {
		c.uc.logger.Warnf(ctx, "internal.websocket.usecase.startMonitoring.Resolve: %v", err)
		c.reply(ctx, monitor.NewErrorMessage(settingsErrorMessage(err), codeInvalidConfiguration, c.uc.clock()))
		return
	}

	err = c.uc.monitor.Start(ctx, monitor.StartInput{
		ConnectionID: c.id,
		Scope:        c.scope,
		Interval:     time.Duration(msg.Interval) * time.Millisecond,
		Config:       cfg,
		Sink:         c,
	})
	if err != nil {
		c.uc.logger.Errorf(ctx, "internal.websocket.usecase.startMonitoring.Start: %v", err)
		c.reply(ctx, monitor.NewErrorMessage("Impossible de démarrer la surveillance", codeMonitoringFailed, c.uc.clock()))
	}
}

func (c *Connection) stopMonitoring(ctx context.Context) {
	stopCtx, cancel := context.WithTimeout(ctx, c.uc.cfg.WriteWait)
	defer cancel()

	if err := c.uc.monitor.Stop(stopCtx, c.id); err != nil {
		c.uc.logger.Warnf(ctx, "internal.websocket.usecase.stopMonitoring.Stop: %v", err)
	}
	c.reply(ctx, monitor.NewInfoMessage(monitor.MessageMonitoringStopped, "Surveillance arrêtée", c.uc.clock()))
}

func (c *Connection) replyProtocolError(ctx context.Context, err *alert.ProtocolError) {
	c.reply(ctx, monitor.NewErrorMessage(err.Error(), codeProtocolError, c.uc.clock()))
}

func (c *Connection) reply(ctx context.Context, msg monitor.Message) {
	if err := c.Send(ctx, msg); err != nil {
		c.uc.logger.Warnf(ctx, "internal.websocket.usecase.reply: type=%s err=%v", msg.Type, err)
	}
}

func toMonitoringConfig(p *ws.ConfigurationPayload) *model.MonitoringConfig {
	if p == nil {
		return nil
	}
	cats := make([]model.Category, 0, len(p.AutomatedCategories))
	for _, c := range p.AutomatedCategories {
		cats = append(cats, model.Category(c))
	}
	return &model.MonitoringConfig{
		IntervalMs:              p.Interval,
		AutomatedActionsEnabled: p.AutomatedActionsEnabled,
		AutomatedCategories:     cats,
		NotifyMinSeverity:       model.Severity(p.NotifyMinSeverity),
	}
}

// settingsErrorMessage shows validation failures as is and hides everything else.
func settingsErrorMessage(err error) string {
	switch {
	case errors.Is(err, settings.ErrIntervalTooShort),
		errors.Is(err, settings.ErrInvalidCategory),
		errors.Is(err, settings.ErrInvalidSeverity):
		return err.Error()
	default:
		return "Impossible de charger la configuration"
	}
}
