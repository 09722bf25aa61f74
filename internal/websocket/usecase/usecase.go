package usecase

import (
	"context"

	"alert-srv/internal/monitor"
	ws "alert-srv/internal/websocket"
)

func (uc *implUseCase) Run() {
	uc.hub.run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.shutdown(ctx)
}

func (uc *implUseCase) Admit(ctx context.Context, input ws.AdmitInput) error {
	if uc.cfg.MaxConnections > 0 && uc.hub.Count() >= uc.cfg.MaxConnections {
		uc.logger.Warnf(ctx, "internal.websocket.usecase.Admit: max connections reached, user=%s", input.Scope.UserID)
		return ws.ErrMaxConnectionsReached
	}
	if err := uc.limiter.Check(input.Scope.UserID); err != nil {
		uc.logger.Warnf(ctx, "internal.websocket.usecase.Admit: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) Register(ctx context.Context, input ws.ConnectionInput) error {
	if input.Conn == nil {
		return ws.ErrMissingConnection
	}

	conn := newConnection(uc, input.Conn, input.Scope)
	// Queued before the pumps start so it is always the first frame.
	if err := conn.Send(ctx, monitor.NewInfoMessage(monitor.MessageConnectionEstablished, "Connexion établie", uc.clock())); err != nil {
		return err
	}
	uc.limiter.Track(input.Scope.UserID)
	uc.hub.add(conn)
	conn.start()

	uc.logger.Infof(ctx, "WebSocket connection established for user: %s (connection: %s)", input.Scope.UserID, conn.id)
	return nil
}

func (uc *implUseCase) GetStats(ctx context.Context) (ws.HubStats, error) {
	active, tenants := uc.hub.Stats()
	return ws.HubStats{
		ActiveConnections:  active,
		TotalTenants:       tenants,
		MonitoringSessions: uc.monitor.Sessions(),
		MessagesSent:       uc.hub.messagesSent.Load(),
		MessagesFailed:     uc.hub.messagesFailed.Load(),
	}, nil
}
