package usecase

import (
	"context"
	"time"

	"alert-srv/internal/monitor"
)

func (uc *implUseCase) Start(ctx context.Context, input monitor.StartInput) error {
	if input.ConnectionID == "" {
		return monitor.ErrMissingConnection
	}
	if input.Sink == nil {
		return monitor.ErrMissingSink
	}
	if input.Scope.TenantID == "" {
		return monitor.ErrMissingTenant
	}

	sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &session{
		uc:          uc,
		connID:      input.ConnectionID,
		scope:       input.Scope,
		config:      input.Config,
		interval:    uc.interval(input),
		sink:        input.Sink,
		lastSeen:    make(map[string]struct{}),
		errorEvents: newThrottle(uc.opts.ErrorEventWindow, uc.clock),
		refresh:     make(chan struct{}, 1),
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	uc.mu.Lock()
	old := uc.sessions[input.ConnectionID]
	uc.sessions[input.ConnectionID] = s
	n := len(uc.sessions)
	uc.mu.Unlock()

	// The replaced loop must be gone before the new one arms its timer.
	if old != nil {
		old.cancel()
		<-old.done
	}
	uc.metrics.SetActiveSessions(n)

	uc.l.Infof(ctx, "internal.monitor.usecase.Start: connection=%s tenant=%s interval=%s", s.connID, s.scope.TenantID, s.interval)
	go s.run(sctx)
	return nil
}

// interval picks the explicit interval, then the configured one, then the default, never below the minimum.
func (uc *implUseCase) interval(input monitor.StartInput) time.Duration {
	d := input.Interval
	if d <= 0 && input.Config.IntervalMs > 0 {
		d = time.Duration(input.Config.IntervalMs) * time.Millisecond
	}
	if d <= 0 {
		d = uc.opts.DefaultInterval
	}
	if d < uc.opts.MinInterval {
		d = uc.opts.MinInterval
	}
	return d
}

func (uc *implUseCase) Stop(ctx context.Context, connectionID string) error {
	uc.mu.Lock()
	s, ok := uc.sessions[connectionID]
	if ok {
		delete(uc.sessions, connectionID)
	}
	n := len(uc.sessions)
	uc.mu.Unlock()

	if !ok {
		return nil
	}
	uc.metrics.SetActiveSessions(n)
	s.cancel()

	select {
	case <-s.done:
		uc.l.Infof(ctx, "internal.monitor.usecase.Stop: connection=%s", connectionID)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *implUseCase) IsMonitoring(connectionID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.sessions[connectionID]
	return ok
}

func (uc *implUseCase) NotifyTenant(ctx context.Context, tenantID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, s := range uc.sessions {
		if s.scope.TenantID == tenantID {
			s.requestRefresh()
		}
	}
}

func (uc *implUseCase) Sessions() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}

func (uc *implUseCase) StopAll(ctx context.Context) error {
	uc.mu.Lock()
	all := make([]*session, 0, len(uc.sessions))
	for id, s := range uc.sessions {
		all = append(all, s)
		delete(uc.sessions, id)
	}
	uc.mu.Unlock()
	uc.metrics.SetActiveSessions(0)

	for _, s := range all {
		s.cancel()
	}

	finished := make(chan struct{})
	go func() {
		for _, s := range all {
			<-s.done
		}
		uc.actions.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		uc.l.Infof(ctx, "internal.monitor.usecase.StopAll: stopped %d sessions", len(all))
		return nil
	case <-ctx.Done():
		uc.l.Warnf(ctx, "internal.monitor.usecase.StopAll: %v", ctx.Err())
		return ctx.Err()
	}
}

// detach removes s from the registry unless it was already replaced or stopped.
func (uc *implUseCase) detach(s *session) {
	uc.mu.Lock()
	if uc.sessions[s.connID] == s {
		delete(uc.sessions, s.connID)
	}
	n := len(uc.sessions)
	uc.mu.Unlock()
	uc.metrics.SetActiveSessions(n)
}
