package usecase

import (
	"context"
	"errors"
	"time"

	"alert-srv/internal/action"
	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/internal/monitor"
	"alert-srv/internal/snapshot"
)

const (
	errorKeySweep = "sweep"
	errorKeyStats = "stats"

	codeSnapshotUnavailable = "snapshot_unavailable"
	codeSweepFailed         = "sweep_failed"
	codeStatsFailed         = "stats_failed"
)

type session struct {
	uc       *implUseCase
	connID   string
	scope    model.Scope
	config   model.MonitoringConfig
	interval time.Duration
	sink     monitor.Sink

	// lastSeen holds the ids already pushed as new_alert. Only the loop goroutine touches it.
	lastSeen    map[string]struct{}
	errorEvents *throttle
	refresh     chan struct{}
	cancel      context.CancelFunc
	done        chan struct{}
}

func (s *session) run(ctx context.Context) {
	defer close(s.done)
	defer s.uc.detach(s)

	if err := s.send(ctx, monitor.NewInfoMessage(monitor.MessageMonitoringStarted, "Surveillance démarrée", s.uc.clock())); err != nil {
		s.uc.l.Warnf(ctx, "internal.monitor.usecase.run.send: %v", err)
		return
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.refresh:
			if err := s.pushStats(ctx); err != nil {
				s.uc.l.Warnf(ctx, "internal.monitor.usecase.run.pushStats: %v", err)
				return
			}
		case <-timer.C:
			if err := s.sweep(ctx); err != nil {
				s.uc.l.Warnf(ctx, "internal.monitor.usecase.run.sweep: %v", err)
				return
			}
			timer.Reset(s.interval)
		}
	}
}

// sweep runs one evaluation cycle. It only returns delivery errors; everything else is reported to
// the client and the loop carries on.
func (s *session) sweep(ctx context.Context) error {
	out, err := s.uc.alerts.Sweep(ctx, s.scope, alert.SweepInput{NotifyMinSeverity: s.config.NotifyMinSeverity})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.uc.l.Errorf(ctx, "internal.monitor.usecase.sweep.Sweep: %v", err)
		code := codeSweepFailed
		var unavailable *snapshot.SnapshotUnavailableError
		if errors.As(err, &unavailable) {
			code = codeSnapshotUnavailable
		}
		return s.reportError(ctx, errorKeySweep, "Impossible d'analyser les données de l'entreprise", code)
	}

	active := make(map[string]struct{}, len(out.Active))
	var fresh []model.Alert
	for _, a := range out.Active {
		active[a.ID] = struct{}{}
		if _, seen := s.lastSeen[a.ID]; seen {
			continue
		}
		if err := s.send(ctx, monitor.NewAlertMessage(a, s.uc.clock())); err != nil {
			return err
		}
		fresh = append(fresh, a)
	}
	s.lastSeen = active

	// Alerts admitted elsewhere (get_alerts, another session or instance) are fresh here too.
	// Actions already claimed are skipped by the claim.
	if automated := s.automated(fresh); len(automated) > 0 {
		s.runActions(ctx, automated)
	}

	return s.send(ctx, monitor.NewStatsMessage(out.Stats, s.uc.clock()))
}

func (s *session) automated(alerts []model.Alert) []model.Alert {
	var out []model.Alert
	for _, a := range alerts {
		if len(a.PendingActionIDs()) == 0 || !s.config.AutomatesCategory(a.Category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// runActions executes the automated actions in the background. They outlive the session; their
// events are dropped once it is stopped.
func (s *session) runActions(ctx context.Context, alerts []model.Alert) {
	actx := context.WithoutCancel(ctx)
	s.uc.actions.Add(1)
	go func() {
		defer s.uc.actions.Done()
		for _, a := range alerts {
			alertID := a.ID
			report := func(st model.AutomatedActionState) {
				if err := s.send(ctx, monitor.NewActionMessage(alertID, st, s.uc.clock())); err != nil {
					s.uc.l.Warnf(actx, "internal.monitor.usecase.runActions.send: %v", err)
				}
			}
			s.uc.alerts.RunAutomatedActions(actx, s.scope, a, action.Hooks{OnStart: report, OnFinish: report})
		}
		s.requestRefresh()
	}()
}

func (s *session) pushStats(ctx context.Context) error {
	stats, err := s.uc.alerts.Stats(ctx, s.scope)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.uc.l.Errorf(ctx, "internal.monitor.usecase.pushStats.Stats: %v", err)
		return s.reportError(ctx, errorKeyStats, "Impossible de calculer les statistiques", codeStatsFailed)
	}
	return s.send(ctx, monitor.NewStatsMessage(stats, s.uc.clock()))
}

func (s *session) reportError(ctx context.Context, key, text, code string) error {
	if !s.errorEvents.Allow(key) {
		return nil
	}
	return s.send(ctx, monitor.NewErrorMessage(text, code, s.uc.clock()))
}

func (s *session) requestRefresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// send drops msg once the session is cancelled. Sink failures become a DeliveryError.
func (s *session) send(ctx context.Context, msg monitor.Message) error {
	if ctx.Err() != nil {
		return nil
	}
	if err := s.sink.Send(ctx, msg); err != nil {
		return &monitor.DeliveryError{ConnectionID: s.connID, Cause: err}
	}
	return nil
}
