package usecase

import (
	"context"
	"errors"
	"sort"

	"alert-srv/internal/alert"
	"alert-srv/internal/alert/repository"
	"alert-srv/internal/model"
)

func (uc *implUseCase) List(ctx context.Context, sc model.Scope) ([]model.Alert, error) {
	alerts, err := uc.repo.List(ctx, repository.ListOptions{TenantID: sc.TenantID, Now: uc.clock()})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.List.List: %v", err)
		return nil, err
	}
	uc.sortByCatalog(alerts)
	return alerts, nil
}

// sortByCatalog orders alerts by the position of their rule, then by creation time.
// Alerts of rules no longer in the catalog go last.
func (uc *implUseCase) sortByCatalog(alerts []model.Alert) {
	pos := func(a model.Alert) int {
		if p := uc.catalog.Position(a.RuleID); p >= 0 {
			return p
		}
		return uc.catalog.Len()
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		pi, pj := pos(alerts[i]), pos(alerts[j])
		if pi != pj {
			return pi < pj
		}
		return alerts[i].CreatedAt.Before(alerts[j].CreatedAt)
	})
}

func (uc *implUseCase) Stats(ctx context.Context, sc model.Scope) (model.Stats, error) {
	alerts, err := uc.List(ctx, sc)
	if err != nil {
		return model.Stats{}, err
	}
	return computeStats(alerts), nil
}

func computeStats(alerts []model.Alert) model.Stats {
	s := model.Stats{TotalAlerts: len(alerts)}
	for _, a := range alerts {
		switch a.Severity {
		case model.SeverityCritical:
			s.CriticalAlerts++
		case model.SeverityHigh:
			s.HighAlerts++
		case model.SeverityMedium:
			s.MediumAlerts++
		case model.SeverityLow:
			s.LowAlerts++
		}
		if a.IsActioned {
			s.ResolvedAlerts++
		}
		if !a.IsRead {
			s.UnreadAlerts++
		}
		for _, st := range a.AutomatedActions {
			if st.Status == model.ActionStatusCompleted {
				s.AutomatedActionsCompleted++
			}
		}
		for _, d := range a.Deliveries {
			if d.Success {
				s.NotificationsSent++
			}
		}
	}
	return s
}

func (uc *implUseCase) MarkRead(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error) {
	a, err := uc.modify(ctx, sc.TenantID, alertID, func(a *model.Alert) error {
		a.IsRead = true
		return nil
	})
	if err != nil {
		return model.Alert{}, err
	}
	uc.publish(ctx, alert.Event{Type: alert.EventAlertRead, TenantID: sc.TenantID, AlertID: alertID})
	return a, nil
}

func (uc *implUseCase) MarkActioned(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error) {
	a, err := uc.modify(ctx, sc.TenantID, alertID, func(a *model.Alert) error {
		a.IsActioned = true
		return nil
	})
	if err != nil {
		return model.Alert{}, err
	}
	uc.publish(ctx, alert.Event{Type: alert.EventAlertActioned, TenantID: sc.TenantID, AlertID: alertID})
	return a, nil
}

// maxModifyAttempts bounds how often modify re-reads an alert another writer changed.
const maxModifyAttempts = 5

// modify applies fn to the stored alert under its lock and saves the result.
// fn runs again on a fresh copy when another instance updated the alert first.
func (uc *implUseCase) modify(ctx context.Context, tenantID, alertID string, fn func(a *model.Alert) error) (model.Alert, error) {
	if alertID == "" {
		return model.Alert{}, alert.ErrInvalidInput
	}

	unlock := uc.locks.lock(alertID)
	defer unlock()

	var err error
	for attempt := 0; attempt < maxModifyAttempts; attempt++ {
		var a model.Alert
		a, err = uc.tryModify(ctx, tenantID, alertID, fn)
		if !errors.Is(err, repository.ErrConflict) {
			return a, err
		}
	}
	uc.l.Warnf(ctx, "internal.alert.usecase.modify.tryModify: %s %v", alertID, err)
	return model.Alert{}, alert.ErrConcurrentUpdate
}

func (uc *implUseCase) tryModify(ctx context.Context, tenantID, alertID string, fn func(a *model.Alert) error) (model.Alert, error) {
	now := uc.clock()
	a, err := uc.repo.Get(ctx, tenantID, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.modify.Get: %v", err)
		return model.Alert{}, err
	}
	if a.IsExpired(now) {
		return model.Alert{}, alert.ErrAlertNotFound
	}

	if err := fn(&a); err != nil {
		return model.Alert{}, err
	}

	if err := uc.repo.Update(ctx, repository.UpdateOptions{Alert: a, Now: now}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Alert{}, alert.ErrAlertNotFound
		}
		if !errors.Is(err, repository.ErrConflict) {
			uc.l.Errorf(ctx, "internal.alert.usecase.modify.Update: %v", err)
		}
		return model.Alert{}, err
	}
	a.Version++
	return a, nil
}

func (uc *implUseCase) publish(ctx context.Context, e alert.Event) {
	if uc.publisher == nil {
		return
	}
	e.Timestamp = uc.clock()
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.publish.Publish: %s %v", e.Type, err)
	}
}
