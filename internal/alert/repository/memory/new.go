// Package memory is a process-local alert store for tests and single-instance runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"alert-srv/internal/alert/repository"
	"alert-srv/internal/model"
)

type tenantAlerts struct {
	alerts map[string]model.Alert
	// active maps a rule id to the id of its active alert.
	active map[string]string
}

type implRepository struct {
	mu      sync.Mutex
	tenants map[string]*tenantAlerts
}

var _ repository.Repository = &implRepository{}

func New() repository.Repository {
	return &implRepository{tenants: make(map[string]*tenantAlerts)}
}

func (r *implRepository) tenant(id string) *tenantAlerts {
	t, ok := r.tenants[id]
	if !ok {
		t = &tenantAlerts{alerts: make(map[string]model.Alert), active: make(map[string]string)}
		r.tenants[id] = t
	}
	return t
}

func (r *implRepository) InsertIfAbsent(ctx context.Context, alert model.Alert) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tenant(alert.TenantID)
	if id, ok := t.active[alert.RuleID]; ok {
		if cur, ok := t.alerts[id]; ok && cur.IsActive(alert.CreatedAt) {
			return false, nil
		}
	}
	t.alerts[alert.ID] = clone(alert)
	t.active[alert.RuleID] = alert.ID
	return true, nil
}

func (r *implRepository) Get(ctx context.Context, tenantID, alertID string) (model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenants[tenantID]
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}
	a, ok := t.alerts[alertID]
	if !ok {
		return model.Alert{}, repository.ErrNotFound
	}
	return clone(a), nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenants[opts.TenantID]
	if !ok {
		return []model.Alert{}, nil
	}
	out := make([]model.Alert, 0, len(t.alerts))
	for _, a := range t.alerts {
		if !a.IsExpired(opts.Now) {
			out = append(out, clone(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := opts.Alert
	t, ok := r.tenants[a.TenantID]
	if !ok {
		return repository.ErrNotFound
	}
	cur, ok := t.alerts[a.ID]
	if !ok || cur.IsExpired(opts.Now) {
		return repository.ErrNotFound
	}
	if cur.Version != a.Version {
		return repository.ErrConflict
	}

	a.Version++
	t.alerts[a.ID] = clone(a)
	if a.IsRead && t.active[a.RuleID] == a.ID {
		delete(t.active, a.RuleID)
	}
	return nil
}

func (r *implRepository) Purge(ctx context.Context, opts repository.PurgeOptions) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenants[opts.TenantID]
	if !ok {
		return 0, nil
	}
	n := 0
	for id, a := range t.alerts {
		if !a.IsExpired(opts.Now) {
			continue
		}
		delete(t.alerts, id)
		if t.active[a.RuleID] == id {
			delete(t.active, a.RuleID)
		}
		n++
	}
	return n, nil
}

// clone copies the slices of a so callers never share state with the store.
func clone(a model.Alert) model.Alert {
	a.RecommendedActions = append([]model.RecommendedAction(nil), a.RecommendedActions...)
	a.AutomatedActions = append([]model.AutomatedActionState(nil), a.AutomatedActions...)
	a.Deliveries = append([]model.DeliveryRecord(nil), a.Deliveries...)
	return a
}
