package repository

import (
	"context"

	"alert-srv/internal/model"
)

// Repository stores alerts per tenant. At most one active (unread, unexpired) alert
// exists per (tenant, rule) pair.
//
//go:generate mockery --name Repository
type Repository interface {
	// InsertIfAbsent stores alert unless an active alert of the same rule exists.
	// It reports whether the alert was stored. alert.CreatedAt is used as the current time.
	InsertIfAbsent(ctx context.Context, alert model.Alert) (bool, error)
	Get(ctx context.Context, tenantID, alertID string) (model.Alert, error)
	// List returns the unexpired alerts of a tenant ordered by creation time.
	List(ctx context.Context, opts ListOptions) ([]model.Alert, error)
	// Update replaces a stored alert when its Version matches the stored one and bumps
	// the stored Version. A stale Version fails with ErrConflict. Marking the alert
	// read releases its rule for new alerts.
	Update(ctx context.Context, opts UpdateOptions) error
	// Purge removes expired alerts and returns how many were removed.
	Purge(ctx context.Context, opts PurgeOptions) (int, error)
}
