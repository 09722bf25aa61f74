package snapshot

import (
	"context"

	"alert-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Get returns a read-only snapshot of the tenant's business data.
	Get(ctx context.Context, tenantID string) (model.BusinessSnapshot, error)
}

// Cache keeps recently built snapshots so concurrent sessions of one tenant share a load.
type Cache interface {
	Get(ctx context.Context, tenantID string) (model.BusinessSnapshot, bool, error)
	Set(ctx context.Context, snap model.BusinessSnapshot) error
}
