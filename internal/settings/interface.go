package settings

import (
	"context"

	"alert-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Get returns the tenant's monitoring defaults, falling back to the service defaults.
	Get(ctx context.Context, sc model.Scope) (model.MonitoringConfig, error)
	// Save validates and persists cfg as the tenant's monitoring defaults.
	Save(ctx context.Context, sc model.Scope, cfg model.MonitoringConfig) (model.MonitoringConfig, error)
	// Resolve returns override when set, validated and completed with defaults, and the stored defaults otherwise.
	Resolve(ctx context.Context, sc model.Scope, override *model.MonitoringConfig) (model.MonitoringConfig, error)
}
