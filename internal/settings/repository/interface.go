package repository

import (
	"context"

	"alert-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	Get(ctx context.Context, tenantID string) (model.MonitoringConfig, error)
	Save(ctx context.Context, tenantID string, cfg model.MonitoringConfig) error
}
