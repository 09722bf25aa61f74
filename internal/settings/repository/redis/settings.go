package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alert-srv/internal/model"
	"alert-srv/internal/settings/repository"
	pkgLog "alert-srv/pkg/log"
	pkgRedis "alert-srv/pkg/redis"
)

const keyPrefix = "settings:"

// Client is the subset of pkg/redis the settings store needs.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type implRepository struct {
	l      pkgLog.Logger
	client Client
}

var _ repository.Repository = &implRepository{}

// New returns a settings store keeping one JSON document per tenant under settings:{tenant}.
func New(l pkgLog.Logger, client Client) repository.Repository {
	return &implRepository{
		l:      l,
		client: client,
	}
}

func key(tenantID string) string {
	return keyPrefix + tenantID
}

func (r *implRepository) Get(ctx context.Context, tenantID string) (model.MonitoringConfig, error) {
	raw, err := r.client.Get(ctx, key(tenantID))
	if err != nil {
		if pkgRedis.IsNil(err) {
			return model.MonitoringConfig{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.settings.repository.redis.Get.Get: %v", err)
		return model.MonitoringConfig{}, err
	}

	var cfg model.MonitoringConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		r.l.Errorf(ctx, "internal.settings.repository.redis.Get.Unmarshal: %v", err)
		return model.MonitoringConfig{}, fmt.Errorf("decode settings: %w", err)
	}
	return cfg, nil
}

func (r *implRepository) Save(ctx context.Context, tenantID string, cfg model.MonitoringConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.client.Set(ctx, key(tenantID), data, 0); err != nil {
		r.l.Errorf(ctx, "internal.settings.repository.redis.Save.Set: %v", err)
		return err
	}
	return nil
}
