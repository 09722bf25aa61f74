package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alert-srv/internal/model"
	"alert-srv/internal/snapshot"
	pkgLog "alert-srv/pkg/log"
	pkgRedis "alert-srv/pkg/redis"
)

const keyPrefix = "snapshot:"

// Client is the subset of pkg/redis the cache needs.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type implCache struct {
	l      pkgLog.Logger
	client Client
	ttl    time.Duration
}

var _ snapshot.Cache = &implCache{}

// New returns a snapshot cache stored as JSON under snapshot:{tenant}.
func New(l pkgLog.Logger, client Client, ttl time.Duration) snapshot.Cache {
	return &implCache{
		l:      l,
		client: client,
		ttl:    ttl,
	}
}

func key(tenantID string) string {
	return keyPrefix + tenantID
}

func (c *implCache) Get(ctx context.Context, tenantID string) (model.BusinessSnapshot, bool, error) {
	raw, err := c.client.Get(ctx, key(tenantID))
	if err != nil {
		if pkgRedis.IsNil(err) {
			return model.BusinessSnapshot{}, false, nil
		}
		c.l.Warnf(ctx, "internal.snapshot.repository.redis.Get.Get: %v", err)
		return model.BusinessSnapshot{}, false, err
	}

	var snap model.BusinessSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		c.l.Warnf(ctx, "internal.snapshot.repository.redis.Get.Unmarshal: %v", err)
		return model.BusinessSnapshot{}, false, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return snap, true, nil
}

func (c *implCache) Set(ctx context.Context, snap model.BusinessSnapshot) error {
	if c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key(snap.TenantID), data, c.ttl); err != nil {
		c.l.Warnf(ctx, "internal.snapshot.repository.redis.Set.Set: %v", err)
		return err
	}
	return nil
}
