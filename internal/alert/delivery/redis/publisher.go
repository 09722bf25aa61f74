package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"alert-srv/internal/alert"
)

// Channel returns the pub/sub channel of a tenant.
func Channel(prefix, tenantID string) string {
	return prefix + tenantID
}

func (p *implPublisher) Publish(ctx context.Context, e alert.Event) error {
	if e.TenantID == "" {
		return alert.ErrInvalidInput
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(p.prefix, e.TenantID), data); err != nil {
		p.l.Warnf(ctx, "internal.alert.delivery.redis.Publish.Publish: %v", err)
		return err
	}
	return nil
}
