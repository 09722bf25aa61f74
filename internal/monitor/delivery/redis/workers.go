package redis

import (
	"context"
	"encoding/json"
	"strings"

	"alert-srv/internal/alert"
)

// handleMessage refreshes the sessions of the tenant named by the channel.
func (s *subscriber) handleMessage(ctx context.Context, channel, payload string) {
	tenantID, ok := strings.CutPrefix(channel, s.prefix)
	if !ok || tenantID == "" {
		s.logger.Warnf(ctx, "internal.monitor.delivery.redis.handleMessage: unexpected channel %q", channel)
		return
	}

	var event alert.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		s.logger.Warnf(ctx, "internal.monitor.delivery.redis.handleMessage.Unmarshal: channel=%s err=%v", channel, err)
		return
	}
	if event.TenantID != tenantID {
		s.logger.Warnf(ctx, "internal.monitor.delivery.redis.handleMessage: event tenant %q on channel %q", event.TenantID, channel)
		return
	}

	s.logger.Debugf(ctx, "internal.monitor.delivery.redis.handleMessage: %s alert=%s tenant=%s", event.Type, event.AlertID, tenantID)
	s.monitor.NotifyTenant(ctx, tenantID)
}
