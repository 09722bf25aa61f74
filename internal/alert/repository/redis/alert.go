package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"alert-srv/internal/alert/repository"
	"alert-srv/internal/model"
	pkgRedis "alert-srv/pkg/redis"
)

func (r *implRepository) InsertIfAbsent(ctx context.Context, alert model.Alert) (bool, error) {
	ttl := alert.ExpiresAt.Sub(alert.CreatedAt)
	if ttl <= 0 {
		return false, fmt.Errorf("alert %s expires before it is created", alert.ID)
	}
	key := activeKey(alert.TenantID, alert.RuleID)

	ok, err := r.claim(ctx, key, alert, ttl)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.InsertIfAbsent.claim: %v", err)
		return false, err
	}
	if !ok {
		return false, nil
	}

	data, err := json.Marshal(alert)
	if err != nil {
		r.release(ctx, key, alert.ID)
		return false, err
	}
	if err := r.client.Set(ctx, alertKey(alert.TenantID, alert.ID), data, ttl); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.InsertIfAbsent.Set: %v", err)
		r.release(ctx, key, alert.ID)
		return false, err
	}
	if err := r.client.SAdd(ctx, indexKey(alert.TenantID), alert.ID); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.InsertIfAbsent.SAdd: %v", err)
		if err := r.client.Delete(ctx, alertKey(alert.TenantID, alert.ID)); err != nil {
			r.l.Warnf(ctx, "internal.alert.repository.redis.InsertIfAbsent.Delete: %v", err)
		}
		r.release(ctx, key, alert.ID)
		return false, err
	}
	if err := r.client.Expire(ctx, indexKey(alert.TenantID), ttl); err != nil {
		r.l.Warnf(ctx, "internal.alert.repository.redis.InsertIfAbsent.Expire: %v", err)
	}
	return true, nil
}

// claim takes the active-rule key. A key still held by a read or expired alert
// is released and claimed again once.
func (r *implRepository) claim(ctx context.Context, key string, alert model.Alert, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, alert.ID, ttl)
	if err != nil || ok {
		return ok, err
	}

	holder, err := r.client.Get(ctx, key)
	if err != nil {
		if pkgRedis.IsNil(err) {
			return r.client.SetNX(ctx, key, alert.ID, ttl)
		}
		return false, err
	}
	// A holder without a payload is still being inserted.
	cur, err := r.Get(ctx, alert.TenantID, holder)
	if err == repository.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if cur.IsActive(alert.CreatedAt) {
		return false, nil
	}

	if _, err := r.client.DeleteIfEquals(ctx, key, holder); err != nil {
		return false, err
	}
	return r.client.SetNX(ctx, key, alert.ID, ttl)
}

func (r *implRepository) release(ctx context.Context, key, alertID string) {
	if _, err := r.client.DeleteIfEquals(ctx, key, alertID); err != nil {
		r.l.Warnf(ctx, "internal.alert.repository.redis.release.DeleteIfEquals: %v", err)
	}
}

func (r *implRepository) Get(ctx context.Context, tenantID, alertID string) (model.Alert, error) {
	raw, err := r.client.Get(ctx, alertKey(tenantID, alertID))
	if err != nil {
		if pkgRedis.IsNil(err) {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.redis.Get.Get: %v", err)
		return model.Alert{}, err
	}

	var a model.Alert
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.Get.Unmarshal: %v", err)
		return model.Alert{}, err
	}
	return a, nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Alert, error) {
	alerts, stale, err := r.load(ctx, opts.TenantID)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.List.load: %v", err)
		return nil, err
	}
	r.forget(ctx, opts.TenantID, stale)

	out := make([]model.Alert, 0, len(alerts))
	for _, a := range alerts {
		if !a.IsExpired(opts.Now) {
			out = append(out, a)
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
	a := opts.Alert
	key := alertKey(a.TenantID, a.ID)
	raw, err := r.client.Get(ctx, key)
	if err != nil {
		if pkgRedis.IsNil(err) {
			return repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.redis.Update.Get: %v", err)
		return err
	}
	var cur model.Alert
	if err := json.Unmarshal([]byte(raw), &cur); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.Update.Unmarshal: %v", err)
		return err
	}
	if cur.Version != a.Version {
		return repository.ErrConflict
	}
	ttl := a.ExpiresAt.Sub(opts.Now)
	if ttl <= 0 {
		return repository.ErrNotFound
	}

	a.Version++
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	// The payload must still be the one read above, otherwise another writer won.
	swapped, err := r.client.CompareAndSwap(ctx, key, raw, string(data), ttl)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.Update.CompareAndSwap: %v", err)
		return err
	}
	if !swapped {
		return repository.ErrConflict
	}
	if a.IsRead {
		r.release(ctx, activeKey(a.TenantID, a.RuleID), a.ID)
	}
	return nil
}

func (r *implRepository) Purge(ctx context.Context, opts repository.PurgeOptions) (int, error) {
	alerts, stale, err := r.load(ctx, opts.TenantID)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.Purge.load: %v", err)
		return 0, err
	}

	var keys []string
	for _, a := range alerts {
		if !a.IsExpired(opts.Now) {
			continue
		}
		stale = append(stale, a.ID)
		keys = append(keys, alertKey(a.TenantID, a.ID))
		r.release(ctx, activeKey(a.TenantID, a.RuleID), a.ID)
	}
	if err := r.client.Delete(ctx, keys...); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.redis.Purge.Delete: %v", err)
		return 0, err
	}
	r.forget(ctx, opts.TenantID, stale)
	return len(stale), nil
}

// load returns the stored alerts of a tenant and the indexed ids whose payload already expired.
func (r *implRepository) load(ctx context.Context, tenantID string) ([]model.Alert, []string, error) {
	ids, err := r.client.SMembers(ctx, indexKey(tenantID))
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return nil, nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = alertKey(tenantID, id)
	}
	values, err := r.client.MGet(ctx, keys...)
	if err != nil {
		return nil, nil, err
	}

	alerts := make([]model.Alert, 0, len(values))
	var stale []string
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var a model.Alert
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			r.l.Warnf(ctx, "internal.alert.repository.redis.load.Unmarshal: %s: %v", ids[i], err)
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, stale, nil
}

func (r *implRepository) forget(ctx context.Context, tenantID string, ids []string) {
	if len(ids) == 0 {
		return
	}
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := r.client.SRem(ctx, indexKey(tenantID), members...); err != nil {
		r.l.Warnf(ctx, "internal.alert.repository.redis.forget.SRem: %v", err)
	}
}
