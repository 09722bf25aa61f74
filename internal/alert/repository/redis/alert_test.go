package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"alert-srv/internal/alert/repository"
	"alert-srv/internal/alert/repository/repotest"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// fakeClient keeps keys in memory and ignores TTLs, so expiry relies on the alert timestamps.
type fakeClient struct {
	mu   sync.Mutex
	kv   map[string]string
	sets map[string]map[string]bool
	ttl  map[string]time.Duration

	saddErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{kv: map[string]string{}, sets: map[string]map[string]bool{}, ttl: map[string]time.Duration{}}
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kv[key] = fmt.Sprintf("%s", value)
	f.ttl[key] = ttl
	return nil
}

func (f *fakeClient) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.kv[key]; ok {
		return false, nil
	}
	f.kv[key] = fmt.Sprintf("%v", value)
	f.ttl[key] = ttl
	return true, nil
}

func (f *fakeClient) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.kv[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeClient) MGet(ctx context.Context, keys ...string) ([]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.kv[k]; ok {
			out[i] = v
		}
	}
	return out, nil
}

func (f *fakeClient) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.kv, k)
	}
	return nil
}

func (f *fakeClient) DeleteIfEquals(ctx context.Context, key, value string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.kv[key] != value {
		return false, nil
	}
	delete(f.kv, key)
	return true, nil
}

func (f *fakeClient) CompareAndSwap(ctx context.Context, key, old, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.kv[key]; !ok || cur != old {
		return false, nil
	}
	f.kv[key] = value
	f.ttl[key] = ttl
	return true, nil
}

func (f *fakeClient) SAdd(ctx context.Context, key string, members ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saddErr != nil {
		return f.saddErr
	}
	if f.sets[key] == nil {
		f.sets[key] = map[string]bool{}
	}
	for _, m := range members {
		f.sets[key][fmt.Sprintf("%v", m)] = true
	}
	return nil
}

func (f *fakeClient) SRem(ctx context.Context, key string, members ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range members {
		delete(f.sets[key], fmt.Sprintf("%v", m))
	}
	return nil
}

func (f *fakeClient) SMembers(ctx context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttl[key] = ttl
	return nil
}

func TestRepositoryContract(t *testing.T) {
	repotest.Run(t, func() repository.Repository { return New(&testLogger{}, newFakeClient()) })
}

func TestInsertKeysAndTTL(t *testing.T) {
	client := newFakeClient()
	repo := New(&testLogger{}, client)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := repotest.NewAlert("a1", "overdue_invoices", created)

	ok, err := repo.InsertIfAbsent(context.Background(), a)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "a1", client.kv[activeKey(a.TenantID, a.RuleID)])
	assert.Equal(t, 24*time.Hour, client.ttl[activeKey(a.TenantID, a.RuleID)])
	assert.Equal(t, 24*time.Hour, client.ttl[alertKey(a.TenantID, "a1")])
	assert.True(t, client.sets[indexKey(a.TenantID)]["a1"])
}

func TestListDropsStaleIndexEntries(t *testing.T) {
	client := newFakeClient()
	repo := New(&testLogger{}, client)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := repotest.NewAlert("a1", "overdue_invoices", created)

	_, err := repo.InsertIfAbsent(context.Background(), a)
	require.NoError(t, err)
	// Simulate Redis expiring the payload before the index.
	delete(client.kv, alertKey(a.TenantID, "a1"))

	list, err := repo.List(context.Background(), repository.ListOptions{TenantID: a.TenantID, Now: created})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, client.sets[indexKey(a.TenantID)])
}

func TestInsertRejectsInvalidLifetime(t *testing.T) {
	repo := New(&testLogger{}, newFakeClient())
	a := repotest.NewAlert("a1", "overdue_invoices", time.Now())
	a.ExpiresAt = a.CreatedAt

	_, err := repo.InsertIfAbsent(context.Background(), a)
	assert.Error(t, err)
}

func TestInsertCleansUpWhenIndexFails(t *testing.T) {
	client := newFakeClient()
	client.saddErr = errors.New("connection reset")
	repo := New(&testLogger{}, client)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := repotest.NewAlert("a1", "overdue_invoices", created)

	ok, err := repo.InsertIfAbsent(context.Background(), a)
	require.Error(t, err)
	assert.False(t, ok)
	assert.NotContains(t, client.kv, alertKey(a.TenantID, "a1"))
	assert.NotContains(t, client.kv, activeKey(a.TenantID, a.RuleID))

	client.saddErr = nil
	ok, err = repo.InsertIfAbsent(context.Background(), repotest.NewAlert("a2", "overdue_invoices", created))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateRejectsPayloadChangedUnderneath(t *testing.T) {
	client := newFakeClient()
	repo := New(&testLogger{}, client)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := repotest.NewAlert("a1", "overdue_invoices", created)
	_, err := repo.InsertIfAbsent(ctx, a)
	require.NoError(t, err)

	mine, err := repo.Get(ctx, a.TenantID, "a1")
	require.NoError(t, err)
	theirs, err := repo.Get(ctx, a.TenantID, "a1")
	require.NoError(t, err)

	theirs.IsActioned = true
	require.NoError(t, repo.Update(ctx, repository.UpdateOptions{Alert: theirs, Now: created}))

	mine.IsRead = true
	err = repo.Update(ctx, repository.UpdateOptions{Alert: mine, Now: created})
	assert.ErrorIs(t, err, repository.ErrConflict)

	stored, err := repo.Get(ctx, a.TenantID, "a1")
	require.NoError(t, err)
	assert.True(t, stored.IsActioned)
	assert.False(t, stored.IsRead)
	assert.Equal(t, int64(1), stored.Version)
	assert.Equal(t, "a1", client.kv[activeKey(a.TenantID, a.RuleID)])
}
