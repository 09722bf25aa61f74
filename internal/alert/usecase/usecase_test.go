package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"alert-srv/internal/action"
	actionUC "alert-srv/internal/action/usecase"
	"alert-srv/internal/alert"
	"alert-srv/internal/alert/repository/memory"
	"alert-srv/internal/alert/rule"
	"alert-srv/internal/model"

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

const tenantID = "6f1c2a8e-3b7d-4c55-9a1e-2f4b8d0c9e71"

var (
	t0      = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	analyst = model.Scope{UserID: "u1", TenantID: tenantID, Role: model.RoleAnalyst}
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeSnapshots struct {
	snap model.BusinessSnapshot
	err  error
}

func (f *fakeSnapshots) Get(ctx context.Context, tenantID string) (model.BusinessSnapshot, error) {
	return f.snap, f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *fakeNotifier) Deliver(ctx context.Context, a model.Alert) model.DeliveryRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, a.RuleID)
	return model.DeliveryRecord{Channel: "discord", SentAt: a.CreatedAt, Success: true}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []alert.Event
}

func (p *fakePublisher) Publish(ctx context.Context, e alert.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) types() []alert.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]alert.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// cashCrisis fires critical_cash_flow only: pending 500,000 against 10,000,000.
func cashCrisis() model.BusinessSnapshot {
	return model.BusinessSnapshot{
		TenantID: tenantID,
		TakenAt:  t0,
		Metrics:  model.FinancialMetrics{TotalRevenue: 10000000, PendingRevenue: 500000},
	}
}

type fixture struct {
	uc        *implUseCase
	clock     *fakeClock
	snapshots *fakeSnapshots
	notifier  *fakeNotifier
	publisher *fakePublisher
	handled   atomic.Int32
}

func newFixture(t *testing.T, catalog rule.Catalog, handlers map[string]action.HandlerFunc) *fixture {
	t.Helper()
	f := &fixture{
		clock:     &fakeClock{now: t0},
		snapshots: &fakeSnapshots{snap: cashCrisis()},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}

	reg := action.NewRegistry()
	for _, id := range catalog.ActionIDs() {
		h, ok := handlers[id]
		if !ok {
			h = func(ctx context.Context, a model.Alert) (interface{}, error) {
				f.handled.Add(1)
				return "ok", nil
			}
		}
		require.NoError(t, reg.Register(id, h))
	}

	f.uc = New(&testLogger{}, memory.New(), catalog, f.snapshots, actionUC.New(&testLogger{}, reg, nil), Options{
		Notifier:  f.notifier,
		Publisher: f.publisher,
	}).(*implUseCase)
	f.uc.clock = f.clock.Now

	var seq atomic.Int32
	f.uc.newID = func() string { return fmt.Sprintf("alert-%d", seq.Add(1)) }
	return f
}
