package usecase

import (
	"context"
	"sync"
	"time"

	"alert-srv/internal/action"
	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/internal/monitor"
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

const (
	tenantID = "tenant-1"
	waitFor  = 2 * time.Second
	tick     = 5 * time.Millisecond
)

var analyst = model.Scope{UserID: "u-1", TenantID: tenantID, Role: model.RoleAnalyst}

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

type fakeSink struct {
	mu   sync.Mutex
	msgs []monitor.Message
	err  error
}

func (s *fakeSink) Send(ctx context.Context, msg monitor.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *fakeSink) count(t monitor.MessageType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.msgs {
		if m.Type == t {
			n++
		}
	}
	return n
}

func (s *fakeSink) of(t monitor.MessageType) []monitor.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []monitor.Message
	for _, m := range s.msgs {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

func (s *fakeSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

// fakeAlerts serves a fixed sweep result and records how sweeps overlap.
type fakeAlerts struct {
	alert.UseCase

	mu         sync.Mutex
	out        alert.SweepOutput
	sweepErr   error
	sweeps     int
	running    int
	maxRunning int
	statsCalls int
	runs       []string
	runHook    func(a model.Alert, hooks action.Hooks)
}

func (f *fakeAlerts) Sweep(ctx context.Context, sc model.Scope, input alert.SweepInput) (alert.SweepOutput, error) {
	f.mu.Lock()
	f.sweeps++
	f.running++
	if f.running > f.maxRunning {
		f.maxRunning = f.running
	}
	out, err := f.out, f.sweepErr
	// Later sweeps only report alerts, nothing new gets admitted.
	f.out.Admitted = nil
	f.mu.Unlock()

	time.Sleep(time.Millisecond)

	f.mu.Lock()
	f.running--
	f.mu.Unlock()
	return out, err
}

func (f *fakeAlerts) Stats(ctx context.Context, sc model.Scope) (model.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	return model.Stats{TotalAlerts: len(f.out.Active)}, nil
}

func (f *fakeAlerts) RunAutomatedActions(ctx context.Context, sc model.Scope, a model.Alert, hooks action.Hooks) []model.AutomatedActionState {
	f.mu.Lock()
	f.runs = append(f.runs, a.ID)
	hook := f.runHook
	f.mu.Unlock()
	if hook != nil {
		hook(a, hooks)
	}
	return nil
}

func (f *fakeAlerts) get() (sweeps, maxRunning, statsCalls int, runs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps, f.maxRunning, f.statsCalls, append([]string(nil), f.runs...)
}

func newAlert(id string, cat model.Category) model.Alert {
	return model.Alert{
		ID:               id,
		TenantID:         tenantID,
		Category:         cat,
		Severity:         model.SeverityHigh,
		AutomatedActions: []model.AutomatedActionState{model.NewPendingAction("notify_finance_team")},
	}
}

func newTestUseCase(alerts alert.UseCase, clock *fakeClock) *implUseCase {
	uc := newUseCase(&testLogger{}, alerts, Options{
		MinInterval:      time.Millisecond,
		ErrorEventWindow: time.Minute,
	})
	if clock != nil {
		uc.clock = clock.Now
	}
	return uc
}

func startInput(connID string, sink monitor.Sink, interval time.Duration) monitor.StartInput {
	return monitor.StartInput{
		ConnectionID: connID,
		Scope:        analyst,
		Interval:     interval,
		Sink:         sink,
	}
}
