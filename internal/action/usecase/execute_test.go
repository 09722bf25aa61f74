package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"alert-srv/internal/action"
	"alert-srv/internal/model"

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

func newTestUseCase(t *testing.T, handlers map[string]action.HandlerFunc) action.UseCase {
	t.Helper()
	reg := action.NewRegistry()
	for id, h := range handlers {
		require.NoError(t, reg.Register(id, h))
	}
	uc := New(&testLogger{}, reg, nil).(*implUseCase)
	uc.clock = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return uc
}

func TestExecute(t *testing.T) {
	uc := newTestUseCase(t, map[string]action.HandlerFunc{
		"ok": func(ctx context.Context, a model.Alert) (interface{}, error) {
			return map[string]int{"reminders": 3}, nil
		},
		"fails": func(ctx context.Context, a model.Alert) (interface{}, error) {
			return nil, errors.New("webhook down")
		},
		"panics": func(ctx context.Context, a model.Alert) (interface{}, error) {
			panic("nil map")
		},
	})

	tests := []struct {
		name       string
		actionID   string
		wantStatus model.ActionStatus
		wantErr    string
	}{
		{"completed", "ok", model.ActionStatusCompleted, ""},
		{"handler error", "fails", model.ActionStatusFailed, "webhook down"},
		{"handler panic", "panics", model.ActionStatusFailed, "panic: nil map"},
		{"unknown action", "launch_rocket", model.ActionStatusFailed, "action not found: launch_rocket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := uc.Execute(context.Background(), model.Alert{ID: "a1"}, tt.actionID)

			assert.Equal(t, tt.actionID, state.ActionID)
			assert.Equal(t, tt.wantStatus, state.Status)
			assert.NotNil(t, state.StartedAt)
			assert.NotNil(t, state.CompletedAt)
			if tt.wantErr == "" {
				assert.Empty(t, state.Error)
				assert.Equal(t, map[string]int{"reminders": 3}, state.Result)
				return
			}
			assert.Contains(t, state.Error, tt.wantErr)
			assert.Nil(t, state.Result)
		})
	}
}

func TestExecuteAll(t *testing.T) {
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(2)

	block := func(ctx context.Context, a model.Alert) (interface{}, error) {
		started.Done()
		<-release
		return "done", nil
	}
	uc := newTestUseCase(t, map[string]action.HandlerFunc{"a": block, "b": block})

	var mu sync.Mutex
	var events []string
	hooks := action.Hooks{
		OnStart: func(s model.AutomatedActionState) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, "start:"+s.ActionID+":"+string(s.Status))
		},
		OnFinish: func(s model.AutomatedActionState) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, "finish:"+s.ActionID+":"+string(s.Status))
		},
	}

	done := make(chan []model.AutomatedActionState)
	go func() {
		done <- uc.ExecuteAll(context.Background(), model.Alert{ID: "a1"}, []string{"a", "missing", "b"}, hooks)
	}()

	// Both handlers run at the same time.
	started.Wait()
	close(release)

	var states []model.AutomatedActionState
	select {
	case states = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ExecuteAll did not return")
	}

	require.Len(t, states, 3)
	assert.Equal(t, "a", states[0].ActionID)
	assert.Equal(t, model.ActionStatusCompleted, states[0].Status)
	assert.Equal(t, model.ActionStatusFailed, states[1].Status)
	assert.Equal(t, model.ActionStatusCompleted, states[2].Status)

	assert.ElementsMatch(t, []string{
		"start:a:executing", "finish:a:completed",
		"start:b:executing", "finish:b:completed",
		"finish:missing:failed",
	}, events)
}
