package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"alert-srv/internal/action"
	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/internal/monitor"
	"alert-srv/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPushesAlertsThenStats(t *testing.T) {
	a := newAlert("alert-1", model.CategoryFinancial)
	alerts := &fakeAlerts{out: alert.SweepOutput{Active: []model.Alert{a}, Admitted: []model.Alert{a}}}
	uc := newTestUseCase(alerts, nil)
	sink := &fakeSink{}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, time.Hour)))
	defer uc.StopAll(context.Background())

	require.Eventually(t, func() bool { return sink.count(monitor.MessageStatsUpdate) == 1 }, waitFor, tick)

	sink.mu.Lock()
	got := []monitor.MessageType{sink.msgs[0].Type, sink.msgs[1].Type, sink.msgs[2].Type}
	sink.mu.Unlock()
	assert.Equal(t, []monitor.MessageType{
		monitor.MessageMonitoringStarted,
		monitor.MessageNewAlert,
		monitor.MessageStatsUpdate,
	}, got)
	assert.Equal(t, "alert-1", sink.of(monitor.MessageNewAlert)[0].Alert.ID)
	assert.True(t, uc.IsMonitoring("c1"))
	assert.Equal(t, 1, uc.Sessions())
}

func TestSeenAlertsAreNotPushedAgain(t *testing.T) {
	a := newAlert("alert-1", model.CategoryFinancial)
	alerts := &fakeAlerts{out: alert.SweepOutput{Active: []model.Alert{a}}}
	uc := newTestUseCase(alerts, nil)
	sink := &fakeSink{}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, 2*time.Millisecond)))
	require.Eventually(t, func() bool { return sink.count(monitor.MessageStatsUpdate) >= 4 }, waitFor, tick)
	require.NoError(t, uc.Stop(context.Background(), "c1"))

	assert.Equal(t, 1, sink.count(monitor.MessageNewAlert))
}

func TestRestartKeepsOneLoop(t *testing.T) {
	alerts := &fakeAlerts{}
	uc := newTestUseCase(alerts, nil)
	sink := &fakeSink{}

	for i := 0; i < 5; i++ {
		require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, 2*time.Millisecond)))
	}
	require.Eventually(t, func() bool {
		sweeps, _, _, _ := alerts.get()
		return sweeps >= 10
	}, waitFor, tick)
	require.NoError(t, uc.Stop(context.Background(), "c1"))

	_, maxRunning, _, _ := alerts.get()
	assert.Equal(t, 1, maxRunning)
	assert.Equal(t, 0, uc.Sessions())
	assert.GreaterOrEqual(t, sink.count(monitor.MessageMonitoringStarted), 1)
}

func TestStopSilencesSession(t *testing.T) {
	alerts := &fakeAlerts{}
	uc := newTestUseCase(alerts, nil)
	sink := &fakeSink{}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, 2*time.Millisecond)))
	require.Eventually(t, func() bool { return sink.count(monitor.MessageStatsUpdate) >= 2 }, waitFor, tick)

	require.NoError(t, uc.Stop(context.Background(), "c1"))
	n := sink.len()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, n, sink.len())
	assert.False(t, uc.IsMonitoring("c1"))
	assert.NoError(t, uc.Stop(context.Background(), "c1"))
	assert.NoError(t, uc.Stop(context.Background(), "never-started"))
}

func TestSweepErrorsAreThrottled(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	alerts := &fakeAlerts{sweepErr: &snapshot.SnapshotUnavailableError{TenantID: tenantID, Cause: errors.New("connection refused")}}
	uc := newTestUseCase(alerts, clock)
	sink := &fakeSink{}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, 2*time.Millisecond)))
	defer uc.StopAll(context.Background())

	require.Eventually(t, func() bool {
		sweeps, _, _, _ := alerts.get()
		return sweeps >= 5
	}, waitFor, tick)

	errs := sink.of(monitor.MessageError)
	require.Len(t, errs, 1)
	assert.Equal(t, codeSnapshotUnavailable, errs[0].Error)
	assert.NotContains(t, errs[0].Message, "connection refused")
	assert.True(t, uc.IsMonitoring("c1"))

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return sink.count(monitor.MessageError) == 2 }, waitFor, tick)
}

func TestGenericSweepErrorCode(t *testing.T) {
	alerts := &fakeAlerts{sweepErr: errors.New("redis down")}
	uc := newTestUseCase(alerts, nil)
	sink := &fakeSink{}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, time.Hour)))
	defer uc.StopAll(context.Background())

	require.Eventually(t, func() bool { return sink.count(monitor.MessageError) == 1 }, waitFor, tick)
	assert.Equal(t, codeSweepFailed, sink.of(monitor.MessageError)[0].Error)
}

func TestDeliveryFailureEndsSession(t *testing.T) {
	alerts := &fakeAlerts{}
	uc := newTestUseCase(alerts, nil)
	sink := &fakeSink{err: errors.New("connection closed")}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, time.Millisecond)))

	require.Eventually(t, func() bool { return !uc.IsMonitoring("c1") }, waitFor, tick)
	assert.Equal(t, 0, uc.Sessions())
}

func TestAutomatedActionsRunForAdmittedAlerts(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	fin := newAlert("alert-fin", model.CategoryFinancial)
	hr := newAlert("alert-hr", model.CategoryHR)
	alerts := &fakeAlerts{
		out: alert.SweepOutput{Active: []model.Alert{fin, hr}, Admitted: []model.Alert{fin, hr}},
		runHook: func(a model.Alert, hooks action.Hooks) {
			st := a.AutomatedActions[0]
			assert.NoError(t, st.Start(clock.Now()))
			hooks.OnStart(st)
			assert.NoError(t, st.Complete(clock.Now(), "ok"))
			hooks.OnFinish(st)
		},
	}
	uc := newTestUseCase(alerts, clock)
	sink := &fakeSink{}

	in := startInput("c1", sink, time.Hour)
	in.Config = model.MonitoringConfig{
		AutomatedActionsEnabled: true,
		AutomatedCategories:     []model.Category{model.CategoryFinancial},
	}
	require.NoError(t, uc.Start(context.Background(), in))

	// The refresh after the actions gives a second stats_update.
	require.Eventually(t, func() bool { return sink.count(monitor.MessageStatsUpdate) == 2 }, waitFor, tick)
	require.NoError(t, uc.StopAll(context.Background()))

	_, _, statsCalls, runs := alerts.get()
	assert.Equal(t, []string{"alert-fin"}, runs)
	assert.Equal(t, 1, statsCalls)

	started := sink.of(monitor.MessageAutomatedActionStarted)
	completed := sink.of(monitor.MessageAutomatedActionCompleted)
	require.Len(t, started, 1)
	require.Len(t, completed, 1)
	assert.Equal(t, "alert-fin", completed[0].AlertID)
	assert.Equal(t, "notify_finance_team", completed[0].Action.ActionID)
	assert.Equal(t, model.ActionStatusCompleted, completed[0].Action.Status)
}

func TestActionsDisabledByConfig(t *testing.T) {
	a := newAlert("alert-1", model.CategoryFinancial)
	alerts := &fakeAlerts{out: alert.SweepOutput{Active: []model.Alert{a}, Admitted: []model.Alert{a}}}
	uc := newTestUseCase(alerts, nil)
	sink := &fakeSink{}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", sink, time.Hour)))
	require.Eventually(t, func() bool { return sink.count(monitor.MessageStatsUpdate) == 1 }, waitFor, tick)
	require.NoError(t, uc.StopAll(context.Background()))

	_, _, _, runs := alerts.get()
	assert.Empty(t, runs)
}

func TestActionEventsDroppedAfterStop(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	started := make(chan struct{})
	release := make(chan struct{})
	a := newAlert("alert-1", model.CategoryFinancial)
	alerts := &fakeAlerts{
		out: alert.SweepOutput{Active: []model.Alert{a}, Admitted: []model.Alert{a}},
		runHook: func(a model.Alert, hooks action.Hooks) {
			st := a.AutomatedActions[0]
			_ = st.Start(clock.Now())
			hooks.OnStart(st)
			close(started)
			<-release
			_ = st.Fail(clock.Now(), "timeout")
			hooks.OnFinish(st)
		},
	}
	uc := newTestUseCase(alerts, clock)
	sink := &fakeSink{}

	in := startInput("c1", sink, time.Hour)
	in.Config = model.MonitoringConfig{AutomatedActionsEnabled: true}
	require.NoError(t, uc.Start(context.Background(), in))

	<-started
	require.NoError(t, uc.Stop(context.Background(), "c1"))
	close(release)
	require.NoError(t, uc.StopAll(context.Background()))

	assert.Equal(t, 1, sink.count(monitor.MessageAutomatedActionStarted))
	assert.Equal(t, 0, sink.count(monitor.MessageAutomatedActionFailed))
	_, _, _, runs := alerts.get()
	assert.Equal(t, []string{"alert-1"}, runs)
}

func TestNotifyTenantPushesStats(t *testing.T) {
	alerts := &fakeAlerts{}
	uc := newTestUseCase(alerts, nil)
	mine := &fakeSink{}
	other := &fakeSink{}

	require.NoError(t, uc.Start(context.Background(), startInput("c1", mine, time.Hour)))
	otherIn := startInput("c2", other, time.Hour)
	otherIn.Scope.TenantID = "tenant-2"
	require.NoError(t, uc.Start(context.Background(), otherIn))
	defer uc.StopAll(context.Background())

	require.Eventually(t, func() bool {
		return mine.count(monitor.MessageStatsUpdate) == 1 && other.count(monitor.MessageStatsUpdate) == 1
	}, waitFor, tick)

	uc.NotifyTenant(context.Background(), tenantID)

	require.Eventually(t, func() bool { return mine.count(monitor.MessageStatsUpdate) == 2 }, waitFor, tick)
	assert.Equal(t, 1, other.count(monitor.MessageStatsUpdate))
}

func TestStartValidatesInput(t *testing.T) {
	uc := newTestUseCase(&fakeAlerts{}, nil)
	sink := &fakeSink{}

	tests := []struct {
		name  string
		input monitor.StartInput
		want  error
	}{
		{"missing connection", monitor.StartInput{Scope: analyst, Sink: sink}, monitor.ErrMissingConnection},
		{"missing sink", monitor.StartInput{ConnectionID: "c1", Scope: analyst}, monitor.ErrMissingSink},
		{"missing tenant", monitor.StartInput{ConnectionID: "c1", Sink: sink}, monitor.ErrMissingTenant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, uc.Start(context.Background(), tt.input), tt.want)
			assert.Equal(t, 0, uc.Sessions())
		})
	}
}

func TestInterval(t *testing.T) {
	uc := newUseCase(&testLogger{}, &fakeAlerts{}, Options{})

	tests := []struct {
		name     string
		interval time.Duration
		config   model.MonitoringConfig
		want     time.Duration
	}{
		{"default", 0, model.MonitoringConfig{}, 10 * time.Second},
		{"from config", 0, model.MonitoringConfig{IntervalMs: 30000}, 30 * time.Second},
		{"explicit wins", 5 * time.Second, model.MonitoringConfig{IntervalMs: 30000}, 5 * time.Second},
		{"clamped", 10 * time.Millisecond, model.MonitoringConfig{}, time.Second},
		{"negative", -time.Second, model.MonitoringConfig{}, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uc.interval(monitor.StartInput{Interval: tt.interval, Config: tt.config})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThrottle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	th := newThrottle(time.Minute, clock.Now)

	assert.True(t, th.Allow("sweep"))
	assert.False(t, th.Allow("sweep"))
	assert.True(t, th.Allow("stats"))

	clock.Advance(59 * time.Second)
	assert.False(t, th.Allow("sweep"))

	clock.Advance(time.Second)
	assert.True(t, th.Allow("sweep"))
}
