package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"alert-srv/internal/model"
	"alert-srv/internal/monitor"
	"alert-srv/internal/settings"
	ws "alert-srv/internal/websocket"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analyst = model.Scope{UserID: "u-1", TenantID: "tenant-1", Role: model.RoleAnalyst}

type fakeMonitor struct {
	mu       sync.Mutex
	starts   []monitor.StartInput
	stops    []string
	active   map[string]bool
	startErr error
}

func newFakeMonitor() *fakeMonitor {
	return &fakeMonitor{active: make(map[string]bool)}
}

func (f *fakeMonitor) Start(ctx context.Context, input monitor.StartInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.starts = append(f.starts, input)
	f.active[input.ConnectionID] = true
	return nil
}

func (f *fakeMonitor) Stop(ctx context.Context, connectionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops = append(f.stops, connectionID)
	delete(f.active, connectionID)
	return nil
}

func (f *fakeMonitor) IsMonitoring(connectionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[connectionID]
}

func (f *fakeMonitor) NotifyTenant(ctx context.Context, tenantID string) {}

func (f *fakeMonitor) Sessions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.active)
}

func (f *fakeMonitor) StopAll(ctx context.Context) error { return nil }

func (f *fakeMonitor) lastStart() (monitor.StartInput, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.starts) == 0 {
		return monitor.StartInput{}, false
	}
	return f.starts[len(f.starts)-1], true
}

func (f *fakeMonitor) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stops)
}

type fakeSettings struct {
	defaults model.MonitoringConfig
	err      error
}

func (f *fakeSettings) Get(ctx context.Context, sc model.Scope) (model.MonitoringConfig, error) {
	return f.defaults, f.err
}

func (f *fakeSettings) Save(ctx context.Context, sc model.Scope, cfg model.MonitoringConfig) (model.MonitoringConfig, error) {
	return cfg, f.err
}

func (f *fakeSettings) Resolve(ctx context.Context, sc model.Scope, override *model.MonitoringConfig) (model.MonitoringConfig, error) {
	if f.err != nil {
		return model.MonitoringConfig{}, f.err
	}
	if override != nil {
		return *override, nil
	}
	return f.defaults, nil
}

func newTestUseCase(t *testing.T, mon monitor.UseCase, set settings.UseCase, cfg ws.Config) *implUseCase {
	t.Helper()
	if cfg.WriteWait == 0 {
		cfg.WriteWait = time.Second
	}
	uc := newUseCase(&testLogger{}, mon, set, cfg, nil)
	go uc.Run()
	t.Cleanup(func() { _ = uc.Shutdown(context.Background()) })
	return uc
}

// dial serves uc behind an upgrading test server and returns the client end.
func dial(t *testing.T, uc *implUseCase, sc model.Scope) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = uc.Register(context.Background(), ws.ConnectionInput{Scope: sc, Conn: conn})
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func read(t *testing.T, client *websocket.Conn) monitor.Message {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg monitor.Message
	require.NoError(t, client.ReadJSON(&msg))
	return msg
}

func TestConnectionEstablished(t *testing.T) {
	uc := newTestUseCase(t, newFakeMonitor(), &fakeSettings{}, ws.Config{MaxConnections: 10})
	client := dial(t, uc, analyst)

	msg := read(t, client)
	assert.Equal(t, monitor.MessageConnectionEstablished, msg.Type)
	assert.NotEmpty(t, msg.Message)

	require.Eventually(t, func() bool { return uc.hub.Count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPingReportsMonitoringState(t *testing.T) {
	mon := newFakeMonitor()
	uc := newTestUseCase(t, mon, &fakeSettings{}, ws.Config{})
	client := dial(t, uc, analyst)
	read(t, client)

	require.NoError(t, client.WriteJSON(map[string]any{"type": "ping"}))
	pong := read(t, client)
	assert.Equal(t, monitor.MessagePong, pong.Type)
	assert.Equal(t, "ok", pong.Status)
	require.NotNil(t, pong.Monitoring)
	assert.False(t, *pong.Monitoring)

	require.NoError(t, client.WriteJSON(map[string]any{"type": "start_monitoring"}))
	require.Eventually(t, func() bool { return mon.Sessions() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, client.WriteJSON(map[string]any{"type": "ping"}))
	pong = read(t, client)
	require.NotNil(t, pong.Monitoring)
	assert.True(t, *pong.Monitoring)
}

func TestStartMonitoringUsesOverride(t *testing.T) {
	mon := newFakeMonitor()
	uc := newTestUseCase(t, mon, &fakeSettings{}, ws.Config{})
	client := dial(t, uc, analyst)
	read(t, client)

	require.NoError(t, client.WriteJSON(map[string]any{
		"type":     "start_monitoring",
		"interval": 5000,
		"configuration": map[string]any{
			"automatedActionsEnabled": true,
			"automatedCategories":     []string{"financial"},
			"notifyMinSeverity":       "critical",
		},
	}))

	var in monitor.StartInput
	require.Eventually(t, func() bool {
		var ok bool
		in, ok = mon.lastStart()
		return ok
	}, time.Second, 5*time.Millisecond)

	assert.NotEmpty(t, in.ConnectionID)
	assert.Equal(t, analyst, in.Scope)
	assert.Equal(t, 5*time.Second, in.Interval)
	assert.True(t, in.Config.AutomatedActionsEnabled)
	assert.Equal(t, []model.Category{model.CategoryFinancial}, in.Config.AutomatedCategories)
	assert.Equal(t, model.SeverityCritical, in.Config.NotifyMinSeverity)

	// The connection is the session sink.
	require.NoError(t, in.Sink.Send(context.Background(), monitor.NewStatsMessage(model.Stats{TotalAlerts: 4}, time.Now())))
	msg := read(t, client)
	assert.Equal(t, monitor.MessageStatsUpdate, msg.Type)
	require.NotNil(t, msg.Stats)
	assert.Equal(t, 4, msg.Stats.TotalAlerts)
}

func TestStopMonitoring(t *testing.T) {
	mon := newFakeMonitor()
	uc := newTestUseCase(t, mon, &fakeSettings{}, ws.Config{})
	client := dial(t, uc, analyst)
	read(t, client)

	require.NoError(t, client.WriteJSON(map[string]any{"type": "start_monitoring"}))
	require.NoError(t, client.WriteJSON(map[string]any{"type": "stop_monitoring"}))

	msg := read(t, client)
	assert.Equal(t, monitor.MessageMonitoringStopped, msg.Type)
	assert.Equal(t, 0, mon.Sessions())
}

func TestClientMessageErrors(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		settings *fakeSettings
		wantCode string
		wantText string
	}{
		{"malformed json", `{"type":`, &fakeSettings{}, codeProtocolError, "invalid message"},
		{"missing type", `{}`, &fakeSettings{}, codeProtocolError, "missing message type"},
		{"unknown type", `{"type":"subscribe"}`, &fakeSettings{}, codeProtocolError, "unknown message type: subscribe"},
		{"invalid configuration", `{"type":"start_monitoring"}`, &fakeSettings{err: settings.ErrInvalidSeverity}, codeInvalidConfiguration, settings.ErrInvalidSeverity.Error()},
		{"settings unavailable", `{"type":"start_monitoring"}`, &fakeSettings{err: errors.New("redis down")}, codeInvalidConfiguration, "Impossible de charger la configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mon := newFakeMonitor()
			uc := newTestUseCase(t, mon, tt.settings, ws.Config{})
			client := dial(t, uc, analyst)
			read(t, client)

			require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(tt.frame)))
			msg := read(t, client)
			assert.Equal(t, monitor.MessageError, msg.Type)
			assert.Equal(t, tt.wantCode, msg.Error)
			assert.Equal(t, tt.wantText, msg.Message)
			assert.Equal(t, 0, mon.Sessions())

			// The connection stays usable.
			require.NoError(t, client.WriteJSON(map[string]any{"type": "ping"}))
			assert.Equal(t, monitor.MessagePong, read(t, client).Type)
		})
	}
}

func TestMonitorStartFailure(t *testing.T) {
	mon := newFakeMonitor()
	mon.startErr = errors.New("boom")
	uc := newTestUseCase(t, mon, &fakeSettings{}, ws.Config{})
	client := dial(t, uc, analyst)
	read(t, client)

	require.NoError(t, client.WriteJSON(map[string]any{"type": "start_monitoring"}))
	msg := read(t, client)
	assert.Equal(t, monitor.MessageError, msg.Type)
	assert.Equal(t, codeMonitoringFailed, msg.Error)
	assert.NotContains(t, msg.Message, "boom")
}

func TestCloseStopsSession(t *testing.T) {
	mon := newFakeMonitor()
	uc := newTestUseCase(t, mon, &fakeSettings{}, ws.Config{MaxConnectionsPerUser: 1})
	client := dial(t, uc, analyst)
	read(t, client)

	require.NoError(t, client.WriteJSON(map[string]any{"type": "start_monitoring"}))
	require.Eventually(t, func() bool { return mon.Sessions() == 1 }, time.Second, 5*time.Millisecond)
	require.Error(t, uc.Admit(context.Background(), ws.AdmitInput{Scope: analyst}))

	require.NoError(t, client.Close())

	require.Eventually(t, func() bool {
		return mon.Sessions() == 0 && uc.hub.Count() == 0
	}, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, mon.stopCount(), 1)
	assert.NoError(t, uc.Admit(context.Background(), ws.AdmitInput{Scope: analyst}))
}

func TestAdmit(t *testing.T) {
	uc := newTestUseCase(t, newFakeMonitor(), &fakeSettings{}, ws.Config{MaxConnections: 1, ConnectionRateLimit: 5})
	client := dial(t, uc, analyst)
	read(t, client)
	require.Eventually(t, func() bool { return uc.hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	err := uc.Admit(context.Background(), ws.AdmitInput{Scope: model.Scope{UserID: "u-2", TenantID: "tenant-1"}})
	assert.ErrorIs(t, err, ws.ErrMaxConnectionsReached)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ActiveConnections)
	assert.Equal(t, 1, stats.TotalTenants)
	assert.GreaterOrEqual(t, stats.MessagesSent, int64(1))
}

func TestSendBackpressure(t *testing.T) {
	uc := newUseCase(&testLogger{}, newFakeMonitor(), &fakeSettings{}, ws.Config{}, nil)
	c := &Connection{uc: uc, send: make(chan []byte, 1), done: make(chan struct{})}
	msg := monitor.NewPongMessage(false, time.Now())

	require.NoError(t, c.Send(context.Background(), msg))
	assert.ErrorIs(t, c.Send(context.Background(), msg), ws.ErrSendBufferFull)

	c.Close()
	c.Close()
	assert.ErrorIs(t, c.Send(context.Background(), msg), ws.ErrConnectionClosed)
	assert.Equal(t, int64(1), uc.hub.messagesFailed.Load())
}
