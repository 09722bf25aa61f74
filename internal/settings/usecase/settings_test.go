package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"alert-srv/internal/model"
	"alert-srv/internal/settings"
	"alert-srv/internal/settings/repository"

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

type fakeRepo struct {
	configs map[string]model.MonitoringConfig
	err     error
}

func (r *fakeRepo) Get(ctx context.Context, tenantID string) (model.MonitoringConfig, error) {
	if r.err != nil {
		return model.MonitoringConfig{}, r.err
	}
	cfg, ok := r.configs[tenantID]
	if !ok {
		return model.MonitoringConfig{}, repository.ErrNotFound
	}
	return cfg, nil
}

func (r *fakeRepo) Save(ctx context.Context, tenantID string, cfg model.MonitoringConfig) error {
	if r.err != nil {
		return r.err
	}
	r.configs[tenantID] = cfg
	return nil
}

var (
	defaults = settings.Defaults{
		Interval:                10 * time.Second,
		MinInterval:             time.Second,
		AutomatedActionsEnabled: true,
		NotifyMinSeverity:       model.SeverityHigh,
	}
	admin  = model.Scope{UserID: "u1", TenantID: "t1", Role: model.RoleAdmin}
	viewer = model.Scope{UserID: "u2", TenantID: "t1", Role: model.RoleViewer}
)

func newUseCase() (settings.UseCase, *fakeRepo) {
	repo := &fakeRepo{configs: map[string]model.MonitoringConfig{}}
	return New(&testLogger{}, repo, defaults), repo
}

func TestGetDefaults(t *testing.T) {
	uc, _ := newUseCase()

	cfg, err := uc.Get(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, model.MonitoringConfig{
		IntervalMs:              10000,
		AutomatedActionsEnabled: true,
		NotifyMinSeverity:       model.SeverityHigh,
	}, cfg)

	_, err = uc.Get(context.Background(), model.Scope{})
	assert.ErrorIs(t, err, settings.ErrMissingTenant)
}

func TestSave(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	saved, err := uc.Save(ctx, admin, model.MonitoringConfig{AutomatedCategories: []model.Category{model.CategoryHR}})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), saved.IntervalMs)
	assert.Equal(t, model.SeverityHigh, saved.NotifyMinSeverity)
	assert.False(t, saved.AutomatedActionsEnabled)
	assert.Equal(t, saved, repo.configs["t1"])

	got, err := uc.Get(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		name  string
		scope model.Scope
		cfg   model.MonitoringConfig
		want  error
	}{
		{"viewer", viewer, model.MonitoringConfig{}, settings.ErrForbidden},
		{"no tenant", model.Scope{Role: model.RoleAdmin}, model.MonitoringConfig{}, settings.ErrMissingTenant},
		{"interval below minimum", admin, model.MonitoringConfig{IntervalMs: 500}, settings.ErrIntervalTooShort},
		{"negative interval", admin, model.MonitoringConfig{IntervalMs: -1}, settings.ErrIntervalTooShort},
		{"unknown category", admin, model.MonitoringConfig{AutomatedCategories: []model.Category{"legal"}}, settings.ErrInvalidCategory},
		{"unknown severity", admin, model.MonitoringConfig{NotifyMinSeverity: "urgent"}, settings.ErrInvalidSeverity},
		{"none severity", admin, model.MonitoringConfig{NotifyMinSeverity: settings.SeverityNone}, nil},
		{"minimum interval", admin, model.MonitoringConfig{IntervalMs: 1000}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase()
			_, err := uc.Save(context.Background(), tt.scope, tt.cfg)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolve(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	repo.configs["t1"] = model.MonitoringConfig{IntervalMs: 60000, NotifyMinSeverity: model.SeverityCritical}

	stored, err := uc.Resolve(ctx, viewer, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), stored.IntervalMs)

	override, err := uc.Resolve(ctx, viewer, &model.MonitoringConfig{AutomatedActionsEnabled: true})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), override.IntervalMs)
	assert.True(t, override.AutomatedActionsEnabled)
	assert.Equal(t, model.SeverityHigh, override.NotifyMinSeverity)

	_, err = uc.Resolve(ctx, viewer, &model.MonitoringConfig{IntervalMs: 10})
	assert.ErrorIs(t, err, settings.ErrIntervalTooShort)
}

func TestRepositoryFailure(t *testing.T) {
	uc, repo := newUseCase()
	repo.err = errors.New("redis down")

	_, err := uc.Get(context.Background(), admin)
	assert.ErrorIs(t, err, repo.err)

	_, err = uc.Save(context.Background(), admin, model.MonitoringConfig{})
	assert.ErrorIs(t, err, repo.err)
}
