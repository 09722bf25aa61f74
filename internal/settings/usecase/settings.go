package usecase

import (
	"context"
	"errors"

	"alert-srv/internal/model"
	"alert-srv/internal/settings"
	"alert-srv/internal/settings/repository"
)

func (uc *implUseCase) Get(ctx context.Context, sc model.Scope) (model.MonitoringConfig, error) {
	if sc.TenantID == "" {
		return model.MonitoringConfig{}, settings.ErrMissingTenant
	}

	cfg, err := uc.repo.Get(ctx, sc.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uc.defaultConfig(), nil
		}
		uc.l.Errorf(ctx, "internal.settings.usecase.Get.Get: %v", err)
		return model.MonitoringConfig{}, err
	}
	return uc.complete(cfg), nil
}

func (uc *implUseCase) Save(ctx context.Context, sc model.Scope, cfg model.MonitoringConfig) (model.MonitoringConfig, error) {
	if sc.TenantID == "" {
		return model.MonitoringConfig{}, settings.ErrMissingTenant
	}
	if !sc.CanConfigure() {
		return model.MonitoringConfig{}, settings.ErrForbidden
	}
	if err := uc.validate(cfg); err != nil {
		return model.MonitoringConfig{}, err
	}

	cfg = uc.complete(cfg)
	if err := uc.repo.Save(ctx, sc.TenantID, cfg); err != nil {
		uc.l.Errorf(ctx, "internal.settings.usecase.Save.Save: %v", err)
		return model.MonitoringConfig{}, err
	}
	return cfg, nil
}

func (uc *implUseCase) Resolve(ctx context.Context, sc model.Scope, override *model.MonitoringConfig) (model.MonitoringConfig, error) {
	if override == nil {
		return uc.Get(ctx, sc)
	}
	if err := uc.validate(*override); err != nil {
		return model.MonitoringConfig{}, err
	}
	return uc.complete(*override), nil
}

func (uc *implUseCase) validate(cfg model.MonitoringConfig) error {
	if cfg.IntervalMs < 0 || (cfg.IntervalMs > 0 && cfg.IntervalMs < uc.defaults.MinInterval.Milliseconds()) {
		return settings.ErrIntervalTooShort
	}
	for _, c := range cfg.AutomatedCategories {
		if !c.IsValid() {
			return settings.ErrInvalidCategory
		}
	}
	if s := cfg.NotifyMinSeverity; s != "" && s != settings.SeverityNone && !s.IsValid() {
		return settings.ErrInvalidSeverity
	}
	return nil
}

// complete fills the unset fields of cfg with the service defaults.
func (uc *implUseCase) complete(cfg model.MonitoringConfig) model.MonitoringConfig {
	if cfg.IntervalMs == 0 {
		cfg.IntervalMs = uc.defaults.Interval.Milliseconds()
	}
	if cfg.NotifyMinSeverity == "" {
		cfg.NotifyMinSeverity = uc.defaults.NotifyMinSeverity
	}
	return cfg
}

func (uc *implUseCase) defaultConfig() model.MonitoringConfig {
	return model.MonitoringConfig{
		IntervalMs:              uc.defaults.Interval.Milliseconds(),
		AutomatedActionsEnabled: uc.defaults.AutomatedActionsEnabled,
		NotifyMinSeverity:       uc.defaults.NotifyMinSeverity,
	}
}
