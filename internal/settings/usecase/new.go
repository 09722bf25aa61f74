package usecase

import (
	"alert-srv/internal/settings"
	"alert-srv/internal/settings/repository"
	pkgLog "alert-srv/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	defaults settings.Defaults
}

var _ settings.UseCase = &implUseCase{}

func New(l pkgLog.Logger, repo repository.Repository, defaults settings.Defaults) settings.UseCase {
	return &implUseCase{
		l:        l,
		repo:     repo,
		defaults: defaults,
	}
}
