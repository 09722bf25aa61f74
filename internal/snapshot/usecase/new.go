package usecase

import (
	"time"

	"alert-srv/internal/snapshot"
	"alert-srv/internal/snapshot/repository"
	pkgLog "alert-srv/pkg/log"
)

type implUseCase struct {
	l     pkgLog.Logger
	repo  repository.Repository
	cache snapshot.Cache
	clock func() time.Time
}

var _ snapshot.UseCase = &implUseCase{}

// New builds the snapshot provider. cache may be nil.
func New(l pkgLog.Logger, repo repository.Repository, cache snapshot.Cache) snapshot.UseCase {
	return &implUseCase{
		l:     l,
		repo:  repo,
		cache: cache,
		clock: time.Now,
	}
}
