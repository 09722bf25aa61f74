package usecase

import (
	"time"

	"alert-srv/internal/action"
	pkgLog "alert-srv/pkg/log"
	"alert-srv/pkg/metrics"
)

type implUseCase struct {
	l        pkgLog.Logger
	registry *action.Registry
	metrics  metrics.Recorder
	clock    func() time.Time
}

var _ action.UseCase = &implUseCase{}

func New(l pkgLog.Logger, registry *action.Registry, rec metrics.Recorder) action.UseCase {
	if rec == nil {
		rec = metrics.NewNop()
	}
	return &implUseCase{
		l:        l,
		registry: registry,
		metrics:  rec,
		clock:    time.Now,
	}
}
