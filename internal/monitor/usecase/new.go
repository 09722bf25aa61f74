package usecase

import (
	"sync"
	"time"

	"alert-srv/internal/alert"
	"alert-srv/internal/monitor"
	pkgLog "alert-srv/pkg/log"
	"alert-srv/pkg/metrics"
)

type Options struct {
	DefaultInterval time.Duration
	MinInterval     time.Duration
	// ErrorEventWindow is the minimum gap between two error events of one session.
	ErrorEventWindow time.Duration
	Metrics          metrics.Recorder
}

type implUseCase struct {
	l       pkgLog.Logger
	alerts  alert.UseCase
	opts    Options
	metrics metrics.Recorder
	clock   func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	// actions tracks detached automated action runs.
	actions sync.WaitGroup
}

var _ monitor.UseCase = &implUseCase{}

func New(l pkgLog.Logger, alerts alert.UseCase, opts Options) monitor.UseCase {
	return newUseCase(l, alerts, opts)
}

func newUseCase(l pkgLog.Logger, alerts alert.UseCase, opts Options) *implUseCase {
	if opts.DefaultInterval <= 0 {
		opts.DefaultInterval = monitor.DefaultInterval
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = monitor.DefaultMinInterval
	}
	if opts.ErrorEventWindow <= 0 {
		opts.ErrorEventWindow = monitor.DefaultErrorEventWindow
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewNop()
	}
	return &implUseCase{
		l:        l,
		alerts:   alerts,
		opts:     opts,
		metrics:  opts.Metrics,
		clock:    time.Now,
		sessions: make(map[string]*session),
	}
}
