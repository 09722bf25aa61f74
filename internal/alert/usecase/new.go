package usecase

import (
	"time"

	"alert-srv/internal/action"
	"alert-srv/internal/alert"
	"alert-srv/internal/alert/repository"
	"alert-srv/internal/alert/rule"
	"alert-srv/internal/snapshot"
	pkgLog "alert-srv/pkg/log"
	"alert-srv/pkg/metrics"

	"github.com/google/uuid"
)

const DefaultAlertTTL = 24 * time.Hour

// Options carries the optional collaborators of the alert usecase.
type Options struct {
	// Notifier receives admitted alerts. Nil disables external delivery.
	Notifier alert.Notifier
	// Publisher broadcasts lifecycle events. Nil keeps them local.
	Publisher alert.Publisher
	Metrics   metrics.Recorder
	AlertTTL  time.Duration
}

type implUseCase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	catalog   rule.Catalog
	snapshots snapshot.UseCase
	actions   action.UseCase
	notifier  alert.Notifier
	publisher alert.Publisher
	metrics   metrics.Recorder
	ttl       time.Duration
	locks     *alertLocks
	clock     func() time.Time
	newID     func() string
}

var _ alert.UseCase = &implUseCase{}

func New(l pkgLog.Logger, repo repository.Repository, catalog rule.Catalog, snapshots snapshot.UseCase, actions action.UseCase, opts Options) alert.UseCase {
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewNop()
	}
	if opts.AlertTTL <= 0 {
		opts.AlertTTL = DefaultAlertTTL
	}
	return &implUseCase{
		l:         l,
		repo:      repo,
		catalog:   catalog,
		snapshots: snapshots,
		actions:   actions,
		notifier:  opts.Notifier,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		ttl:       opts.AlertTTL,
		locks:     newAlertLocks(),
		clock:     time.Now,
		newID:     uuid.NewString,
	}
}
