package usecase

import (
	"context"

	"alert-srv/internal/model"
	"alert-srv/internal/snapshot"
	postgres "alert-srv/pkg/postgre"
	"alert-srv/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

func (uc *implUseCase) Get(ctx context.Context, tenantID string) (model.BusinessSnapshot, error) {
	if !postgres.IsValidUUID(tenantID) {
		return model.BusinessSnapshot{}, snapshot.ErrInvalidTenant
	}

	ctx, span := tracing.Tracer().Start(ctx, "snapshot.Get")
	span.SetAttributes(attribute.String("tenant_id", tenantID))
	defer span.End()

	if uc.cache != nil {
		snap, ok, err := uc.cache.Get(ctx, tenantID)
		if err != nil {
			uc.l.Warnf(ctx, "internal.snapshot.usecase.Get.cache.Get: %v", err)
		}
		if ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return snap, nil
		}
	}

	snap, err := uc.load(ctx, tenantID)
	if err != nil {
		span.RecordError(err)
		uc.l.Errorf(ctx, "internal.snapshot.usecase.Get.load: %v", err)
		return model.BusinessSnapshot{}, &snapshot.SnapshotUnavailableError{TenantID: tenantID, Cause: err}
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, snap); err != nil {
			uc.l.Warnf(ctx, "internal.snapshot.usecase.Get.cache.Set: %v", err)
		}
	}
	return snap, nil
}

func (uc *implUseCase) load(ctx context.Context, tenantID string) (model.BusinessSnapshot, error) {
	snap := model.BusinessSnapshot{TenantID: tenantID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Projects, err = uc.repo.ListProjects(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.Tasks, err = uc.repo.ListTasks(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.Employees, err = uc.repo.ListEmployees(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.Companies, err = uc.repo.ListCompanies(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.Quotes, err = uc.repo.ListQuotes(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.Invoices, err = uc.repo.ListInvoices(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BusinessSnapshot{}, err
	}

	snap.TakenAt = uc.clock()
	snap.Metrics = computeMetrics(snap.TakenAt, snap.Invoices, snap.Quotes)
	return snap, nil
}
