package usecase

import (
	"context"

	"alert-srv/internal/alert"
	"alert-srv/internal/alert/repository"
	"alert-srv/internal/model"
	"alert-srv/pkg/metrics"
	"alert-srv/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (uc *implUseCase) Sweep(ctx context.Context, sc model.Scope, input alert.SweepInput) (out alert.SweepOutput, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "alert.Sweep")
	span.SetAttributes(attribute.String("tenant_id", sc.TenantID))
	start := uc.clock()
	defer func() {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		uc.metrics.ObserveSweep(status, uc.clock().Sub(start))
		span.End()
	}()

	snap, err := uc.snapshots.Get(ctx, sc.TenantID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Sweep.Get: %v", err)
		return alert.SweepOutput{}, err
	}
	out.Snapshot = snap

	candidates := uc.Evaluate(ctx, snap)
	out.Admitted, err = uc.Admit(ctx, candidates, alert.AdmitInput{NotifyMinSeverity: input.NotifyMinSeverity})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Sweep.Admit: %v", err)
		return alert.SweepOutput{}, err
	}

	if n, err := uc.repo.Purge(ctx, repository.PurgeOptions{TenantID: sc.TenantID, Now: uc.clock()}); err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.Sweep.Purge: %v", err)
	} else if n > 0 {
		uc.l.Debugf(ctx, "internal.alert.usecase.Sweep.Purge: removed %d expired alerts", n)
	}

	out.Active, err = uc.List(ctx, sc)
	if err != nil {
		return alert.SweepOutput{}, err
	}
	out.Stats = computeStats(out.Active)

	span.SetAttributes(
		attribute.Int("admitted", len(out.Admitted)),
		attribute.Int("active", len(out.Active)),
	)
	return out, nil
}
