package usecase

import (
	"context"
	"errors"

	"alert-srv/internal/alert"
	"alert-srv/internal/model"
)

func (uc *implUseCase) Admit(ctx context.Context, candidates []model.Alert, input alert.AdmitInput) ([]model.Alert, error) {
	admitted := make([]model.Alert, 0, len(candidates))
	var errs []error

	for _, c := range candidates {
		ok, err := uc.repo.InsertIfAbsent(ctx, c)
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.Admit.InsertIfAbsent: rule=%s %v", c.RuleID, err)
			errs = append(errs, err)
			continue
		}
		if !ok {
			uc.metrics.IncAlertSuppressed(c.RuleID)
			continue
		}
		uc.metrics.IncAlertAdmitted(string(c.Category), string(c.Severity))

		if uc.shouldNotify(c, input.NotifyMinSeverity) {
			c = uc.notify(ctx, c)
		}
		admitted = append(admitted, c)
	}

	return admitted, errors.Join(errs...)
}

func (uc *implUseCase) shouldNotify(a model.Alert, min model.Severity) bool {
	return uc.notifier != nil && a.Severity.AtLeast(min)
}

// notify delivers a and records the outcome on the stored alert.
func (uc *implUseCase) notify(ctx context.Context, a model.Alert) model.Alert {
	rec := uc.notifier.Deliver(ctx, a)
	uc.metrics.IncDelivery(rec.Channel, rec.Success)

	stored, err := uc.modify(ctx, a.TenantID, a.ID, func(s *model.Alert) error {
		s.Deliveries = append(s.Deliveries, rec)
		return nil
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.notify.modify: %v", err)
		a.Deliveries = append(a.Deliveries, rec)
		return a
	}
	return stored
}
