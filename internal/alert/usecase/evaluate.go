package usecase

import (
	"context"
	"fmt"
	"time"

	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

func (uc *implUseCase) Evaluate(ctx context.Context, snap model.BusinessSnapshot) []model.Alert {
	ctx, span := tracing.Tracer().Start(ctx, "alert.Evaluate")
	defer span.End()

	now := uc.clock()
	candidates := make([]model.Alert, 0)
	for _, r := range uc.catalog.Rules() {
		a, fired, err := uc.evaluateRule(r, snap, now)
		if err != nil {
			span.RecordError(err)
			uc.metrics.IncRuleError(r.ID)
			uc.l.Errorf(ctx, "internal.alert.usecase.Evaluate.evaluateRule: tenant=%s %v", snap.TenantID, err)
			continue
		}
		if fired {
			candidates = append(candidates, a)
		}
	}

	span.SetAttributes(attribute.Int("candidates", len(candidates)))
	return candidates
}

// evaluateRule runs one rule, turning a panic in its predicate or formatter into a RuleEvaluationError.
func (uc *implUseCase) evaluateRule(r model.AlertRule, snap model.BusinessSnapshot, now time.Time) (a model.Alert, fired bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			a, fired = model.Alert{}, false
			err = &alert.RuleEvaluationError{RuleID: r.ID, Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()

	if !r.Predicate(snap) {
		return model.Alert{}, false, nil
	}
	msg := r.Message(snap)

	actions := make([]model.AutomatedActionState, len(r.AutomatedActionIDs))
	for i, id := range r.AutomatedActionIDs {
		actions[i] = model.NewPendingAction(id)
	}

	return model.Alert{
		ID:                 uc.newID(),
		TenantID:           snap.TenantID,
		RuleID:             r.ID,
		Category:           r.Category,
		Severity:           r.Severity,
		Title:              r.Title,
		Message:            msg,
		SnapshotRef:        snap.Ref(),
		CreatedAt:          now,
		ExpiresAt:          now.Add(uc.ttl),
		Confidence:         r.Confidence,
		Impact:             impactFor(r.Severity),
		RecommendedActions: recommendationsFor(r.Category, r.Severity),
		AutomatedActions:   actions,
	}, true, nil
}
