package usecase

import (
	"context"
	"fmt"

	"alert-srv/internal/action"
	"alert-srv/internal/model"
	"alert-srv/pkg/metrics"
	"alert-srv/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

func (uc *implUseCase) Execute(ctx context.Context, alert model.Alert, actionID string) model.AutomatedActionState {
	return uc.execute(ctx, alert, actionID, action.Hooks{})
}

func (uc *implUseCase) ExecuteAll(ctx context.Context, alert model.Alert, actionIDs []string, hooks action.Hooks) []model.AutomatedActionState {
	states := make([]model.AutomatedActionState, len(actionIDs))

	var g errgroup.Group
	for i, id := range actionIDs {
		g.Go(func() error {
			states[i] = uc.execute(ctx, alert, id, hooks)
			return nil
		})
	}
	_ = g.Wait()

	return states
}

func (uc *implUseCase) execute(ctx context.Context, alert model.Alert, actionID string, hooks action.Hooks) model.AutomatedActionState {
	state := model.NewPendingAction(actionID)

	h, ok := uc.registry.Lookup(actionID)
	if !ok {
		err := &action.UnknownActionError{ActionID: actionID}
		uc.l.Warnf(ctx, "internal.action.usecase.execute.Lookup: alert=%s %v", alert.ID, err)
		_ = state.Fail(uc.clock(), err.Error())
		uc.metrics.ObserveAction(actionID, metrics.StatusError, 0)
		finish(hooks, state)
		return state
	}

	ctx, span := tracing.Tracer().Start(ctx, "action.Execute")
	span.SetAttributes(
		attribute.String("action_id", actionID),
		attribute.String("alert_id", alert.ID),
	)
	defer span.End()

	startedAt := uc.clock()
	_ = state.Start(startedAt)
	if hooks.OnStart != nil {
		hooks.OnStart(state)
	}

	result, err := run(ctx, h, alert, actionID)
	finishedAt := uc.clock()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.l.Warnf(ctx, "internal.action.usecase.execute.Handle: alert=%s %v", alert.ID, err)
		_ = state.Fail(finishedAt, err.Error())
		uc.metrics.ObserveAction(actionID, metrics.StatusError, finishedAt.Sub(startedAt))
	} else {
		_ = state.Complete(finishedAt, result)
		uc.metrics.ObserveAction(actionID, metrics.StatusSuccess, finishedAt.Sub(startedAt))
	}

	finish(hooks, state)
	return state
}

func run(ctx context.Context, h action.Handler, alert model.Alert, actionID string) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &action.ActionExecutionError{ActionID: actionID, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	result, err = h.Handle(ctx, alert)
	if err != nil {
		return nil, &action.ActionExecutionError{ActionID: actionID, Cause: err}
	}
	return result, nil
}

func finish(hooks action.Hooks, state model.AutomatedActionState) {
	if hooks.OnFinish != nil {
		hooks.OnFinish(state)
	}
}
