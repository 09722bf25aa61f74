package usecase

import (
	"context"
	"errors"

	"alert-srv/internal/action"
	"alert-srv/internal/alert"
	"alert-srv/internal/model"
)

func (uc *implUseCase) ExecuteAction(ctx context.Context, sc model.Scope, input alert.ExecuteActionInput) (model.AutomatedActionState, error) {
	if !sc.CanExecuteActions() {
		return model.AutomatedActionState{}, alert.ErrForbidden
	}
	if input.AlertID == "" || input.ActionID == "" {
		return model.AutomatedActionState{}, alert.ErrInvalidInput
	}

	// Once claimed, the action runs and is saved even if the caller goes away; otherwise
	// it would stay executing until the alert expires.
	actx := context.WithoutCancel(ctx)
	a, _, err := uc.claim(actx, sc.TenantID, input.AlertID, []string{input.ActionID}, true)
	if err != nil {
		return model.AutomatedActionState{}, err
	}

	states := uc.run(actx, a, []string{input.ActionID}, action.Hooks{})
	return states[0], nil
}

func (uc *implUseCase) RunAutomatedActions(ctx context.Context, sc model.Scope, a model.Alert, hooks action.Hooks) []model.AutomatedActionState {
	ids := a.PendingActionIDs()
	if len(ids) == 0 {
		return nil
	}

	claimed, ids, err := uc.claim(ctx, sc.TenantID, a.ID, ids, false)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.RunAutomatedActions.claim: alert=%s %v", a.ID, err)
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	return uc.run(ctx, claimed, ids, hooks)
}

// claim moves the pending actions ids of an alert to executing so no other caller runs them,
// and returns the ids it moved. With strict set, an action that is not pending is an error;
// otherwise it is skipped. Actions unknown to the alert are appended.
func (uc *implUseCase) claim(ctx context.Context, tenantID, alertID string, ids []string, strict bool) (model.Alert, []string, error) {
	var claimed []string
	a, err := uc.modify(ctx, tenantID, alertID, func(a *model.Alert) error {
		claimed = claimed[:0]
		now := uc.clock()
		for _, id := range ids {
			st, ok := a.Action(id)
			if !ok {
				a.AutomatedActions = append(a.AutomatedActions, model.NewPendingAction(id))
				st = &a.AutomatedActions[len(a.AutomatedActions)-1]
			}
			switch {
			case st.Status == model.ActionStatusPending:
				_ = st.Start(now)
				claimed = append(claimed, id)
			case !strict:
			case st.Status == model.ActionStatusExecuting:
				return alert.ErrActionInProgress
			default:
				return alert.ErrActionAlreadyFinished
			}
		}
		return nil
	})
	if err != nil {
		return model.Alert{}, nil, err
	}
	return a, claimed, nil
}

func (uc *implUseCase) run(ctx context.Context, a model.Alert, ids []string, hooks action.Hooks) []model.AutomatedActionState {
	ctx = context.WithoutCancel(ctx)
	wrapped := action.Hooks{
		OnStart: func(st model.AutomatedActionState) {
			if hooks.OnStart != nil {
				hooks.OnStart(st)
			}
		},
		OnFinish: func(st model.AutomatedActionState) {
			uc.saveAction(ctx, a.TenantID, a.ID, st)
			uc.publish(ctx, alert.Event{Type: alert.EventActionFinished, TenantID: a.TenantID, AlertID: a.ID, ActionID: st.ActionID})
			if hooks.OnFinish != nil {
				hooks.OnFinish(st)
			}
		},
	}
	return uc.actions.ExecuteAll(ctx, a, ids, wrapped)
}

// saveAction stores the final state of one action. The alert is marked actioned once every action completed.
func (uc *implUseCase) saveAction(ctx context.Context, tenantID, alertID string, st model.AutomatedActionState) {
	_, err := uc.modify(ctx, tenantID, alertID, func(a *model.Alert) error {
		cur, ok := a.Action(st.ActionID)
		if !ok {
			a.AutomatedActions = append(a.AutomatedActions, st)
		} else {
			*cur = st
		}
		if a.AllActionsCompleted() {
			a.IsActioned = true
		}
		return nil
	})
	switch {
	case errors.Is(err, alert.ErrAlertNotFound):
		uc.l.Warnf(ctx, "internal.alert.usecase.saveAction: alert %s expired before %s finished", alertID, st.ActionID)
	case err != nil:
		uc.l.Errorf(ctx, "internal.alert.usecase.saveAction.modify: alert=%s action=%s %v", alertID, st.ActionID, err)
	}
}
