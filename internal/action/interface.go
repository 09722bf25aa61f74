package action

import (
	"context"

	"alert-srv/internal/model"
)

// Handler runs one automated remediation action for an alert.
// The returned result is stored on the action state and must be JSON serializable.
type Handler interface {
	Handle(ctx context.Context, alert model.Alert) (interface{}, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, alert model.Alert) (interface{}, error)

func (f HandlerFunc) Handle(ctx context.Context, alert model.Alert) (interface{}, error) {
	return f(ctx, alert)
}

// Hooks are called around each action of ExecuteAll. Either may be nil.
type Hooks struct {
	OnStart  func(state model.AutomatedActionState)
	OnFinish func(state model.AutomatedActionState)
}

//go:generate mockery --name UseCase
type UseCase interface {
	// Execute runs actionID for alert and returns its final state. It never returns an error:
	// unknown ids, handler errors and panics all end in a failed state.
	Execute(ctx context.Context, alert model.Alert, actionID string) model.AutomatedActionState
	// ExecuteAll runs actionIDs concurrently and returns their final states in input order.
	ExecuteAll(ctx context.Context, alert model.Alert, actionIDs []string, hooks Hooks) []model.AutomatedActionState
}
