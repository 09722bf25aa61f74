package alert

import (
	"context"

	"alert-srv/internal/action"
	"alert-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Evaluate runs every rule of the catalog against snap and returns the candidate alerts in catalog order.
	Evaluate(ctx context.Context, snap model.BusinessSnapshot) []model.Alert
	// Admit stores the candidates that are not duplicates of an active alert and notifies them.
	Admit(ctx context.Context, candidates []model.Alert, input AdmitInput) ([]model.Alert, error)
	// Sweep takes a snapshot of the tenant, evaluates, admits and lists the active alerts.
	Sweep(ctx context.Context, sc model.Scope, input SweepInput) (SweepOutput, error)

	List(ctx context.Context, sc model.Scope) ([]model.Alert, error)
	Stats(ctx context.Context, sc model.Scope) (model.Stats, error)
	MarkRead(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error)
	MarkActioned(ctx context.Context, sc model.Scope, alertID string) (model.Alert, error)

	// ExecuteAction runs one automated action of an alert on demand.
	ExecuteAction(ctx context.Context, sc model.Scope, input ExecuteActionInput) (model.AutomatedActionState, error)
	// RunAutomatedActions runs the pending actions of alert concurrently, persisting every transition.
	RunAutomatedActions(ctx context.Context, sc model.Scope, alert model.Alert, hooks action.Hooks) []model.AutomatedActionState
}

// Notifier delivers an admitted alert to an external channel.
type Notifier interface {
	Deliver(ctx context.Context, alert model.Alert) model.DeliveryRecord
}

// Publisher broadcasts lifecycle events to every service instance.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
