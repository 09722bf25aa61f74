package alert

import (
	"time"

	"alert-srv/internal/model"
)

// AdmitInput tunes notification of admitted alerts.
type AdmitInput struct {
	// NotifyMinSeverity is the lowest severity delivered to the notifier. Empty or "none" disables delivery.
	NotifyMinSeverity model.Severity
}

type SweepInput struct {
	NotifyMinSeverity model.Severity
}

type SweepOutput struct {
	Snapshot model.BusinessSnapshot
	// Admitted are the alerts created by this sweep, in catalog order.
	Admitted []model.Alert
	// Active are every unexpired alert of the tenant, in catalog order.
	Active []model.Alert
	Stats  model.Stats
}

type ExecuteActionInput struct {
	AlertID  string
	ActionID string
}

type EventType string

const (
	EventAlertRead      EventType = "alert_read"
	EventAlertActioned  EventType = "alert_actioned"
	EventActionFinished EventType = "action_finished"
)

// Event is a lifecycle change published on alert:events:{tenant}.
type Event struct {
	Type      EventType `json:"type"`
	TenantID  string    `json:"tenantId"`
	AlertID   string    `json:"alertId"`
	ActionID  string    `json:"actionId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
