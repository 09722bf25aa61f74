package settings

import (
	"time"

	"alert-srv/internal/model"
)

// Defaults are the service-wide monitoring settings used when a tenant has saved none.
type Defaults struct {
	Interval                time.Duration
	MinInterval             time.Duration
	AutomatedActionsEnabled bool
	NotifyMinSeverity       model.Severity
}

// SeverityNone disables external notification.
const SeverityNone model.Severity = "none"
