package metrics

import (
	"net/http"
	"time"
)

// Recorder receives the alert engine's operational measurements.
type Recorder interface {
	ObserveSweep(status string, d time.Duration)
	IncRuleError(ruleID string)
	IncAlertAdmitted(category, severity string)
	IncAlertSuppressed(ruleID string)
	ObserveAction(actionID, status string, d time.Duration)
	IncDelivery(channel string, success bool)
	SetActiveSessions(n int)
	SetConnections(n int)
}

// Collector is a Recorder that can also expose its registry over HTTP.
type Collector interface {
	Recorder
	Handler() http.Handler
}
