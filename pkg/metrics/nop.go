package metrics

import (
	"net/http"
	"time"
)

// NopCollector discards every measurement.
type NopCollector struct{}

func NewNop() NopCollector { return NopCollector{} }

func (NopCollector) ObserveSweep(string, time.Duration) {}
func (NopCollector) IncRuleError(string) {}
func (NopCollector) IncAlertAdmitted(string, string) {}
func (NopCollector) IncAlertSuppressed(string) {}
func (NopCollector) ObserveAction(string, string, time.Duration) {}
func (NopCollector) IncDelivery(string, bool) {}
func (NopCollector) SetActiveSessions(int) {}
func (NopCollector) SetConnections(int) {}

func (NopCollector) Handler() http.Handler {
	return http.NotFoundHandler()
}
