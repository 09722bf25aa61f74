package metrics

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusCollector implements Collector on its own registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	sweepDuration    *prometheus.HistogramVec
	ruleErrors       *prometheus.CounterVec
	alertsAdmitted   *prometheus.CounterVec
	alertsSuppressed *prometheus.CounterVec
	actionDuration   *prometheus.HistogramVec
	deliveries       *prometheus.CounterVec
	activeSessions   prometheus.Gauge
	connections      prometheus.Gauge
}

// NewPrometheusCollector registers the service metrics plus the Go runtime collectors.
func NewPrometheusCollector() (*PrometheusCollector, error) {
	registry := prometheus.NewRegistry()

	c := &PrometheusCollector{
		registry: registry,
		sweepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of one monitoring sweep",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"status"}),
		ruleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_errors_total",
			Help:      "Rules whose predicate or formatter failed",
		}, []string{"rule"}),
		alertsAdmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_admitted_total",
			Help:      "Alerts admitted by the lifecycle manager",
		}, []string{"category", "severity"}),
		alertsSuppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_suppressed_total",
			Help:      "Candidate alerts dropped as duplicates of an active alert",
		}, []string{"rule"}),
		actionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Duration of automated action executions",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 60},
		}, []string{"action", "status"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Alert notifications sent to external channels",
		}, []string{"channel", "status"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "monitoring_sessions",
			Help:      "Monitoring sessions currently running",
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Open websocket connections",
		}),
	}

	toRegister := []prometheus.Collector{
		c.sweepDuration, c.ruleErrors, c.alertsAdmitted, c.alertsSuppressed,
		c.actionDuration, c.deliveries, c.activeSessions, c.connections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, col := range toRegister {
		if err := registry.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return c, nil
}

// sanitizeLabel replaces control characters and caps the length in runes.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

func statusLabel(success bool) string {
	if success {
		return StatusSuccess
	}
	return StatusError
}

func (c *PrometheusCollector) ObserveSweep(status string, d time.Duration) {
	c.sweepDuration.WithLabelValues(sanitizeLabel(status)).Observe(d.Seconds())
}

func (c *PrometheusCollector) IncRuleError(ruleID string) {
	c.ruleErrors.WithLabelValues(sanitizeLabel(ruleID)).Inc()
}

func (c *PrometheusCollector) IncAlertAdmitted(category, severity string) {
	c.alertsAdmitted.WithLabelValues(sanitizeLabel(category), sanitizeLabel(severity)).Inc()
}

func (c *PrometheusCollector) IncAlertSuppressed(ruleID string) {
	c.alertsSuppressed.WithLabelValues(sanitizeLabel(ruleID)).Inc()
}

func (c *PrometheusCollector) ObserveAction(actionID, status string, d time.Duration) {
	c.actionDuration.WithLabelValues(sanitizeLabel(actionID), sanitizeLabel(status)).Observe(d.Seconds())
}

func (c *PrometheusCollector) IncDelivery(channel string, success bool) {
	c.deliveries.WithLabelValues(sanitizeLabel(channel), statusLabel(success)).Inc()
}

func (c *PrometheusCollector) SetActiveSessions(n int) {
	c.activeSessions.Set(float64(n))
}

func (c *PrometheusCollector) SetConnections(n int) {
	c.connections.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// GetRegistry returns the underlying registry.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}
