package monitor

import (
	"time"

	"alert-srv/internal/model"
)

const (
	DefaultInterval         = 10 * time.Second
	DefaultMinInterval      = time.Second
	DefaultErrorEventWindow = time.Minute
)

type StartInput struct {
	ConnectionID string
	Scope        model.Scope
	// Interval overrides Config.IntervalMs when positive.
	Interval time.Duration
	Config   model.MonitoringConfig
	Sink     Sink
}
