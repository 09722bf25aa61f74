package monitor

import (
	"errors"
	"fmt"
)

var (
	ErrMissingConnection = errors.New("monitor: missing connection id")
	ErrMissingSink       = errors.New("monitor: missing sink")
	ErrMissingTenant     = errors.New("monitor: missing tenant")
)

// DeliveryError means an event could not reach the connection. It ends the session.
type DeliveryError struct {
	ConnectionID string
	Cause        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to connection %s: %v", e.ConnectionID, e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
