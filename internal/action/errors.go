package action

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateAction = errors.New("action already registered")
	ErrEmptyActionID   = errors.New("action id is required")
	ErrNilHandler      = errors.New("action handler is nil")
)

// UnknownActionError is reported when no handler is registered for ActionID.
type UnknownActionError struct {
	ActionID string
}

func (e *UnknownActionError) Error() string {
	return "action not found: " + e.ActionID
}

// ActionExecutionError wraps a handler failure or panic.
type ActionExecutionError struct {
	ActionID string
	Cause    error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action %s failed: %v", e.ActionID, e.Cause)
}

func (e *ActionExecutionError) Unwrap() error {
	return e.Cause
}
