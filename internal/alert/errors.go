package alert

import (
	"errors"
	"fmt"
)

var (
	ErrAlertNotFound         = errors.New("alert not found")
	ErrActionInProgress      = errors.New("action is already executing")
	ErrActionAlreadyFinished = errors.New("action already finished")
	ErrForbidden             = errors.New("not allowed to execute actions")
	ErrInvalidInput          = errors.New("invalid alert input")
	ErrConcurrentUpdate      = errors.New("alert kept changing during the update")
)

// RuleEvaluationError wraps a predicate or formatter failure of one rule.
type RuleEvaluationError struct {
	RuleID string
	Cause  error
}

func (e *RuleEvaluationError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Cause)
}

func (e *RuleEvaluationError) Unwrap() error {
	return e.Cause
}

// ProtocolError is a malformed or unknown client command.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}
