package model

import (
	"errors"
	"fmt"
	"time"
)

type ActionStatus string

const (
	ActionStatusPending   ActionStatus = "pending"
	ActionStatusExecuting ActionStatus = "executing"
	ActionStatusCompleted ActionStatus = "completed"
	ActionStatusFailed    ActionStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed.
func (s ActionStatus) IsTerminal() bool {
	return s == ActionStatusCompleted || s == ActionStatusFailed
}

// ErrInvalidTransition is returned when an action state change is not allowed.
var ErrInvalidTransition = errors.New("invalid action state transition")

// AutomatedActionState tracks one remediation action of an alert.
// Transitions are pending -> executing -> completed|failed.
type AutomatedActionState struct {
	ActionID    string       `json:"actionId"`
	Status      ActionStatus `json:"status"`
	StartedAt   *time.Time   `json:"startedAt,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Result      interface{}  `json:"result,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// NewPendingAction returns a fresh state for actionID.
func NewPendingAction(actionID string) AutomatedActionState {
	return AutomatedActionState{ActionID: actionID, Status: ActionStatusPending}
}

func (s *AutomatedActionState) transition(from, to ActionStatus) error {
	if s.Status != from {
		return fmt.Errorf("%w: %s %s -> %s", ErrInvalidTransition, s.ActionID, s.Status, to)
	}
	s.Status = to
	return nil
}

// Start moves a pending action to executing.
func (s *AutomatedActionState) Start(now time.Time) error {
	if err := s.transition(ActionStatusPending, ActionStatusExecuting); err != nil {
		return err
	}
	s.StartedAt = &now
	return nil
}

// Complete moves an executing action to completed with result.
func (s *AutomatedActionState) Complete(now time.Time, result interface{}) error {
	if err := s.transition(ActionStatusExecuting, ActionStatusCompleted); err != nil {
		return err
	}
	s.CompletedAt = &now
	s.Result = result
	return nil
}

// Fail moves an executing action to failed with the error message.
// A pending action may fail directly when it cannot be started at all.
func (s *AutomatedActionState) Fail(now time.Time, msg string) error {
	if s.Status == ActionStatusPending {
		s.Status = ActionStatusExecuting
	}
	if err := s.transition(ActionStatusExecuting, ActionStatusFailed); err != nil {
		return err
	}
	if s.StartedAt == nil {
		s.StartedAt = &now
	}
	s.CompletedAt = &now
	s.Error = msg
	return nil
}
