package monitor

import (
	"time"

	"alert-srv/internal/model"
)

type MessageType string

const (
	MessageConnectionEstablished    MessageType = "connection_established"
	MessageNewAlert                 MessageType = "new_alert"
	MessageAutomatedActionStarted   MessageType = "automated_action_started"
	MessageAutomatedActionCompleted MessageType = "automated_action_completed"
	MessageAutomatedActionFailed    MessageType = "automated_action_failed"
	MessageStatsUpdate              MessageType = "stats_update"
	MessageMonitoringStarted        MessageType = "monitoring_started"
	MessageMonitoringStopped        MessageType = "monitoring_stopped"
	MessagePong                     MessageType = "pong"
	MessageError                    MessageType = "error"
)

// Message is one server to client event. Only the fields of its type are set.
type Message struct {
	Type       MessageType                 `json:"type"`
	Message    string                      `json:"message,omitempty"`
	Alert      *model.Alert                `json:"alert,omitempty"`
	AlertID    string                      `json:"alertId,omitempty"`
	Action     *model.AutomatedActionState `json:"action,omitempty"`
	Stats      *model.Stats                `json:"stats,omitempty"`
	Status     string                      `json:"status,omitempty"`
	Monitoring *bool                       `json:"monitoring,omitempty"`
	Error      string                      `json:"error,omitempty"`
	Timestamp  time.Time                   `json:"timestamp"`
}

func NewInfoMessage(t MessageType, text string, now time.Time) Message {
	return Message{Type: t, Message: text, Timestamp: now}
}

func NewAlertMessage(a model.Alert, now time.Time) Message {
	return Message{Type: MessageNewAlert, Alert: &a, Timestamp: now}
}

// NewActionMessage reports an action state; a terminal state picks the completed or failed type.
func NewActionMessage(alertID string, st model.AutomatedActionState, now time.Time) Message {
	t := MessageAutomatedActionStarted
	switch st.Status {
	case model.ActionStatusCompleted:
		t = MessageAutomatedActionCompleted
	case model.ActionStatusFailed:
		t = MessageAutomatedActionFailed
	}
	return Message{Type: t, AlertID: alertID, Action: &st, Timestamp: now}
}

func NewStatsMessage(s model.Stats, now time.Time) Message {
	return Message{Type: MessageStatsUpdate, Stats: &s, Timestamp: now}
}

func NewPongMessage(monitoring bool, now time.Time) Message {
	return Message{Type: MessagePong, Status: "ok", Monitoring: &monitoring, Timestamp: now}
}

// NewErrorMessage builds an error event. code is a short machine readable reason, never a stack trace.
func NewErrorMessage(text, code string, now time.Time) Message {
	return Message{Type: MessageError, Message: text, Error: code, Timestamp: now}
}
