package websocket

import (
	"time"

	"alert-srv/internal/model"

	"github.com/gorilla/websocket"
)

// --- Client Message Types ---
type ClientMessageType string

const (
	ClientStartMonitoring ClientMessageType = "start_monitoring"
	ClientStopMonitoring  ClientMessageType = "stop_monitoring"
	ClientPing            ClientMessageType = "ping"
)

// ClientMessage is one client to server frame.
type ClientMessage struct {
	Type ClientMessageType `json:"type"`
	// Interval is the sweep period in milliseconds.
	Interval      int64                 `json:"interval,omitempty"`
	Configuration *ConfigurationPayload `json:"configuration,omitempty"`
}

// ConfigurationPayload overrides the tenant settings for one session.
type ConfigurationPayload struct {
	Interval                int64    `json:"interval,omitempty"`
	AutomatedActionsEnabled bool     `json:"automatedActionsEnabled"`
	AutomatedCategories     []string `json:"automatedCategories,omitempty"`
	NotifyMinSeverity       string   `json:"notifyMinSeverity,omitempty"`
}

// --- Configuration ---

type Config struct {
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	SendBufferSize int
	MaxConnections int

	MaxConnectionsPerUser int
	// ConnectionRateLimit is the number of new connections a user may open per RateLimitWindow.
	ConnectionRateLimit int
	RateLimitWindow     time.Duration
}

// --- UseCase Inputs ---

type AdmitInput struct {
	Scope model.Scope
}

// ConnectionInput represents an upgraded connection.
type ConnectionInput struct {
	Scope model.Scope
	Conn  *websocket.Conn
}

// --- UseCase Outputs ---

type HubStats struct {
	ActiveConnections  int   `json:"activeConnections"`
	TotalTenants       int   `json:"totalTenants"`
	MonitoringSessions int   `json:"monitoringSessions"`
	MessagesSent       int64 `json:"messagesSent"`
	MessagesFailed     int64 `json:"messagesFailed"`
}
