package monitor

import (
	"context"
)

// Sink receives the events of one monitoring session.
// Send is called from the session loop and from action goroutines, so implementations must be safe
// for concurrent use. An error means the peer is gone and ends the session.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

//go:generate mockery --name UseCase
type UseCase interface {
	// Start begins periodic sweeps for a connection, replacing any session it already runs.
	Start(ctx context.Context, input StartInput) error
	// Stop cancels the session of a connection and waits for its loop to exit. Stopping an idle
	// connection is a no-op.
	Stop(ctx context.Context, connectionID string) error
	IsMonitoring(connectionID string) bool
	// NotifyTenant asks every session of the tenant to push fresh stats.
	NotifyTenant(ctx context.Context, tenantID string)
	Sessions() int
	// StopAll stops every session and waits for in-flight automated actions.
	StopAll(ctx context.Context) error
}
