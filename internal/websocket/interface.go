package websocket

import (
	"context"
)

// UseCase manages the live connections that carry monitoring sessions.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Lifecycle
	Run()
	Shutdown(ctx context.Context) error

	// Admit checks the hub capacity and the per-user limits before a connection is upgraded.
	Admit(ctx context.Context, input AdmitInput) error
	// Register takes ownership of an upgraded connection and starts its pumps.
	Register(ctx context.Context, input ConnectionInput) error

	GetStats(ctx context.Context) (HubStats, error)
}
