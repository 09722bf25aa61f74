package snapshot

import (
	"errors"
	"fmt"
)

var ErrInvalidTenant = errors.New("invalid tenant id")

// SnapshotUnavailableError is returned when the business data of a tenant cannot be loaded.
type SnapshotUnavailableError struct {
	TenantID string
	Cause    error
}

func (e *SnapshotUnavailableError) Error() string {
	return fmt.Sprintf("snapshot unavailable for tenant %s: %v", e.TenantID, e.Cause)
}

func (e *SnapshotUnavailableError) Unwrap() error {
	return e.Cause
}
