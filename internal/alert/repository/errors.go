package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports an update based on a version that is no longer stored.
	ErrConflict = errors.New("version conflict")
)
