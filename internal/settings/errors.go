package settings

import "errors"

var (
	ErrForbidden        = errors.New("settings: forbidden")
	ErrMissingTenant    = errors.New("settings: missing tenant")
	ErrIntervalTooShort = errors.New("settings: interval below minimum")
	ErrInvalidCategory  = errors.New("settings: invalid category")
	ErrInvalidSeverity  = errors.New("settings: invalid notify severity")
)
