package repository

import (
	"time"

	"alert-srv/internal/model"
)

type ListOptions struct {
	TenantID string
	Now      time.Time
}

type UpdateOptions struct {
	Alert model.Alert
	Now   time.Time
}

type PurgeOptions struct {
	TenantID string
	Now      time.Time
}
