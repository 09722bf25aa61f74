// Package handler holds the built-in automated actions.
package handler

import (
	"errors"
	"time"

	"alert-srv/internal/action"
	"alert-srv/internal/alert/rule"
	"alert-srv/internal/snapshot"
	"alert-srv/pkg/discord"
	pkgLog "alert-srv/pkg/log"
	"alert-srv/pkg/minio"
)

var (
	ErrDiscordUnavailable = errors.New("discord notifications are not configured")
	ErrStorageUnavailable = errors.New("report storage is not configured")
)

const defaultReportExpiry = 24 * time.Hour

// Deps are the collaborators of the built-in handlers. Discord and Storage may be nil;
// the handlers that need them then fail.
type Deps struct {
	L               pkgLog.Logger
	Snapshots       snapshot.UseCase
	Discord         discord.IDiscord
	Storage         minio.MinIO
	Bucket          string
	ReportURLExpiry time.Duration
}

type handlers struct {
	Deps
	clock func() time.Time
}

// Register adds every built-in action to reg.
func Register(reg *action.Registry, d Deps) error {
	if d.ReportURLExpiry <= 0 {
		d.ReportURLExpiry = defaultReportExpiry
	}
	h := &handlers{Deps: d, clock: time.Now}

	builtins := map[string]action.HandlerFunc{
		rule.ActionSendPaymentReminders:  h.sendPaymentReminders,
		rule.ActionContactAccountingTeam: h.notifyTeam(teamAccounting),
		rule.ActionPrepareCashFlowReport: h.prepareCashFlowReport,
		rule.ActionAnalyzeRevenueTrends:  h.analyzeRevenueTrends,
		rule.ActionNotifySalesTeam:       h.notifyTeam(teamSales),
		rule.ActionReassignResources:     h.reassignResources,
		rule.ActionNotifyProjectManagers: h.notifyTeam(teamProjectManagers),
		rule.ActionScheduleQuoteFollowUp: h.scheduleQuoteFollowUps,
		rule.ActionNotifyHRTeam:          h.notifyTeam(teamHR),
	}

	var errs []error
	for id, fn := range builtins {
		errs = append(errs, reg.Register(id, fn))
	}
	return errors.Join(errs...)
}
