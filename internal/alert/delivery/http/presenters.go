package http

import (
	"alert-srv/internal/alert"
	"alert-srv/internal/model"
	"alert-srv/pkg/paginator"
)

const (
	actionGetAlerts         = "get_alerts"
	actionMarkAsRead        = "mark_as_read"
	actionMarkAsActioned    = "mark_as_actioned"
	actionExecuteAction     = "execute_action"
	actionSaveConfiguration = "save_configuration"
	actionGetConfiguration  = "get_configuration"
)

// --- Request DTOs ---

type CommandReq struct {
	Action        string            `json:"action"`
	AlertID       string            `json:"alertId,omitempty"`
	ActionID      string            `json:"actionId,omitempty"`
	Configuration *ConfigurationDTO `json:"configuration,omitempty"`
	// Page and Limit optionally page the get_alerts result.
	paginator.PaginateQuery
}

func (r CommandReq) validate() error {
	switch r.Action {
	case "":
		return &alert.ProtocolError{Message: "missing action"}
	case actionMarkAsRead, actionMarkAsActioned:
		if r.AlertID == "" {
			return &alert.ProtocolError{Message: "alertId is required"}
		}
	case actionExecuteAction:
		if r.AlertID == "" || r.ActionID == "" {
			return &alert.ProtocolError{Message: "alertId and actionId are required"}
		}
	case actionSaveConfiguration:
		if r.Configuration == nil {
			return &alert.ProtocolError{Message: "configuration is required"}
		}
	case actionGetAlerts, actionGetConfiguration:
	default:
		return &alert.ProtocolError{Message: "unknown action: " + r.Action}
	}
	return nil
}

// ConfigurationDTO is the wire form of the monitoring settings.
type ConfigurationDTO struct {
	// Interval is the sweep period in milliseconds.
	Interval                int64    `json:"interval,omitempty"`
	AutomatedActionsEnabled bool     `json:"automatedActionsEnabled"`
	AutomatedCategories     []string `json:"automatedCategories,omitempty"`
	NotifyMinSeverity       string   `json:"notifyMinSeverity,omitempty"`
}

func (d *ConfigurationDTO) toModel() *model.MonitoringConfig {
	if d == nil {
		return nil
	}
	cats := make([]model.Category, len(d.AutomatedCategories))
	for i, c := range d.AutomatedCategories {
		cats[i] = model.Category(c)
	}
	return &model.MonitoringConfig{
		IntervalMs:              d.Interval,
		AutomatedActionsEnabled: d.AutomatedActionsEnabled,
		AutomatedCategories:     cats,
		NotifyMinSeverity:       model.Severity(d.NotifyMinSeverity),
	}
}

func newConfigurationDTO(cfg model.MonitoringConfig) ConfigurationDTO {
	cats := make([]string, len(cfg.AutomatedCategories))
	for i, c := range cfg.AutomatedCategories {
		cats[i] = string(c)
	}
	return ConfigurationDTO{
		Interval:                cfg.IntervalMs,
		AutomatedActionsEnabled: cfg.AutomatedActionsEnabled,
		AutomatedCategories:     cats,
		NotifyMinSeverity:       string(cfg.NotifyMinSeverity),
	}
}

// --- Response DTOs ---

type AlertsResp struct {
	Alerts    []model.Alert        `json:"alerts"`
	Stats     model.Stats          `json:"stats"`
	Paginator *paginator.Paginator `json:"paginator,omitempty"`
}

type AlertResp struct {
	Alert model.Alert `json:"alert"`
}

type ActionResp struct {
	AlertID string                     `json:"alertId"`
	Action  model.AutomatedActionState `json:"action"`
}

type ConfigurationResp struct {
	Configuration ConfigurationDTO `json:"configuration"`
}
