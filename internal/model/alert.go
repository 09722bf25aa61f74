package model

import "time"

type Category string

const (
	CategoryFinancial   Category = "financial"
	CategoryOperational Category = "operational"
	CategoryCommercial  Category = "commercial"
	CategoryHR          Category = "hr"
	CategoryStrategic   Category = "strategic"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryFinancial, CategoryOperational, CategoryCommercial, CategoryHR, CategoryStrategic}

func (c Category) IsValid() bool {
	switch c {
	case CategoryFinancial, CategoryOperational, CategoryCommercial, CategoryHR, CategoryStrategic:
		return true
	}
	return false
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank orders severities, higher is more urgent. Unknown severities rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

func (s Severity) IsValid() bool {
	return s.Rank() > 0
}

// AtLeast reports whether s is as urgent as min.
func (s Severity) AtLeast(min Severity) bool {
	return min.Rank() > 0 && s.Rank() >= min.Rank()
}

// Alert is one synthesized alert for a tenant.
type Alert struct {
	ID                 string                 `json:"id"`
	TenantID           string                 `json:"tenantId"`
	RuleID             string                 `json:"ruleId"`
	Category           Category               `json:"category"`
	Severity           Severity               `json:"severity"`
	Title              string                 `json:"title"`
	Message            string                 `json:"message"`
	SnapshotRef        string                 `json:"snapshotRef"`
	CreatedAt          time.Time              `json:"createdAt"`
	ExpiresAt          time.Time              `json:"expiresAt"`
	IsRead             bool                   `json:"isRead"`
	IsActioned         bool                   `json:"isActioned"`
	Confidence         float64                `json:"confidence"`
	Impact             string                 `json:"impact"`
	RecommendedActions []RecommendedAction    `json:"recommendedActions"`
	AutomatedActions   []AutomatedActionState `json:"automatedActions"`
	Deliveries         []DeliveryRecord       `json:"deliveries,omitempty"`
	// Version is bumped by the store on every update. An update carrying a stale version is rejected.
	Version int64 `json:"version"`
}

// IsExpired reports whether the alert is dead at now.
func (a Alert) IsExpired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// IsActive reports whether the alert still suppresses new alerts of its rule.
func (a Alert) IsActive(now time.Time) bool {
	return !a.IsRead && !a.IsExpired(now)
}

// Action returns the state of actionID on the alert.
func (a *Alert) Action(actionID string) (*AutomatedActionState, bool) {
	for i := range a.AutomatedActions {
		if a.AutomatedActions[i].ActionID == actionID {
			return &a.AutomatedActions[i], true
		}
	}
	return nil, false
}

// PendingActionIDs lists the actions that have not started yet.
func (a Alert) PendingActionIDs() []string {
	var ids []string
	for _, s := range a.AutomatedActions {
		if s.Status == ActionStatusPending {
			ids = append(ids, s.ActionID)
		}
	}
	return ids
}

// AllActionsCompleted reports whether the alert has actions and all of them completed.
func (a Alert) AllActionsCompleted() bool {
	if len(a.AutomatedActions) == 0 {
		return false
	}
	for _, s := range a.AutomatedActions {
		if s.Status != ActionStatusCompleted {
			return false
		}
	}
	return true
}

// RecommendedAction is an informational next step attached to an alert.
type RecommendedAction struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Priority        string `json:"priority"`
	TargetModule    string `json:"targetModule"`
	EstimatedImpact string `json:"estimatedImpact"`
}

// DeliveryRecord is the outcome of notifying an external channel about an alert.
type DeliveryRecord struct {
	Channel string    `json:"channel"`
	Target  string    `json:"target,omitempty"`
	SentAt  time.Time `json:"sentAt"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// Stats summarizes the active alerts of a tenant.
type Stats struct {
	TotalAlerts               int `json:"totalAlerts"`
	CriticalAlerts            int `json:"criticalAlerts"`
	HighAlerts                int `json:"highAlerts"`
	MediumAlerts              int `json:"mediumAlerts"`
	LowAlerts                 int `json:"lowAlerts"`
	ResolvedAlerts            int `json:"resolvedAlerts"`
	UnreadAlerts              int `json:"unreadAlerts"`
	AutomatedActionsCompleted int `json:"automatedActionsCompleted"`
	NotificationsSent         int `json:"notificationsSent"`
}
