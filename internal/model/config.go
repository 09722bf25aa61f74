package model

// MonitoringConfig is the per-tenant default for monitoring sessions.
type MonitoringConfig struct {
	IntervalMs              int64      `json:"intervalMs,omitempty"`
	AutomatedActionsEnabled bool       `json:"automatedActionsEnabled"`
	AutomatedCategories     []Category `json:"automatedCategories,omitempty"`
	NotifyMinSeverity       Severity   `json:"notifyMinSeverity,omitempty"`
}

// AutomatesCategory reports whether automated actions run for alerts of c.
// An empty category list means every category.
func (c MonitoringConfig) AutomatesCategory(cat Category) bool {
	if !c.AutomatedActionsEnabled {
		return false
	}
	if len(c.AutomatedCategories) == 0 {
		return true
	}
	for _, x := range c.AutomatedCategories {
		if x == cat {
			return true
		}
	}
	return false
}
