package redis

import "fmt"

func alertKey(tenantID, alertID string) string {
	return fmt.Sprintf("alert:%s:%s", tenantID, alertID)
}

// activeKey holds the id of the active alert of a rule.
func activeKey(tenantID, ruleID string) string {
	return fmt.Sprintf("alert:active:%s:%s", tenantID, ruleID)
}

// indexKey is the set of alert ids of a tenant.
func indexKey(tenantID string) string {
	return fmt.Sprintf("alerts:%s", tenantID)
}
