package model

// AlertRule is a static, named check over a snapshot.
// Rules are loaded once at startup and never mutated.
type AlertRule struct {
	ID                 string
	Category           Category
	Severity           Severity
	Title              string
	Predicate          func(BusinessSnapshot) bool
	Message            func(BusinessSnapshot) string
	Confidence         float64
	AutomatedActionIDs []string
}
