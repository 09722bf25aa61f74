package model

// Roles carried in the access token.
const (
	RoleAdmin   = "ADMIN"
	RoleAnalyst = "ANALYST"
	RoleViewer  = "VIEWER"
)

// Scope is the authenticated caller. Every read and write is confined to TenantID.
type Scope struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CanExecuteActions reports whether the caller may run remediation actions.
// Viewers can read alerts and mark them read, nothing more.
func (s Scope) CanExecuteActions() bool {
	switch s.Role {
	case RoleAdmin, RoleAnalyst:
		return true
	}
	return false
}

// CanConfigure reports whether the caller may change the tenant's monitoring configuration.
func (s Scope) CanConfigure() bool {
	return s.CanExecuteActions()
}
