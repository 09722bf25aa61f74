package model

import "time"

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCancelled = "cancelled"

	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"

	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// BusinessSnapshot is a read-only view of one tenant's business data taken at TakenAt.
// It is built once per sweep and never mutated afterwards.
type BusinessSnapshot struct {
	TenantID  string           `json:"tenantId"`
	TakenAt   time.Time        `json:"takenAt"`
	Projects  []Project        `json:"projects"`
	Tasks     []Task           `json:"tasks"`
	Employees []Employee       `json:"employees"`
	Companies []Company        `json:"companies"`
	Quotes    []Quote          `json:"quotes"`
	Invoices  []Invoice        `json:"invoices"`
	Metrics   FinancialMetrics `json:"financialMetrics"`
}

// Ref identifies the snapshot an alert was derived from.
func (s BusinessSnapshot) Ref() string {
	return s.TenantID + "@" + s.TakenAt.UTC().Format(time.RFC3339)
}

// FinancialMetrics are derived from invoices and quotes when the snapshot is built.
type FinancialMetrics struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	PendingRevenue float64 `json:"pendingRevenue"`
	// ConversionRate is the percentage of decided quotes that were accepted.
	ConversionRate float64 `json:"conversionRate"`
	// GrowthRate is the percentage change of paid revenue over the last 30 days
	// against the 30 days before.
	GrowthRate float64 `json:"growthRate"`
}

type Project struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	CompanyID string     `json:"companyId,omitempty"`
}

// IsLate reports whether an active project is past its deadline at now.
func (p Project) IsLate(now time.Time) bool {
	return p.Status == ProjectStatusActive && p.Deadline != nil && p.Deadline.Before(now)
}

type Task struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"projectId"`
	AssigneeID string     `json:"assigneeId,omitempty"`
	Status     string     `json:"status"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Active     bool   `json:"active"`
}

type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Quote struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Invoice struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"companyId"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	IssuedAt  time.Time  `json:"issuedAt"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// IsOverdue reports whether an unpaid invoice is past its due date at now.
func (i Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoiceStatusPaid {
		return false
	}
	if i.Status == InvoiceStatusOverdue {
		return true
	}
	return i.DueDate != nil && i.DueDate.Before(now)
}
