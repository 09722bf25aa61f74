package rule

import (
	"errors"
	"strings"
	"testing"
	"time"

	"alert-srv/internal/model"
)

var takenAt = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := takenAt.AddDate(0, 0, -n)
	return &t
}

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	if err := Validate(c, nil); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	if c.Len() != 10 {
		t.Errorf("expected 10 rules, got %d", c.Len())
	}

	covered := make(map[model.Category]bool)
	for _, r := range c.Rules() {
		covered[r.Category] = true
	}
	for _, cat := range model.Categories {
		if !covered[cat] {
			t.Errorf("category %s has no rule", cat)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := func(model.BusinessSnapshot) bool { return true }
	msg := func(model.BusinessSnapshot) string { return "" }
	good := model.AlertRule{ID: "a", Category: model.CategoryFinancial, Severity: model.SeverityLow, Title: "A", Predicate: ok, Message: msg, Confidence: 0.5}

	tests := []struct {
		name      string
		rules     []model.AlertRule
		hasAction func(string) bool
		want      error
	}{
		{
			name:  "valid",
			rules: []model.AlertRule{good},
		},
		{
			name:  "duplicate id",
			rules: []model.AlertRule{good, good},
			want:  ErrDuplicateRule,
		},
		{
			name: "confidence out of range",
			rules: []model.AlertRule{func() model.AlertRule {
				r := good
				r.Confidence = 1.2
				return r
			}()},
			want: ErrInvalidRule,
		},
		{
			name: "unknown category",
			rules: []model.AlertRule{func() model.AlertRule {
				r := good
				r.Category = "legal"
				return r
			}()},
			want: ErrInvalidRule,
		},
		{
			name: "unregistered action",
			rules: []model.AlertRule{func() model.AlertRule {
				r := good
				r.AutomatedActionIDs = []string{"launch_rocket"}
				return r
			}()},
			hasAction: func(id string) bool { return id == ActionSendPaymentReminders },
			want:      ErrUnregisteredAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(NewCatalog(tt.rules), tt.hasAction)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCriticalCashFlow(t *testing.T) {
	r, ok := Default().Get(CriticalCashFlow)
	if !ok {
		t.Fatal("critical_cash_flow missing")
	}

	s := model.BusinessSnapshot{TakenAt: takenAt, Metrics: model.FinancialMetrics{PendingRevenue: 500000, TotalRevenue: 10000000}}
	if !r.Predicate(s) {
		t.Fatal("expected rule to fire for 500,000 < 1,000,000")
	}
	if r.Severity != model.SeverityCritical || r.Confidence != 0.95 || r.Title != "Crise de Trésorerie Imminente" {
		t.Errorf("unexpected rule metadata: %+v", r)
	}
	want := []string{ActionSendPaymentReminders, ActionContactAccountingTeam, ActionPrepareCashFlowReport}
	if strings.Join(r.AutomatedActionIDs, ",") != strings.Join(want, ",") {
		t.Errorf("actions = %v, want %v", r.AutomatedActionIDs, want)
	}

	s.Metrics.PendingRevenue = 2000000
	if r.Predicate(s) {
		t.Error("rule should not fire when pending revenue is 20%")
	}
	if r.Predicate(model.BusinessSnapshot{}) {
		t.Error("rule should not fire without revenue")
	}
}

func TestRevenueDeclineMessage(t *testing.T) {
	r, _ := Default().Get(RevenueDecline)
	s := model.BusinessSnapshot{Metrics: model.FinancialMetrics{GrowthRate: -25}}

	if !r.Predicate(s) {
		t.Fatal("expected rule to fire for -25")
	}
	if got := r.Message(s); !strings.Contains(got, "25.0") || strings.Contains(got, "-25") {
		t.Errorf("message should embed the absolute value with one decimal, got %q", got)
	}

	s.Metrics.GrowthRate = -20
	if r.Predicate(s) {
		t.Error("-20 is not below the threshold")
	}
}

func TestRulePredicates(t *testing.T) {
	late := model.Project{Status: model.ProjectStatusActive, Deadline: daysAgo(3)}
	overdue := model.Invoice{Status: model.InvoiceStatusPending, Amount: 100, DueDate: daysAgo(10), CompanyID: "c1"}

	tests := []struct {
		rule string
		snap model.BusinessSnapshot
		want bool
	}{
		{OverdueInvoices, model.BusinessSnapshot{Invoices: []model.Invoice{overdue, overdue, overdue, overdue, overdue}}, true},
		{OverdueInvoices, model.BusinessSnapshot{Invoices: []model.Invoice{overdue, overdue}}, false},
		{ProjectDelays, model.BusinessSnapshot{Projects: []model.Project{late, late, late}}, true},
		{ProjectDelays, model.BusinessSnapshot{Projects: []model.Project{late, {Status: model.ProjectStatusCompleted, Deadline: daysAgo(3)}}}, false},
		{ResourceOverload, model.BusinessSnapshot{
			Employees: []model.Employee{{Active: true}},
			Tasks:     repeatTasks(9, model.TaskStatusInProgress),
		}, true},
		{ResourceOverload, model.BusinessSnapshot{Tasks: repeatTasks(9, model.TaskStatusInProgress)}, false},
		{LowConversionRate, model.BusinessSnapshot{
			Quotes:  repeatQuotes(5, model.QuoteStatusRejected, takenAt),
			Metrics: model.FinancialMetrics{ConversionRate: 0},
		}, true},
		{LowConversionRate, model.BusinessSnapshot{
			Quotes:  repeatQuotes(4, model.QuoteStatusRejected, takenAt),
			Metrics: model.FinancialMetrics{ConversionRate: 0},
		}, false},
		{PendingQuotesBacklog, model.BusinessSnapshot{Quotes: repeatQuotes(10, model.QuoteStatusSent, takenAt.AddDate(0, 0, -8))}, true},
		{PendingQuotesBacklog, model.BusinessSnapshot{Quotes: repeatQuotes(10, model.QuoteStatusSent, takenAt.AddDate(0, 0, -2))}, false},
		{EmployeeShortage, model.BusinessSnapshot{
			Employees: []model.Employee{{Active: true}},
			Projects:  []model.Project{{Status: model.ProjectStatusActive}, {Status: model.ProjectStatusActive}, {Status: model.ProjectStatusActive}},
		}, true},
		{ClientConcentration, model.BusinessSnapshot{
			Invoices: []model.Invoice{{CompanyID: "c1", Amount: 80}, {CompanyID: "c2", Amount: 20}},
			Metrics:  model.FinancialMetrics{TotalRevenue: 100},
		}, true},
		{ClientConcentration, model.BusinessSnapshot{
			Invoices: []model.Invoice{{CompanyID: "c1", Amount: 50}, {CompanyID: "c2", Amount: 50}},
			Metrics:  model.FinancialMetrics{TotalRevenue: 100},
		}, false},
		{GrowthOpportunity, model.BusinessSnapshot{Metrics: model.FinancialMetrics{GrowthRate: 31}}, true},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			r, ok := c.Get(tt.rule)
			if !ok {
				t.Fatalf("rule %s missing", tt.rule)
			}
			tt.snap.TakenAt = takenAt
			if got := r.Predicate(tt.snap); got != tt.want {
				t.Errorf("%s predicate = %v, want %v", tt.rule, got, tt.want)
			}
			if tt.want && r.Message(tt.snap) == "" {
				t.Errorf("%s message is empty", tt.rule)
			}
		})
	}
}

func TestCatalogIsolation(t *testing.T) {
	c := Default()
	rules := c.Rules()
	rules[0].Title = "changed"

	r, _ := c.Get(CriticalCashFlow)
	if r.Title == "changed" {
		t.Error("Rules must return a copy")
	}
	if c.Position(RevenueDecline) != 1 || c.Position("missing") != -1 {
		t.Error("unexpected catalog positions")
	}
	if len(c.ActionIDs()) != 9 {
		t.Errorf("expected 9 distinct actions, got %v", c.ActionIDs())
	}
}

func repeatTasks(n int, status string) []model.Task {
	out := make([]model.Task, n)
	for i := range out {
		out[i] = model.Task{Status: status}
	}
	return out
}

func repeatQuotes(n int, status string, created time.Time) []model.Quote {
	out := make([]model.Quote, n)
	for i := range out {
		out[i] = model.Quote{Status: status, CreatedAt: created}
	}
	return out
}
