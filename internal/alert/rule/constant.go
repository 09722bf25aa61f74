package rule

// Rule IDs.
const (
	CriticalCashFlow     = "critical_cash_flow"
	RevenueDecline       = "revenue_decline"
	OverdueInvoices      = "overdue_invoices"
	ProjectDelays        = "project_delays"
	ResourceOverload     = "resource_overload"
	LowConversionRate    = "low_conversion_rate"
	PendingQuotesBacklog = "pending_quotes_backlog"
	EmployeeShortage     = "employee_shortage"
	ClientConcentration  = "client_concentration"
	GrowthOpportunity    = "growth_opportunity"
)

// Automated action IDs referenced by the catalog.
const (
	ActionSendPaymentReminders  = "send_payment_reminders"
	ActionContactAccountingTeam = "contact_accounting_team"
	ActionPrepareCashFlowReport = "prepare_cash_flow_report"
	ActionAnalyzeRevenueTrends  = "analyze_revenue_trends"
	ActionNotifySalesTeam       = "notify_sales_team"
	ActionReassignResources     = "reassign_resources"
	ActionNotifyProjectManagers = "notify_project_managers"
	ActionScheduleQuoteFollowUp = "schedule_quote_follow_ups"
	ActionNotifyHRTeam          = "notify_hr_team"
)

// Thresholds.
const (
	cashFlowPendingRatio   = 0.1
	revenueDeclineRate     = -20.0
	overdueInvoiceCount    = 5
	lateProjectCount       = 3
	maxTasksPerEmployee    = 8.0
	minConversionRate      = 20.0
	minDecidedQuotes       = 5
	pendingQuotesCount     = 10
	minActiveEmployees     = 5
	projectsPerEmployee    = 2
	clientConcentrationPct = 50.0
	growthOpportunityRate  = 30.0
)
