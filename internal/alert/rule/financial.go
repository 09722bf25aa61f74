package rule

import (
	"fmt"

	"alert-srv/internal/model"
)

func financialRules() []model.AlertRule {
	return []model.AlertRule{
		{
			ID:         CriticalCashFlow,
			Category:   model.CategoryFinancial,
			Severity:   model.SeverityCritical,
			Title:      "Crise de Trésorerie Imminente",
			Confidence: 0.95,
			Predicate: func(s model.BusinessSnapshot) bool {
				m := s.Metrics
				return m.TotalRevenue > 0 && m.PendingRevenue < m.TotalRevenue*cashFlowPendingRatio
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf(
					"Les revenus en attente (%.0f €) représentent moins de 10%% du chiffre d'affaires total (%.0f €). Risque de tension de trésorerie à court terme.",
					s.Metrics.PendingRevenue, s.Metrics.TotalRevenue)
			},
			AutomatedActionIDs: []string{ActionSendPaymentReminders, ActionContactAccountingTeam, ActionPrepareCashFlowReport},
		},
		{
			ID:         RevenueDecline,
			Category:   model.CategoryFinancial,
			Severity:   model.SeverityHigh,
			Title:      "Baisse Significative du Chiffre d'Affaires",
			Confidence: 0.88,
			Predicate: func(s model.BusinessSnapshot) bool {
				return s.Metrics.GrowthRate < revenueDeclineRate
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf("Le chiffre d'affaires a baissé de %.1f%% par rapport à la période précédente.", abs(s.Metrics.GrowthRate))
			},
			AutomatedActionIDs: []string{ActionAnalyzeRevenueTrends, ActionNotifySalesTeam},
		},
		{
			ID:         OverdueInvoices,
			Category:   model.CategoryFinancial,
			Severity:   model.SeverityHigh,
			Title:      "Factures en Retard de Paiement",
			Confidence: 0.92,
			Predicate: func(s model.BusinessSnapshot) bool {
				n, _ := overdueInvoices(s)
				return n >= overdueInvoiceCount
			},
			Message: func(s model.BusinessSnapshot) string {
				n, amount := overdueInvoices(s)
				return fmt.Sprintf("%d factures sont en retard de paiement pour un montant total de %.0f €.", n, amount)
			},
			AutomatedActionIDs: []string{ActionSendPaymentReminders},
		},
	}
}
