package rule

import (
	"fmt"

	"alert-srv/internal/model"
)

func commercialRules() []model.AlertRule {
	return []model.AlertRule{
		{
			ID:         LowConversionRate,
			Category:   model.CategoryCommercial,
			Severity:   model.SeverityMedium,
			Title:      "Taux de Conversion Faible",
			Confidence: 0.8,
			Predicate: func(s model.BusinessSnapshot) bool {
				return decidedQuotes(s) >= minDecidedQuotes && s.Metrics.ConversionRate < minConversionRate
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf("Le taux de conversion des devis est de %.1f%% (objectif minimal : %.0f%%).", s.Metrics.ConversionRate, minConversionRate)
			},
			AutomatedActionIDs: []string{ActionScheduleQuoteFollowUp},
		},
		{
			ID:         PendingQuotesBacklog,
			Category:   model.CategoryCommercial,
			Severity:   model.SeverityLow,
			Title:      "Devis en Attente Accumulés",
			Confidence: 0.7,
			Predicate: func(s model.BusinessSnapshot) bool {
				return quotesAwaitingAnswer(s) >= pendingQuotesCount
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf("%d devis envoyés depuis plus d'une semaine attendent une réponse client.", quotesAwaitingAnswer(s))
			},
			AutomatedActionIDs: []string{ActionScheduleQuoteFollowUp},
		},
	}
}
