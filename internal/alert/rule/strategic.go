package rule

import (
	"fmt"

	"alert-srv/internal/model"
)

func strategicRules() []model.AlertRule {
	return []model.AlertRule{
		{
			ID:         ClientConcentration,
			Category:   model.CategoryStrategic,
			Severity:   model.SeverityMedium,
			Title:      "Dépendance Client Élevée",
			Confidence: 0.82,
			Predicate: func(s model.BusinessSnapshot) bool {
				_, share := topClient(s)
				return share > clientConcentrationPct
			},
			Message: func(s model.BusinessSnapshot) string {
				name, share := topClient(s)
				return fmt.Sprintf("%s représente %.1f%% du chiffre d'affaires total.", name, share)
			},
		},
		{
			ID:         GrowthOpportunity,
			Category:   model.CategoryStrategic,
			Severity:   model.SeverityLow,
			Title:      "Opportunité de Croissance",
			Confidence: 0.72,
			Predicate: func(s model.BusinessSnapshot) bool {
				return s.Metrics.GrowthRate > growthOpportunityRate
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf("Le chiffre d'affaires progresse de %.1f%%. Envisagez d'augmenter la capacité de production.", s.Metrics.GrowthRate)
			},
		},
	}
}
