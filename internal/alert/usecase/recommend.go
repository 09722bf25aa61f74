package usecase

import "alert-srv/internal/model"

var impactBySeverity = map[model.Severity]string{
	model.SeverityCritical: "Impact critique sur la continuité de l'activité",
	model.SeverityHigh:     "Impact élevé sur les résultats",
	model.SeverityMedium:   "Impact modéré à surveiller",
	model.SeverityLow:      "Impact limité",
}

var recommendationsByCategory = map[model.Category][]model.RecommendedAction{
	model.CategoryFinancial: {{
		ID:              "review_cash_flow",
		Title:           "Analyser la trésorerie",
		Description:     "Revoir les encaissements attendus, les échéances clients et le besoin de financement à court terme.",
		TargetModule:    "finance",
		EstimatedImpact: "Sécurisation de la trésorerie",
	}},
	model.CategoryOperational: {{
		ID:              "optimize_resources",
		Title:           "Optimiser l'allocation des ressources",
		Description:     "Rééquilibrer la charge entre les équipes et replanifier les projets en retard.",
		TargetModule:    "projects",
		EstimatedImpact: "Respect des délais de livraison",
	}},
	model.CategoryCommercial: {{
		ID:              "improve_sales_process",
		Title:           "Améliorer le processus commercial",
		Description:     "Relancer les devis en attente et analyser les motifs de refus.",
		TargetModule:    "sales",
		EstimatedImpact: "Hausse du taux de conversion",
	}},
	model.CategoryHR: {{
		ID:              "review_staffing",
		Title:           "Revoir les effectifs",
		Description:     "Évaluer le besoin de recrutement ou de renfort temporaire au regard des projets actifs.",
		TargetModule:    "hr",
		EstimatedImpact: "Capacité de production adaptée",
	}},
	model.CategoryStrategic: {{
		ID:              "strategic_review",
		Title:           "Lancer une revue stratégique",
		Description:     "Réexaminer la répartition du portefeuille clients et les priorités de développement.",
		TargetModule:    "strategy",
		EstimatedImpact: "Croissance maîtrisée et risques diversifiés",
	}},
}

func impactFor(s model.Severity) string {
	return impactBySeverity[s]
}

func priorityFor(s model.Severity) string {
	switch s {
	case model.SeverityCritical, model.SeverityHigh:
		return "high"
	case model.SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// recommendationsFor returns a fresh copy of the category's recommendations prioritized by severity.
func recommendationsFor(c model.Category, s model.Severity) []model.RecommendedAction {
	src := recommendationsByCategory[c]
	out := make([]model.RecommendedAction, len(src))
	for i, r := range src {
		r.Priority = priorityFor(s)
		out[i] = r
	}
	return out
}
