package rule

import (
	"fmt"

	"alert-srv/internal/model"
)

func hrRules() []model.AlertRule {
	return []model.AlertRule{
		{
			ID:         EmployeeShortage,
			Category:   model.CategoryHR,
			Severity:   model.SeverityMedium,
			Title:      "Sous-effectif Critique",
			Confidence: 0.78,
			Predicate: func(s model.BusinessSnapshot) bool {
				employees := activeEmployees(s)
				return employees < minActiveEmployees && activeProjects(s) > employees*projectsPerEmployee
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf("%d employés actifs pour %d projets actifs. Envisagez un renforcement de l'équipe.", activeEmployees(s), activeProjects(s))
			},
			AutomatedActionIDs: []string{ActionNotifyHRTeam},
		},
	}
}
