package rule

import (
	"fmt"

	"alert-srv/internal/model"
)

func operationalRules() []model.AlertRule {
	return []model.AlertRule{
		{
			ID:         ProjectDelays,
			Category:   model.CategoryOperational,
			Severity:   model.SeverityHigh,
			Title:      "Retards de Projets Multiples",
			Confidence: 0.85,
			Predicate: func(s model.BusinessSnapshot) bool {
				return lateProjects(s) >= lateProjectCount
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf("%d projets actifs ont dépassé leur échéance.", lateProjects(s))
			},
			AutomatedActionIDs: []string{ActionReassignResources, ActionNotifyProjectManagers},
		},
		{
			ID:         ResourceOverload,
			Category:   model.CategoryOperational,
			Severity:   model.SeverityMedium,
			Title:      "Surcharge des Ressources",
			Confidence: 0.75,
			Predicate: func(s model.BusinessSnapshot) bool {
				return tasksPerEmployee(s) > maxTasksPerEmployee
			},
			Message: func(s model.BusinessSnapshot) string {
				return fmt.Sprintf("En moyenne %.1f tâches en cours par employé actif (seuil : %.0f).", tasksPerEmployee(s), maxTasksPerEmployee)
			},
			AutomatedActionIDs: []string{ActionReassignResources},
		},
	}
}
