package rule

import (
	"sort"
	"time"

	"alert-srv/internal/model"
)

func overdueInvoices(s model.BusinessSnapshot) (int, float64) {
	count, amount := 0, 0.0
	for _, inv := range s.Invoices {
		if inv.IsOverdue(s.TakenAt) {
			count++
			amount += inv.Amount
		}
	}
	return count, amount
}

func lateProjects(s model.BusinessSnapshot) int {
	n := 0
	for _, p := range s.Projects {
		if p.IsLate(s.TakenAt) {
			n++
		}
	}
	return n
}

func activeProjects(s model.BusinessSnapshot) int {
	n := 0
	for _, p := range s.Projects {
		if p.Status == model.ProjectStatusActive {
			n++
		}
	}
	return n
}

func activeEmployees(s model.BusinessSnapshot) int {
	n := 0
	for _, e := range s.Employees {
		if e.Active {
			n++
		}
	}
	return n
}

func tasksPerEmployee(s model.BusinessSnapshot) float64 {
	employees := activeEmployees(s)
	if employees == 0 {
		return 0
	}
	inProgress := 0
	for _, t := range s.Tasks {
		if t.Status == model.TaskStatusInProgress {
			inProgress++
		}
	}
	return float64(inProgress) / float64(employees)
}

// quotesAwaitingAnswer counts sent quotes older than a week.
func quotesAwaitingAnswer(s model.BusinessSnapshot) int {
	cutoff := s.TakenAt.Add(-7 * 24 * time.Hour)
	n := 0
	for _, q := range s.Quotes {
		if q.Status == model.QuoteStatusSent && q.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

func decidedQuotes(s model.BusinessSnapshot) int {
	n := 0
	for _, q := range s.Quotes {
		if q.Status != model.QuoteStatusDraft {
			n++
		}
	}
	return n
}

// topClient returns the company with the largest invoiced amount and its share of total revenue in percent.
func topClient(s model.BusinessSnapshot) (string, float64) {
	if s.Metrics.TotalRevenue <= 0 {
		return "", 0
	}

	byCompany := make(map[string]float64)
	for _, inv := range s.Invoices {
		byCompany[inv.CompanyID] += inv.Amount
	}

	ids := make([]string, 0, len(byCompany))
	for id := range byCompany {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best, bestAmount := "", 0.0
	for _, id := range ids {
		if byCompany[id] > bestAmount {
			best, bestAmount = id, byCompany[id]
		}
	}

	name := best
	for _, c := range s.Companies {
		if c.ID == best {
			name = c.Name
			break
		}
	}
	return name, bestAmount / s.Metrics.TotalRevenue * 100
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
