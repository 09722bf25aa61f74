package handler

import (
	"context"
	"sort"
	"time"

	"alert-srv/internal/model"
)

const (
	maxTasksPerAssignee = 8
	maxSuggestions      = 20
	followUpDelay       = 2 * 24 * time.Hour
	quoteFollowUpAge    = 7 * 24 * time.Hour
)

// Workload is the number of in-progress tasks of one employee.
type Workload struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Tasks      int    `json:"tasks"`
}

// Reassignment moves one task between employees.
type Reassignment struct {
	TaskID string `json:"taskId"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ReassignmentResult is the outcome of reassign_resources. Suggestions are not applied.
type ReassignmentResult struct {
	Overloaded  []Workload     `json:"overloaded"`
	Available   []Workload     `json:"available"`
	Suggestions []Reassignment `json:"suggestions"`
}

func (h *handlers) reassignResources(ctx context.Context, alert model.Alert) (interface{}, error) {
	snap, err := h.Snapshots.Get(ctx, alert.TenantID)
	if err != nil {
		return nil, err
	}
	return planReassignments(snap), nil
}

func planReassignments(snap model.BusinessSnapshot) ReassignmentResult {
	load := make(map[string]*Workload)
	var ids []string
	for _, e := range snap.Employees {
		if !e.Active {
			continue
		}
		load[e.ID] = &Workload{EmployeeID: e.ID, Name: e.Name}
		ids = append(ids, e.ID)
	}

	tasksOf := make(map[string][]string)
	for _, t := range snap.Tasks {
		w, ok := load[t.AssigneeID]
		if !ok || t.Status != model.TaskStatusInProgress {
			continue
		}
		w.Tasks++
		tasksOf[t.AssigneeID] = append(tasksOf[t.AssigneeID], t.ID)
	}

	res := ReassignmentResult{Overloaded: []Workload{}, Available: []Workload{}, Suggestions: []Reassignment{}}
	for _, id := range ids {
		w := *load[id]
		if w.Tasks > maxTasksPerAssignee {
			res.Overloaded = append(res.Overloaded, w)
		} else if w.Tasks < maxTasksPerAssignee {
			res.Available = append(res.Available, w)
		}
	}

	// Greedily move tasks from the busiest to the least busy employee.
	for len(res.Suggestions) < maxSuggestions {
		sort.SliceStable(ids, func(i, j int) bool { return load[ids[i]].Tasks > load[ids[j]].Tasks })
		if len(ids) < 2 {
			break
		}
		busiest, idlest := load[ids[0]], load[ids[len(ids)-1]]
		if busiest.Tasks <= maxTasksPerAssignee || idlest.Tasks >= maxTasksPerAssignee || busiest.Tasks-idlest.Tasks < 2 {
			break
		}

		queue := tasksOf[busiest.EmployeeID]
		taskID := queue[len(queue)-1]
		tasksOf[busiest.EmployeeID] = queue[:len(queue)-1]
		busiest.Tasks--
		idlest.Tasks++
		res.Suggestions = append(res.Suggestions, Reassignment{TaskID: taskID, From: busiest.EmployeeID, To: idlest.EmployeeID})
	}
	return res
}

// QuoteFollowUp is a scheduled follow-up for a quote awaiting an answer.
type QuoteFollowUp struct {
	QuoteID   string    `json:"quoteId"`
	CompanyID string    `json:"companyId"`
	Company   string    `json:"company"`
	Amount    float64   `json:"amount"`
	DueAt     time.Time `json:"dueAt"`
}

// QuoteFollowUpResult is the outcome of schedule_quote_follow_ups.
type QuoteFollowUpResult struct {
	FollowUps []QuoteFollowUp `json:"followUps"`
	Total     float64         `json:"totalAmount"`
}

func (h *handlers) scheduleQuoteFollowUps(ctx context.Context, alert model.Alert) (interface{}, error) {
	snap, err := h.Snapshots.Get(ctx, alert.TenantID)
	if err != nil {
		return nil, err
	}
	return planQuoteFollowUps(snap, h.clock()), nil
}

func planQuoteFollowUps(snap model.BusinessSnapshot, now time.Time) QuoteFollowUpResult {
	names := companyNames(snap)
	cutoff := snap.TakenAt.Add(-quoteFollowUpAge)

	res := QuoteFollowUpResult{FollowUps: []QuoteFollowUp{}}
	for _, q := range snap.Quotes {
		if q.Status != model.QuoteStatusSent || !q.CreatedAt.Before(cutoff) {
			continue
		}
		res.FollowUps = append(res.FollowUps, QuoteFollowUp{
			QuoteID:   q.ID,
			CompanyID: q.CompanyID,
			Company:   names[q.CompanyID],
			Amount:    q.Amount,
			DueAt:     now.Add(followUpDelay),
		})
		res.Total += q.Amount
	}

	sort.SliceStable(res.FollowUps, func(i, j int) bool { return res.FollowUps[i].Amount > res.FollowUps[j].Amount })
	return res
}
