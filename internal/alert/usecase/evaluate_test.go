package usecase

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"alert-srv/internal/alert/rule"
	"alert-srv/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCriticalCashFlow(t *testing.T) {
	f := newFixture(t, rule.Default(), nil)

	alerts := f.uc.Evaluate(context.Background(), cashCrisis())

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, rule.CriticalCashFlow, a.RuleID)
	assert.Equal(t, model.SeverityCritical, a.Severity)
	assert.Equal(t, "Crise de Trésorerie Imminente", a.Title)
	assert.Equal(t, 0.95, a.Confidence)
	assert.Equal(t, "Impact critique sur la continuité de l'activité", a.Impact)
	assert.Equal(t, t0.Add(DefaultAlertTTL), a.ExpiresAt)
	assert.Equal(t, cashCrisis().Ref(), a.SnapshotRef)
	require.Len(t, a.RecommendedActions, 1)
	assert.Equal(t, "review_cash_flow", a.RecommendedActions[0].ID)
	assert.Equal(t, "high", a.RecommendedActions[0].Priority)

	require.Len(t, a.AutomatedActions, 3)
	for _, st := range a.AutomatedActions {
		assert.Equal(t, model.ActionStatusPending, st.Status)
	}
}

func TestEvaluateRevenueDecline(t *testing.T) {
	f := newFixture(t, rule.Default(), nil)
	snap := model.BusinessSnapshot{TenantID: tenantID, TakenAt: t0, Metrics: model.FinancialMetrics{GrowthRate: -25}}

	alerts := f.uc.Evaluate(context.Background(), snap)

	require.Len(t, alerts, 1)
	assert.Equal(t, rule.RevenueDecline, alerts[0].RuleID)
	assert.Contains(t, alerts[0].Message, "25.0")
}

func TestEvaluateDoesNotMutateSnapshot(t *testing.T) {
	f := newFixture(t, rule.Default(), nil)
	snap := cashCrisis()
	snap.Invoices = []model.Invoice{{ID: "i1", Amount: 10, Status: model.InvoiceStatusOverdue}}
	before := cashCrisis()
	before.Invoices = []model.Invoice{{ID: "i1", Amount: 10, Status: model.InvoiceStatusOverdue}}

	f.uc.Evaluate(context.Background(), snap)

	assert.True(t, reflect.DeepEqual(before, snap))
}

// Rule behaviours used by the isolation property.
const (
	ruleQuiet = iota
	ruleFires
	rulePanicsInPredicate
	rulePanicsInMessage
)

func behaviourCatalog(behaviours []int) rule.Catalog {
	rules := make([]model.AlertRule, len(behaviours))
	for i, b := range behaviours {
		rules[i] = model.AlertRule{
			ID:         "rule_" + strings.Repeat("x", i+1),
			Category:   model.CategoryOperational,
			Severity:   model.SeverityLow,
			Title:      "generated",
			Confidence: 0.5,
			Predicate: func(model.BusinessSnapshot) bool {
				if b == rulePanicsInPredicate {
					panic("predicate exploded")
				}
				return b != ruleQuiet
			},
			Message: func(model.BusinessSnapshot) string {
				if b == rulePanicsInMessage {
					var m map[string]int
					m["boom"]++
				}
				return "message"
			},
		}
	}
	return rule.NewCatalog(rules)
}

func TestEvaluateIsolatesFailingRules(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("only healthy firing rules produce alerts, in catalog order", prop.ForAll(
		func(behaviours []int) bool {
			catalog := behaviourCatalog(behaviours)
			f := newFixture(t, catalog, nil)

			alerts := f.uc.Evaluate(context.Background(), cashCrisis())

			var want []string
			for i, b := range behaviours {
				if b == ruleFires {
					want = append(want, catalog.Rules()[i].ID)
				}
			}
			if len(alerts) != len(want) {
				return false
			}
			for i, a := range alerts {
				if a.RuleID != want[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(ruleQuiet, rulePanicsInMessage)),
	))

	properties.TestingRun(t)
}
