// Package rule holds the alert rule catalog.
package rule

import (
	"alert-srv/internal/model"
)

// Catalog is an ordered, immutable set of rules.
type Catalog struct {
	rules []model.AlertRule
	index map[string]int
}

// NewCatalog builds a catalog in the given order. It does not validate; call Validate.
func NewCatalog(rules []model.AlertRule) Catalog {
	c := Catalog{
		rules: make([]model.AlertRule, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		r.AutomatedActionIDs = append([]string(nil), r.AutomatedActionIDs...)
		c.rules[i] = r
		c.index[r.ID] = i
	}
	return c
}

// Default returns the built-in business rule catalog.
func Default() Catalog {
	rules := make([]model.AlertRule, 0, 10)
	rules = append(rules, financialRules()...)
	rules = append(rules, operationalRules()...)
	rules = append(rules, commercialRules()...)
	rules = append(rules, hrRules()...)
	rules = append(rules, strategicRules()...)
	return NewCatalog(rules)
}

// Rules returns the rules in catalog order. The slice is a copy.
func (c Catalog) Rules() []model.AlertRule {
	out := make([]model.AlertRule, len(c.rules))
	copy(out, c.rules)
	return out
}

func (c Catalog) Len() int {
	return len(c.rules)
}

// Get returns the rule with id.
func (c Catalog) Get(id string) (model.AlertRule, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.AlertRule{}, false
	}
	return c.rules[i], true
}

// Position returns the catalog index of id, or -1.
func (c Catalog) Position(id string) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// ActionIDs returns every automated action referenced by the catalog, deduplicated, in first-use order.
func (c Catalog) ActionIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range c.rules {
		for _, id := range r.AutomatedActionIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
