package rule

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateRule      = errors.New("duplicate rule id")
	ErrInvalidRule        = errors.New("invalid rule")
	ErrUnregisteredAction = errors.New("rule references unregistered action")
)

// Validate checks the catalog invariants and that every referenced action is known.
// hasAction may be nil to skip the action check.
func Validate(c Catalog, hasAction func(id string) bool) error {
	var errs []error
	seen := make(map[string]bool, len(c.rules))

	for _, r := range c.rules {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("%w: empty id", ErrInvalidRule))
			continue
		}
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID))
		}
		seen[r.ID] = true

		if !r.Category.IsValid() {
			errs = append(errs, fmt.Errorf("%w: %s has unknown category %q", ErrInvalidRule, r.ID, r.Category))
		}
		if !r.Severity.IsValid() {
			errs = append(errs, fmt.Errorf("%w: %s has unknown severity %q", ErrInvalidRule, r.ID, r.Severity))
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			errs = append(errs, fmt.Errorf("%w: %s confidence %.2f outside [0,1]", ErrInvalidRule, r.ID, r.Confidence))
		}
		if r.Title == "" {
			errs = append(errs, fmt.Errorf("%w: %s has no title", ErrInvalidRule, r.ID))
		}
		if r.Predicate == nil || r.Message == nil {
			errs = append(errs, fmt.Errorf("%w: %s needs a predicate and a message", ErrInvalidRule, r.ID))
		}
		if hasAction == nil {
			continue
		}
		for _, id := range r.AutomatedActionIDs {
			if !hasAction(id) {
				errs = append(errs, fmt.Errorf("%w: %s -> %s", ErrUnregisteredAction, r.ID, id))
			}
		}
	}

	return errors.Join(errs...)
}
