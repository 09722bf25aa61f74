package action

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps action ids to handlers. It is filled at startup and read by every session.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h under id. Registering an id twice is an error.
func (r *Registry) Register(id string, h Handler) error {
	if id == "" {
		return ErrEmptyActionID
	}
	if h == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, id)
	}
	r.handlers[id] = h
	return nil
}

func (r *Registry) Lookup(id string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[id]
	return h, ok
}

func (r *Registry) Has(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// IDs returns the registered ids sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
