package usecase

import (
	"sync"
	"time"
)

// throttle lets one event per key through within window.
type throttle struct {
	mu     sync.Mutex
	window time.Duration
	sent   map[string]time.Time
	now    func() time.Time
}

func newThrottle(window time.Duration, now func() time.Time) *throttle {
	return &throttle{
		window: window,
		sent:   make(map[string]time.Time),
		now:    now,
	}
}

// Allow reports whether an event for key may go out and records it when it may.
func (t *throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.sent[key]; ok && now.Sub(last) < t.window {
		return false
	}
	t.sent[key] = now
	return true
}
