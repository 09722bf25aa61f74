package usecase

import (
	"sync"
	"time"

	ws "alert-srv/internal/websocket"
)

// connectionLimiter caps concurrent connections and connection attempts per user.
type connectionLimiter struct {
	mu         sync.Mutex
	maxPerUser int
	rateLimit  int
	window     time.Duration
	active     map[string]int
	attempts   map[string][]time.Time
	now        func() time.Time
}

func newConnectionLimiter(maxPerUser, rateLimit int, window time.Duration) *connectionLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &connectionLimiter{
		maxPerUser: maxPerUser,
		rateLimit:  rateLimit,
		window:     window,
		active:     make(map[string]int),
		attempts:   make(map[string][]time.Time),
		now:        time.Now,
	}
}

// Check records a connection attempt of userID and fails when a limit is exceeded.
// A limit of zero disables it.
func (l *connectionLimiter) Check(userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.recentLocked(userID, now)
	if l.rateLimit > 0 && len(recent) >= l.rateLimit {
		return &ws.RateLimitError{UserID: userID, Limit: "connection_rate", Current: len(recent), Max: l.rateLimit}
	}
	if l.maxPerUser > 0 && l.active[userID] >= l.maxPerUser {
		return &ws.RateLimitError{UserID: userID, Limit: "max_connections_per_user", Current: l.active[userID], Max: l.maxPerUser}
	}
	l.attempts[userID] = append(recent, now)
	return nil
}

func (l *connectionLimiter) Track(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active[userID]++
}

func (l *connectionLimiter) Untrack(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.active[userID] <= 1 {
		delete(l.active, userID)
	} else {
		l.active[userID]--
	}
	l.recentLocked(userID, l.now())
}

// recentLocked drops the attempts older than the window.
func (l *connectionLimiter) recentLocked(userID string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	attempts := l.attempts[userID]
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	recent := attempts[i:]
	if len(recent) == 0 {
		delete(l.attempts, userID)
		return nil
	}
	l.attempts[userID] = recent
	return recent
}
