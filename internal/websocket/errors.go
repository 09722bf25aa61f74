package websocket

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken is returned when the JWT token is invalid
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingToken is returned when the JWT token is missing
	ErrMissingToken = errors.New("missing token")

	// ErrConnectionClosed is returned when trying to write to a closed connection
	ErrConnectionClosed = errors.New("connection closed")

	// ErrSendBufferFull is returned when the client does not drain its messages
	ErrSendBufferFull = errors.New("send buffer full")

	// ErrMaxConnectionsReached is returned when max connections limit is reached
	ErrMaxConnectionsReached = errors.New("maximum connections reached")

	// ErrMissingConnection is returned when Register gets no connection
	ErrMissingConnection = errors.New("missing websocket connection")
)

// RateLimitError is returned when a user opens too many connections.
type RateLimitError struct {
	UserID  string
	Limit   string
	Current int
	Max     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for user %s: %s (current: %d, max: %d)", e.UserID, e.Limit, e.Current, e.Max)
}
