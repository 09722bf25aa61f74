// Package errors holds the HTTP-facing error type shared by every delivery layer.
package errors

import "net/http"

const (
	MessageUnauthorized       = "Unauthorized"
	MessageForbidden          = "Forbidden"
	MessageServiceUnavailable = "Service unavailable"
)

// HTTPError is an error a handler can answer with as is. Code is the application
// error code in the response body; StatusCode is the HTTP status.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError returns an HTTPError whose application code equals its HTTP status.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, StatusCode: code}
}

func NewUnauthorizedHTTPError() *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, MessageUnauthorized)
}

func NewForbiddenHTTPError() *HTTPError {
	return NewHTTPError(http.StatusForbidden, MessageForbidden)
}

// NewServiceUnavailableHTTPError names the dependency that is down.
func NewServiceUnavailableHTTPError(dependency string) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, dependency+" connection not available")
}
