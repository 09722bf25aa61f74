package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantMsg    string
	}{
		{"custom", NewHTTPError(http.StatusConflict, "Action already finished"), http.StatusConflict, "Action already finished"},
		{"unauthorized", NewUnauthorizedHTTPError(), http.StatusUnauthorized, MessageUnauthorized},
		{"forbidden", NewForbiddenHTTPError(), http.StatusForbidden, MessageForbidden},
		{"unavailable", NewServiceUnavailableHTTPError("Redis"), http.StatusServiceUnavailable, "Redis connection not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantStatus, tt.err.Code)
			assert.EqualError(t, tt.err, tt.wantMsg)
		})
	}
}
