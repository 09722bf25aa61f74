package http

import (
	"errors"
	"net/http"

	"alert-srv/internal/websocket"
	pkgErrors "alert-srv/pkg/errors"
)

func (h *Handler) mapError(err error) error {
	var rateErr *websocket.RateLimitError
	if errors.As(err, &rateErr) {
		return pkgErrors.NewHTTPError(http.StatusTooManyRequests, "Connection limit exceeded")
	}

	switch {
	case errors.Is(err, websocket.ErrInvalidToken):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, websocket.ErrMissingToken):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "Missing authentication token")
	case errors.Is(err, websocket.ErrMaxConnectionsReached):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "Maximum connections reached")
	default:
		// Unknown errors are reported by the recovery middleware.
		panic(err)
	}
}
