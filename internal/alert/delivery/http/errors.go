package http

import (
	"errors"
	"net/http"

	"alert-srv/internal/alert"
	"alert-srv/internal/settings"
	"alert-srv/internal/snapshot"
	pkgErrors "alert-srv/pkg/errors"
)

var errMissingScope = errors.New("missing scope")

func (h *Handler) mapError(err error) error {
	var protoErr *alert.ProtocolError
	if errors.As(err, &protoErr) {
		return pkgErrors.NewHTTPError(http.StatusBadRequest, protoErr.Message)
	}
	var snapErr *snapshot.SnapshotUnavailableError
	if errors.As(err, &snapErr) {
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "Business data is temporarily unavailable")
	}

	switch {
	case errors.Is(err, errMissingScope):
		return pkgErrors.NewUnauthorizedHTTPError()
	case errors.Is(err, alert.ErrForbidden), errors.Is(err, settings.ErrForbidden):
		return pkgErrors.NewForbiddenHTTPError()
	case errors.Is(err, alert.ErrAlertNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "Alert not found")
	case errors.Is(err, alert.ErrActionInProgress):
		return pkgErrors.NewHTTPError(http.StatusConflict, "Action is already executing")
	case errors.Is(err, alert.ErrActionAlreadyFinished):
		return pkgErrors.NewHTTPError(http.StatusConflict, "Action already finished")
	case errors.Is(err, alert.ErrConcurrentUpdate):
		return pkgErrors.NewHTTPError(http.StatusConflict, "Alert was changed concurrently, retry")
	case errors.Is(err, alert.ErrInvalidInput):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid alert or action id")
	case errors.Is(err, settings.ErrIntervalTooShort):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Interval is below the allowed minimum")
	case errors.Is(err, settings.ErrInvalidCategory):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Unknown alert category")
	case errors.Is(err, settings.ErrInvalidSeverity):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Unknown notification severity")
	case errors.Is(err, snapshot.ErrInvalidTenant):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid tenant")
	case errors.Is(err, settings.ErrMissingTenant):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "Missing tenant")
	default:
		// Unknown errors are reported by the recovery middleware.
		panic(err)
	}
}
