package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/parley/internal/domain"
)

// setupErrorHandling installs an error handler that maps domain errors to
// status codes and logs unhandled errors with a stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				slog.Error("Internal Server Error (Unhandled)",
					"error", err,
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"stack_trace", string(debug.Stack()),
				)
			}
			err = echo.NewHTTPError(status, http.StatusText(status)).SetInternal(err)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyContent), errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
