package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// kindStatus maps each domain error kind to its HTTP status. Order matters
// only for errors that wrap several kinds, which the core never produces.
var kindStatus = []struct {
	kind   error
	status int
}{
	{domain.ErrInvalidArgument, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrAlreadyExists, http.StatusConflict},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrCapacityExceeded, http.StatusUnprocessableEntity},
	{domain.ErrOutOfRange, http.StatusUnprocessableEntity},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Token failures never say more than whether the session merely expired.
	var te *domain.TokenError
	if errors.As(err, &te) {
		if te.Reason == domain.TokenExpired {
			return http.StatusUnauthorized, "session expired"
		}
		return http.StatusUnauthorized, "authentication required"
	}

	for _, ks := range kindStatus {
		if errors.Is(err, ks.kind) {
			return ks.status, err.Error()
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	logUnhandled(log, c, err)
	return http.StatusInternalServerError, "internal server error"
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
