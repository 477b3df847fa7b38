package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body.Error
}

func TestErrorHandler_DomainKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("limit: %w", domain.ErrInvalidArgument), http.StatusBadRequest},
		{domain.ErrPokemonNotFound, http.StatusNotFound},
		{domain.ErrTeamNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrCapacityExceeded, http.StatusUnprocessableEntity},
		{domain.ErrOutOfRange, http.StatusUnprocessableEntity},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		code, msg := render(t, tc.err)
		assert.Equal(t, tc.status, code, tc.err.Error())
		assert.Equal(t, tc.err.Error(), msg)
	}
}

func TestErrorHandler_TokenErrors(t *testing.T) {
	code, msg := render(t, &domain.TokenError{Reason: domain.TokenExpired})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "session expired", msg)

	for _, reason := range []domain.TokenReason{domain.TokenMissing, domain.TokenMalformed, domain.TokenSignature} {
		code, msg := render(t, &domain.TokenError{Reason: reason})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "authentication required", msg, "reason %s must not leak", reason)
	}
}

func TestErrorHandler_EchoErrors(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusBadRequest, "name is required"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "name is required", msg)
}

func TestErrorHandler_UnknownErrorIsHidden(t *testing.T) {
	code, msg := render(t, errors.New("mongo: connection pool cleared"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", msg)
}
