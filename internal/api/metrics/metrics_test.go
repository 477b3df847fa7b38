package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

func TestResult(t *testing.T) {
	cases := map[string]error{
		"ok":                  nil,
		"invalid_credentials": domain.ErrInvalidCredentials,
		"invalid":             fmt.Errorf("page: %w", domain.ErrInvalidArgument),
		"not_found":           domain.ErrTeamNotFound,
		"exists":              domain.ErrUserExists,
		"capacity_exceeded":   domain.ErrCapacityExceeded,
		"conflict":            domain.ErrConflict,
		"out_of_range":        domain.ErrOutOfRange,
		"throttled":           domain.ErrTooManyAttempts,
		"unauthorized":        &domain.TokenError{Reason: domain.TokenExpired},
		"error":               errors.New("boom"),
	}
	for want, err := range cases {
		assert.Equal(t, want, Result(err), "for %v", err)
	}
}
