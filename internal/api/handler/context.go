package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pokedex/pokedex-api/internal/api/middleware"
	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// caller returns the identity injected by the Auth middleware. A route
// mounted without the middleware fails closed.
func caller(c echo.Context) (ports.Identity, error) {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		return ports.Identity{}, &domain.TokenError{Reason: domain.TokenMissing}
	}
	return who, nil
}

// intParam parses a path parameter as an integer.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", name, raw, domain.ErrInvalidArgument)
	}
	return v, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
