package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

const identityKey = "identity"

// Auth resolves the bearer token through the session issuer and injects the
// caller's identity into the context. Failures are returned as
// *domain.TokenError so the error handler can tell an expired session apart.
func Auth(sessions ports.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return &domain.TokenError{Reason: domain.TokenMissing}
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return &domain.TokenError{Reason: domain.TokenMalformed}
			}

			who, err := sessions.Resolve(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			SetIdentity(c, who)
			return next(c)
		}
	}
}

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, who ports.Identity) {
	c.Set(identityKey, who)
}

// IdentityFrom returns the caller stored by Auth.
func IdentityFrom(c echo.Context) (ports.Identity, bool) {
	who, ok := c.Get(identityKey).(ports.Identity)
	return who, ok && who.UserID != ""
}
