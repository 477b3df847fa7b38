package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// SessionTTL is the fixed validity window of a session token.
const SessionTTL = 24 * time.Hour

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 session tokens. It keeps no server-side state, so
// a token stays valid until it expires; logout is a client-side discard.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
}

// Issue mints a token carrying the user's id and name, valid for SessionTTL.
func (t *TokenIssuer) Issue(user *domain.User) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := sessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Resolve validates the signature and expiry of token and returns the
// identity it carries. Failures are *domain.TokenError values.
func (t *TokenIssuer) Resolve(token string) (ports.Identity, error) {
	if token == "" {
		return ports.Identity{}, &domain.TokenError{Reason: domain.TokenMissing}
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return ports.Identity{}, &domain.TokenError{Reason: tokenReason(err)}
	}
	if claims.Subject == "" {
		return ports.Identity{}, &domain.TokenError{Reason: domain.TokenMalformed}
	}

	return ports.Identity{UserID: claims.Subject, Username: claims.Username}, nil
}

func tokenReason(err error) domain.TokenReason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.TokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.TokenSignature
	default:
		return domain.TokenMalformed
	}
}
