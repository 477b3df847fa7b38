package ports

import (
	"context"
	"time"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID   string
	Username string
}

// SessionIssuer mints and checks stateless session tokens.
type SessionIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	// Resolve returns the identity carried by token, or a *domain.TokenError.
	Resolve(token string) (Identity, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Verify checks credentials. It fails with domain.ErrInvalidCredentials
	// for both an unknown username and a wrong password.
	Verify(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Me(ctx context.Context, who Identity) (*domain.User, error)
	ChangePassword(ctx context.Context, who Identity, current, next string) error
	DeleteAccount(ctx context.Context, who Identity) error
}
