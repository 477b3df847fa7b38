package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	Locked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

type noThrottle struct{}

func (noThrottle) Locked(context.Context, string) (bool, error) { return false, nil }
func (noThrottle) RecordFailure(context.Context, string) error  { return nil }
func (noThrottle) Reset(context.Context, string) error          { return nil }

var (
	timingHashOnce sync.Once
	timingHash     []byte
)

// equalizeTiming spends the same bcrypt work as a real comparison so an
// unknown username takes as long to reject as a wrong password.
func equalizeTiming(password string) {
	timingHashOnce.Do(func() {
		timingHash, _ = bcrypt.GenerateFromPassword([]byte("pokedex-timing"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(timingHash, []byte(password))
}

// AuthService implements registration, credential checks and login.
type AuthService struct {
	users    ports.UserRepository
	teams    ports.TeamRepository
	sessions ports.SessionIssuer
	throttle LoginThrottle
	logger   zerolog.Logger
	cost     int
}

// NewAuthService wires the credential store. throttle may be nil.
func NewAuthService(
	users ports.UserRepository,
	teams ports.TeamRepository,
	sessions ports.SessionIssuer,
	throttle LoginThrottle,
	logger zerolog.Logger,
) *AuthService {
	if throttle == nil {
		throttle = noThrottle{}
	}
	return &AuthService{
		users:    users,
		teams:    teams,
		sessions: sessions,
		throttle: throttle,
		logger:   logger,
		cost:     bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", domain.ErrInvalidArgument)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Favorites:    []int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			equalizeTiming(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies credentials and mints a session token. Repeated failures
// for one username lock it out for the throttle window; throttle backend
// errors are logged and ignored.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", domain.ErrInvalidArgument)
	}

	locked, err := s.throttle.Locked(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("login throttle check failed, continuing")
	} else if locked {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if recErr := s.throttle.RecordFailure(ctx, username); recErr != nil {
				s.logger.Warn().Err(recErr).Str("username", username).Msg("failed to record login failure")
			}
		}
		return nil, err
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
	}

	token, expiresAt, err := s.sessions.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, who ports.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, who.UserID)
}

// ChangePassword is the only operation that rewrites a stored hash. When next
// equals the current password nothing is written.
func (s *AuthService) ChangePassword(ctx context.Context, who ports.Identity, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("current and new password are required: %w", domain.ErrInvalidArgument)
	}

	user, err := s.users.FindByID(ctx, who.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	if next == current {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// DeleteAccount removes the user's teams, then the user record.
func (s *AuthService) DeleteAccount(ctx context.Context, who ports.Identity) error {
	removed, err := s.teams.DeleteByUser(ctx, who.UserID)
	if err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}
	if err := s.users.Delete(ctx, who.UserID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", who.UserID).Int64("teams_removed", removed).Msg("account deleted")
	return nil
}
