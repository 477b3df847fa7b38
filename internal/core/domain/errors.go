package domain

import "errors"

// Error kinds returned by the core. Every failure a caller is expected to
// handle matches exactly one of these through errors.Is; anything else is an
// infrastructure failure.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrConflict         = errors.New("conflict")
	ErrOutOfRange       = errors.New("out of range")
	ErrTooManyAttempts  = errors.New("too many attempts")
)

var (
	ErrPokemonNotFound = fmtKind(ErrNotFound, "pokemon not found")
	ErrTeamNotFound    = fmtKind(ErrNotFound, "team not found")
	ErrUserNotFound    = fmtKind(ErrNotFound, "user not found")
	ErrUserExists      = fmtKind(ErrAlreadyExists, "username already taken")
	ErrPokemonExists   = fmtKind(ErrAlreadyExists, "pokemon id already exists")

	// ErrInvalidCredentials is deliberately the same value for an unknown
	// username and a wrong password.
	ErrInvalidCredentials = fmtKind(ErrUnauthorized, "invalid credentials")
)

// kindError is a sentinel with its own message that still matches its kind.
type kindError struct {
	kind error
	msg  string
}

func fmtKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// TokenReason says why a session token was rejected.
type TokenReason string

const (
	TokenMissing   TokenReason = "missing"
	TokenMalformed TokenReason = "malformed"
	TokenSignature TokenReason = "signature"
	TokenExpired   TokenReason = "expired"
)

// TokenError is returned when a session token cannot be resolved. It always
// matches ErrUnauthorized.
type TokenError struct {
	Reason TokenReason
}

func (e *TokenError) Error() string {
	return "invalid session token: " + string(e.Reason)
}

func (e *TokenError) Unwrap() error { return ErrUnauthorized }

// IsSessionExpired reports whether err is a token rejected only because it
// outlived its validity window.
func IsSessionExpired(err error) bool {
	var te *TokenError
	return errors.As(err, &te) && te.Reason == TokenExpired
}
