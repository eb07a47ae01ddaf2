package ports

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns ErrInvalidCredentials when password does not match hash.
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies bearer tokens whose subject is a user id.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Verify returns the subject or ErrInvalidToken.
	Verify(ctx context.Context, token string) (string, error)
}

// LimitResult describes a rate limiter decision.
type LimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// LoginLimiter throttles credential attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (LimitResult, error)
}
