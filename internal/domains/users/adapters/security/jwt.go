package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 16

// DefaultTokenTTL is the lifetime of issued tokens when none is configured.
const DefaultTokenTTL = 2 * time.Hour

// JWTIssuer signs HS256 tokens whose only custom content is the subject.
type JWTIssuer struct {
	secret   []byte
	ttl      time.Duration
	timeFunc func() time.Time
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// JWTOption customizes the issuer.
type JWTOption func(*JWTIssuer)

// WithTimeFunc overrides the clock used for issuing and validation.
func WithTimeFunc(fn func() time.Time) JWTOption {
	return func(i *JWTIssuer) {
		if fn != nil {
			i.timeFunc = fn
		}
	}
}

// NewJWTIssuer validates the secret and returns an issuer.
func NewJWTIssuer(secret string, ttl time.Duration, opts ...JWTOption) (*JWTIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	issuer := &JWTIssuer{secret: []byte(secret), ttl: ttl, timeFunc: time.Now}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer, nil
}

func (i *JWTIssuer) Issue(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", errors.New("token subject is required")
	}
	now := i.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Verify(_ context.Context, token string) (string, error) {
	now := i.timeFunc()
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", ports.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ports.ErrInvalidToken
	}
	return claims.Subject, nil
}
