package security

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, hasher.Compare(hash, "secret1"))
	assert.ErrorIs(t, hasher.Compare(hash, "secret2"), ports.ErrInvalidCredentials)
	assert.ErrorIs(t, hasher.Compare("", "secret1"), ports.ErrInvalidCredentials)
}

func TestBcryptHasherLongPasswords(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash(strings.Repeat("a", 73))
	require.Error(t, err)

	hash, err := hasher.Hash(strings.Repeat("a", 72))
	require.NoError(t, err)
	assert.ErrorIs(t, hasher.Compare(hash, strings.Repeat("b", 73)), ports.ErrInvalidCredentials)
}

func TestBcryptHasherFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).cost)
}

func TestNewJWTIssuerRejectsShortSecret(t *testing.T) {
	_, err := NewJWTIssuer("short", time.Hour)
	require.Error(t, err)
}

func TestJWTIssuerRoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, 0)
	require.NoError(t, err)

	token, err := issuer.Issue(context.Background(), "abc123")
	require.NoError(t, err)

	subject, err := issuer.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", subject)
}

func TestJWTIssuerRejectsExpiredToken(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewJWTIssuer(testSecret, 2*time.Hour, WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)

	token, err := issuer.Issue(context.Background(), "abc123")
	require.NoError(t, err)

	now = now.Add(2*time.Hour + time.Second)
	_, err = issuer.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTIssuerRejectsForeignSignatures(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewJWTIssuer("another-secret-value-0000", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(context.Background(), "abc123")
	require.NoError(t, err)
	_, err = issuer.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "abc123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(context.Background(), unsigned)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = issuer.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}
