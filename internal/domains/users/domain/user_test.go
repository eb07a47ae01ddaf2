package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-adoption-api/internal/shared/authz"
)

func TestNewUserDefaultsToUserRole(t *testing.T) {
	user, err := NewUser("u1", " Ana ", "Perez", "  Ana@Example.COM ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.FirstName)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, authz.RoleUser, user.Role)
	assert.False(t, user.IsAdmin())
}

func TestNewUserRejectsInvalidFields(t *testing.T) {
	_, err := NewUser("u1", "", "Perez", "ana@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmptyFirstName)

	_, err = NewUser("u1", "Ana", " ", "ana@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmptyLastName)

	_, err = NewUser("u1", "Ana", "Perez", "ana.example.com", "hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("u1", "Ana", "Perez", "ana@example.com", "")
	assert.ErrorIs(t, err, ErrEmptyPasswordHash)
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength)))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength+1)), ErrPasswordTooLong)
	// Multi-byte characters count by byte.
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("ñ", 37)), ErrPasswordTooLong)
}

func TestSetAge(t *testing.T) {
	user := &User{}
	negative := -3
	assert.ErrorIs(t, user.SetAge(&negative), ErrNegativeAge)

	age := 30
	require.NoError(t, user.SetAge(&age))
	age = 99
	require.NotNil(t, user.Age)
	assert.Equal(t, 30, *user.Age)

	require.NoError(t, user.SetAge(nil))
	assert.Nil(t, user.Age)
}

func TestPromoteAndClone(t *testing.T) {
	age := 41
	user, err := NewUser("u1", "Ana", "Perez", "ana@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, user.SetAge(&age))

	clone := user.Clone()
	clone.Promote()
	*clone.Age = 10

	assert.True(t, clone.IsAdmin())
	assert.False(t, user.IsAdmin())
	assert.Equal(t, 41, *user.Age)
	assert.Equal(t, authz.Principal{ID: "u1", Role: authz.RoleAdmin}, clone.Principal())
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	user, err := NewUser("u1", "Ana", "Perez", "ana@example.com", "hash")
	require.NoError(t, err)
	user.Role = "root"
	assert.ErrorIs(t, user.Validate(), ErrInvalidRole)
}
