package domain

import (
	"errors"
	"strings"

	"github.com/Apurer/pet-adoption-api/internal/shared/authz"
)

var (
	ErrEmptyFirstName    = errors.New("first_name is required")
	ErrEmptyLastName     = errors.New("last_name is required")
	ErrInvalidEmail      = errors.New("email must be a valid email")
	ErrNegativeAge       = errors.New("age must be greater than or equal to 0")
	ErrEmptyPasswordHash = errors.New("password hash is required")
	ErrWeakPassword      = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong   = errors.New("password must be at most 72 characters long")
	ErrInvalidRole       = errors.New("role must be one of: user, admin")
	ErrNoChanges         = errors.New("at least one field must be provided")
)

// User is an account able to request adoptions.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         authz.Role
	Age          *int
}

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 6

// MaxPasswordLength is the longest plaintext bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// NewUser builds a regular account ensuring required invariants.
func NewUser(id, firstName, lastName, email, passwordHash string) (*User, error) {
	user := &User{ID: id, Role: authz.RoleUser}
	if err := user.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := user.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := user.ChangeEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPasswordHash(passwordHash); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetFirstName trims and validates the first name.
func (u *User) SetFirstName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyFirstName
	}
	u.FirstName = name
	return nil
}

// SetLastName trims and validates the last name.
func (u *User) SetLastName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyLastName
	}
	u.LastName = name
	return nil
}

// ChangeEmail normalizes and stores the address.
func (u *User) ChangeEmail(email string) error {
	email = NormalizeEmail(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPasswordHash stores an already hashed password.
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return ErrEmptyPasswordHash
	}
	u.PasswordHash = hash
	return nil
}

// SetAge records the optional age.
func (u *User) SetAge(age *int) error {
	if age == nil {
		u.Age = nil
		return nil
	}
	if *age < 0 {
		return ErrNegativeAge
	}
	value := *age
	u.Age = &value
	return nil
}

// Promote grants administrative privileges.
func (u *User) Promote() {
	u.Role = authz.RoleAdmin
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return authz.RequireAdmin(u.Role).Allowed
}

// Principal returns the authorization view of the account.
func (u *User) Principal() authz.Principal {
	return authz.Principal{ID: u.ID, Role: u.Role}
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetFirstName(u.FirstName); err != nil {
		return err
	}
	if err := u.SetLastName(u.LastName); err != nil {
		return err
	}
	if err := u.ChangeEmail(u.Email); err != nil {
		return err
	}
	if err := u.SetPasswordHash(u.PasswordHash); err != nil {
		return err
	}
	if u.Role == "" {
		u.Role = authz.RoleUser
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return u.SetAge(u.Age)
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Age != nil {
		age := *u.Age
		clone.Age = &age
	}
	return &clone
}
