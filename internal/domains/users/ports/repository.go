package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// UserProjection is a user together with its persistence timestamps.
type UserProjection = projection.Projection[*domain.User]

// Repository persists accounts. Emails are unique across the store.
type Repository interface {
	// Create inserts a new account or returns ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*UserProjection, error)
	// Update replaces the mutable fields of an existing account.
	Update(ctx context.Context, user *domain.User) (*UserProjection, error)
	GetByID(ctx context.Context, id string) (*UserProjection, error)
	GetByEmail(ctx context.Context, email string) (*UserProjection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*UserProjection, error)
}
