package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var ErrNotFound = errors.New("pet not found")

// Field names a pet attribute a partial update may write.
type Field string

const (
	FieldName        Field = "name"
	FieldSpecies     Field = "species"
	FieldBreed       Field = "breed"
	FieldAge         Field = "age"
	FieldDescription Field = "description"
	FieldImageURL    Field = "image_url"
	FieldStatus      Field = "status"
)

type Repository interface {
	// Save inserts or replaces a pet keyed by id.
	Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	// Update writes only fields, taking their values from pet. Other columns
	// keep whatever is stored. A pet that no longer exists is ErrNotFound.
	Update(ctx context.Context, pet *domain.Pet, fields []Field) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Pet], error)
	Delete(ctx context.Context, id string) error
	FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Pet], error)
	StatusWriter
}

// StatusWriter flips a pet to adopted. A missing pet is not an error so that
// approving a request for a deleted pet still succeeds.
type StatusWriter interface {
	MarkAdopted(ctx context.Context, id string) error
}
