package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var ErrNotFound = errors.New("adoption request not found")

// RequestProjection is an adoption request together with its persistence timestamps.
type RequestProjection = projection.Projection[*domain.Request]

// ListFilter narrows a listing. An empty UserID lists every request.
type ListFilter struct {
	UserID string
}

// Repository persists adoption requests.
type Repository interface {
	Create(ctx context.Context, request *domain.Request) (*RequestProjection, error)
	GetByID(ctx context.Context, id string) (*RequestProjection, error)
	List(ctx context.Context, filter ListFilter) ([]*RequestProjection, error)
	Delete(ctx context.Context, id string) error
	// Transition moves a pending request to the terminal state to in one
	// conditional write. Approving also marks the referenced pet adopted in
	// the same unit of work. It returns ErrNotFound or domain.ErrNotPending.
	Transition(ctx context.Context, id string, to domain.Status) (*RequestProjection, error)
}
