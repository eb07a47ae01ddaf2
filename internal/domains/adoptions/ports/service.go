package ports

import (
	"context"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/authz"
)

// CreateInput asks to adopt PetID on behalf of UserID.
type CreateInput struct {
	UserID string
	PetID  string
}

// ResolveInput moves a request to Decision, which must be approved or rejected.
type ResolveInput struct {
	ID       string
	Decision domain.Status
}

// DeleteInput removes a request on behalf of Principal.
type DeleteInput struct {
	Principal authz.Principal
	ID        string
}

// RequestView is a request with its references resolved. Pet and User are nil
// when the referenced record no longer exists.
type RequestView struct {
	Request *RequestProjection
	Pet     *pettypes.PetProjection
	User    *userports.UserProjection
}

// Service exposes the adoption workflow to adapters.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*RequestProjection, error)
	// List returns every request for admins and only their own otherwise.
	List(ctx context.Context, principal authz.Principal) ([]*RequestView, error)
	GetByID(ctx context.Context, id string) (*RequestProjection, error)
	Resolve(ctx context.Context, input ResolveInput) (*RequestProjection, error)
	Delete(ctx context.Context, input DeleteInput) error
}

// ApprovalOrchestrator runs approve and reject, inline or as a durable workflow.
type ApprovalOrchestrator interface {
	Resolve(ctx context.Context, input ResolveInput) (*RequestProjection, error)
}
