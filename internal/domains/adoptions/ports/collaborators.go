package ports

import (
	"context"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
)

// PetReader resolves pets referenced by requests. The pets service satisfies it.
type PetReader interface {
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
}

// UserReader resolves requesters. The users service satisfies it.
type UserReader interface {
	GetProfile(ctx context.Context, id string) (*userports.UserProjection, error)
}
