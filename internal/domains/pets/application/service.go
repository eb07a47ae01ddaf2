package application

import (
	"context"

	types "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/ids"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, newID: ids.New}
}

// ListAvailable returns every pet that can still be adopted.
func (s *Service) ListAvailable(ctx context.Context) ([]*types.PetProjection, error) {
	result, err := s.repo.FindByStatus(ctx, []domain.Status{domain.StatusAvailable})
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetByID loads a single pet aggregate. Malformed ids are reported as missing.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	if !ids.Valid(input.ID) {
		return nil, mapError(ports.ErrNotFound)
	}
	projection, err := s.repo.GetByID(ctx, ids.Normalize(input.ID))
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// Create persists a new pet aggregate.
func (s *Service) Create(ctx context.Context, input types.CreatePetInput) (*types.PetProjection, error) {
	pet, err := buildPetFromMutation(s.newID(), input.PetMutationInput)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies the supplied fields to an existing pet. Only those fields
// are written, so a concurrent adoption or delete is not overwritten.
func (s *Service) Update(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	if input.Empty() {
		return nil, mapError(domain.ErrNoChanges)
	}
	projection, err := s.GetByID(ctx, types.PetIdentifier{ID: input.ID})
	if err != nil {
		return nil, err
	}
	if err := applyPartialMutation(projection.Entity, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, projection.Entity, changedFields(input.PetMutationInput))
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a pet. Adoption requests referencing it are left in place.
func (s *Service) Delete(ctx context.Context, input types.PetIdentifier) error {
	if !ids.Valid(input.ID) {
		return mapError(ports.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, ids.Normalize(input.ID)); err != nil {
		return mapError(err)
	}
	return nil
}

func buildPetFromMutation(id string, input types.PetMutationInput) (*domain.Pet, error) {
	var name, species string
	if input.Name != nil {
		name = *input.Name
	}
	if input.Species != nil {
		species = *input.Species
	}
	pet, err := domain.NewPet(id, name, species)
	if err != nil {
		return nil, err
	}
	if input.Age == nil {
		return nil, domain.ErrMissingAge
	}
	if err := applyPartialMutation(pet, input); err != nil {
		return nil, err
	}
	return pet, nil
}

func changedFields(input types.PetMutationInput) []ports.Field {
	var fields []ports.Field
	add := func(set bool, field ports.Field) {
		if set {
			fields = append(fields, field)
		}
	}
	add(input.Name != nil, ports.FieldName)
	add(input.Species != nil, ports.FieldSpecies)
	add(input.Breed != nil, ports.FieldBreed)
	add(input.Age != nil, ports.FieldAge)
	add(input.Description != nil, ports.FieldDescription)
	add(input.ImageURL != nil, ports.FieldImageURL)
	add(input.Status != nil, ports.FieldStatus)
	return fields
}

func applyPartialMutation(pet *domain.Pet, input types.PetMutationInput) error {
	if input.Name != nil {
		if err := pet.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Species != nil {
		if err := pet.ChangeSpecies(*input.Species); err != nil {
			return err
		}
	}
	if input.Breed != nil {
		pet.SetBreed(*input.Breed)
	}
	if input.Age != nil {
		if err := pet.SetAge(input.Age); err != nil {
			return err
		}
	}
	if input.Description != nil {
		pet.SetDescription(*input.Description)
	}
	if input.ImageURL != nil {
		if err := pet.SetImageURL(*input.ImageURL); err != nil {
			return err
		}
	}
	if input.Status != nil {
		if err := pet.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
