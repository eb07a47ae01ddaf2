package mapper

import (
	"time"

	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

// CreatePetRequest is the body of POST /pets.
type CreatePetRequest struct {
	Name        *string `json:"name" binding:"required,min=1"`
	Species     *string `json:"species" binding:"required,min=1"`
	Breed       *string `json:"breed"`
	Age         *int    `json:"age" binding:"required,min=0"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,uri"`
	Status      *string `json:"status" binding:"omitempty,oneof=available adopted"`
} //@name CreatePetRequest

// UpdatePetRequest captures PUT /pets/:id while preserving field presence.
type UpdatePetRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Species     *string `json:"species" binding:"omitempty,min=1"`
	Breed       *string `json:"breed"`
	Age         *int    `json:"age" binding:"omitempty,min=0"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,uri"`
	Status      *string `json:"status" binding:"omitempty,oneof=available adopted"`
} //@name UpdatePetRequest

// Pet is the HTTP representation of a catalog entry.
type Pet struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	Age         *int      `json:"age,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
} //@name Pet

// ToCreateInput converts a transport create payload.
func ToCreateInput(req CreatePetRequest) petstypes.CreatePetInput {
	return petstypes.CreatePetInput{PetMutationInput: petstypes.PetMutationInput{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Age:         req.Age,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	}}
}

// ToUpdateInput converts a transport patch for the pet id.
func ToUpdateInput(id string, req UpdatePetRequest) petstypes.UpdatePetInput {
	return petstypes.UpdatePetInput{ID: id, PetMutationInput: petstypes.PetMutationInput{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Age:         req.Age,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	}}
}

// FromProjection converts a stored pet. It returns nil for a missing pet.
func FromProjection(p *petstypes.PetProjection) *Pet {
	if p == nil || p.Entity == nil {
		return nil
	}
	pet := p.Entity
	return &Pet{
		ID:          pet.ID,
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		Age:         pet.Age,
		Description: pet.Description,
		ImageURL:    pet.ImageURL,
		Status:      string(pet.Status),
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

// FromProjectionList converts a list of pets.
func FromProjectionList(list []*petstypes.PetProjection) []Pet {
	result := make([]Pet, 0, len(list))
	for _, p := range list {
		if pet := FromProjection(p); pet != nil {
			result = append(result, *pet)
		}
	}
	return result
}
