package types

// PetMutationInput captures optional pet fields while preserving presence.
type PetMutationInput struct {
	Name        *string
	Species     *string
	Breed       *string
	Age         *int
	Description *string
	ImageURL    *string
	Status      *string
}

// Empty reports whether no field was supplied.
func (in PetMutationInput) Empty() bool {
	return in.Name == nil && in.Species == nil && in.Breed == nil && in.Age == nil &&
		in.Description == nil && in.ImageURL == nil && in.Status == nil
}

// CreatePetInput describes a new catalog entry.
type CreatePetInput struct {
	PetMutationInput
}

// UpdatePetInput applies a partial change to an existing pet.
type UpdatePetInput struct {
	ID string
	PetMutationInput
}

// PetIdentifier addresses a single pet.
type PetIdentifier struct {
	ID string
}
