package domain

import (
	"errors"
	"net/url"
	"strings"
)

// Status represents the adoption state of a pet in the catalog.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

// Valid reports whether s is a known lifecycle value.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusAdopted
}

// Pet represents the aggregate managed by the pets bounded context.
type Pet struct {
	ID          string
	Name        string
	Species     string
	Breed       string
	Age         *int
	Description string
	ImageURL    string
	Status      Status
}

var (
	ErrEmptyName       = errors.New("name is required")
	ErrEmptySpecies    = errors.New("species is required")
	ErrMissingAge      = errors.New("age is required")
	ErrNegativeAge     = errors.New("age must be greater than or equal to 0")
	ErrInvalidImageURL = errors.New("imageUrl must be a valid uri")
	ErrInvalidStatus   = errors.New("status must be one of: available, adopted")
	ErrNoChanges       = errors.New("at least one field must be provided")
)

// NewPet validates the invariants and builds an available pet.
func NewPet(id, name, species string) (*Pet, error) {
	p := &Pet{ID: id, Status: StatusAvailable}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.ChangeSpecies(species); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ChangeSpecies sets the species ensuring it is not blank.
func (p *Pet) ChangeSpecies(species string) error {
	species = strings.TrimSpace(species)
	if species == "" {
		return ErrEmptySpecies
	}
	p.Species = species
	return nil
}

// SetBreed stores the optional breed.
func (p *Pet) SetBreed(breed string) {
	p.Breed = strings.TrimSpace(breed)
}

// SetDescription stores the optional free text description.
func (p *Pet) SetDescription(description string) {
	p.Description = strings.TrimSpace(description)
}

// SetAge records the age in years. nil clears it.
func (p *Pet) SetAge(age *int) error {
	if age == nil {
		p.Age = nil
		return nil
	}
	if *age < 0 {
		return ErrNegativeAge
	}
	value := *age
	p.Age = &value
	return nil
}

// SetImageURL stores an absolute image URI. An empty value clears it.
func (p *Pet) SetImageURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.ImageURL = ""
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return ErrInvalidImageURL
	}
	p.ImageURL = raw
	return nil
}

// UpdateStatus validates known lifecycle values. An empty status means available.
func (p *Pet) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusAvailable
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	p.Status = status
	return nil
}

// MarkAdopted takes the pet off the catalog.
func (p *Pet) MarkAdopted() {
	p.Status = StatusAdopted
}

// IsAvailable reports whether adoption requests may target the pet.
func (p *Pet) IsAvailable() bool {
	return p.Status == StatusAvailable
}

// Validate re-applies invariants before persistence.
func (p *Pet) Validate() error {
	if err := p.Rename(p.Name); err != nil {
		return err
	}
	if err := p.ChangeSpecies(p.Species); err != nil {
		return err
	}
	if err := p.SetAge(p.Age); err != nil {
		return err
	}
	if err := p.SetImageURL(p.ImageURL); err != nil {
		return err
	}
	return p.UpdateStatus(p.Status)
}

// Clone returns a deep copy.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Age != nil {
		age := *p.Age
		clone.Age = &age
	}
	return &clone
}
