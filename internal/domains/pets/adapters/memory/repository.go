package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory pet catalog for development and tests.
type Repository struct {
	mu   sync.RWMutex
	pets map[string]*stored
	now  func() time.Time
}

type stored struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{pets: map[string]*stored{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	if pet.ID == "" {
		return nil, errors.New("pet id is required")
	}
	clone := pet.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := r.now().UTC()
	entry, ok := r.pets[clone.ID]
	if !ok {
		entry = &stored{metadata: projection.Metadata{CreatedAt: timestamp}}
		r.pets[clone.ID] = entry
	}
	entry.pet = clone
	entry.metadata.UpdatedAt = timestamp
	return entry.projection(), nil
}

func (r *Repository) Update(_ context.Context, pet *domain.Pet, fields []ports.Field) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[pet.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	next := entry.pet.Clone()
	for _, field := range fields {
		switch field {
		case ports.FieldName:
			next.Name = pet.Name
		case ports.FieldSpecies:
			next.Species = pet.Species
		case ports.FieldBreed:
			next.Breed = pet.Breed
		case ports.FieldAge:
			next.Age = pet.Clone().Age
		case ports.FieldDescription:
			next.Description = pet.Description
		case ports.FieldImageURL:
			next.ImageURL = pet.ImageURL
		case ports.FieldStatus:
			next.Status = pet.Status
		default:
			return nil, fmt.Errorf("unknown pet field %q", field)
		}
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	entry.pet = next
	entry.metadata.UpdatedAt = r.now().UTC()
	return entry.projection(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return entry.projection(), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *Repository) FindByStatus(_ context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Pet], error) {
	wanted := make(map[domain.Status]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Pet], 0, len(r.pets))
	for _, entry := range r.pets {
		if _, ok := wanted[entry.pet.Status]; ok {
			list = append(list, entry.projection())
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Metadata.CreatedAt.Before(list[j].Metadata.CreatedAt)
	})
	return list, nil
}

func (r *Repository) MarkAdopted(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil
	}
	entry.pet.MarkAdopted()
	entry.metadata.UpdatedAt = r.now().UTC()
	return nil
}

func (s *stored) projection() *projection.Projection[*domain.Pet] {
	return projection.New(s.pet.Clone(), s.metadata.CreatedAt, s.metadata.UpdatedAt)
}
