package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps adoption requests in memory. Transitions hold the write
// lock while the pet is marked adopted so that two approvals never interleave.
type Repository struct {
	mu       sync.RWMutex
	requests map[string]*stored
	pets     petports.StatusWriter
	now      func() time.Time
}

type stored struct {
	request  *domain.Request
	metadata projection.Metadata
}

// NewRepository builds an empty store. pets receives the adopted flag on approval.
func NewRepository(pets petports.StatusWriter) *Repository {
	return &Repository{requests: map[string]*stored{}, pets: pets, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, request *domain.Request) (*ports.RequestProjection, error) {
	if request == nil {
		return nil, errors.New("request is nil")
	}
	if request.ID == "" {
		return nil, errors.New("request id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.requests[request.ID]; exists {
		return nil, fmt.Errorf("adoption request %s already exists", request.ID)
	}
	timestamp := r.now().UTC()
	entry := &stored{
		request:  request.Clone(),
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.requests[request.ID] = entry
	return entry.projection(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*ports.RequestProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.requests[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return entry.projection(), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*ports.RequestProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.RequestProjection, 0, len(r.requests))
	for _, entry := range r.requests {
		if filter.UserID != "" && entry.request.UserID != filter.UserID {
			continue
		}
		list = append(list, entry.projection())
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Metadata.CreatedAt.Equal(list[j].Metadata.CreatedAt) {
			return list[i].Entity.ID < list[j].Entity.ID
		}
		return list[i].Metadata.CreatedAt.Before(list[j].Metadata.CreatedAt)
	})
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *Repository) Transition(ctx context.Context, id string, to domain.Status) (*ports.RequestProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.requests[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	next := entry.request.Clone()
	if err := next.Resolve(to); err != nil {
		return nil, err
	}
	if to == domain.StatusApproved && r.pets != nil {
		if err := r.pets.MarkAdopted(ctx, next.PetID); err != nil {
			return nil, fmt.Errorf("mark pet adopted: %w", err)
		}
	}
	entry.request = next
	entry.metadata.UpdatedAt = r.now().UTC()
	return entry.projection(), nil
}

func (s *stored) projection() *ports.RequestProjection {
	return projection.New(s.request.Clone(), s.metadata.CreatedAt, s.metadata.UpdatedAt)
}
