package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account store used for local runs and tests.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]*storedUser
	byEmail map[string]string
	now     func() time.Time
}

type storedUser struct {
	user     *domain.User
	metadata projection.Metadata
}

// Option customizes the repository.
type Option func(*Repository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRepository constructs an empty store.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		users:   map[string]*storedUser{},
		byEmail: map[string]string{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create inserts an account keeping emails unique.
func (r *Repository) Create(_ context.Context, user *domain.User) (*ports.UserProjection, error) {
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}
	clone := user.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[clone.ID]; exists {
		return nil, errors.New("user id already exists")
	}
	if _, taken := r.byEmail[clone.Email]; taken {
		return nil, ports.ErrEmailTaken
	}
	timestamp := r.now().UTC()
	stored := &storedUser{user: clone, metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}}
	r.users[clone.ID] = stored
	r.byEmail[clone.Email] = clone.ID
	return projectionCopy(stored), nil
}

// Update replaces an existing account.
func (r *Repository) Update(_ context.Context, user *domain.User) (*ports.UserProjection, error) {
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}
	clone := user.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[clone.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if owner, taken := r.byEmail[clone.Email]; taken && owner != clone.ID {
		return nil, ports.ErrEmailTaken
	}
	delete(r.byEmail, entry.user.Email)
	r.byEmail[clone.Email] = clone.ID
	entry.user = clone
	entry.metadata.UpdatedAt = r.now().UTC()
	return projectionCopy(entry), nil
}

// GetByID fetches an account.
func (r *Repository) GetByID(_ context.Context, id string) (*ports.UserProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// GetByEmail fetches an account by its normalized email.
func (r *Repository) GetByEmail(_ context.Context, email string) (*ports.UserProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(r.users[id]), nil
}

// Delete removes an account.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byEmail, entry.user.Email)
	delete(r.users, id)
	return nil
}

// List returns all accounts ordered by creation time.
func (r *Repository) List(_ context.Context) ([]*ports.UserProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.UserProjection, 0, len(r.users))
	for _, entry := range r.users {
		list = append(list, projectionCopy(entry))
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Metadata.CreatedAt.Before(list[j].Metadata.CreatedAt)
	})
	return list, nil
}

func projectionCopy(entry *storedUser) *ports.UserProjection {
	return &ports.UserProjection{
		Entity:   entry.user.Clone(),
		Metadata: entry.metadata,
	}
}
