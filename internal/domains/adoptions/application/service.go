package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/authz"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/ids"
)

// Service implements the adoption request workflow.
type Service struct {
	repo      ports.Repository
	pets      ports.PetReader
	users     ports.UserReader
	publisher ports.EventPublisher
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithPublisher sets the destination of domain events.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger sets the logger used for failed event deliveries.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the adoption service with its collaborators.
func NewService(repo ports.Repository, pets ports.PetReader, users ports.UserReader, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		pets:      pets,
		users:     users,
		publisher: ports.NoopEventPublisher{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:     ids.New,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create files a pending request for an available pet. Concurrent creates
// for the same pet may all succeed; several pending requests per pet are valid.
func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*ports.RequestProjection, error) {
	if !ids.Valid(input.PetID) {
		return nil, mapError(domain.ErrInvalidPetID)
	}
	pet, err := s.pets.GetByID(ctx, pettypes.PetIdentifier{ID: input.PetID})
	if err != nil {
		return nil, mapError(err)
	}
	if !pet.Entity.IsAvailable() {
		return nil, mapError(domain.ErrPetUnavailable)
	}
	request, err := domain.NewRequest(s.newID(), input.UserID, pet.Entity.ID)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.RequestCreated{
		BaseEvent: domain.BaseEvent{Timestamp: s.now().UTC()},
		RequestID: created.Entity.ID,
		UserID:    created.Entity.UserID,
		PetID:     created.Entity.PetID,
	})
	return created, nil
}

// List returns the requests visible to principal with pets and requesters embedded.
func (s *Service) List(ctx context.Context, principal authz.Principal) ([]*ports.RequestView, error) {
	filter := ports.ListFilter{UserID: principal.ID}
	if principal.IsAdmin() {
		filter.UserID = ""
	}
	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	views := make([]*ports.RequestView, 0, len(requests))
	for _, request := range requests {
		view := &ports.RequestView{Request: request}
		if view.Pet, err = s.lookupPet(ctx, request.Entity.PetID); err != nil {
			return nil, err
		}
		if view.User, err = s.lookupUser(ctx, request.Entity.UserID); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// GetByID loads a request. Malformed ids are reported as missing.
func (s *Service) GetByID(ctx context.Context, id string) (*ports.RequestProjection, error) {
	if !ids.Valid(id) {
		return nil, mapError(ports.ErrNotFound)
	}
	found, err := s.repo.GetByID(ctx, ids.Normalize(id))
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}

// Resolve approves or rejects a pending request. Approval adopts the pet.
func (s *Service) Resolve(ctx context.Context, input ports.ResolveInput) (*ports.RequestProjection, error) {
	if err := domain.ValidateDecision(input.Decision); err != nil {
		return nil, mapError(err)
	}
	if !ids.Valid(input.ID) {
		return nil, mapError(ports.ErrNotFound)
	}
	resolved, err := s.repo.Transition(ctx, ids.Normalize(input.ID), input.Decision)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.ResolutionEvent(resolved.Entity, s.now().UTC()))
	return resolved, nil
}

// Delete removes a request in any state. Only its owner or an admin may do so.
func (s *Service) Delete(ctx context.Context, input ports.DeleteInput) error {
	found, err := s.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if decision := authz.OwnerOrAdmin(input.Principal, found.Entity.UserID); !decision.Allowed {
		return apierrors.Forbidden(decision.Reason)
	}
	if err := s.repo.Delete(ctx, found.Entity.ID); err != nil {
		return mapError(err)
	}
	s.publish(ctx, domain.RequestDeleted{
		BaseEvent: domain.BaseEvent{Timestamp: s.now().UTC()},
		RequestID: found.Entity.ID,
		DeletedBy: input.Principal.ID,
	})
	return nil
}

func (s *Service) lookupPet(ctx context.Context, id string) (*pettypes.PetProjection, error) {
	pet, err := s.pets.GetByID(ctx, pettypes.PetIdentifier{ID: id})
	if apierrors.KindOf(err) == apierrors.KindNotFound {
		return nil, nil
	}
	return pet, err
}

func (s *Service) lookupUser(ctx context.Context, id string) (*userports.UserProjection, error) {
	user, err := s.users.GetProfile(ctx, id)
	if apierrors.KindOf(err) == apierrors.KindNotFound {
		return nil, nil
	}
	return user, err
}

// publish is best effort: a failed delivery never fails the request.
func (s *Service) publish(ctx context.Context, event domain.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish adoption event",
			slog.String("event", event.EventName()),
			slog.String("error", err.Error()),
		)
	}
}

var _ ports.Service = (*Service)(nil)
