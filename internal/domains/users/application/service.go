package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/ids"
)

// Service implements account, credential and profile use cases.
type Service struct {
	repo   ports.Repository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	newID  func() string

	decoyOnce sync.Once
	decoyHash string
}

// Option customizes the service.
type Option func(*Service)

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService wires the user service. tokens may be nil for processes that
// never log users in.
func NewService(repo ports.Repository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{repo: repo, hasher: hasher, tokens: tokens, newID: ids.New}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Signup hashes the password and stores a new regular account.
func (s *Service) Signup(ctx context.Context, input ports.SignupInput) (*ports.UserProjection, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user, err := domain.NewUser(s.newID(), input.FirstName, input.LastName, input.Email, hash)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords fail identically.
func (s *Service) Login(ctx context.Context, input ports.LoginInput) (string, error) {
	if s.tokens == nil {
		return "", errors.New("token issuer not configured")
	}
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return "", mapError(ports.ErrInvalidCredentials)
	}
	found, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		// Spend the same hashing effort as a real comparison.
		_ = s.hasher.Compare(s.decoy(), input.Password)
		return "", mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return "", mapError(err)
	}
	if err := s.hasher.Compare(found.Entity.PasswordHash, input.Password); err != nil {
		return "", mapError(ports.ErrInvalidCredentials)
	}
	token, err := s.tokens.Issue(ctx, found.Entity.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate verifies a bearer token and returns its subject.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if s.tokens == nil {
		return "", errors.New("token issuer not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", mapError(ports.ErrInvalidToken)
	}
	subject, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return "", mapError(err)
	}
	return subject, nil
}

// GetProfile loads an account by id.
func (s *Service) GetProfile(ctx context.Context, id string) (*ports.UserProjection, error) {
	if !ids.Valid(id) {
		return nil, mapError(ports.ErrNotFound)
	}
	found, err := s.repo.GetByID(ctx, ids.Normalize(id))
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}

// UpdateProfile applies the supplied profile fields. Role and password are
// not updatable here.
func (s *Service) UpdateProfile(ctx context.Context, id string, update ports.ProfileUpdate) (*ports.UserProjection, error) {
	if update.Empty() {
		return nil, mapError(domain.ErrNoChanges)
	}
	current, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	user := current.Entity
	if update.FirstName != nil {
		if err := user.SetFirstName(*update.FirstName); err != nil {
			return nil, mapError(err)
		}
	}
	if update.LastName != nil {
		if err := user.SetLastName(*update.LastName); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Email != nil {
		if err := user.ChangeEmail(*update.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Age != nil {
		if err := user.SetAge(update.Age); err != nil {
			return nil, mapError(err)
		}
	}
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// Delete removes an account. Adoption requests referencing it are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !ids.Valid(id) {
		return mapError(ports.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, ids.Normalize(id)); err != nil {
		return mapError(err)
	}
	return nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]*ports.UserProjection, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

// Promote grants the admin role. Promoting an admin is a no-op.
func (s *Service) Promote(ctx context.Context, email string) (*ports.UserProjection, error) {
	found, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, mapError(err)
	}
	if found.Entity.IsAdmin() {
		return found, nil
	}
	found.Entity.Promote()
	updated, err := s.repo.Update(ctx, found.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash(ids.New())
		if err == nil {
			s.decoyHash = hash
		}
	})
	return s.decoyHash
}

var _ ports.Service = (*Service)(nil)
