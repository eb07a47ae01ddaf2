package ports

import "context"

// SignupInput carries the fields required to register an account.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string
	Password string
}

// ProfileUpdate holds the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Age       *int
}

// Empty reports whether no field was supplied.
func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Age == nil
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*UserProjection, error)
	Login(ctx context.Context, input LoginInput) (string, error)
	// Authenticate resolves a bearer token to the id of its subject.
	Authenticate(ctx context.Context, token string) (string, error)
	GetProfile(ctx context.Context, id string) (*UserProjection, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*UserProjection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*UserProjection, error)
	// Promote grants the admin role to the account registered with email.
	Promote(ctx context.Context, email string) (*UserProjection, error)
}
