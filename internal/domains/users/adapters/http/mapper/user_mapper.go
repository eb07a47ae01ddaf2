package mapper

import (
	"time"

	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
)

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
} //@name SignupRequest

// SignupResponse is returned after registration.
type SignupResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
} //@name SignupResponse

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
} //@name LoginRequest

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
} //@name LoginResponse

// ProfileUpdateRequest captures PUT /users/me while preserving field presence.
type ProfileUpdateRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Age       *int    `json:"age" binding:"omitempty,min=0"`
} //@name ProfileUpdateRequest

// Profile is the HTTP representation of an account. It never carries the
// password hash.
type Profile struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
} //@name Profile

// PublicProfile is the requester view embedded in adoption listings.
type PublicProfile struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
} //@name PublicProfile

// ToSignupInput converts a transport signup payload.
func ToSignupInput(req SignupRequest) userports.SignupInput {
	return userports.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
}

// ToProfileUpdate converts a transport profile patch.
func ToProfileUpdate(req ProfileUpdateRequest) userports.ProfileUpdate {
	return userports.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
	}
}

// ToSignupResponse renders the registration result.
func ToSignupResponse(p *userports.UserProjection) SignupResponse {
	if p == nil || p.Entity == nil {
		return SignupResponse{}
	}
	return SignupResponse{ID: p.Entity.ID, Email: p.Entity.Email}
}

// FromProjection converts a stored account into its profile representation.
func FromProjection(p *userports.UserProjection) Profile {
	if p == nil || p.Entity == nil {
		return Profile{}
	}
	u := p.Entity
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Role:      string(u.Role),
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjectionList converts a list of accounts.
func FromProjectionList(list []*userports.UserProjection) []Profile {
	result := make([]Profile, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}

// ToPublicProfile strips the role from an account. It returns nil for a
// missing account.
func ToPublicProfile(p *userports.UserProjection) *PublicProfile {
	if p == nil || p.Entity == nil {
		return nil
	}
	u := p.Entity
	return &PublicProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}
