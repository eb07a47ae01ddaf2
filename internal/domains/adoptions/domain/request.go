package domain

import "errors"

// Status is the lifecycle state of an adoption request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

var (
	ErrInvalidPetID    = errors.New("petId must be a valid identifier")
	ErrMissingUser     = errors.New("requester is required")
	ErrNotPending      = errors.New("only pending requests can be approved or rejected")
	ErrPetUnavailable  = errors.New("pet is not available for adoption")
	ErrInvalidDecision = errors.New("decision must be one of: approved, rejected")
)

// Request records one user's intent to adopt one pet.
type Request struct {
	ID     string
	UserID string
	PetID  string
	Status Status
}

// NewRequest builds a pending request.
func NewRequest(id, userID, petID string) (*Request, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if petID == "" {
		return nil, ErrInvalidPetID
	}
	return &Request{ID: id, UserID: userID, PetID: petID, Status: StatusPending}, nil
}

// ValidateDecision checks that to is a terminal state a pending request may move to.
func ValidateDecision(to Status) error {
	if !to.Terminal() {
		return ErrInvalidDecision
	}
	return nil
}

// Resolve moves a pending request to a terminal state. It is one-shot.
func (r *Request) Resolve(to Status) error {
	if err := ValidateDecision(to); err != nil {
		return err
	}
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = to
	return nil
}

// Approve is Resolve(StatusApproved).
func (r *Request) Approve() error { return r.Resolve(StatusApproved) }

// Reject is Resolve(StatusRejected).
func (r *Request) Reject() error { return r.Resolve(StatusRejected) }

// OwnedBy reports whether userID created the request.
func (r *Request) OwnedBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

// Clone returns a copy.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
