package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time `json:"occurredAt"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// RequestCreated is raised when a user asks to adopt a pet.
type RequestCreated struct {
	BaseEvent
	RequestID string `json:"requestId"`
	UserID    string `json:"userId"`
	PetID     string `json:"petId"`
}

// EventName returns the event type identifier.
func (e RequestCreated) EventName() string {
	return "adoptions.request.created"
}

// RequestApproved is raised when an admin approves a request. The pet is adopted.
type RequestApproved struct {
	BaseEvent
	RequestID string `json:"requestId"`
	UserID    string `json:"userId"`
	PetID     string `json:"petId"`
}

// EventName returns the event type identifier.
func (e RequestApproved) EventName() string {
	return "adoptions.request.approved"
}

// RequestRejected is raised when an admin rejects a request.
type RequestRejected struct {
	BaseEvent
	RequestID string `json:"requestId"`
	UserID    string `json:"userId"`
	PetID     string `json:"petId"`
}

// EventName returns the event type identifier.
func (e RequestRejected) EventName() string {
	return "adoptions.request.rejected"
}

// RequestDeleted is raised when the owner or an admin removes a request.
type RequestDeleted struct {
	BaseEvent
	RequestID string `json:"requestId"`
	DeletedBy string `json:"deletedBy"`
}

// EventName returns the event type identifier.
func (e RequestDeleted) EventName() string {
	return "adoptions.request.deleted"
}

// ResolutionEvent returns the event matching a terminal transition.
func ResolutionEvent(r *Request, at time.Time) Event {
	base := BaseEvent{Timestamp: at}
	if r.Status == StatusApproved {
		return RequestApproved{BaseEvent: base, RequestID: r.ID, UserID: r.UserID, PetID: r.PetID}
	}
	return RequestRejected{BaseEvent: base, RequestID: r.ID, UserID: r.UserID, PetID: r.PetID}
}
