package mapper

import (
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	usermapper "github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/http/mapper"
)

// CreateRequest is the body of POST /adoptions.
type CreateRequest struct {
	PetID string `json:"petId" binding:"required,resourceid"`
} //@name CreateAdoptionRequest

// AdoptionRequest is the HTTP representation of a request with bare references.
type AdoptionRequest struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Pet       string    `json:"pet"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
} //@name AdoptionRequest

// AdoptionRequestView embeds the referenced pet and requester. Either is null
// once the referenced record has been deleted.
type AdoptionRequestView struct {
	ID        string                    `json:"_id"`
	User      *usermapper.PublicProfile `json:"user"`
	Pet       *petmapper.Pet            `json:"pet"`
	Status    string                    `json:"status"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
} //@name AdoptionRequestView

// ToCreateInput builds the service input for the authenticated requester.
func ToCreateInput(userID string, req CreateRequest) ports.CreateInput {
	return ports.CreateInput{UserID: userID, PetID: req.PetID}
}

// FromProjection converts a stored request.
func FromProjection(p *ports.RequestProjection) AdoptionRequest {
	if p == nil || p.Entity == nil {
		return AdoptionRequest{}
	}
	return AdoptionRequest{
		ID:        p.Entity.ID,
		User:      p.Entity.UserID,
		Pet:       p.Entity.PetID,
		Status:    string(p.Entity.Status),
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromViews converts enriched listings.
func FromViews(views []*ports.RequestView) []AdoptionRequestView {
	result := make([]AdoptionRequestView, 0, len(views))
	for _, v := range views {
		if v == nil || v.Request == nil || v.Request.Entity == nil {
			continue
		}
		result = append(result, AdoptionRequestView{
			ID:        v.Request.Entity.ID,
			User:      usermapper.ToPublicProfile(v.User),
			Pet:       petmapper.FromProjection(v.Pet),
			Status:    string(v.Request.Entity.Status),
			CreatedAt: v.Request.Metadata.CreatedAt,
			UpdatedAt: v.Request.Metadata.UpdatedAt,
		})
	}
	return result
}
