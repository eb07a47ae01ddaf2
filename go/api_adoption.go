package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	adoptionports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

// AdoptionAPI serves the adoption request workflow.
type AdoptionAPI struct {
	service   adoptionports.Service
	approvals adoptionports.ApprovalOrchestrator
	guard     *Guard
	responder *apierrors.Responder
}

// NewAdoptionAPI wires dependencies. A nil orchestrator resolves inline.
func NewAdoptionAPI(service adoptionports.Service, approvals adoptionports.ApprovalOrchestrator, guard *Guard, responder *apierrors.Responder) AdoptionAPI {
	if approvals == nil {
		approvals = service
	}
	return AdoptionAPI{service: service, approvals: approvals, guard: guard, responder: responder.OrDefault()}
}

// Post /adoptions
// Files an adoption request for an available pet
//
// @Summary Request an adoption
// @Tags adoptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body adoptionhttpmapper.CreateRequest true "Pet to adopt"
// @Success 201 {object} adoptionhttpmapper.AdoptionRequest
// @Failure 400 {object} map[string]string "invalid input or pet not available"
// @Failure 401 {object} map[string]string "token required"
// @Failure 404 {object} map[string]string "pet not found"
// @Router /adoptions [post]
func (api *AdoptionAPI) CreateAdoption(c *gin.Context) {
	var payload adoptionhttpmapper.CreateRequest
	if !bindJSON(c, api.responder, &payload) {
		return
	}
	created, err := api.service.Create(c.Request.Context(), adoptionhttpmapper.ToCreateInput(currentUserID(c), payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adoptionhttpmapper.FromProjection(created))
}

// Get /adoptions
// Lists the caller's requests, or every request for admins
//
// @Summary List adoption requests
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} adoptionhttpmapper.AdoptionRequestView
// @Failure 401 {object} map[string]string "token required"
// @Router /adoptions [get]
func (api *AdoptionAPI) ListAdoptions(c *gin.Context) {
	principal, err := api.guard.principal(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	views, err := api.service.List(c.Request.Context(), principal)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromViews(views))
}

// Put /adoptions/:id/approve
// Approves a pending request and adopts its pet
//
// @Summary Approve a request
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id (32 hex characters)"
// @Success 200 {object} adoptionhttpmapper.AdoptionRequest
// @Failure 400 {object} map[string]string "request is not pending"
// @Failure 401 {object} map[string]string "token required"
// @Failure 403 {object} map[string]string "admin privileges required"
// @Failure 404 {object} map[string]string "adoption request not found"
// @Router /adoptions/{id}/approve [put]
func (api *AdoptionAPI) ApproveAdoption(c *gin.Context) {
	api.resolve(c, domain.StatusApproved)
}

// Put /adoptions/:id/reject
// Rejects a pending request
//
// @Summary Reject a request
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id (32 hex characters)"
// @Success 200 {object} adoptionhttpmapper.AdoptionRequest
// @Failure 400 {object} map[string]string "request is not pending"
// @Failure 401 {object} map[string]string "token required"
// @Failure 403 {object} map[string]string "admin privileges required"
// @Failure 404 {object} map[string]string "adoption request not found"
// @Router /adoptions/{id}/reject [put]
func (api *AdoptionAPI) RejectAdoption(c *gin.Context) {
	api.resolve(c, domain.StatusRejected)
}

func (api *AdoptionAPI) resolve(c *gin.Context, decision domain.Status) {
	resolved, err := api.approvals.Resolve(c.Request.Context(), adoptionports.ResolveInput{
		ID:       c.Param("id"),
		Decision: decision,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(resolved))
}

// Delete /adoptions/:id
// Removes a request owned by the caller, or any request for admins
//
// @Summary Delete a request
// @Tags adoptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id (32 hex characters)"
// @Success 204
// @Failure 401 {object} map[string]string "token required"
// @Failure 403 {object} map[string]string "not allowed to modify this resource"
// @Failure 404 {object} map[string]string "adoption request not found"
// @Router /adoptions/{id} [delete]
func (api *AdoptionAPI) DeleteAdoption(c *gin.Context) {
	principal, err := api.guard.principal(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), adoptionports.DeleteInput{Principal: principal, ID: c.Param("id")}); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
