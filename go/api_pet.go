package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service   petsports.Service
	responder *apierrors.Responder
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service, responder *apierrors.Responder) PetAPI {
	return PetAPI{service: service, responder: responder.OrDefault()}
}

// Get /pets
// Lists pets available for adoption
//
// @Summary List available pets
// @Tags pets
// @Produce json
// @Success 200 {array} pethttpmapper.Pet
// @Router /pets [get]
func (api *PetAPI) ListAvailable(c *gin.Context) {
	result, err := api.service.ListAvailable(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
}

// Get /pets/:id
// Finds a pet by id
//
// @Summary Get a pet
// @Tags pets
// @Produce json
// @Param id path string true "Resource id (32 hex characters)"
// @Success 200 {object} pethttpmapper.Pet
// @Failure 404 {object} map[string]string "pet not found"
// @Router /pets/{id} [get]
func (api *PetAPI) GetPet(c *gin.Context) {
	pet, err := api.service.GetByID(c.Request.Context(), petstypes.PetIdentifier{ID: c.Param("id")})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet))
}

// Post /pets
// Adds a pet to the catalog
//
// @Summary Create a pet
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body pethttpmapper.CreatePetRequest true "Pet"
// @Success 201 {object} pethttpmapper.Pet
// @Failure 400 {object} map[string]string "invalid input"
// @Failure 401 {object} map[string]string "token required"
// @Failure 403 {object} map[string]string "admin privileges required"
// @Router /pets [post]
func (api *PetAPI) CreatePet(c *gin.Context) {
	var payload pethttpmapper.CreatePetRequest
	if !bindJSON(c, api.responder, &payload) {
		return
	}
	saved, err := api.service.Create(c.Request.Context(), pethttpmapper.ToCreateInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromProjection(saved))
}

// Put /pets/:id
// Updates the supplied fields of a pet
//
// @Summary Update a pet
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id (32 hex characters)"
// @Param payload body pethttpmapper.UpdatePetRequest true "Fields to change"
// @Success 200 {object} pethttpmapper.Pet
// @Failure 400 {object} map[string]string "invalid input"
// @Failure 401 {object} map[string]string "token required"
// @Failure 403 {object} map[string]string "admin privileges required"
// @Failure 404 {object} map[string]string "pet not found"
// @Router /pets/{id} [put]
func (api *PetAPI) UpdatePet(c *gin.Context) {
	var payload pethttpmapper.UpdatePetRequest
	if !bindJSON(c, api.responder, &payload) {
		return
	}
	updated, err := api.service.Update(c.Request.Context(), pethttpmapper.ToUpdateInput(c.Param("id"), payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(updated))
}

// Delete /pets/:id
// Removes a pet. Adoption requests referencing it are kept.
//
// @Summary Delete a pet
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id (32 hex characters)"
// @Success 204
// @Failure 401 {object} map[string]string "token required"
// @Failure 403 {object} map[string]string "admin privileges required"
// @Failure 404 {object} map[string]string "pet not found"
// @Router /pets/{id} [delete]
func (api *PetAPI) DeletePet(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), petstypes.PetIdentifier{ID: c.Param("id")}); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
