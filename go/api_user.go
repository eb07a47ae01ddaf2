package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

// UserAPI serves the authenticated account endpoints.
type UserAPI struct {
	service   userports.Service
	responder *apierrors.Responder
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service, responder *apierrors.Responder) UserAPI {
	return UserAPI{service: service, responder: responder.OrDefault()}
}

// Get /users/me
// Returns the caller's profile
//
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userhttpmapper.Profile
// @Failure 401 {object} map[string]string "token required"
// @Failure 404 {object} map[string]string "user not found"
// @Router /users/me [get]
func (api *UserAPI) GetProfile(c *gin.Context) {
	profile, err := api.service.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromProjection(profile))
}

// Put /users/me
// Updates the caller's profile
//
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body userhttpmapper.ProfileUpdateRequest true "Fields to change"
// @Success 200 {object} userhttpmapper.Profile
// @Failure 400 {object} map[string]string "invalid input"
// @Failure 401 {object} map[string]string "token required"
// @Failure 404 {object} map[string]string "user not found"
// @Router /users/me [put]
func (api *UserAPI) UpdateProfile(c *gin.Context) {
	var payload userhttpmapper.ProfileUpdateRequest
	if !bindJSON(c, api.responder, &payload) {
		return
	}
	updated, err := api.service.UpdateProfile(c.Request.Context(), currentUserID(c), userhttpmapper.ToProfileUpdate(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromProjection(updated))
}

// Delete /users/me
// Deletes the caller's account. Their adoption requests are kept.
//
// @Summary Delete own account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]string "token required"
// @Failure 404 {object} map[string]string "user not found"
// @Router /users/me [delete]
func (api *UserAPI) DeleteAccount(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), currentUserID(c)); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /users
// Lists every account
//
// @Summary List accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} userhttpmapper.Profile
// @Failure 401 {object} map[string]string "token required"
// @Router /users [get]
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromProjectionList(users))
}
