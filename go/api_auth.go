package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

// AuthAPI handles registration and login.
type AuthAPI struct {
	service   userports.Service
	responder *apierrors.Responder
}

// NewAuthAPI wires dependencies.
func NewAuthAPI(service userports.Service, responder *apierrors.Responder) AuthAPI {
	return AuthAPI{service: service, responder: responder.OrDefault()}
}

// Post /auth/signup
// Registers a new account
//
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body userhttpmapper.SignupRequest true "Account details"
// @Success 201 {object} userhttpmapper.SignupResponse
// @Failure 400 {object} map[string]string "invalid input or email already registered"
// @Router /auth/signup [post]
func (api *AuthAPI) Signup(c *gin.Context) {
	var payload userhttpmapper.SignupRequest
	if !bindJSON(c, api.responder, &payload) {
		return
	}
	created, err := api.service.Signup(c.Request.Context(), userhttpmapper.ToSignupInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.ToSignupResponse(created))
}

// Post /auth/login
// Exchanges credentials for a bearer token
//
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body userhttpmapper.LoginRequest true "Credentials"
// @Success 200 {object} userhttpmapper.LoginResponse
// @Failure 400 {object} map[string]string "invalid input"
// @Failure 401 {object} map[string]string "invalid credentials"
// @Failure 429 {object} map[string]string "too many login attempts"
// @Router /auth/login [post]
func (api *AuthAPI) Login(c *gin.Context) {
	var payload userhttpmapper.LoginRequest
	if !bindJSON(c, api.responder, &payload) {
		return
	}
	token, err := api.service.Login(c.Request.Context(), userports.LoginInput{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.LoginResponse{Token: token})
}
