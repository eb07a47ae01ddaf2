// Package adoptionserver is the HTTP transport of the pet adoption API.
package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Access is the authorization level a route requires.
type Access int

const (
	// AccessPublic routes need no credentials.
	AccessPublic Access = iota
	// AccessAuthenticated routes need a valid bearer token.
	AccessAuthenticated
	// AccessAdmin routes need a bearer token whose subject holds the admin role.
	AccessAdmin
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Access guards the route.
	Access Access
}

// ApiHandleFunctions bundles the handlers the router dispatches to.
type ApiHandleFunctions struct {
	AuthAPI     AuthAPI
	UserAPI     UserAPI
	PetAPI      PetAPI
	AdoptionAPI AdoptionAPI
	// Guard enforces the Access level of each route.
	Guard *Guard
	// LoginLimiter throttles POST /auth/login. Nil disables throttling.
	LoginLimiter gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := handleFunctions.Guard.chain(route.Access)
		if route.Name == "Login" && handleFunctions.LoginLimiter != nil {
			handlers = append(handlers, handleFunctions.LoginLimiter)
		}
		handlers = append(handlers, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Health reports liveness.
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Health", http.MethodGet, "/healthz", Health, AccessPublic},

		{"Signup", http.MethodPost, "/auth/signup", handleFunctions.AuthAPI.Signup, AccessPublic},
		{"Login", http.MethodPost, "/auth/login", handleFunctions.AuthAPI.Login, AccessPublic},

		{"GetProfile", http.MethodGet, "/users/me", handleFunctions.UserAPI.GetProfile, AccessAuthenticated},
		{"UpdateProfile", http.MethodPut, "/users/me", handleFunctions.UserAPI.UpdateProfile, AccessAuthenticated},
		{"DeleteAccount", http.MethodDelete, "/users/me", handleFunctions.UserAPI.DeleteAccount, AccessAuthenticated},
		{"ListUsers", http.MethodGet, "/users", handleFunctions.UserAPI.ListUsers, AccessAuthenticated},

		{"ListAvailablePets", http.MethodGet, "/pets", handleFunctions.PetAPI.ListAvailable, AccessPublic},
		{"GetPet", http.MethodGet, "/pets/:id", handleFunctions.PetAPI.GetPet, AccessPublic},
		{"CreatePet", http.MethodPost, "/pets", handleFunctions.PetAPI.CreatePet, AccessAdmin},
		{"UpdatePet", http.MethodPut, "/pets/:id", handleFunctions.PetAPI.UpdatePet, AccessAdmin},
		{"DeletePet", http.MethodDelete, "/pets/:id", handleFunctions.PetAPI.DeletePet, AccessAdmin},

		{"CreateAdoption", http.MethodPost, "/adoptions", handleFunctions.AdoptionAPI.CreateAdoption, AccessAuthenticated},
		{"ListAdoptions", http.MethodGet, "/adoptions", handleFunctions.AdoptionAPI.ListAdoptions, AccessAuthenticated},
		{"ApproveAdoption", http.MethodPut, "/adoptions/:id/approve", handleFunctions.AdoptionAPI.ApproveAdoption, AccessAdmin},
		{"RejectAdoption", http.MethodPut, "/adoptions/:id/reject", handleFunctions.AdoptionAPI.RejectAdoption, AccessAdmin},
		{"DeleteAdoption", http.MethodDelete, "/adoptions/:id", handleFunctions.AdoptionAPI.DeleteAdoption, AccessAuthenticated},
	}
}
