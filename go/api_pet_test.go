package adoptionserver

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pethttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

func TestPetAdministration(t *testing.T) {
	s := newTestServer(t)
	admin := s.signup("admin@example.com", true)
	user := s.signup("ana@example.com", false)

	rec := s.do(http.MethodPost, "/pets", user, map[string]any{"name": "Firulais", "species": "dog", "age": 4})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/pets", admin, map[string]any{"name": "Firulais", "species": "dog"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "age is required", decode[errorBody](t, rec).Error)

	pet := createPet(t, s, admin, "Firulais")

	rec = s.do(http.MethodPut, "/pets/"+pet.ID, admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/pets/"+pet.ID, admin, map[string]any{"breed": "mestizo", "imageUrl": "https://example.com/f.png"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[pethttpmapper.Pet](t, rec)
	assert.Equal(t, "mestizo", updated.Breed)
	assert.Equal(t, "https://example.com/f.png", updated.ImageURL)
	assert.Equal(t, "Firulais", updated.Name)

	rec = s.do(http.MethodGet, "/pets/not-an-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/pets/"+pet.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, "/pets/"+pet.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type failingPets struct {
	petsports.Service
	err error
}

func (f failingPets) ListAvailable(context.Context) ([]*pettypes.PetProjection, error) {
	return nil, f.err
}

func TestPetAPIRendersThroughInjectedResponder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	responder := apierrors.NewResponder(slog.New(slog.NewJSONHandler(&logs, nil)))
	api := NewPetAPI(failingPets{err: errors.New("connection reset by peer")}, responder)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/pets", nil)
	api.ListAvailable(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode[errorBody](t, rec).Error)
	assert.Contains(t, logs.String(), "connection reset by peer")
}
