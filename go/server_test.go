package adoptionserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adoptionmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	usermemory "github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/ratelimit"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/adapters/security"
	userapp "github.com/Apurer/pet-adoption-api/internal/domains/users/application"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	users  *userapp.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	tokens, err := security.NewJWTIssuer("test-secret-of-sufficient-length", time.Hour)
	require.NoError(t, err)
	users := userapp.NewService(usermemory.NewRepository(), security.NewBcryptHasher(4), tokens)

	petRepo := petmemory.NewRepository()
	pets := petapp.NewService(petRepo)
	adoptions := adoptionapp.NewService(adoptionmemory.NewRepository(petRepo), pets, users)

	guard := NewGuard(users, nil)
	router := NewRouter(ApiHandleFunctions{
		AuthAPI:      NewAuthAPI(users, nil),
		UserAPI:      NewUserAPI(users, nil),
		PetAPI:       NewPetAPI(pets, nil),
		AdoptionAPI:  NewAdoptionAPI(adoptions, nil, guard, nil),
		Guard:        guard,
		LoginLimiter: RateLimit(ratelimit.NewMemoryLimiter(5, time.Minute), nil, nil),
	})
	return &testServer{t: t, router: router, users: users}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signup registers an account and returns a bearer token for it.
func (s *testServer) signup(email string, admin bool) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"first_name": "Test", "last_name": "User", "email": email, "password": "secret1",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	if admin {
		_, err := s.users.Promote(context.Background(), email)
		require.NoError(s.t, err)
	}
	rec = s.do(http.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": "secret1"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorBody struct {
	Error string `json:"error"`
}
