package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receitinhas/backend/internal/middleware"
	"github.com/receitinhas/backend/internal/service"
	"github.com/receitinhas/backend/internal/testhelpers"
)

func setupAuth(t *testing.T) *gin.Engine {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	redisClient, _ := testhelpers.SetupTestRedis(t)
	auth := service.NewAuthService(db, redisClient, "test-secret")
	h := NewAuthHandler(auth)

	r := gin.New()
	group := r.Group("/api/v1/auth")
	group.POST("/register", h.Register)
	group.POST("/login", h.Login)
	group.POST("/logout", middleware.AuthMiddleware(auth), h.Logout)
	return r
}

func TestRegisterEndpoint(t *testing.T) {
	r := setupAuth(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "senha123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r := setupAuth(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	r := setupAuth(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Email:    "ninguem@example.com",
		Password: "senha123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "credenciais inválidas", decodeBody(t, w)["error"])
}

func TestLoginThenLogoutFlow(t *testing.T) {
	r := setupAuth(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "senha123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Email:    "maria@example.com",
		Password: "senha123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	req := newAuthedRequest(t, http.MethodPost, "/api/v1/auth/logout", token)
	w2 := serve(r, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// The revoked token no longer authenticates.
	req = newAuthedRequest(t, http.MethodPost, "/api/v1/auth/logout", token)
	w2 = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}
