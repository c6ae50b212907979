package handlers

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
	"github.com/yukikurage/priority-focus-api/internal/auth"
	"github.com/yukikurage/priority-focus-api/internal/constants"
	"github.com/yukikurage/priority-focus-api/internal/dto"
	"github.com/yukikurage/priority-focus-api/internal/logging"
	"github.com/yukikurage/priority-focus-api/internal/repository"
	"github.com/yukikurage/priority-focus-api/internal/services"
	"github.com/yukikurage/priority-focus-api/internal/testutil"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *auth.TokenManager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	tokens := auth.NewTokenManager("handler-test-secret", time.Hour)
	authService := services.NewAuthService(repository.NewManagerRepository(db), tokens)

	return authTestEnv{
		db:          db,
		handler:     NewAuthHandler(authService, logging.Discard()),
		authService: authService,
		tokens:      tokens,
	}
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(r, "/api/auth/register", map[string]string{
		"email":    "Dana@Example.com",
		"password": "supersecret",
		"name":     "Dana",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "dana@example.com", response.Manager.Email)
	require.NotEmpty(t, response.Token)

	claims, err := env.tokens.ValidateToken(response.Token)
	require.NoError(t, err)
	require.Equal(t, response.Manager.ID, claims.ManagerID)

	// The password hash never leaves the server
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_RegisterRejectsBadInput(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(r, "/api/auth/register", map[string]string{"email": "dana@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/auth/register", map[string]string{
		"email": "not-an-email", "password": "supersecret", "name": "Dana",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/auth/register", map[string]string{
		"email": "dana@example.com", "password": "12345", "name": "Dana",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
		Name:     "Existing",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(r, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Existing", response.Manager.Name)
	require.True(t, response.ExpiresAt.After(time.Now()))

	w = postJSON(r, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupAuthTestEnv(t)

	result, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "current@example.com",
		Password: "supersecret",
		Name:     "Current",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Set(constants.ContextKeyManagerID, result.Manager.ID)

	env.handler.Me(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ManagerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "current@example.com", response.Email)
	require.NotNil(t, response.Settings)
}

func TestAuthHandler_MeWithoutManager(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	env.handler.Me(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
