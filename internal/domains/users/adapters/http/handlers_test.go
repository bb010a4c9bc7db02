package userhttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/http/mapper"
	"github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/memory"
	"github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/security"
	userapp "github.com/AndyCHK/giphy-api-app/internal/domains/users/application"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	signer, err := security.NewJWTSigner("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	service := userapp.NewService(memory.NewRepository(), memory.NewTokenStore(), signer, security.NewBcryptHasher(bcrypt.MinCost))
	api := NewUserAPI(service, nil)

	router := gin.New()
	router.POST("/api/auth/register", api.Register)
	router.POST("/api/auth/login", api.Login)
	authed := router.Group("/api", RequireAuth(service))
	authed.POST("/auth/logout", api.Logout)
	authed.GET("/users", api.ListUsers)
	return router
}

func do(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const registerBody = `{"name": "Ana", "email": "ana@example.com", "password": "s3cret-pass"}`

func TestUserAPI_RegisterLoginLogout(t *testing.T) {
	router := newRouter(t)

	rec := do(router, http.MethodPost, "/api/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var registered mapper.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(router, http.MethodPost, "/api/auth/login", `{"email": "ana@example.com", "password": "s3cret-pass"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login mapper.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = do(router, http.MethodGet, "/api/users", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")

	rec = do(router, http.MethodPost, "/api/auth/logout", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/api/users", "", login.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(router, http.MethodGet, "/api/users", "", registered.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserAPI_ErrorResponses(t *testing.T) {
	router := newRouter(t)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/auth/register", registerBody, "").Code)

	rec := do(router, http.MethodPost, "/api/auth/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(router, http.MethodPost, "/api/auth/register", `{"name": "Ana", "email": "bad", "password": "x"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(router, http.MethodPost, "/api/auth/login", `{"email": "ana@example.com", "password": "wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(router, http.MethodGet, "/api/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(router, http.MethodGet, "/api/users", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
