package interactionhttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/adapters/memory"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
	userports "github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

type stubUsers struct {
	userports.Service
	token  string
	userID uuid.UUID
}

func (s stubUsers) VerifyToken(_ context.Context, raw string) userports.Verification {
	if raw != s.token {
		return userports.Verification{Error: "token not recognized"}
	}
	return userports.Verification{Valid: true, UserID: s.userID, TokenID: uuid.New()}
}

type failingService struct{}

func (failingService) Record(context.Context, ports.RecordInput) (*domain.Interaction, error) {
	return nil, errors.New("database down")
}

func (failingService) Recent(context.Context, int) ([]*domain.Interaction, error) { return nil, nil }

func newRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recorder(cfg))
	router.POST("/api/login", func(c *gin.Context) {
		var body map[string]any
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusOK, gin.H{"email": body["email"]})
	})
	router.GET("/api/gifs/search", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

func TestRecorder_CapturesRequestAndResponse(t *testing.T) {
	repo := memory.NewRepository()
	userID := uuid.New()
	router := newRouter(Config{
		Service: application.NewService(repo),
		Users:   stubUsers{token: "good", userID: userID},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/gifs/search?q=cats&limit=5", nil)
	req.Header.Set("Authorization", "Bearer good")
	req.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	recent, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	got := recent[0]
	assert.Equal(t, "gifs/search", got.Service)
	assert.JSONEq(t, `{"q":"cats","limit":"5"}`, got.RequestBody)
	assert.Equal(t, http.StatusOK, got.ResponseCode)
	assert.JSONEq(t, `{"data":[]}`, got.ResponseBody)
	assert.Equal(t, "203.0.113.9", got.IPAddress)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
}

func TestRecorder_RedactsPasswordsAndKeepsBodyReadable(t *testing.T) {
	repo := memory.NewRepository()
	router := newRouter(Config{Service: application.NewService(repo)})

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"a@example.com","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.JSONEq(t, `{"email":"a@example.com"}`, rec.Body.String())
	recent, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.NotContains(t, recent[0].RequestBody, "hunter22")
	assert.Contains(t, recent[0].RequestBody, redacted)
	assert.Nil(t, recent[0].UserID)
}

func TestRecorder_SkipsNonAPIPaths(t *testing.T) {
	repo := memory.NewRepository()
	router := newRouter(Config{Service: application.NewService(repo)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	recent, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecorder_FailuresDoNotAffectResponse(t *testing.T) {
	router := newRouter(Config{Service: failingService{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gifs/search?q=cats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}
