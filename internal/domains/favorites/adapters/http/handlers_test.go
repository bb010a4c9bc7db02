package favoritehttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/memory"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/workflows"
	favoriteapp "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	userhttp "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/http"
)

type knownGifs map[string]bool

func (k knownGifs) Resolve(_ context.Context, gifID string) error {
	if !k[gifID] {
		return ports.ErrGifNotFound
	}
	return nil
}

func newRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := favoriteapp.NewService(memory.NewRepository(), knownGifs{"abc": true, "xyz": true})
	api := NewFavoriteAPI(service, workflows.NewInlineFavoriteWorkflows(service), nil)

	router := gin.New()
	group := router.Group("/api/favorites", func(c *gin.Context) {
		if userID != uuid.Nil {
			userhttp.SetIdentity(c, userID, uuid.New())
		}
	})
	group.GET("", api.List)
	group.POST("", api.Save)
	group.DELETE("/:id", api.Remove)
	return router
}

func do(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFavoriteAPI_SaveListRemove(t *testing.T) {
	router := newRouter(uuid.New())

	rec := do(router, http.MethodPost, "/api/favorites", `{"gif_id": "abc", "alias": "wave"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(router, http.MethodPost, "/api/favorites", `{"gif_id": "xyz", "alias": "dance"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(router, http.MethodGet, "/api/favorites?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_count":2`)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = do(router, http.MethodDelete, "/api/favorites/abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(router, http.MethodDelete, "/api/favorites/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoriteAPI_Validation(t *testing.T) {
	router := newRouter(uuid.New())

	rec := do(router, http.MethodPost, "/api/favorites", `{"gif_id": "abc"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = do(router, http.MethodPost, "/api/favorites", `{"gif_id": "abc", "alias": "`+strings.Repeat("a", 256)+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = do(router, http.MethodPost, "/api/favorites", `{"gif_id": "unknown", "alias": "x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(router, http.MethodGet, "/api/favorites?limit=500", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestFavoriteAPI_RequiresIdentity(t *testing.T) {
	router := newRouter(uuid.Nil)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/favorites", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/api/favorites", `{}`).Code)
}
