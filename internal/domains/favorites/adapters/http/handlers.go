package favoritehttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/http/mapper"
	favoriteapp "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	userhttp "github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/http"
	apierrors "github.com/AndyCHK/giphy-api-app/internal/shared/errors"
)

// FavoriteAPI wires HTTP transport with the favorites service and workflows.
type FavoriteAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	responder *apierrors.ChainedResponder
}

// NewFavoriteAPI creates a FavoriteAPI. Saves go through workflows; reads and
// deletes go straight to the service.
func NewFavoriteAPI(service ports.Service, workflows ports.WorkflowOrchestrator, responder *apierrors.ChainedResponder) *FavoriteAPI {
	if responder == nil {
		responder = apierrors.NewChainedResponder("", ErrorMapper)
	}
	return &FavoriteAPI{service: service, workflows: workflows, responder: responder}
}

// Post /api/favorites
func (api *FavoriteAPI) Save(c *gin.Context) {
	userID, ok := userhttp.UserIDFrom(c)
	if !ok {
		api.responder.Unauthorized(c, "authentication required")
		return
	}
	var payload mapper.SaveFavoriteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BindingFailed(c, err)
		return
	}
	favorite, err := api.workflows.AddFavorite(c.Request.Context(), ports.AddFavoriteInput{
		UserID: userID,
		GifID:  payload.GifID,
		Alias:  payload.Alias,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": mapper.FromDomainFavorite(favorite)})
}

// Get /api/favorites
func (api *FavoriteAPI) List(c *gin.Context) {
	userID, ok := userhttp.UserIDFrom(c)
	if !ok {
		api.responder.Unauthorized(c, "authentication required")
		return
	}
	var query mapper.ListFavoritesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		api.responder.BindingFailed(c, err)
		return
	}
	page, err := api.service.List(c.Request.Context(), userID, domain.PageRequest{Limit: query.Limit, Offset: query.Offset})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainPage(page))
}

// Delete /api/favorites/:id
// The path id is the GIF id.
func (api *FavoriteAPI) Remove(c *gin.Context) {
	userID, ok := userhttp.UserIDFrom(c)
	if !ok {
		api.responder.Unauthorized(c, "authentication required")
		return
	}
	if err := api.service.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}

// ErrorMapper translates favorites errors into problems.
func ErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, favoriteapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(apierrors.DetailOf(err)), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("favorite not found"), true
	case errors.Is(err, ports.ErrGifNotFound):
		return apierrors.ErrNotFound.WithDetail("GIF not found"), true
	}
	return apierrors.ProblemDetail{}, false
}
