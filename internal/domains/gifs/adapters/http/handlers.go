package gifhttp

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/adapters/http/mapper"
	gifapp "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
	gifports "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
	apierrors "github.com/AndyCHK/giphy-api-app/internal/shared/errors"
)

// GifAPI wires HTTP transport with the gifs bounded context.
type GifAPI struct {
	service   gifports.Service
	responder *apierrors.ChainedResponder
}

func NewGifAPI(service gifports.Service, responder *apierrors.ChainedResponder) *GifAPI {
	if responder == nil {
		responder = apierrors.NewChainedResponder("", ErrorMapper)
	}
	return &GifAPI{service: service, responder: responder}
}

// SearchParams are the query parameters of GET /api/gifs/search.
type SearchParams struct {
	Query  string
	Limit  *int
	Offset *int
}

// Get /api/gifs/search
func (api *GifAPI) Search(c *gin.Context) {
	query := c.Request.URL.Query()
	var params SearchParams
	fields := map[string]string{}
	bind(query, "query", true, &params.Query, fields)
	bind(query, "limit", false, &params.Limit, fields)
	bind(query, "offset", false, &params.Offset, fields)
	if len(fields) > 0 {
		api.responder.Respond(c, apierrors.NewValidationProblem(fields))
		return
	}
	page, err := api.service.Search(c.Request.Context(), params.Query, pageRequest(params.Limit, params.Offset))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainPage(page))
}

// Get /api/gifs/trending
func (api *GifAPI) Trending(c *gin.Context) {
	query := c.Request.URL.Query()
	var limit, offset *int
	fields := map[string]string{}
	bind(query, "limit", false, &limit, fields)
	bind(query, "offset", false, &offset, fields)
	if len(fields) > 0 {
		api.responder.Respond(c, apierrors.NewValidationProblem(fields))
		return
	}
	page, err := api.service.Trending(c.Request.Context(), pageRequest(limit, offset))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainPage(page))
}

// Get /api/gifs/:id
func (api *GifAPI) GetByID(c *gin.Context) {
	gif, err := api.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": mapper.FromDomainGif(*gif)})
}

// bind decodes one form-style query parameter, collecting failures by name.
func bind(query url.Values, name string, required bool, dest any, fields map[string]string) {
	if err := runtime.BindQueryParameter("form", true, required, name, query, dest); err != nil {
		if required && query.Get(name) == "" {
			fields[name] = "is required"
			return
		}
		fields[name] = "must be an integer"
	}
}

// pageRequest builds the window. An explicit limit=0 is kept out of range so
// it fails validation instead of meaning "default".
func pageRequest(limit, offset *int) domain.PageRequest {
	var page domain.PageRequest
	if limit != nil {
		page.Limit = *limit
		if page.Limit == 0 {
			page.Limit = -1
		}
	}
	if offset != nil {
		page.Offset = *offset
	}
	return page
}

// ErrorMapper translates gifs application and catalog errors into problems.
func ErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, gifapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(map[string]string{fieldOf(err): apierrors.DetailOf(err)}), true
	case errors.Is(err, gifports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("GIF not found"), true
	case errors.Is(err, gifports.ErrUnavailable):
		return apierrors.ErrServiceUnavailable.WithDetail(apierrors.DetailOf(err)), true
	case errors.Is(err, gifports.ErrUpstream):
		return apierrors.ErrBadGateway.WithDetail(apierrors.DetailOf(err)), true
	}
	return apierrors.ProblemDetail{}, false
}

func fieldOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery), errors.Is(err, domain.ErrQueryTooLong):
		return "query"
	case errors.Is(err, domain.ErrInvalidLimit):
		return "limit"
	case errors.Is(err, domain.ErrInvalidOffset):
		return "offset"
	}
	return "id"
}
