package userhttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/adapters/http/mapper"
	userapp "github.com/AndyCHK/giphy-api-app/internal/domains/users/application"
	userports "github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
	apierrors "github.com/AndyCHK/giphy-api-app/internal/shared/errors"
)

// UserAPI wires HTTP transport with the users bounded context.
type UserAPI struct {
	service   userports.Service
	responder *apierrors.ChainedResponder
}

// NewUserAPI creates a UserAPI. A nil responder falls back to one carrying
// only the users error mapper.
func NewUserAPI(service userports.Service, responder *apierrors.ChainedResponder) *UserAPI {
	if responder == nil {
		responder = apierrors.NewChainedResponder("", ErrorMapper)
	}
	return &UserAPI{service: service, responder: responder}
}

// Post /api/auth/register
func (api *UserAPI) Register(c *gin.Context) {
	var payload mapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BindingFailed(c, err)
		return
	}
	result, err := api.service.Register(c.Request.Context(), mapper.ToRegisterInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromAuthResult(result))
}

// Post /api/auth/login
func (api *UserAPI) Login(c *gin.Context) {
	var payload mapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BindingFailed(c, err)
		return
	}
	result, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromAuthResult(result))
}

// Post /api/auth/logout
// Revokes the bearer token the request was authenticated with.
func (api *UserAPI) Logout(c *gin.Context) {
	tokenID, ok := TokenIDFrom(c)
	if !ok {
		api.responder.Unauthorized(c, "authentication required")
		return
	}
	if err := api.service.Logout(c.Request.Context(), tokenID); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Get /api/users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": mapper.FromDomainUsers(users)})
}

// ErrorMapper translates users application errors into problems.
func ErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(apierrors.DetailOf(err)), true
	case errors.Is(err, userapp.ErrUserAlreadyExists):
		return apierrors.ErrConflict.WithDetail("email already registered"), true
	case errors.Is(err, userapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("invalid email or password"), true
	case errors.Is(err, userports.ErrTokenNotFound):
		return apierrors.ErrUnauthorized.WithDetail("token not recognized"), true
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("user not found"), true
	}
	return apierrors.ProblemDetail{}, false
}
