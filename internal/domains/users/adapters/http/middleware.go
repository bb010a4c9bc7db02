package userhttp

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	userports "github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
	apierrors "github.com/AndyCHK/giphy-api-app/internal/shared/errors"
)

const (
	userIDKey  = "auth.user_id"
	tokenIDKey = "auth.token_id"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user and token ids on the gin context.
func RequireAuth(service userports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		verification := service.VerifyToken(c.Request.Context(), BearerToken(c))
		if !verification.Valid {
			apierrors.DefaultResponder.Unauthorized(c, verification.Error)
			return
		}
		SetIdentity(c, verification.UserID, verification.TokenID)
		c.Next()
	}
}

// SetIdentity records the authenticated caller on the context.
func SetIdentity(c *gin.Context, userID, tokenID uuid.UUID) {
	c.Set(userIDKey, userID)
	c.Set(tokenIDKey, tokenID)
}

// UserIDFrom returns the authenticated user id, if any.
func UserIDFrom(c *gin.Context) (uuid.UUID, bool) {
	return idFrom(c, userIDKey)
}

// TokenIDFrom returns the id of the token the request was authenticated with.
func TokenIDFrom(c *gin.Context) (uuid.UUID, bool) {
	return idFrom(c, tokenIDKey)
}

func idFrom(c *gin.Context, key string) (uuid.UUID, bool) {
	value, ok := c.Get(key)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
