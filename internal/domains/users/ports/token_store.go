package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/domain"
)

var ErrTokenNotFound = errors.New("access token not found")

// TokenStore persists issued access token metadata.
type TokenStore interface {
	Save(ctx context.Context, token domain.AccessToken) error
	Get(ctx context.Context, id uuid.UUID) (*domain.AccessToken, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	// PurgeExpired deletes tokens expired or revoked before now and reports how many.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
