package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
)

// AddFavoriteInput is the command to save a favorite. It travels as a
// Temporal payload, so it stays JSON friendly.
type AddFavoriteInput struct {
	UserID uuid.UUID `json:"user_id"`
	GifID  string    `json:"gif_id"`
	Alias  string    `json:"alias"`
}

// Service exposes favorites use cases to adapters.
type Service interface {
	Add(ctx context.Context, input AddFavoriteInput) (*domain.Favorite, error)
	Remove(ctx context.Context, userID uuid.UUID, gifID string) error
	List(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.Page, error)
	Exists(ctx context.Context, userID uuid.UUID, gifID string) (bool, error)
}
