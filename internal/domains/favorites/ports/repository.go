package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
)

// ErrNotFound is returned when the user has no favorite for the GIF.
var ErrNotFound = errors.New("favorite not found")

// Repository abstracts favorite persistence.
type Repository interface {
	// Upsert stores favorite. When the user already saved the GIF, only the
	// alias and UpdatedAt change and the stored record is returned.
	Upsert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error)
	Delete(ctx context.Context, userID uuid.UUID, gifID string) error
	List(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.Page, error)
	Exists(ctx context.Context, userID uuid.UUID, gifID string) (bool, error)
}
