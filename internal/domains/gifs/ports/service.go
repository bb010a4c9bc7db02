package ports

import (
	"context"

	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
)

// Service exposes the gifs use cases to adapters.
type Service interface {
	Search(ctx context.Context, query string, page domain.PageRequest) (*domain.Page, error)
	Trending(ctx context.Context, page domain.PageRequest) (*domain.Page, error)
	GetByID(ctx context.Context, id string) (*domain.Gif, error)
}
