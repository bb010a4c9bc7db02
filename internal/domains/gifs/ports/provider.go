package ports

import (
	"context"
	"errors"

	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
)

var (
	// ErrNotFound is returned when the catalog has no such GIF.
	ErrNotFound = errors.New("gif not found")
	// ErrUnavailable is returned when the catalog could not be reached or the
	// circuit breaker refused the call.
	ErrUnavailable = errors.New("gif catalog unavailable")
	// ErrUpstream is returned when the catalog answered with an unusable response.
	ErrUpstream = errors.New("gif catalog returned an invalid response")
)

// Provider is the outbound port to a GIF catalog.
type Provider interface {
	Search(ctx context.Context, query domain.SearchQuery) (*domain.Page, error)
	Trending(ctx context.Context, page domain.PageRequest) (*domain.Page, error)
	GetByID(ctx context.Context, id string) (*domain.Gif, error)
}
