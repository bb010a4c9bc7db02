package ports

import (
	"context"
	"errors"
)

// ErrGifNotFound is returned when the catalog does not know the GIF being saved.
var ErrGifNotFound = errors.New("gif does not exist")

// GifCatalog confirms GIFs exist before they are saved.
type GifCatalog interface {
	// Resolve returns nil when the GIF exists, ErrGifNotFound when it does
	// not, and any other error when the catalog could not answer.
	Resolve(ctx context.Context, gifID string) error
}
