package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	gifports "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
)

// GifsCatalog resolves GIFs through the gifs bounded context.
type GifsCatalog struct {
	gifs gifports.Service
}

func NewGifsCatalog(gifs gifports.Service) *GifsCatalog {
	return &GifsCatalog{gifs: gifs}
}

func (c *GifsCatalog) Resolve(ctx context.Context, gifID string) error {
	if c == nil || c.gifs == nil {
		return errors.New("gif catalog not configured")
	}
	if _, err := c.gifs.GetByID(ctx, gifID); err != nil {
		if errors.Is(err, gifports.ErrNotFound) {
			return fmt.Errorf("%w: %s", ports.ErrGifNotFound, gifID)
		}
		return err
	}
	return nil
}

var _ ports.GifCatalog = (*GifsCatalog)(nil)
