package giphy

import (
	"context"
	"errors"
	"fmt"

	giphyclient "github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
)

// Catalog is the subset of the GIPHY client the provider needs.
type Catalog interface {
	Search(ctx context.Context, query string, limit, offset int) (giphyclient.GifCollection, error)
	Trending(ctx context.Context, limit, offset int) (giphyclient.GifCollection, error)
	GetByID(ctx context.Context, id string) (giphyclient.Gif, error)
}

// Provider implements the outbound catalog port on top of the GIPHY client.
type Provider struct {
	client Catalog
}

func NewProvider(client Catalog) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Search(ctx context.Context, query domain.SearchQuery) (*domain.Page, error) {
	if err := p.ensureClient(); err != nil {
		return nil, err
	}
	result, err := p.client.Search(ctx, query.Query, query.Page.Limit, query.Page.Offset)
	if err != nil {
		return nil, translate(err)
	}
	return ToDomainPage(result), nil
}

func (p *Provider) Trending(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	if err := p.ensureClient(); err != nil {
		return nil, err
	}
	result, err := p.client.Trending(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, translate(err)
	}
	return ToDomainPage(result), nil
}

func (p *Provider) GetByID(ctx context.Context, id string) (*domain.Gif, error) {
	if err := p.ensureClient(); err != nil {
		return nil, err
	}
	result, err := p.client.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	gif := ToDomainGif(result)
	return &gif, nil
}

func (p *Provider) ensureClient() error {
	if p == nil || p.client == nil {
		return errors.New("giphy provider not configured")
	}
	return nil
}

// translate maps client error kinds onto the port sentinels, keeping the
// client error in the chain.
func translate(err error) error {
	kind, ok := giphyclient.KindOf(err)
	if !ok {
		return err
	}
	switch kind {
	case giphyclient.KindNotFound:
		return fmt.Errorf("%w: %w", ports.ErrNotFound, err)
	case giphyclient.KindRequest:
		return fmt.Errorf("%w: %w", ports.ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ports.ErrUpstream, err)
	}
}

var _ ports.Provider = (*Provider)(nil)
