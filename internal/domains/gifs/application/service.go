package application

import (
	"context"
	"errors"

	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
)

// Service validates GIF requests and delegates to the catalog provider.
type Service struct {
	provider ports.Provider
}

func NewService(provider ports.Provider) *Service {
	return &Service{provider: provider}
}

// Search returns a page of matches. A search the catalog answers with "not
// found" is an empty page, not an error.
func (s *Service) Search(ctx context.Context, query string, page domain.PageRequest) (*domain.Page, error) {
	q, err := domain.NewSearchQuery(query, page)
	if err != nil {
		return nil, mapError(err)
	}
	result, err := s.provider.Search(ctx, q)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domain.EmptyPage(q.Page.Offset), nil
		}
		return nil, err
	}
	return result, nil
}

func (s *Service) Trending(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, mapError(err)
	}
	return s.provider.Trending(ctx, page)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Gif, error) {
	id, err := domain.NormalizeID(id)
	if err != nil {
		return nil, mapError(err)
	}
	return s.provider.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
