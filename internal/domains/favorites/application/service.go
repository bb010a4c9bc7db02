package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
)

// Service implements the favorites use cases.
type Service struct {
	repo    ports.Repository
	catalog ports.GifCatalog
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the repository and catalog. A nil catalog skips the
// existence check; the Temporal persist activity runs that way because the
// workflow resolves the GIF in an earlier activity.
func NewService(repo ports.Repository, catalog ports.GifCatalog, opts ...Option) *Service {
	s := &Service{repo: repo, catalog: catalog, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Add(ctx context.Context, input ports.AddFavoriteInput) (*domain.Favorite, error) {
	favorite, err := domain.NewFavorite(input.UserID, input.GifID, input.Alias, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if s.catalog != nil {
		if err := s.catalog.Resolve(ctx, favorite.GifID); err != nil {
			return nil, err
		}
	}
	return s.repo.Upsert(ctx, favorite)
}

func (s *Service) Remove(ctx context.Context, userID uuid.UUID, gifID string) error {
	gifID, err := domain.NormalizeGifID(gifID)
	if err != nil {
		return mapError(err)
	}
	return s.repo.Delete(ctx, userID, gifID)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.Page, error) {
	if userID == uuid.Nil {
		return nil, mapError(domain.ErrMissingUser)
	}
	page, err := page.Normalize()
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.List(ctx, userID, page)
}

func (s *Service) Exists(ctx context.Context, userID uuid.UUID, gifID string) (bool, error) {
	gifID, err := domain.NormalizeGifID(gifID)
	if err != nil {
		return false, mapError(err)
	}
	return s.repo.Exists(ctx, userID, gifID)
}

var _ ports.Service = (*Service)(nil)
