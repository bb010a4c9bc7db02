package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
)

// Service records API interactions with bounded body sizes.
type Service struct {
	repo      ports.Repository
	maxLength int
	now       func() time.Time
}

type Option func(*Service)

// WithMaxContentLength sets the body truncation length.
func WithMaxContentLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLength = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, maxLength: domain.DefaultMaxContentLength, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Record(ctx context.Context, input ports.RecordInput) (*domain.Interaction, error) {
	interaction := &domain.Interaction{
		ID:           uuid.New(),
		UserID:       input.UserID,
		Service:      domain.ServiceName(input.Path),
		RequestBody:  domain.Truncate(input.RequestBody, s.maxLength),
		ResponseCode: input.ResponseCode,
		ResponseBody: domain.Truncate(input.ResponseBody, s.maxLength),
		IPAddress:    input.IPAddress,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Save(ctx, interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}

var _ ports.Service = (*Service)(nil)
