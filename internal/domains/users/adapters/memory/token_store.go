package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

// TokenStore is an in-memory TokenStore implementation.
type TokenStore struct {
	tokens sync.Map
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (s *TokenStore) Save(_ context.Context, token domain.AccessToken) error {
	s.tokens.Store(token.ID, token)
	return nil
}

func (s *TokenStore) Get(_ context.Context, id uuid.UUID) (*domain.AccessToken, error) {
	value, ok := s.tokens.Load(id)
	if !ok {
		return nil, ports.ErrTokenNotFound
	}
	token := value.(domain.AccessToken)
	return &token, nil
}

func (s *TokenStore) Revoke(_ context.Context, id uuid.UUID, at time.Time) error {
	value, ok := s.tokens.Load(id)
	if !ok {
		return ports.ErrTokenNotFound
	}
	token := value.(domain.AccessToken)
	token.RevokedAt = &at
	s.tokens.Store(id, token)
	return nil
}

func (s *TokenStore) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	value, ok := s.tokens.Load(id)
	if !ok {
		return ports.ErrTokenNotFound
	}
	token := value.(domain.AccessToken)
	token.LastUsedAt = &at
	s.tokens.Store(id, token)
	return nil
}

func (s *TokenStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	s.tokens.Range(func(key, value any) bool {
		token := value.(domain.AccessToken)
		if !token.Active(now) {
			s.tokens.Delete(key)
			purged++
		}
		return true
	})
	return purged, nil
}
