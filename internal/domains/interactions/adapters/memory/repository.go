package memory

import (
	"context"
	"sync"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps interactions in memory, oldest first.
type Repository struct {
	mu           sync.RWMutex
	interactions []domain.Interaction
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(_ context.Context, interaction *domain.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = append(r.interactions, *interaction)
	return nil
}

func (r *Repository) Recent(_ context.Context, limit int) ([]*domain.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Interaction, 0, limit)
	for i := len(r.interactions) - 1; i >= 0 && len(result) < limit; i-- {
		interaction := r.interactions[i]
		result = append(result, &interaction)
	}
	return result, nil
}
