package ports

import (
	"context"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
)

// Repository stores audited interactions.
type Repository interface {
	Save(ctx context.Context, interaction *domain.Interaction) error
	// Recent returns up to limit interactions, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Interaction, error)
}
