package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
)

// RecordInput describes a finished API request.
type RecordInput struct {
	UserID       *uuid.UUID
	Path         string
	RequestBody  string
	ResponseCode int
	ResponseBody string
	IPAddress    string
}

// Service records API interactions.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*domain.Interaction, error)
	Recent(ctx context.Context, limit int) ([]*domain.Interaction, error)
}
