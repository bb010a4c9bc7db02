package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/domain"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Roles    []string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Verification is the outcome of checking a bearer token. Error is set when
// Valid is false.
type Verification struct {
	Valid   bool
	UserID  uuid.UUID
	TokenID uuid.UUID
	Error   string
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, tokenID uuid.UUID) error
	VerifyToken(ctx context.Context, raw string) Verification
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
