package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

// DefaultTokenTTL is used when no token lifetime is configured.
const DefaultTokenTTL = 24 * time.Hour

const defaultTokenName = "auth_token"

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenStore
	signer ports.TokenSigner
	hasher ports.PasswordHasher
	ttl    time.Duration
	now    func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, tokens ports.TokenStore, signer ports.TokenSigner, hasher ports.PasswordHasher, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		tokens: tokens,
		signer: signer,
		hasher: hasher,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := domain.NewUser(input.Name, input.Email, input.Roles)
	if err != nil {
		return nil, mapError(err)
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, mapError(ports.ErrEmailTaken)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	now := s.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return s.issueToken(ctx, created)
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	return s.issueToken(ctx, user)
}

func (s *Service) Logout(ctx context.Context, tokenID uuid.UUID) error {
	if tokenID == uuid.Nil {
		return ports.ErrTokenNotFound
	}
	return s.tokens.Revoke(ctx, tokenID, s.now().UTC())
}

// VerifyToken checks signature, expiry, registration and revocation of raw,
// and that its owner still exists.
func (s *Service) VerifyToken(ctx context.Context, raw string) ports.Verification {
	if raw == "" {
		return ports.Verification{Error: "token not provided"}
	}
	claims, err := s.signer.Parse(raw)
	if err != nil {
		return ports.Verification{Error: "invalid token"}
	}
	if claims.TokenID == uuid.Nil {
		return ports.Verification{Error: "token has no identifier"}
	}
	now := s.now().UTC()
	token, err := s.tokens.Get(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return ports.Verification{Error: "token not recognized"}
		}
		return ports.Verification{Error: "token lookup failed"}
	}
	if token.UserID != claims.UserID {
		return ports.Verification{Error: "token does not match its owner"}
	}
	if !token.Active(now) {
		return ports.Verification{Error: "token expired or revoked"}
	}
	if _, err := s.repo.GetByID(ctx, token.UserID); err != nil {
		return ports.Verification{Error: "user not found"}
	}
	_ = s.tokens.Touch(ctx, token.ID, now)
	return ports.Verification{Valid: true, UserID: token.UserID, TokenID: token.ID}
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) issueToken(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	now := s.now().UTC()
	token := domain.AccessToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      defaultTokenName,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	raw, err := s.signer.Sign(ports.TokenClaims{
		UserID:    user.ID,
		TokenID:   token.ID,
		IssuedAt:  now,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &ports.AuthResult{User: user, Token: raw, ExpiresAt: token.ExpiresAt}, nil
}

var _ ports.Service = (*Service)(nil)
