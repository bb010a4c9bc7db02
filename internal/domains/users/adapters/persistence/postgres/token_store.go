package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/domain"
	userports "github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

// TokenStore persists access token metadata in PostgreSQL.
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore wires a PostgreSQL-backed token store. Caller owns DB lifecycle.
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

type accessTokenRecord struct {
	ID         string     `gorm:"primaryKey;column:id"`
	UserID     string     `gorm:"column:user_id"`
	Name       string     `gorm:"column:name"`
	ExpiresAt  time.Time  `gorm:"column:expires_at"`
	RevokedAt  *time.Time `gorm:"column:revoked_at"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (accessTokenRecord) TableName() string { return "access_tokens" }

func (s *TokenStore) Save(ctx context.Context, token domain.AccessToken) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	rec := accessTokenRecord{
		ID:         token.ID.String(),
		UserID:     token.UserID.String(),
		Name:       token.Name,
		ExpiresAt:  token.ExpiresAt,
		RevokedAt:  token.RevokedAt,
		LastUsedAt: token.LastUsedAt,
		CreatedAt:  token.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *TokenStore) Get(ctx context.Context, id uuid.UUID) (*domain.AccessToken, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec accessTokenRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userports.ErrTokenNotFound
		}
		return nil, err
	}
	userID, err := uuid.Parse(rec.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.AccessToken{
		ID:         id,
		UserID:     userID,
		Name:       rec.Name,
		ExpiresAt:  rec.ExpiresAt,
		RevokedAt:  rec.RevokedAt,
		LastUsedAt: rec.LastUsedAt,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

func (s *TokenStore) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.update(ctx, id, "revoked_at", at)
}

func (s *TokenStore) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.update(ctx, id, "last_used_at", at)
}

// PurgeExpired removes expired and revoked tokens. Run from the token-purger command.
func (s *TokenStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).
		Where("expires_at <= ? OR revoked_at IS NOT NULL", now).
		Delete(&accessTokenRecord{})
	return result.RowsAffected, result.Error
}

func (s *TokenStore) update(ctx context.Context, id uuid.UUID, column string, at time.Time) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&accessTokenRecord{}).
		Where("id = ?", id.String()).
		Update(column, at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userports.ErrTokenNotFound
	}
	return nil
}

func (s *TokenStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres token store not configured")
	}
	return nil
}

var _ userports.TokenStore = (*TokenStore)(nil)
