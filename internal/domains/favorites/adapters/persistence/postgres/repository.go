package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists favorites in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB
// lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type favoriteRecord struct {
	ID        string    `gorm:"primaryKey;column:id"`
	UserID    string    `gorm:"column:user_id"`
	GifID     string    `gorm:"column:gif_id"`
	Alias     string    `gorm:"column:alias"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (favoriteRecord) TableName() string { return "favorites" }

func (r *Repository) Upsert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, errors.New("favorite is nil")
	}
	record := toRecord(favorite)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "gif_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"alias", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	var stored favoriteRecord
	if err := r.scope(ctx, favorite.UserID, favorite.GifID).First(&stored).Error; err != nil {
		return nil, err
	}
	return stored.toDomain()
}

func (r *Repository) Delete(ctx context.Context, userID uuid.UUID, gifID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.scope(ctx, userID, gifID).Delete(&favoriteRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.Page, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var total int64
	base := r.db.WithContext(ctx).Model(&favoriteRecord{}).Where("user_id = ?", userID.String())
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}
	var records []favoriteRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC, gif_id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	result := &domain.Page{Items: make([]*domain.Favorite, 0, len(records)), TotalCount: total, Offset: page.Offset}
	for i := range records {
		favorite, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, favorite)
	}
	return result, nil
}

func (r *Repository) Exists(ctx context.Context, userID uuid.UUID, gifID string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.scope(ctx, userID, gifID).Model(&favoriteRecord{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) scope(ctx context.Context, userID uuid.UUID, gifID string) *gorm.DB {
	return r.db.WithContext(ctx).Where("user_id = ? AND gif_id = ?", userID.String(), gifID)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres favorites repository not configured")
	}
	return nil
}

func toRecord(f *domain.Favorite) favoriteRecord {
	return favoriteRecord{
		ID:        f.ID.String(),
		UserID:    f.UserID.String(),
		GifID:     f.GifID,
		Alias:     f.Alias,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (r favoriteRecord) toDomain() (*domain.Favorite, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.Favorite{
		ID:        id,
		UserID:    userID,
		GifID:     r.GifID,
		Alias:     r.Alias,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
