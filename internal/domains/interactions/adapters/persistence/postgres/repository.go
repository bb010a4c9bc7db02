package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists interactions in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type interactionRecord struct {
	ID           string    `gorm:"primaryKey;column:id"`
	UserID       *string   `gorm:"column:user_id"`
	Service      string    `gorm:"column:service"`
	RequestBody  string    `gorm:"column:request_body"`
	ResponseCode int       `gorm:"column:response_code"`
	ResponseBody string    `gorm:"column:response_body"`
	IPAddress    string    `gorm:"column:ip_address"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (interactionRecord) TableName() string { return "interactions" }

func (r *Repository) Save(ctx context.Context, interaction *domain.Interaction) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	record := interactionRecord{
		ID:           interaction.ID.String(),
		Service:      interaction.Service,
		RequestBody:  interaction.RequestBody,
		ResponseCode: interaction.ResponseCode,
		ResponseBody: interaction.ResponseBody,
		IPAddress:    interaction.IPAddress,
		CreatedAt:    interaction.CreatedAt,
	}
	if interaction.UserID != nil {
		id := interaction.UserID.String()
		record.UserID = &id
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]*domain.Interaction, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []interactionRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Interaction, 0, len(records))
	for _, rec := range records {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, err
		}
		interaction := &domain.Interaction{
			ID:           id,
			Service:      rec.Service,
			RequestBody:  rec.RequestBody,
			ResponseCode: rec.ResponseCode,
			ResponseBody: rec.ResponseBody,
			IPAddress:    rec.IPAddress,
			CreatedAt:    rec.CreatedAt,
		}
		if rec.UserID != nil {
			userID, err := uuid.Parse(*rec.UserID)
			if err != nil {
				return nil, err
			}
			interaction.UserID = &userID
		}
		result = append(result, interaction)
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres interactions repository not configured")
	}
	return nil
}
