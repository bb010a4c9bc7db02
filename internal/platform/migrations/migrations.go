package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&accessTokenRecord{},
		&favoriteRecord{},
		&interactionRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string         `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name         string         `gorm:"column:name;size:255"`
	Email        string         `gorm:"column:email;size:255;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash"`
	Roles        pq.StringArray `gorm:"column:roles;type:text[]"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Access token schema mirrors the token store.
type accessTokenRecord struct {
	ID         string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	UserID     string     `gorm:"column:user_id;type:varchar(36);index"`
	Name       string     `gorm:"column:name;size:255"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;index"`
	RevokedAt  *time.Time `gorm:"column:revoked_at"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (accessTokenRecord) TableName() string { return "access_tokens" }

// Favorite schema mirrors the favorites Postgres adapter.
type favoriteRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);uniqueIndex:idx_favorites_user_gif"`
	GifID     string    `gorm:"column:gif_id;size:255;uniqueIndex:idx_favorites_user_gif"`
	Alias     string    `gorm:"column:alias;size:255"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (favoriteRecord) TableName() string { return "favorites" }

// Interaction schema mirrors the interactions Postgres adapter.
type interactionRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	UserID       *string   `gorm:"column:user_id;type:varchar(36);index"`
	Service      string    `gorm:"column:service;size:255;index"`
	RequestBody  string    `gorm:"column:request_body;type:text"`
	ResponseCode int       `gorm:"column:response_code"`
	ResponseBody string    `gorm:"column:response_body;type:text"`
	IPAddress    string    `gorm:"column:ip_address;size:45"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

func (interactionRecord) TableName() string { return "interactions" }
