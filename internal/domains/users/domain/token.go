package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken records an issued bearer token. The token string itself is a
// signed JWT whose jti equals ID; only the metadata is persisted.
type AccessToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

// Active reports whether the token can still authenticate at now.
func (t AccessToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
