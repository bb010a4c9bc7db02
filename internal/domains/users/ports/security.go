package ports

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims are the claims carried by an issued bearer token.
type TokenClaims struct {
	UserID    uuid.UUID
	TokenID   uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner issues and parses bearer tokens.
type TokenSigner interface {
	Sign(claims TokenClaims) (string, error)
	Parse(raw string) (TokenClaims, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
