package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxAliasLength = 255
	DefaultLimit   = 25
	MaxLimit       = 100
)

var (
	ErrMissingUser   = errors.New("user id is required")
	ErrEmptyGifID    = errors.New("gif id is required")
	ErrEmptyAlias    = errors.New("alias is required")
	ErrAliasTooLong  = errors.New("alias must be at most 255 characters")
	ErrInvalidLimit  = errors.New("limit must be between 1 and 100")
	ErrInvalidOffset = errors.New("offset must not be negative")
)

// Favorite is a GIF a user saved under an alias. A user holds at most one
// favorite per GIF.
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	GifID     string    `json:"gif_id"`
	Alias     string    `json:"alias"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFavorite validates the inputs and assigns a fresh identifier.
func NewFavorite(userID uuid.UUID, gifID, alias string, now time.Time) (*Favorite, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	gifID, err := NormalizeGifID(gifID)
	if err != nil {
		return nil, err
	}
	f := &Favorite{ID: uuid.New(), UserID: userID, GifID: gifID, CreatedAt: now, UpdatedAt: now}
	if err := f.Rename(alias, now); err != nil {
		return nil, err
	}
	return f, nil
}

// Rename replaces the alias.
func (f *Favorite) Rename(alias string, now time.Time) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return ErrEmptyAlias
	}
	if utf8.RuneCountInString(alias) > MaxAliasLength {
		return ErrAliasTooLong
	}
	f.Alias = alias
	f.UpdatedAt = now
	return nil
}

func NormalizeGifID(gifID string) (string, error) {
	gifID = strings.TrimSpace(gifID)
	if gifID == "" {
		return "", ErrEmptyGifID
	}
	return gifID, nil
}

// Page is one page of a user's favorites, newest first.
type Page struct {
	Items      []*Favorite
	TotalCount int64
	Offset     int
}

// PageRequest is a limit/offset window; a zero limit means DefaultLimit.
type PageRequest struct {
	Limit  int
	Offset int
}

func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return p, ErrInvalidLimit
	}
	if p.Offset < 0 {
		return p, ErrInvalidOffset
	}
	return p, nil
}
