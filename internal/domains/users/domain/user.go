package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLength     = 255
	MinPasswordLength = 8
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrNameTooLong   = errors.New("name must be at most 255 characters")
	ErrInvalidEmail  = errors.New("email must be a valid address")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrEmptyPassword = errors.New("password is required")
)

// User is a registered API consumer.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user with a fresh identifier, validating name and email.
func NewUser(name, email string, roles []string) (*User, error) {
	user := &User{ID: uuid.New()}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	user.SetRoles(roles)
	return user, nil
}

// SetName trims and validates the display name.
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	u.Name = name
	return nil
}

// SetEmail normalizes the address to lower case.
func (u *User) SetEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" || len(email) > MaxNameLength {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetRoles stores a de-duplicated, trimmed role list.
func (u *User) SetRoles(roles []string) {
	seen := make(map[string]struct{}, len(roles))
	cleaned := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		cleaned = append(cleaned, role)
	}
	u.Roles = cleaned
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidatePassword checks a plaintext password before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
