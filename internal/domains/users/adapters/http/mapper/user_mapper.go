package mapper

import (
	"time"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/domain"
	userports "github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

// RegisterRequest is the JSON body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string   `json:"name" binding:"required,max=255"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles"`
}

// LoginRequest is the JSON body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// User is the public shape of a user. The password hash never leaves the domain.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ToRegisterInput(req RegisterRequest) userports.RegisterInput {
	return userports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	}
}

// FromDomainUser converts a domain user into its transport representation.
func FromDomainUser(user *domain.User) User {
	if user == nil {
		return User{}
	}
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return User{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}

func FromDomainUsers(users []*domain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}

func FromAuthResult(result *userports.AuthResult) AuthResponse {
	if result == nil {
		return AuthResponse{}
	}
	return AuthResponse{
		User:      FromDomainUser(result.User),
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresAt: result.ExpiresAt,
	}
}
