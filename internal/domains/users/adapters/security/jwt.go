package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

const issuer = "giphy-api-app"

// JWTSigner signs HS256 bearer tokens with a shared secret.
type JWTSigner struct {
	secret []byte
	leeway time.Duration
}

// NewJWTSigner builds a signer. The secret must be at least 32 bytes.
func NewJWTSigner(secret string) (*JWTSigner, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt secret must be at least 32 bytes")
	}
	return &JWTSigner{secret: []byte(secret), leeway: 30 * time.Second}, nil
}

type tokenClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(claims ports.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: claims.UserID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.TokenID.String(),
			Issuer:    issuer,
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return token.SignedString(s.secret)
}

func (s *JWTSigner) Parse(raw string) (ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
	)
	if err != nil {
		return ports.TokenClaims{}, err
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return ports.TokenClaims{}, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("parse uid: %w", err)
	}
	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("parse jti: %w", err)
	}
	out := ports.TokenClaims{UserID: userID, TokenID: tokenID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out, nil
}

var _ ports.TokenSigner = (*JWTSigner)(nil)
