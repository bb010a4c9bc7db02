package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AndyCHK/giphy-api-app/internal/domains/users/ports"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTSigner_SignAndParse(t *testing.T) {
	signer, err := NewJWTSigner(testSecret)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	claims := ports.TokenClaims{
		UserID:    uuid.New(),
		TokenID:   uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	parsed, err := signer.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, claims, parsed)
}

func TestJWTSigner_RejectsExpiredAndForeignTokens(t *testing.T) {
	signer, err := NewJWTSigner(testSecret)
	require.NoError(t, err)
	other, err := NewJWTSigner("fedcba9876543210fedcba9876543210")
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expired, err := signer.Sign(ports.TokenClaims{UserID: uuid.New(), TokenID: uuid.New(), IssuedAt: past, ExpiresAt: past.Add(time.Hour)})
	require.NoError(t, err)
	_, err = signer.Parse(expired)
	require.Error(t, err)

	foreign, err := other.Sign(ports.TokenClaims{UserID: uuid.New(), TokenID: uuid.New(), IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = signer.Parse(foreign)
	require.Error(t, err)

	_, err = signer.Parse("not.a.jwt")
	require.Error(t, err)
}

func TestNewJWTSigner_RequiresLongSecret(t *testing.T) {
	_, err := NewJWTSigner("short")
	require.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	require.NoError(t, hasher.Compare(hash, "correct horse"))
	require.Error(t, hasher.Compare(hash, "wrong horse"))
}
