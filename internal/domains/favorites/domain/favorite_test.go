package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFavorite(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	user := uuid.New()

	f, err := NewFavorite(user, " abc ", " party ", now)
	require.NoError(t, err)
	assert.Equal(t, "abc", f.GifID)
	assert.Equal(t, "party", f.Alias)
	assert.NotEqual(t, uuid.Nil, f.ID)

	_, err = NewFavorite(uuid.Nil, "abc", "x", now)
	require.ErrorIs(t, err, ErrMissingUser)
	_, err = NewFavorite(user, "", "x", now)
	require.ErrorIs(t, err, ErrEmptyGifID)
	_, err = NewFavorite(user, "abc", "  ", now)
	require.ErrorIs(t, err, ErrEmptyAlias)
	_, err = NewFavorite(user, "abc", strings.Repeat("a", MaxAliasLength+1), now)
	require.ErrorIs(t, err, ErrAliasTooLong)
}

func TestPageRequest_Normalize(t *testing.T) {
	page, err := PageRequest{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, page.Limit)

	_, err = PageRequest{Limit: MaxLimit + 1}.Normalize()
	require.ErrorIs(t, err, ErrInvalidLimit)
	_, err = PageRequest{Limit: 1, Offset: -1}.Normalize()
	require.ErrorIs(t, err, ErrInvalidOffset)
}
