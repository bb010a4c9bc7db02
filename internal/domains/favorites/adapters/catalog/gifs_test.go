package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	gifdomain "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	gifports "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
)

type stubGifs struct{ err error }

func (s stubGifs) Search(context.Context, string, gifdomain.PageRequest) (*gifdomain.Page, error) {
	return nil, s.err
}

func (s stubGifs) Trending(context.Context, gifdomain.PageRequest) (*gifdomain.Page, error) {
	return nil, s.err
}

func (s stubGifs) GetByID(_ context.Context, id string) (*gifdomain.Gif, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &gifdomain.Gif{ID: id}, nil
}

func TestGifsCatalog_Resolve(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, NewGifsCatalog(stubGifs{}).Resolve(ctx, "abc"))
	require.ErrorIs(t, NewGifsCatalog(stubGifs{err: gifports.ErrNotFound}).Resolve(ctx, "abc"), ports.ErrGifNotFound)

	err := NewGifsCatalog(stubGifs{err: gifports.ErrUnavailable}).Resolve(ctx, "abc")
	require.ErrorIs(t, err, gifports.ErrUnavailable)
	require.NotErrorIs(t, err, ports.ErrGifNotFound)
}
