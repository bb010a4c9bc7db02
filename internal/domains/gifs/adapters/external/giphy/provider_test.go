package giphy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	giphyclient "github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
)

type fakeCatalog struct {
	collection giphyclient.GifCollection
	gif        giphyclient.Gif
	err        error
	lastQuery  string
}

func (f *fakeCatalog) Search(_ context.Context, query string, _, _ int) (giphyclient.GifCollection, error) {
	f.lastQuery = query
	return f.collection, f.err
}

func (f *fakeCatalog) Trending(context.Context, int, int) (giphyclient.GifCollection, error) {
	return f.collection, f.err
}

func (f *fakeCatalog) GetByID(context.Context, string) (giphyclient.Gif, error) {
	return f.gif, f.err
}

func TestProvider_MapsCollections(t *testing.T) {
	catalog := &fakeCatalog{collection: giphyclient.GifCollection{
		Items:      []giphyclient.Gif{{ID: "a", Title: "A"}},
		TotalCount: 40,
		Count:      1,
		Offset:     5,
	}}
	provider := NewProvider(catalog)
	query, err := domain.NewSearchQuery("cats", domain.PageRequest{Offset: 5})
	require.NoError(t, err)

	page, err := provider.Search(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "cats", catalog.lastQuery)
	assert.Equal(t, 40, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.NotNil(t, page.Items[0].Images)
}

func TestProvider_TranslatesErrorKinds(t *testing.T) {
	cases := []struct {
		kind giphyclient.ErrorKind
		want error
	}{
		{giphyclient.KindNotFound, ports.ErrNotFound},
		{giphyclient.KindRequest, ports.ErrUnavailable},
		{giphyclient.KindResponse, ports.ErrUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			upstream := &giphyclient.Error{Kind: tc.kind, Message: "boom"}
			provider := NewProvider(&fakeCatalog{err: upstream})

			_, err := provider.GetByID(context.Background(), "abc")
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, upstream)
		})
	}
}

func TestProvider_RequiresClient(t *testing.T) {
	_, err := NewProvider(nil).Trending(context.Background(), domain.PageRequest{Limit: 1})
	require.Error(t, err)
}
