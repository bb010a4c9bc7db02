package giphy

import (
	giphyclient "github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
)

// ToDomainGif converts a catalog record into the domain shape.
func ToDomainGif(g giphyclient.Gif) domain.Gif {
	images := g.Images
	if images == nil {
		images = map[string]any{}
	}
	return domain.Gif{
		ID:         g.ID,
		Title:      g.Title,
		URL:        g.URL,
		Images:     images,
		Username:   g.Username,
		Source:     g.Source,
		Rating:     g.Rating,
		ImportedAt: g.ImportedAt,
	}
}

// ToDomainPage converts a catalog collection into a domain page.
func ToDomainPage(c giphyclient.GifCollection) *domain.Page {
	items := make([]domain.Gif, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ToDomainGif(item))
	}
	return &domain.Page{
		Items:      items,
		TotalCount: c.TotalCount,
		Count:      c.Count,
		Offset:     c.Offset,
	}
}
