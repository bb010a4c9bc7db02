package mapper

import "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"

// Gif is the JSON shape of a GIF record.
type Gif struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	URL        string         `json:"url"`
	Images     map[string]any `json:"images"`
	Username   string         `json:"username,omitempty"`
	Source     string         `json:"source,omitempty"`
	Rating     string         `json:"rating,omitempty"`
	ImportedAt string         `json:"import_datetime,omitempty"`
}

type Pagination struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Offset     int `json:"offset"`
}

// Page is the JSON envelope for GIF listings.
type Page struct {
	Data       []Gif      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func FromDomainGif(g domain.Gif) Gif {
	images := g.Images
	if images == nil {
		images = map[string]any{}
	}
	return Gif{
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

func FromDomainPage(p *domain.Page) Page {
	if p == nil {
		return Page{Data: []Gif{}}
	}
	data := make([]Gif, 0, len(p.Items))
	for _, item := range p.Items {
		data = append(data, FromDomainGif(item))
	}
	return Page{
		Data: data,
		Pagination: Pagination{
			TotalCount: p.TotalCount,
			Count:      p.Count,
			Offset:     p.Offset,
		},
	}
}
