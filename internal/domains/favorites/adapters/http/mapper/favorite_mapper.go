package mapper

import (
	"time"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
)

// SaveFavoriteRequest is the JSON body of POST /api/favorites.
type SaveFavoriteRequest struct {
	GifID string `json:"gif_id" binding:"required"`
	Alias string `json:"alias" binding:"required,max=255"`
}

// ListFavoritesQuery binds GET /api/favorites query parameters.
type ListFavoritesQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type Favorite struct {
	ID        string    `json:"id"`
	GifID     string    `json:"gif_id"`
	Alias     string    `json:"alias"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Pagination struct {
	TotalCount int64 `json:"total_count"`
	Count      int   `json:"count"`
	Offset     int   `json:"offset"`
}

type Page struct {
	Data       []Favorite `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func FromDomainFavorite(f *domain.Favorite) Favorite {
	if f == nil {
		return Favorite{}
	}
	return Favorite{
		ID:        f.ID.String(),
		GifID:     f.GifID,
		Alias:     f.Alias,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func FromDomainPage(p *domain.Page) Page {
	if p == nil {
		return Page{Data: []Favorite{}}
	}
	data := make([]Favorite, 0, len(p.Items))
	for _, item := range p.Items {
		data = append(data, FromDomainFavorite(item))
	}
	return Page{
		Data: data,
		Pagination: Pagination{
			TotalCount: p.TotalCount,
			Count:      len(data),
			Offset:     p.Offset,
		},
	}
}
