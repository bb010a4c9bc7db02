package giphy

import "encoding/json"

// Gif is one normalized GIF record as served by the upstream catalog.
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

// GifCollection is one page of GIF records.
type GifCollection struct {
	Items      []Gif
	TotalCount int
	Offset     int
	Count      int
}

// Pagination mirrors the upstream pagination object.
type Pagination struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Offset     int `json:"offset"`
}

type collectionJSON struct {
	Data       []Gif      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewCollection builds a page whose pagination is derived from the item list.
func NewCollection(items []Gif) GifCollection {
	if items == nil {
		items = []Gif{}
	}
	return GifCollection{Items: items, TotalCount: len(items), Count: len(items)}
}

// MarshalJSON renders the collection in the upstream shape.
func (c GifCollection) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Gif{}
	}
	return json.Marshal(collectionJSON{
		Data: items,
		Pagination: Pagination{
			TotalCount: c.TotalCount,
			Count:      c.Count,
			Offset:     c.Offset,
		},
	})
}

// UnmarshalJSON accepts the shape produced by MarshalJSON.
func (c *GifCollection) UnmarshalJSON(raw []byte) error {
	var wire collectionJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	if wire.Data == nil {
		wire.Data = []Gif{}
	}
	*c = GifCollection{
		Items:      wire.Data,
		TotalCount: wire.Pagination.TotalCount,
		Count:      wire.Pagination.Count,
		Offset:     wire.Pagination.Offset,
	}
	return nil
}
