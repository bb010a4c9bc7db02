package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxQueryLength = 100
	MaxPageLimit   = 50
	DefaultLimit   = 25
)

var (
	ErrEmptyQuery    = errors.New("query is required")
	ErrQueryTooLong  = errors.New("query must be at most 100 characters")
	ErrInvalidLimit  = errors.New("limit must be between 1 and 50")
	ErrInvalidOffset = errors.New("offset must not be negative")
	ErrEmptyID       = errors.New("gif id is required")
)

// Gif is a GIF record as exposed to API consumers.
type Gif struct {
	ID         string
	Title      string
	URL        string
	Images     map[string]any
	Username   string
	Source     string
	Rating     string
	ImportedAt string
}

// Page is one page of GIFs with its pagination window.
type Page struct {
	Items      []Gif
	TotalCount int
	Count      int
	Offset     int
}

// EmptyPage is returned for searches that matched nothing.
func EmptyPage(offset int) *Page {
	return &Page{Items: []Gif{}, Offset: offset}
}

// PageRequest is a limit/offset window. A zero limit means DefaultLimit.
type PageRequest struct {
	Limit  int
	Offset int
}

// Normalize applies the default limit and validates the window.
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return p, ErrInvalidLimit
	}
	if p.Offset < 0 {
		return p, ErrInvalidOffset
	}
	return p, nil
}

// SearchQuery is a validated search request.
type SearchQuery struct {
	Query string
	Page  PageRequest
}

// NewSearchQuery trims and validates the search term and window.
func NewSearchQuery(query string, page PageRequest) (SearchQuery, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchQuery{}, ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return SearchQuery{}, ErrQueryTooLong
	}
	page, err := page.Normalize()
	if err != nil {
		return SearchQuery{}, err
	}
	return SearchQuery{Query: query, Page: page}, nil
}

// NormalizeID trims a GIF identifier and rejects blanks.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return id, nil
}
