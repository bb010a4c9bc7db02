package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// DefaultMaxContentLength bounds stored request and response bodies.
	DefaultMaxContentLength = 10000
	// TruncatedSuffix marks a body cut at the maximum length.
	TruncatedSuffix = "... [truncated]"
)

// Interaction is one audited API request.
type Interaction struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	Service      string
	RequestBody  string
	ResponseCode int
	ResponseBody string
	IPAddress    string
	CreatedAt    time.Time
}

// Truncate cuts content to at most max bytes and appends TruncatedSuffix.
// The cut never splits a UTF-8 sequence. A non-positive max disables it.
func Truncate(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + TruncatedSuffix
}

// ServiceName derives the audited service from a request path: the path
// without its leading "/api/".
func ServiceName(path string) string {
	path = strings.TrimPrefix(path, "/")
	return strings.TrimPrefix(path, "api/")
}
