package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abcde"+TruncatedSuffix, Truncate("abcdefghij", 5))
	assert.Equal(t, strings.Repeat("x", 20), Truncate(strings.Repeat("x", 20), 0))
}

func TestTruncate_KeepsUTF8Valid(t *testing.T) {
	// "ñ" is two bytes; a cut at byte 2 would split the second one.
	got := Truncate("añb", 2)
	assert.Equal(t, "a"+TruncatedSuffix, got)
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "gifs/search", ServiceName("/api/gifs/search"))
	assert.Equal(t, "favorites/abc", ServiceName("api/favorites/abc"))
}
