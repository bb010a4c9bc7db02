//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "giphy"
	ConsumerName = "giphy-api-app"

	StateSearchResults = "gifs matching cats exist"
	StateGifExists     = "gif abc123 exists"
	StateGifMissing    = "no gif with id missing000"
	StateTrending      = "trending gifs exist"
)

const (
	APIKey       = "pact-api-key"
	ExistingGif  = "abc123"
	MissingGif   = "missing000"
	SearchQuery  = "cats"
	exampleTitle = "Cat Typing"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleGif is the upstream representation of one GIF.
func ExampleGif() map[string]any {
	return map[string]any{
		"id":              ExistingGif,
		"title":           exampleTitle,
		"url":             "https://giphy.com/gifs/" + ExistingGif,
		"username":        "pactcat",
		"rating":          "g",
		"import_datetime": "2021-01-01 00:00:00",
		"images": map[string]any{
			"original": map[string]any{"url": "https://media.giphy.com/media/" + ExistingGif + "/giphy.gif"},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
