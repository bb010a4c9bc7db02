package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	"github.com/AndyCHK/giphy-api-app/internal/platform/kvstore"
)

func testFactory(t *testing.T, handler http.HandlerFunc) clientFactory {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return func(context.Context) (*giphy.Client, func(), error) {
		cfg := giphy.DefaultConfig()
		cfg.APIKey = "test-key"
		cfg.BaseURL = server.URL
		cfg.RetryAttempts = 1
		cfg.RetryDelay = 0
		cfg.Timeout = time.Second
		client, err := giphy.NewClient(cfg, kvstore.NewMemoryStore(), giphy.WithHTTPClient(server.Client()))
		return client, func() {}, err
	}
}

func run(t *testing.T, open clientFactory, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(open)
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGetCommand_PrintsGif(t *testing.T) {
	open := testFactory(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gifs/abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"id": "abc", "title": "Wave", "images": {}}, "meta": {"status": 200}}`))
	})

	out, err := run(t, open, "get", "abc")
	require.NoError(t, err)
	var gif giphy.Gif
	require.NoError(t, json.Unmarshal([]byte(out), &gif))
	assert.Equal(t, "abc", gif.ID)
	assert.Equal(t, "Wave", gif.Title)
}

func TestSearchCommand_PassesPaging(t *testing.T) {
	open := testFactory(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gifs/search", r.URL.Path)
		assert.Equal(t, "cats", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(`{"data": [{"id": "c1", "title": "Cat", "images": {}}], "meta": {"status": 200}}`))
	})

	out, err := run(t, open, "search", "cats", "--limit", "5", "--offset", "10")
	require.NoError(t, err)
	assert.Contains(t, out, `"c1"`)
}

func TestBreakerStatus_ReportsOpenAfterFailures(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	open := func(context.Context) (*giphy.Client, func(), error) {
		cfg := giphy.DefaultConfig()
		cfg.APIKey = "test-key"
		cfg.BaseURL = server.URL
		cfg.RetryAttempts = 1
		cfg.RetryDelay = 0
		cfg.ErrorThreshold = 1
		cfg.UseFallback = false
		client, err := giphy.NewClient(cfg, kv, giphy.WithHTTPClient(server.Client()))
		return client, func() {}, err
	}

	_, err := run(t, open, "trending")
	require.Error(t, err)

	out, err := run(t, open, "breaker", "status")
	require.NoError(t, err)
	var snapshot giphy.BreakerSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snapshot))
	assert.Equal(t, giphy.StateOpen, snapshot.State)
	assert.Equal(t, 1, snapshot.ErrorCount)
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	_, err := run(t, testFactory(t, func(http.ResponseWriter, *http.Request) {}), "search")
	require.Error(t, err)
}
