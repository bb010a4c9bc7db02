package giphy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryTransport_RetriesServerErrorsThenSucceeds(t *testing.T) {
	fake := &fakeTransport{results: []fakeResult{
		respond(http.StatusBadGateway, `{}`),
		respond(http.StatusOK, `{"data": []}`),
	}}
	retry := NewRetryTransport(fake, 3, 0)

	resp, err := retry.Get(context.Background(), "/gifs/search", url.Values{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, fake.calls())
}

func TestRetryTransport_DoesNotRetryClientErrors(t *testing.T) {
	fake := &fakeTransport{results: []fakeResult{respond(http.StatusTooManyRequests, `{}`)}}
	retry := NewRetryTransport(fake, 3, 0)

	resp, err := retry.Get(context.Background(), "/gifs/search", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, 1, fake.calls())
}

func TestRetryTransport_ReturnsLastResponseWhenExhausted(t *testing.T) {
	fake := &fakeTransport{results: []fakeResult{respond(http.StatusServiceUnavailable, `{"meta": {"msg": "down"}}`)}}
	retry := NewRetryTransport(fake, 3, time.Millisecond)

	resp, err := retry.Get(context.Background(), "/gifs/abc", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, 3, fake.calls())
}

func TestRetryTransport_ReturnsLastConnectionError(t *testing.T) {
	fake := &fakeTransport{results: []fakeResult{{err: errors.New("dial tcp: refused")}}}
	retry := NewRetryTransport(fake, 2, 0)

	_, err := retry.Get(context.Background(), "/gifs/abc", nil)
	require.ErrorContains(t, err, "refused")
	require.Equal(t, 2, fake.calls())
}

func TestRetryTransport_StopsWhenContextCancelled(t *testing.T) {
	fake := &fakeTransport{results: []fakeResult{respond(http.StatusInternalServerError, `{}`)}}
	retry := NewRetryTransport(fake, 5, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := retry.Get(ctx, "/gifs/abc", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, fake.calls())
}

func TestHTTPTransport_AppliesPerAttemptTimeout(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	transport, err := NewHTTPTransport(server.URL, 20*time.Millisecond, server.Client())
	require.NoError(t, err)

	_, err = transport.Get(context.Background(), "/gifs/slow", nil)
	require.Error(t, err)
	require.Equal(t, int32(1), hits.Load())
}

func TestHTTPTransport_ReturnsFailureStatusesAsResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"meta": {"status": 404, "msg": "Not Found"}}`))
	}))
	defer server.Close()

	transport, err := NewHTTPTransport(server.URL+"/", time.Second, server.Client())
	require.NoError(t, err)

	resp, err := transport.Get(context.Background(), "gifs/abc", url.Values{"api_key": {"k"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, string(resp.Body), "Not Found")
}
