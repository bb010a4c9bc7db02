package giphy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 10 << 20

// RawResponse is an upstream answer before validation.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single logical GET against the upstream API.
// A returned error means no response was obtained (connection failure,
// timeout, cancellation); HTTP failure statuses come back as a RawResponse.
type Transport interface {
	Get(ctx context.Context, path string, params url.Values) (*RawResponse, error)
}

// HTTPTransport issues requests with net/http, bounding every attempt by a timeout.
type HTTPTransport struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPTransport builds a transport rooted at baseURL. When httpClient is nil
// a client instrumented with otelhttp is created.
func NewHTTPTransport(baseURL string, timeout time.Duration, httpClient *http.Client) (*HTTPTransport, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("giphy base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse giphy base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &HTTPTransport{baseURL: baseURL, timeout: timeout, client: httpClient}, nil
}

func (t *HTTPTransport) Get(ctx context.Context, path string, params url.Values) (*RawResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	target := t.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build giphy request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call giphy API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read giphy response: %w", err)
	}
	return &RawResponse{StatusCode: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

// RetryTransport re-issues failed GETs. Only connection errors and 5xx
// statuses are retried; when attempts run out the last response or error is
// returned unchanged.
type RetryTransport struct {
	next     Transport
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

// RetryOption configures a RetryTransport.
type RetryOption func(*RetryTransport)

// WithRetryLogger attaches a logger used for per-attempt diagnostics.
func WithRetryLogger(logger *slog.Logger) RetryOption {
	return func(t *RetryTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewRetryTransport wraps next so that each Get makes at most attempts tries
// separated by delay.
func NewRetryTransport(next Transport, attempts int, delay time.Duration, opts ...RetryOption) *RetryTransport {
	if attempts < 1 {
		attempts = 1
	}
	if delay < 0 {
		delay = 0
	}
	t := &RetryTransport{
		next:     next,
		attempts: attempts,
		delay:    delay,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

type serverStatusError struct{ status int }

func (e *serverStatusError) Error() string { return fmt.Sprintf("upstream status %d", e.status) }

func (t *RetryTransport) Get(ctx context.Context, path string, params url.Values) (*RawResponse, error) {
	var (
		attempt int
		last    *RawResponse
	)
	operation := func() (*RawResponse, error) {
		attempt++
		resp, err := t.next.Get(ctx, path, params)
		if err != nil {
			last = nil
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			t.logger.WarnContext(ctx, "giphy request attempt failed",
				slog.String("path", path),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			last = resp
			t.logger.WarnContext(ctx, "giphy request attempt returned server error",
				slog.String("path", path),
				slog.Int("attempt", attempt),
				slog.Int("status", resp.StatusCode))
			return nil, &serverStatusError{status: resp.StatusCode}
		}
		return resp, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(t.delay), uint64(t.attempts-1)),
		ctx,
	)
	resp, err := backoff.RetryWithData(operation, policy)
	if err == nil {
		return resp, nil
	}
	var statusErr *serverStatusError
	if errors.As(err, &statusErr) && last != nil {
		return last, nil
	}
	return nil, err
}
