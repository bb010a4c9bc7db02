// Package giphy is the resilient access layer for the GIPHY catalog: result
// caching, a persisted circuit breaker, retries, response validation and
// fallback to cached data when the upstream is unhealthy.
package giphy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/AndyCHK/giphy-api-app/internal/platform/kvstore"
)

const (
	tracerName   = "github.com/AndyCHK/giphy-api-app/internal/clients/http/giphy"
	defaultLimit = 25

	unavailableMessage = "GIPHY service temporarily unavailable"
)

// Client talks to the GIPHY API. It is safe for concurrent use.
type Client struct {
	cfg       Config
	transport Transport
	cache     *ResultCache
	breaker   *CircuitBreaker
	metrics   *Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

type clientOptions struct {
	transport    Transport
	httpClient   *http.Client
	breakerStore BreakerStore
	metrics      *Metrics
	logger       *slog.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

// Option configures a Client.
type Option func(*clientOptions)

// WithTransport replaces the HTTP transport. Retries still wrap it.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) { o.transport = t }
}

// WithHTTPClient sets the net/http client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithBreakerStore overrides where breaker state is persisted.
func WithBreakerStore(s BreakerStore) Option {
	return func(o *clientOptions) { o.breakerStore = s }
}

func WithMetrics(m *Metrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(o *clientOptions) { o.tracer = tr }
}

// WithClock overrides the time source used by the breaker.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) { o.now = now }
}

// NewClient wires a client over kv, which holds both cached results and
// breaker state.
func NewClient(cfg Config, kv kvstore.Store, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if kv == nil {
		return nil, errors.New("giphy client requires a kv store")
	}
	o := clientOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.tracer == nil {
		o.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if o.transport == nil {
		httpTransport, err := NewHTTPTransport(cfg.BaseURL, cfg.Timeout, o.httpClient)
		if err != nil {
			return nil, err
		}
		o.transport = httpTransport
	}
	if o.breakerStore == nil {
		o.breakerStore = NewKVBreakerStore(kv)
	}
	breakerOpts := []BreakerOption{WithBreakerLogger(o.logger), WithBreakerMetrics(o.metrics)}
	if o.now != nil {
		breakerOpts = append(breakerOpts, WithBreakerClock(o.now))
	}
	return &Client{
		cfg:       cfg,
		transport: NewRetryTransport(o.transport, cfg.RetryAttempts, cfg.RetryDelay, WithRetryLogger(o.logger)),
		cache:     NewResultCache(kv, cfg.StaleTTL, o.logger),
		breaker:   NewCircuitBreaker(o.breakerStore, cfg.ErrorThreshold, cfg.BreakerTimeout, breakerOpts...),
		metrics:   o.metrics,
		logger:    o.logger,
		tracer:    o.tracer,
	}, nil
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// Search returns one page of GIFs matching query.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) (GifCollection, error) {
	if strings.TrimSpace(query) == "" {
		return GifCollection{}, requestError("search query is required", nil)
	}
	limit, offset = normalizePage(limit, offset)
	params := c.baseParams()
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("rating", "g")
	params.Set("lang", "es")
	return execute(ctx, c, call[GifCollection]{
		operation: "search",
		key:       SearchKey(query, limit, offset),
		ttl:       SearchTTL,
		path:      "/gifs/search",
		params:    params,
		transform: TransformCollection,
		read:      c.cache.Collection,
		fallback:  c.cache.FallbackCollection,
		write:     c.cache.PutCollection,
		attrs: []attribute.KeyValue{
			attribute.String("giphy.query", query),
			attribute.Int("giphy.limit", limit),
			attribute.Int("giphy.offset", offset),
		},
	})
}

// GetByID returns a single GIF.
func (c *Client) GetByID(ctx context.Context, id string) (Gif, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Gif{}, requestError("gif id is required", nil)
	}
	return execute(ctx, c, call[Gif]{
		operation: "get_by_id",
		key:       GifKey(id),
		ttl:       GifTTL,
		path:      "/gifs/" + url.PathEscape(id),
		params:    c.baseParams(),
		transform: TransformGif,
		read:      c.cache.Gif,
		fallback:  c.cache.FallbackGif,
		write:     c.cache.PutGif,
		attrs:     []attribute.KeyValue{attribute.String("giphy.gif_id", id)},
	})
}

// Trending returns one page of currently trending GIFs.
func (c *Client) Trending(ctx context.Context, limit, offset int) (GifCollection, error) {
	limit, offset = normalizePage(limit, offset)
	params := c.baseParams()
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("rating", "g")
	return execute(ctx, c, call[GifCollection]{
		operation: "trending",
		key:       TrendingKey(limit, offset),
		ttl:       TrendingTTL,
		path:      "/gifs/trending",
		params:    params,
		transform: TransformTrending,
		read:      c.cache.Collection,
		fallback:  c.cache.FallbackCollection,
		write:     c.cache.PutCollection,
		attrs: []attribute.KeyValue{
			attribute.Int("giphy.limit", limit),
			attribute.Int("giphy.offset", offset),
		},
	})
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	return params
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type call[T any] struct {
	operation string
	key       string
	ttl       time.Duration
	path      string
	params    url.Values
	transform func(*RawResponse) (T, error)
	read      func(context.Context, string) (T, bool)
	fallback  func(context.Context, string) (T, bool)
	write     func(context.Context, string, T, time.Duration)
	attrs     []attribute.KeyValue
}

func execute[T any](ctx context.Context, c *Client, op call[T]) (T, error) {
	var zero T
	ctx, span := c.tracer.Start(ctx, "giphy."+op.operation, trace.WithAttributes(op.attrs...))
	defer span.End()

	if c.cfg.UseCache {
		if cached, ok := op.read(ctx, op.key); ok {
			c.metrics.RecordCacheHit(op.operation)
			span.SetAttributes(attribute.Bool("giphy.cache_hit", true))
			return cached, nil
		}
		c.metrics.RecordCacheMiss(op.operation)
	}

	if !c.breaker.CanMakeRequest(ctx) {
		c.metrics.RecordBreakerRejection(op.operation)
		c.logger.WarnContext(ctx, "giphy circuit breaker open, skipping upstream call",
			slog.String("operation", op.operation))
		if result, ok := serveFallback(ctx, c, op); ok {
			return result, nil
		}
		span.SetStatus(codes.Error, unavailableMessage)
		return zero, requestError(unavailableMessage, nil)
	}

	start := time.Now()
	result, err := fetch(ctx, c, op)
	c.metrics.RecordRequest(op.operation, err, time.Since(start))

	// The caller's cancellation must not block bookkeeping.
	persistCtx := context.WithoutCancel(ctx)
	if err != nil {
		gerr := normalize(err)
		span.RecordError(gerr)
		span.SetStatus(codes.Error, gerr.Message)
		if ctx.Err() == nil {
			c.breaker.RecordFailure(persistCtx, gerr.Message)
		}
		c.logger.ErrorContext(ctx, "giphy upstream call failed",
			slog.String("operation", op.operation),
			slog.String("kind", gerr.Kind.String()),
			slog.Int("status", gerr.StatusCode),
			slog.String("error", gerr.Message))
		if result, ok := serveFallback(persistCtx, c, op); ok {
			return result, nil
		}
		return zero, gerr
	}

	if c.cfg.UseCache {
		op.write(persistCtx, op.key, result, op.ttl)
	}
	c.breaker.RecordSuccess(persistCtx)
	return result, nil
}

func fetch[T any](ctx context.Context, c *Client, op call[T]) (T, error) {
	var zero T
	resp, err := c.transport.Get(ctx, op.path, op.params)
	if err != nil {
		return zero, requestError(err.Error(), err)
	}
	return op.transform(resp)
}

func serveFallback[T any](ctx context.Context, c *Client, op call[T]) (T, bool) {
	var zero T
	if !c.cfg.UseFallback {
		return zero, false
	}
	result, ok := op.fallback(ctx, op.key)
	c.metrics.RecordFallback(op.operation, ok)
	if ok {
		c.logger.InfoContext(ctx, "serving cached giphy result as fallback",
			slog.String("operation", op.operation),
			slog.String("key", op.key))
	}
	return result, ok
}
