package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/ports"
)

const tracerName = "github.com/AndyCHK/giphy-api-app/internal/domains/gifs/adapters/observability/service"

// Service decorates the gifs service with tracing, logging and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core gifs service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Search(ctx context.Context, query string, page domain.PageRequest) (*domain.Page, error) {
	ctx, span := s.tracer.Start(ctx, "GifService.Search", trace.WithAttributes(
		attribute.String("gif.query", query),
		attribute.Int("gif.limit", page.Limit),
		attribute.Int("gif.offset", page.Offset),
	))
	defer span.End()
	result, err := s.inner.Search(ctx, query, page)
	if err != nil {
		return nil, s.handleError(ctx, span, "search", err, slog.String("query", query))
	}
	s.metrics.recordServed(ctx, "search", len(result.Items))
	return result, nil
}

func (s *Service) Trending(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	ctx, span := s.tracer.Start(ctx, "GifService.Trending", trace.WithAttributes(
		attribute.Int("gif.limit", page.Limit),
		attribute.Int("gif.offset", page.Offset),
	))
	defer span.End()
	result, err := s.inner.Trending(ctx, page)
	if err != nil {
		return nil, s.handleError(ctx, span, "trending", err)
	}
	s.metrics.recordServed(ctx, "trending", len(result.Items))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Gif, error) {
	ctx, span := s.tracer.Start(ctx, "GifService.GetByID", trace.WithAttributes(attribute.String("gif.id", id)))
	defer span.End()
	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, "get_by_id", err, slog.String("gif_id", id))
	}
	s.metrics.recordServed(ctx, "get_by_id", 1)
	return result, nil
}

// handleError records err on the span. Caller mistakes and missing GIFs are
// logged at Info, catalog outages at Error.
func (s *Service) handleError(ctx context.Context, span trace.Span, op string, err error, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.recordFailed(ctx, op)
	level := slog.LevelError
	if errors.Is(err, application.ErrInvalidInput) || errors.Is(err, ports.ErrNotFound) {
		level = slog.LevelInfo
	}
	attrs = append(attrs, slog.String("operation", op), slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, "gif request failed", attrs...)
	return err
}

type serviceMetrics struct {
	served metric.Int64Counter
	failed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	served, _ := m.Int64Counter("gifs.service.served", metric.WithDescription("Number of GIF records served"))
	failed, _ := m.Int64Counter("gifs.service.failed", metric.WithDescription("Number of failed GIF requests"))
	return serviceMetrics{served: served, failed: failed}
}

func (m serviceMetrics) recordServed(ctx context.Context, op string, n int) {
	if m.served != nil {
		m.served.Add(ctx, int64(n), metric.WithAttributes(attribute.String("operation", op)))
	}
}

func (m serviceMetrics) recordFailed(ctx context.Context, op string) {
	if m.failed != nil {
		m.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ ports.Service = (*Service)(nil)
