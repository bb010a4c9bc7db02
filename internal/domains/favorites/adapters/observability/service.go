package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
)

const tracerName = "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/adapters/observability/service"

// Service decorates the favorites service with tracing, logging and metrics.
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

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Add(ctx context.Context, input ports.AddFavoriteInput) (*domain.Favorite, error) {
	ctx, span := s.tracer.Start(ctx, "FavoriteService.Add", trace.WithAttributes(
		attribute.String("user.id", input.UserID.String()),
		attribute.String("gif.id", input.GifID),
	))
	defer span.End()
	favorite, err := s.inner.Add(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save favorite", slog.String("gif_id", input.GifID))
	}
	s.metrics.recordSaved(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorite saved",
		slog.String("favorite_id", favorite.ID.String()),
		slog.String("gif_id", favorite.GifID))
	return favorite, nil
}

func (s *Service) Remove(ctx context.Context, userID uuid.UUID, gifID string) error {
	ctx, span := s.tracer.Start(ctx, "FavoriteService.Remove", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("gif.id", gifID),
	))
	defer span.End()
	if err := s.inner.Remove(ctx, userID, gifID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove favorite", slog.String("gif_id", gifID))
	}
	s.metrics.recordRemoved(ctx)
	return nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.Page, error) {
	ctx, span := s.tracer.Start(ctx, "FavoriteService.List", trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()
	result, err := s.inner.List(ctx, userID, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list favorites")
	}
	span.SetAttributes(attribute.Int("favorite.count", len(result.Items)))
	return result, nil
}

func (s *Service) Exists(ctx context.Context, userID uuid.UUID, gifID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "FavoriteService.Exists", trace.WithAttributes(attribute.String("gif.id", gifID)))
	defer span.End()
	ok, err := s.inner.Exists(ctx, userID, gifID)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to check favorite", slog.String("gif_id", gifID))
	}
	return ok, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	saved   metric.Int64Counter
	removed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	saved, _ := m.Int64Counter("favorites.service.saved", metric.WithDescription("Number of favorites saved"))
	removed, _ := m.Int64Counter("favorites.service.removed", metric.WithDescription("Number of favorites removed"))
	return serviceMetrics{saved: saved, removed: removed}
}

func (m serviceMetrics) recordSaved(ctx context.Context) {
	if m.saved != nil {
		m.saved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.removed != nil {
		m.removed.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ ports.Service = (*Service)(nil)
