package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
)

const tracerName = "github.com/AndyCHK/giphy-api-app/internal/domains/interactions/adapters/observability/service"

// Service traces and counts interaction recording.
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
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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

func (s *Service) Record(ctx context.Context, input ports.RecordInput) (*domain.Interaction, error) {
	ctx, span := s.tracer.Start(ctx, "InteractionService.Record", trace.WithAttributes(
		attribute.String("http.route", input.Path),
		attribute.Int("http.status_code", input.ResponseCode),
	))
	defer span.End()
	interaction, err := s.inner.Record(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.add(ctx, s.metrics.failed)
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to record interaction",
			slog.String("path", input.Path),
			slog.String("error", err.Error()))
		return nil, err
	}
	s.metrics.add(ctx, s.metrics.recorded)
	return interaction, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.Interaction, error) {
	return s.inner.Recent(ctx, limit)
}

type serviceMetrics struct {
	recorded metric.Int64Counter
	failed   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	recorded, _ := m.Int64Counter("interactions.service.recorded", metric.WithDescription("API interactions stored"))
	failed, _ := m.Int64Counter("interactions.service.failed", metric.WithDescription("API interactions that could not be stored"))
	return serviceMetrics{recorded: recorded, failed: failed}
}

func (m serviceMetrics) add(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
