package giphy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics publishes Prometheus series for the client. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	fallbacksTotal    *prometheus.CounterVec
	breakerRejections *prometheus.CounterVec
	breakerState      prometheus.Gauge
}

// NewMetrics registers the client collectors on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giphy_upstream_requests_total",
				Help: "Upstream GIPHY calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "giphy_upstream_request_duration_seconds",
				Help:    "Duration of upstream GIPHY calls including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giphy_cache_hits_total",
				Help: "Result cache hits",
			},
			[]string{"operation"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giphy_cache_misses_total",
				Help: "Result cache misses",
			},
			[]string{"operation"},
		),
		fallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giphy_fallbacks_total",
				Help: "Fallback reads by operation and whether a cached result was served",
			},
			[]string{"operation", "served"},
		),
		breakerRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giphy_circuit_breaker_rejections_total",
				Help: "Calls not sent upstream because the breaker was open",
			},
			[]string{"operation"},
		),
		breakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "giphy_circuit_breaker_state",
				Help: "Last observed breaker state (0=closed, 1=open, 2=half-open)",
			},
		),
	}
}

// RecordRequest counts one upstream call and its duration.
func (m *Metrics) RecordRequest(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if kind, ok := KindOf(err); ok {
		outcome = kind.String()
	} else if err != nil {
		outcome = "error"
	}
	m.requestsTotal.WithLabelValues(operation, outcome).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordCacheHit(operation string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordCacheMiss(operation string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordFallback(operation string, served bool) {
	if m == nil {
		return
	}
	label := "false"
	if served {
		label = "true"
	}
	m.fallbacksTotal.WithLabelValues(operation, label).Inc()
}

func (m *Metrics) RecordBreakerRejection(operation string) {
	if m == nil {
		return
	}
	m.breakerRejections.WithLabelValues(operation).Inc()
}

// SetBreakerState updates the state gauge.
func (m *Metrics) SetBreakerState(state State) {
	if m == nil {
		return
	}
	var value float64
	switch state {
	case StateOpen:
		value = 1
	case StateHalfOpen:
		value = 2
	}
	m.breakerState.Set(value)
}
