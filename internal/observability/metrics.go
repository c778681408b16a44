package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hazard_api"

// Metrics holds the Prometheus collectors for the hazard API.
type Metrics struct {
	HazardsReported *prometheus.CounterVec   // labels: hazard_type, severity
	Confidence      prometheus.Histogram     // detector confidence of accepted reports
	StoreOperations *prometheus.CounterVec   // labels: operation, outcome={success,error,empty,skipped}
	StoreDuration   *prometheus.HistogramVec // labels: operation
	HTTPRequests    *prometheus.HistogramVec // labels: route, status

	// Optional enrichment and fan-out.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error}
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HazardsReported,
		m.Confidence,
		m.StoreOperations,
		m.StoreDuration,
		m.HTTPRequests,
		m.EventsPublished,
		m.GeocodeRequests,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they need without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HazardsReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazards_reported_total",
			Help:      "Hazard reports persisted, by hazard type and assigned severity.",
		}, []string{"hazard_type", "severity"}),
		Confidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hazard_confidence",
			Help:      "Detector confidence of accepted hazard reports.",
			Buckets:   []float64{0.5, 0.6, 0.7, 0.75, 0.8, 0.85, 0.9, 0.92, 0.95, 0.98, 1},
		}),
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Database operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Database round-trip duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		HTTPRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Hazard events written to the event stream, by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
