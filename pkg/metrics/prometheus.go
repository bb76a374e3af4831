// Package metrics provides Prometheus metrics for the ANTEKHUB API client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Error kinds used as the "kind" label of errors_total.
const (
	KindUnauthenticated = "unauthenticated"
	KindValidation      = "validation"
	KindTransport       = "transport"
	KindDecode          = "decode"
	KindClientError     = "client_error"
	KindNotFound        = "not_found"
	KindServerError     = "server_error"
)

// Manager owns the client-side request metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	inFlight        prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
// Creating two managers on the same registry with the same namespace
// panics, as promauto does.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "antekhub",
		subsystem:        "client",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.requests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "requests_total",
			Help:        "Total number of API requests by endpoint, method and status code",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.requestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "request_duration_milliseconds",
			Help:        "API request round-trip duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Total number of failed API calls by endpoint and error kind",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "kind"},
	)

	m.inFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "in_flight_requests",
		Help:        "Number of API requests currently awaiting a response",
		ConstLabels: constLabels,
	})
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool { return m != nil && m.enabled }

// RecordRequest records a completed round trip.
func (m *Manager) RecordRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.Enabled() {
		return
	}
	m.requests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.requestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError increments the error counter for endpoint and kind.
func (m *Manager) RecordError(endpoint, kind string) {
	if !m.Enabled() {
		return
	}
	m.errors.WithLabelValues(endpoint, kind).Inc()
}

// IncInFlight marks a request as started.
func (m *Manager) IncInFlight() {
	if m.Enabled() {
		m.inFlight.Inc()
	}
}

// DecInFlight marks a request as finished.
func (m *Manager) DecInFlight() {
	if m.Enabled() {
		m.inFlight.Dec()
	}
}

// Requests exposes the request counter, mainly for tests.
func (m *Manager) Requests() *prometheus.CounterVec { return m.requests }

// Errors exposes the error counter, mainly for tests.
func (m *Manager) Errors() *prometheus.CounterVec { return m.errors }

// Gatherer returns the registry the manager's series live in, or nil when
// that registry cannot be read back (e.g. a bare Registerer).
func (m *Manager) Gatherer() prometheus.Gatherer {
	if m == nil {
		return nil
	}
	g, _ := m.registry.(prometheus.Gatherer)
	return g
}

// Default returns the process-wide manager registered on GetRegistry().
func Default() *Manager { return globalManager }

// ErrorKindForStatus maps a non-success HTTP status to an error kind.
func ErrorKindForStatus(statusCode int) string {
	switch {
	case statusCode >= 500:
		return KindServerError
	case statusCode == 401:
		return KindUnauthenticated
	case statusCode == 404:
		return KindNotFound
	default:
		return KindClientError
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
