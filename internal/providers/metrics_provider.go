package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"intentd/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncInteractions(metric, interactionType string)
	IncTrialsStarted(metric string)
	ObserveStorageDuration(op string, duration time.Duration)
	IncStorageErrors(op string)
	ObserveSessions(counter SessionCounter)
}

// SessionCounter reports how many tracker sessions are open.
type SessionCounter interface {
	Count() int
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	interactions    *prometheus.CounterVec
	trialsStarted   *prometheus.CounterVec
	storageDuration *prometheus.HistogramVec
	storageErrors   *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncInteractions(metric, interactionType string) {
	m.interactions.WithLabelValues(metric, interactionType).Inc()
}

func (m *MetricsProvider) IncTrialsStarted(metric string) {
	m.trialsStarted.WithLabelValues(metric).Inc()
}

func (m *MetricsProvider) ObserveStorageDuration(op string, duration time.Duration) {
	m.storageDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStorageErrors(op string) {
	m.storageErrors.WithLabelValues(op).Inc()
}

// ObserveSessions exposes the open session count as a gauge.
func (m *MetricsProvider) ObserveSessions(counter SessionCounter) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "intentd_sessions_open",
		Help: "Current number of open tracker sessions",
	}, func() float64 {
		return float64(counter.Count())
	})
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intentd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intentd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		interactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intentd_interactions_total",
			Help: "Total number of recorded interactions on locked metrics",
		}, []string{"metric", "type"}),

		trialsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intentd_trials_started_total",
			Help: "Total number of feature trials started",
		}, []string{"metric"}),

		storageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intentd_storage_duration_seconds",
			Help:    "Duration of key/value storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		storageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intentd_storage_errors_total",
			Help: "Total number of failed key/value storage operations",
		}, []string{"op"}),
	}

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncInteractions(_, _ string)                      {}
func (n *noopMetrics) IncTrialsStarted(_ string)                        {}
func (n *noopMetrics) ObserveStorageDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncStorageErrors(_ string)                        {}
func (n *noopMetrics) ObserveSessions(_ SessionCounter)                 {}
