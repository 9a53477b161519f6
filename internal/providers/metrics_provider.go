package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"lrn/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObservePersistenceDuration(duration time.Duration)
	SetRecordsTotal(store string, count int)
	AddFetched(source string, count int)
	SetDeltaSize(count int)
	IncNotifications(outcome string)
	Push(ctx context.Context) error
}

// Notification outcomes reported through IncNotifications.
const (
	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

type MetricsProvider struct {
	registry            *prometheus.Registry
	pushURL             string
	job                 string
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	recordsTotal        *prometheus.GaugeVec
	fetchedTotal        *prometheus.CounterVec
	deltaSize           prometheus.Gauge
	notificationsTotal  *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(store string, count int) {
	m.recordsTotal.WithLabelValues(store).Set(float64(count))
}

func (m *MetricsProvider) AddFetched(source string, count int) {
	m.fetchedTotal.WithLabelValues(source).Add(float64(count))
}

func (m *MetricsProvider) SetDeltaSize(count int) {
	m.deltaSize.Set(float64(count))
}

func (m *MetricsProvider) IncNotifications(outcome string) {
	m.notificationsTotal.WithLabelValues(outcome).Inc()
}

// Push sends the collected metrics to the configured Pushgateway.
// A run is a short-lived batch job, so there is nothing to scrape.
func (m *MetricsProvider) Push(ctx context.Context) error {
	if m.pushURL == "" {
		return nil
	}
	if err := push.New(m.pushURL, m.job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", m.pushURL, err)
	}
	return nil
}

// Registry exposes the private registry, mainly for tests.
func (m *MetricsProvider) Registry() *prometheus.Registry {
	return m.registry
}

func httpStatusBucket(code int) string {
	switch {
	case code <= 0:
		return "error"
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

	job := conf.Metrics.Job
	if job == "" {
		job = "lrn"
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry: reg,
		pushURL:  conf.Metrics.PushgatewayURL,
		job:      job,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lrn_sink_requests_total",
			Help: "Total number of outbound push requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lrn_sink_request_duration_seconds",
			Help:    "Outbound push request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lrn_lookup_cache_hits_total",
			Help: "Lookup cache hits per namespace",
		}, []string{"namespace"}),

		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lrn_lookup_cache_misses_total",
			Help: "Lookup cache misses per namespace",
		}, []string{"namespace"}),

		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lrn_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		recordsTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lrn_records_total",
			Help: "Number of persisted entries per store",
		}, []string{"store"}),

		fetchedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lrn_fetched_records_total",
			Help: "Raw records returned per source",
		}, []string{"source"}),

		deltaSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lrn_delta_size",
			Help: "Records new today in the last run",
		}),

		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lrn_notifications_total",
			Help: "Notification decisions by outcome",
		}, []string{"outcome"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                  {}
func (n *noopMetrics) AddFetched(_ string, _ int)                       {}
func (n *noopMetrics) SetDeltaSize(_ int)                               {}
func (n *noopMetrics) IncNotifications(_ string)                        {}
func (n *noopMetrics) Push(_ context.Context) error                     { return nil }
