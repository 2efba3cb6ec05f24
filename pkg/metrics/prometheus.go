// Package metrics provides Prometheus metrics for the pacetrend service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pacetrend service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Ingestion Metrics
	activitiesIngested *prometheus.CounterVec
	activitiesIgnored  prometheus.Counter
	activitiesRejected *prometheus.CounterVec
	storedActivities   prometheus.Gauge

	// Aggregation Metrics
	reportLatency         prometheus.Histogram
	reportsGenerated      prometheus.Counter
	monthlyBucketsDropped prometheus.Counter
	weeklyBuckets         prometheus.Gauge
	personalBests         *prometheus.GaugeVec

	// Source Metrics - CSV file and Strava API
	sourceFetches        *prometheus.CounterVec
	sourceFetchLatency   *prometheus.HistogramVec
	sourceTokenRefreshes prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pacetrend",
		subsystem:        "engine",
		histogramBuckets: DefaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	// Ingestion Metrics
	m.activitiesIngested = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "activities_ingested_total",
		Help:        "Total number of valid run records ingested, by source",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.activitiesIgnored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "activities_ignored_total",
		Help:        "Total number of non-run records skipped during ingestion",
		ConstLabels: m.constLabels,
	})

	m.activitiesRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "activities_rejected_total",
		Help:        "Total number of run records excluded for missing or invalid fields",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.storedActivities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stored_activities",
		Help:        "Current number of records in the activity store",
		ConstLabels: m.constLabels,
	})

	// Aggregation Metrics
	m.reportLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_latency_milliseconds",
		Help:        "Histogram of full report computation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.reportsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_generated_total",
		Help:        "Total number of reports computed",
		ConstLabels: m.constLabels,
	})

	m.monthlyBucketsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "monthly_buckets_dropped_total",
		Help:        "Total number of monthly buckets excluded by the plausibility window",
		ConstLabels: m.constLabels,
	})

	m.weeklyBuckets = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "weekly_buckets",
		Help:        "Number of occupied weeks in the latest report",
		ConstLabels: m.constLabels,
	})

	m.personalBests = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "personal_bests",
		Help:        "Number of yearly personal bests per category in the latest report",
		ConstLabels: m.constLabels,
	}, []string{"category"})

	// Source Metrics
	m.sourceFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_fetches_total",
		Help:        "Total number of activity source fetches by source and status",
		ConstLabels: m.constLabels,
	}, []string{"source", "status"})

	m.sourceFetchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_fetch_latency_milliseconds",
		Help:        "Activity source fetch latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.sourceTokenRefreshes = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_token_refreshes_total",
		Help:        "Total number of OAuth2 token refreshes persisted",
		ConstLabels: m.constLabels,
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Error Metrics
	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type and severity",
			ConstLabels: m.constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint, method and type",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "error_latency_milliseconds",
			Help:        "Latency of operations that resulted in an error",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Allocated heap memory in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Current number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// Ingestion Metrics Functions.

// RecordActivitiesIngested adds n valid run records ingested from source.
func RecordActivitiesIngested(source string, n int) {
	globalManager.activitiesIngested.WithLabelValues(source).Add(float64(n))
}

// RecordActivitiesIgnored adds n skipped non-run records.
func RecordActivitiesIgnored(n int) {
	globalManager.activitiesIgnored.Add(float64(n))
}

// RecordActivityRejected increments the rejected counter for reason.
func RecordActivityRejected(reason string) {
	globalManager.activitiesRejected.WithLabelValues(reason).Inc()
}

// UpdateStoredActivities sets the number of stored records.
func UpdateStoredActivities(count int) {
	globalManager.storedActivities.Set(float64(count))
}

// Aggregation Metrics Functions.

// RecordReportLatency records report computation latency.
func RecordReportLatency(latencyMs float64) {
	globalManager.reportLatency.Observe(latencyMs)
	globalManager.reportsGenerated.Inc()
}

// RecordMonthlyBucketsDropped adds n buckets excluded by the plausibility window.
func RecordMonthlyBucketsDropped(n int) {
	globalManager.monthlyBucketsDropped.Add(float64(n))
}

// UpdateWeeklyBuckets sets the number of occupied weeks.
func UpdateWeeklyBuckets(count int) {
	globalManager.weeklyBuckets.Set(float64(count))
}

// UpdatePersonalBests sets the number of yearly bests for category.
func UpdatePersonalBests(category string, count int) {
	globalManager.personalBests.WithLabelValues(category).Set(float64(count))
}

// Source Metrics Functions.

// RecordSourceFetch records one fetch attempt from an activity source.
func RecordSourceFetch(source, status string, latencyMs float64) {
	globalManager.sourceFetches.WithLabelValues(source, status).Inc()
	globalManager.sourceFetchLatency.WithLabelValues(source).Observe(latencyMs)
}

// RecordTokenRefresh increments the persisted token refresh counter.
func RecordTokenRefresh() {
	globalManager.sourceTokenRefreshes.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
