// Package metrics provides Prometheus metrics for the primecheck service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Domain
	checks           *prometheus.CounterVec
	checkLatency     prometheus.Histogram
	validationErrors *prometheus.CounterVec

	// Response cache
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
	cacheEntries   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	recoveredPanics     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // service registry served on /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "primecheck",
		subsystem:        "api",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.checks = auto.NewCounterVec(
		m.counterOpts("checks_total", "Primality checks completed, by entry point and verdict"),
		[]string{"source", "verdict"},
	)
	m.checkLatency = auto.NewHistogram(
		m.histogramOpts("check_latency_milliseconds", "Time spent in trial division in milliseconds", m.histogramBuckets),
	)
	m.validationErrors = auto.NewCounterVec(
		m.counterOpts("validation_errors_total", "Rejected inputs, by entry point and error category"),
		[]string{"source", "category"},
	)

	m.cacheHits = auto.NewCounter(m.counterOpts("cache_hits_total", "Cached route responses served from cache"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("cache_misses_total", "Cached route lookups that fell through to the checker"))
	m.cacheEvictions = auto.NewCounter(m.counterOpts("cache_evictions_total", "Cache entries evicted by capacity or expiry"))
	m.cacheEntries = auto.NewGauge(m.gaugeOpts("cache_entries", "Current number of cached responses"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "HTTP error responses by endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.recoveredPanics = auto.NewCounterVec(
		m.counterOpts("recovered_panics_total", "Handler panics converted to 500 responses"),
		[]string{"endpoint"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100}),
	)
}

// RecordCheck counts a completed check. verdict is "prime" or "composite".
func (m *Manager) RecordCheck(source, verdict string, latencyMs float64) {
	m.checks.WithLabelValues(source, verdict).Inc()
	m.checkLatency.Observe(latencyMs)
}

// RecordValidationError counts a rejected input.
func (m *Manager) RecordValidationError(source, category string) {
	m.validationErrors.WithLabelValues(source, category).Inc()
}

// RecordCacheHit increments the cache hit counter.
func (m *Manager) RecordCacheHit() { m.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func (m *Manager) RecordCacheMiss() { m.cacheMisses.Inc() }

// RecordCacheEviction increments the eviction counter.
func (m *Manager) RecordCacheEviction() { m.cacheEvictions.Inc() }

// UpdateCacheEntries sets the cache size gauge.
func (m *Manager) UpdateCacheEntries(n int) { m.cacheEntries.Set(float64(n)) }

// RecordHTTPRequest records one request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an error response.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordRecoveredPanic counts a recovered handler panic.
func (m *Manager) RecordRecoveredPanic(endpoint string) {
	m.recoveredPanics.WithLabelValues(endpoint).Inc()
}

// UpdateSystemMemoryUsage sets the memory gauge in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) { m.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) { m.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime observes an average GC pause in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) { m.systemGCPauseTime.Observe(pauseMs) }

// Package-level helpers backed by the global manager.

// Default returns the global manager.
func Default() *Manager { return globalManager }

// RecordCheck records a completed check on the global manager.
func RecordCheck(source, verdict string, latencyMs float64) {
	globalManager.RecordCheck(source, verdict, latencyMs)
}

// RecordValidationError records a rejected input on the global manager.
func RecordValidationError(source, category string) {
	globalManager.RecordValidationError(source, category)
}

// RecordCacheHit records a cache hit on the global manager.
func RecordCacheHit() { globalManager.RecordCacheHit() }

// RecordCacheMiss records a cache miss on the global manager.
func RecordCacheMiss() { globalManager.RecordCacheMiss() }

// RecordCacheEviction records an eviction on the global manager.
func RecordCacheEviction() { globalManager.RecordCacheEviction() }

// UpdateCacheEntries sets the cache size on the global manager.
func UpdateCacheEntries(n int) { globalManager.UpdateCacheEntries(n) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an error response on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordRecoveredPanic records a recovered panic on the global manager.
func RecordRecoveredPanic(endpoint string) { globalManager.RecordRecoveredPanic(endpoint) }

// UpdateSystemMemoryUsage sets the memory gauge on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge on the global manager.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time on the global manager.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
