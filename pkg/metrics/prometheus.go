// Package metrics provides Prometheus metrics for the matchmaker service.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Matching
	matchRequests    *prometheus.CounterVec
	matchLatency     prometheus.Histogram
	candidatesScored prometheus.Counter
	matchScore       prometheus.Histogram
	emptyMatches     prometheus.Counter
	batchSize        prometheus.Histogram
	batchWorkersBusy prometheus.Gauge

	// Roster
	rosterLoads   *prometheus.CounterVec
	rosterMembers prometheus.Gauge
	rosterBadges  prometheus.Gauge
	rosterLoadAge prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchmaker",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.matchRequests = auto.NewCounterVec(
		m.counterOpts("match_requests_total", "Ranking calls by mode (single, batch)"),
		[]string{"mode"},
	)
	m.matchLatency = auto.NewHistogram(
		m.histogramOpts("match_latency_milliseconds", "Time to rank one query against the roster", m.histogramBuckets),
	)
	m.candidatesScored = auto.NewCounter(
		m.counterOpts("candidates_scored_total", "Candidate profiles scored against a query"),
	)
	m.matchScore = auto.NewHistogram(
		m.histogramOpts("match_score", "Similarity of the best match per query", prometheus.LinearBuckets(0, 0.1, 11)),
	)
	m.emptyMatches = auto.NewCounter(
		m.counterOpts("empty_matches_total", "Queries that produced an empty shortlist"),
	)
	m.batchSize = auto.NewHistogram(
		m.histogramOpts("batch_size", "Queries per batch request", prometheus.ExponentialBuckets(1, 2, 8)),
	)
	m.batchWorkersBusy = auto.NewGauge(
		m.gaugeOpts("batch_workers_busy", "Batch workers currently ranking a query"),
	)

	m.rosterLoads = auto.NewCounterVec(
		m.counterOpts("roster_loads_total", "Roster load attempts by result"),
		[]string{"result"},
	)
	m.rosterMembers = auto.NewGauge(
		m.gaugeOpts("roster_members", "Members in the loaded roster"),
	)
	m.rosterBadges = auto.NewGauge(
		m.gaugeOpts("roster_badges", "Badges in the loaded catalog"),
	)
	m.rosterLoadAge = auto.NewGauge(
		m.gaugeOpts("roster_loaded_timestamp_seconds", "Unix time of the last successful roster load"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
}

// RecordMatchRequest counts a ranking call; mode is "single" or "batch".
func RecordMatchRequest(mode string) {
	globalManager.matchRequests.WithLabelValues(mode).Inc()
}

// RecordMatchLatency records how long one query took to rank.
func RecordMatchLatency(latencyMs float64) {
	globalManager.matchLatency.Observe(latencyMs)
}

// RecordCandidatesScored adds n scored candidates.
func RecordCandidatesScored(n int) {
	if n > 0 {
		globalManager.candidatesScored.Add(float64(n))
	}
}

// RecordMatchScore records the best score of a shortlist.
func RecordMatchScore(score float64) {
	globalManager.matchScore.Observe(score)
}

// RecordEmptyMatch counts a query with no results.
func RecordEmptyMatch() {
	globalManager.emptyMatches.Inc()
}

// RecordBatchSize records the number of queries in a batch.
func RecordBatchSize(n int) {
	globalManager.batchSize.Observe(float64(n))
}

// AddBatchWorkersBusy moves the busy-worker gauge by delta.
func AddBatchWorkersBusy(delta int) {
	globalManager.batchWorkersBusy.Add(float64(delta))
}

// RecordRosterLoad counts a load attempt.
func RecordRosterLoad(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	globalManager.rosterLoads.WithLabelValues(result).Inc()
}

// UpdateRoster sets roster size gauges and the load timestamp.
func UpdateRoster(members, badges int, loadedAtUnix int64) {
	globalManager.rosterMembers.Set(float64(members))
	globalManager.rosterBadges.Set(float64(badges))
	globalManager.rosterLoadAge.Set(float64(loadedAtUnix))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method string, statusCode int) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, statusCode int, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Observe(durationMs)
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry the global manager reports to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Gather returns the value of a single-sample metric on the global
// registry, identified by its fully qualified name.
func Gather(name string) (float64, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return 0, err
	}
	for _, f := range families {
		if f.GetName() != name || len(f.GetMetric()) == 0 {
			continue
		}
		mt := f.GetMetric()[0]
		switch {
		case mt.GetCounter() != nil:
			return mt.GetCounter().GetValue(), nil
		case mt.GetGauge() != nil:
			return mt.GetGauge().GetValue(), nil
		case mt.GetHistogram() != nil:
			return float64(mt.GetHistogram().GetSampleCount()), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNoSuchMetric, name)
}
