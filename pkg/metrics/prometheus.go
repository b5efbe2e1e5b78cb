// Package metrics provides Prometheus metrics for the mentorpath
// recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	recommendationsGenerated prometheus.Counter
	transferPlansGenerated   prometheus.Counter
	genericPlanFallbacks     prometheus.Counter
	progressUpdates          prometheus.Counter
	progressConflicts        prometheus.Counter
	metricClamps             prometheus.Counter
	scoringLatency           prometheus.Histogram
	strategyAssigned         *prometheus.CounterVec

	// Catalog health gauges
	catalogProfiles prometheus.Gauge
	catalogMappings prometheus.Gauge
	trackedPlans    prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Scoring pipeline metrics
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueues     prometheus.Counter
	queueDequeues     prometheus.Counter
	queueEnqueueDrops prometheus.Counter
	workerActiveCount prometheus.Gauge
	workerLatency     prometheus.Histogram
	workerErrors      prometheus.Counter

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mentorpath",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
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

	m.recommendationsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_generated_total",
		Help:      "Total recommendations assembled across all requests",
	})

	m.transferPlansGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transfer_plans_generated_total",
		Help:      "Total cross-domain transfer plans generated",
	})

	m.genericPlanFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generic_plan_fallbacks_total",
		Help:      "Transfer plans built from the generic template because no mapping matched",
	})

	m.progressUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "progress_updates_total",
		Help:      "Total progress records written",
	})

	m.progressConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "progress_conflicts_total",
		Help:      "Optimistic-concurrency conflicts on progress writes",
	})

	m.metricClamps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "metric_clamps_total",
		Help:      "Metric values corrected into [0,1] (upstream sensor quality)",
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of full catalog scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.strategyAssigned = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_assigned_total",
			Help:      "Recommendations by assigned strategy",
		},
		[]string{"strategy"},
	)

	m.catalogProfiles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_profiles",
		Help:      "Reference profiles currently loaded",
	})

	m.catalogMappings = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_mappings",
		Help:      "Transfer mappings currently loaded",
	})

	m.trackedPlans = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_plans",
		Help:      "Plans registered for progress tracking",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Request errors by endpoint, method and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_queue_size",
		Help:      "Scoring jobs currently queued",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_queue_capacity",
		Help:      "Configured scoring queue capacity",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_queue_utilization",
		Help:      "Scoring queue fill ratio in [0,1]",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_queue_enqueues_total",
		Help:      "Scoring jobs accepted by the queue",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_queue_dequeues_total",
		Help:      "Scoring jobs handed to workers",
	})

	m.queueEnqueueDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_queue_drops_total",
		Help:      "Scoring jobs rejected on backpressure and evaluated inline",
	})

	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_workers_active",
		Help:      "Scoring workers currently running",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_worker_latency_milliseconds",
		Help:      "Histogram of per-job worker processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_worker_errors_total",
		Help:      "Scoring jobs that failed in a worker",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordRecommendationsGenerated adds n to the recommendations counter.
func RecordRecommendationsGenerated(n int) {
	globalManager.recommendationsGenerated.Add(float64(n))
}

// RecordTransferPlanGenerated increments the transfer plan counter.
func RecordTransferPlanGenerated() {
	globalManager.transferPlansGenerated.Inc()
}

// RecordGenericPlanFallback increments the generic fallback counter.
func RecordGenericPlanFallback() {
	globalManager.genericPlanFallbacks.Inc()
}

// RecordProgressUpdate increments the progress update counter.
func RecordProgressUpdate() {
	globalManager.progressUpdates.Inc()
}

// RecordProgressConflict increments the CAS conflict counter.
func RecordProgressConflict() {
	globalManager.progressConflicts.Inc()
}

// RecordMetricClamps adds n to the clamp correction counter.
func RecordMetricClamps(n int) {
	if n > 0 {
		globalManager.metricClamps.Add(float64(n))
	}
}

// RecordScoringLatency records catalog scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordStrategyAssigned increments the per-strategy counter.
func RecordStrategyAssigned(strategy string) {
	globalManager.strategyAssigned.WithLabelValues(strategy).Inc()
}

// UpdateCatalogProfiles sets the loaded profile count.
func UpdateCatalogProfiles(count int) {
	globalManager.catalogProfiles.Set(float64(count))
}

// UpdateCatalogMappings sets the loaded mapping count.
func UpdateCatalogMappings(count int) {
	globalManager.catalogMappings.Set(float64(count))
}

// UpdateTrackedPlans sets the registered plan count.
func UpdateTrackedPlans(count int) {
	globalManager.trackedPlans.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records a request error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateQueueSize sets the current scoring queue length.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the configured scoring queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the scoring queue fill ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the accepted-job counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the handed-off-job counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordQueueDrop increments the backpressure drop counter.
func RecordQueueDrop() {
	globalManager.queueEnqueueDrops.Inc()
}

// UpdateWorkerActiveCount sets the running scoring worker count.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records one job's processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker failure counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// UpdateSystemMemoryUsage sets the current heap allocation.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
