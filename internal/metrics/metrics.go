// Package metrics holds the Prometheus instruments of the HTTP adapter and
// the synthesis pipelines. Instruments register with the default registry
// and are served by promhttp.Handler.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velo_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "velo_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Pipelines
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "velo_operation_duration_seconds",
			Help:    "Duration of analysis and visualization operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	OperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "velo_operation_errors_total",
			Help: "Total number of failed operations by error kind",
		},
		[]string{"operation", "kind"},
	)

	// Scene cache
	SceneCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "velo_scene_cache_hits_total",
			Help: "Total number of 3D scene cache hits",
		},
	)

	SceneCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "velo_scene_cache_misses_total",
			Help: "Total number of 3D scene cache misses",
		},
	)

	SceneCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "velo_scene_cache_entries",
			Help: "Current number of cached 3D scenes",
		},
	)

	PassesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "velo_passes_loaded",
			Help: "Number of pass records served",
		},
	)
)

// Operation names.
const (
	OpAnalyze         = "analyze"
	OpVisualization   = "visualization"
	OpVisualization3D = "visualization_3d"
	OpChart           = "chart"
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordOperation records the duration of an operation and, when kind is
// not empty, counts it as failed with that error kind.
func RecordOperation(operation string, duration time.Duration, kind string) {
	OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if kind != "" {
		OperationErrors.WithLabelValues(operation, kind).Inc()
	}
}

// RecordSceneCache counts a scene cache lookup and updates the entry gauge.
func RecordSceneCache(hit bool, entries int) {
	if hit {
		SceneCacheHits.Inc()
	} else {
		SceneCacheMisses.Inc()
	}
	SceneCacheEntries.Set(float64(entries))
}
