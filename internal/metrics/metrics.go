// ABOUTME: Prometheus collectors for analytics, storage, and HTTP traffic.
// ABOUTME: Registered on the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// Analytics views
	ViewStreaks    = "streaks"
	ViewProgress   = "progress"
	ViewVolume     = "volume"
	ViewCalendar   = "calendar"
	ViewBodyWeight = "bodyweight"

	// HTTP endpoints
	EndpointStreaks    = "streaks"
	EndpointProgress   = "progress"
	EndpointVolume     = "volume"
	EndpointCalendar   = "calendar"
	EndpointBodyWeight = "bodyweight"
	EndpointHealth     = "health"

	// Store operations
	OpCreateSession    = "create_session"
	OpGetSession       = "get_session"
	OpListSessions     = "list_sessions"
	OpDeleteSession    = "delete_session"
	OpAddSet           = "add_set"
	OpListSets         = "list_sets"
	OpListSetDetails   = "list_set_details"
	OpCreateExercise   = "create_exercise"
	OpListExercises    = "list_exercises"
	OpCreateBodyPart   = "create_body_part"
	OpListBodyParts    = "list_body_parts"
	OpLogBodyWeight    = "log_body_weight"
	OpListBodyWeights  = "list_body_weights"
	OpDeleteBodyWeight = "delete_body_weight"
)

// Analytics Metrics
var (
	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ndl_analytics_duration_seconds",
			Help:    "Time spent fetching and aggregating an analytics view",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"view"},
	)

	AnalyticsErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ndl_analytics_errors_total",
			Help: "Total number of analytics views that failed to load",
		},
		[]string{"view"},
	)
)

// Store Metrics
var (
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ndl_store_operation_duration_seconds",
			Help:    "Storage operation latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ndl_store_operation_errors_total",
			Help: "Total number of storage operation errors",
		},
		[]string{"backend", "operation"},
	)
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ndl_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ndl_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"endpoint", "status_code"},
	)
)

// ObserveStore starts a timer for a storage operation. Call the returned
// function with the operation's error once it completes.
func ObserveStore(backend, op string) func(error) {
	timer := prometheus.NewTimer(StoreOperationDuration.WithLabelValues(backend, op))
	return func(err error) {
		timer.ObserveDuration()
		if err != nil {
			StoreOperationErrorsTotal.WithLabelValues(backend, op).Inc()
		}
	}
}
