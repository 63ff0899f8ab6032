// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Auth Metrics
	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_auth_events_total",
			Help: "Registration and login attempts by outcome",
		},
		[]string{"action", "outcome"}, // action: register, login; outcome: success, conflict, unauthorized
	)

	// Search Metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_search_requests_total",
			Help: "Recipe searches by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)

	// Index Sync Metrics
	IndexBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_index_batches_total",
			Help: "Index batches pushed to the search service by outcome",
		},
		[]string{"outcome"}, // success, retry, failure
	)

	IndexDocuments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_index_documents_total",
			Help: "Recipe documents accepted by the search service",
		},
	)

	IndexRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_index_run_duration_seconds",
			Help:    "Duration of full recipe reindex runs",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	IndexLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_index_last_success_timestamp",
			Help: "Unix timestamp of the last reindex without failed batches",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipe_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)
