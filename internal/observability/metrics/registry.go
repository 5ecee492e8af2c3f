// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track moderation and engagement activity
var (
	// ArticlesByStatus tracks the number of live articles per moderation status
	ArticlesByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "articles_by_status",
			Help: "Number of non-deleted articles in each moderation status",
		},
		[]string{"status"},
	)

	// ModerationTransitionsTotal counts moderation transitions by outcome
	ModerationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_transitions_total",
			Help: "Total number of article moderation transitions attempted",
		},
		[]string{"transition", "result"}, // result: success, forbidden, not_found, conflict, error
	)

	// ReactionTogglesTotal counts reaction toggles by target and outcome
	ReactionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_toggles_total",
			Help: "Total number of reaction toggles",
		},
		[]string{"target", "outcome"}, // outcome: liked, unliked, disliked, undisliked
	)

	// CommentsCreatedTotal counts new comments, split into top-level and replies
	CommentsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comments_created_total",
			Help: "Total number of comments created",
		},
		[]string{"kind"}, // kind: comment, reply
	)

	// ActivityLogFailuresTotal counts audit entries that could not be written
	ActivityLogFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_log_failures_total",
			Help: "Total number of activity log writes that failed",
		},
		[]string{"target"},
	)

	// AuthAttemptsTotal counts signup and login attempts by result
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of signup and login attempts",
		},
		[]string{"action", "result"},
	)

	// RevokedTokensPrunedTotal counts expired revocations removed by the worker
	RevokedTokensPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revoked_tokens_pruned_total",
			Help: "Total number of expired token revocations pruned",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
