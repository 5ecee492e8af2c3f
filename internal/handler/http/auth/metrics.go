package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// bearerChecksTotal counts bearer token verifications by role and result.
	bearerChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_bearer_checks_total",
			Help: "Bearer token verifications by role and result",
		},
		[]string{"role", "result"}, // result: success | missing | invalid | revoked | error
	)

	// authzCheckDuration tracks how long token verification takes, revocation lookup included.
	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Bearer token verification duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	// authHandlerDuration tracks signup, login and logout latency.
	authHandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication endpoint duration by action",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"action"},
	)
)

// RecordBearerCheck records the outcome of verifying a bearer token.
func RecordBearerCheck(role, result string) {
	bearerChecksTotal.WithLabelValues(role, result).Inc()
}

// RecordAuthzCheckDuration records token verification duration.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordAuthDuration records how long an authentication endpoint took.
func RecordAuthDuration(action string, durationSeconds float64) {
	authHandlerDuration.WithLabelValues(action).Observe(durationSeconds)
}
