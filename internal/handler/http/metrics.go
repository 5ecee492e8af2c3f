package http

import (
	"net/http"
	"strconv"
	"time"

	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/responsewriter"
	"news-portal/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequestsInFlight tracks the current number of HTTP requests being processed.
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	rateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected with 429 by limiter",
		},
		[]string{"limiter"},
	)

	rateLimitClients = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rate_limit_clients",
			Help: "Client IPs currently tracked by limiter",
		},
		[]string{"limiter"},
	)
)

// MetricsMiddleware records request count, latency and sizes per normalized
// route. Paths are normalized so that ids do not become label values.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		// 例: /v1/articles/123/approve -> /v1/articles/:id/approve
		path := pathutil.NormalizePath(r.URL.Path)
		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(r.Method, path, strconv.Itoa(rw.StatusCode()),
			time.Since(start), int(max(r.ContentLength, 0)), rw.BytesWritten())
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordRateLimitRejection counts a 429 issued by limiter.
func RecordRateLimitRejection(limiter string) {
	rateLimitRejections.WithLabelValues(limiter).Inc()
}

// SetRateLimitClients reports how many clients limiter is tracking.
func SetRateLimitClients(limiter string, n int) {
	rateLimitClients.WithLabelValues(limiter).Set(float64(n))
}
