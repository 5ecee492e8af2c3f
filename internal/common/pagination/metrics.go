package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts listing requests by resource, status and page range.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_requests_total",
			Help: "Total number of paginated listing requests",
		},
		[]string{"resource", "status", "page_range"},
	)

	// DurationSeconds tracks how long listing queries take.
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_duration_seconds",
			Help:    "Listing request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"resource"},
	)
)

// RecordRequest records one listing request.
func RecordRequest(resource string, statusCode int, page int) {
	RequestsTotal.WithLabelValues(resource, fmt.Sprintf("%d", statusCode), pageRangeBucket(page)).Inc()
}

// RecordDuration records the duration of one listing request in seconds.
func RecordDuration(resource string, seconds float64) {
	DurationSeconds.WithLabelValues(resource).Observe(seconds)
}

// pageRangeBucket keeps the page label low-cardinality.
func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
