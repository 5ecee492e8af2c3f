package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics tracks scheduled job executions.
//
// Metrics:
//   - worker_job_runs_total{job,status}: runs by outcome (success/failure)
//   - worker_job_duration_seconds{job}: run duration
//   - worker_job_last_success_timestamp{job}: Unix time of the last successful run
//
// Pruned revocations are counted by metrics.RecordTokensPruned (revoked_tokens_pruned_total).
type WorkerMetrics struct {
	JobRunsTotal        *prometheus.CounterVec
	JobDurationSeconds  *prometheus.HistogramVec
	JobLastSuccessStamp *prometheus.GaugeVec
}

// NewWorkerMetrics creates the metrics and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry(); the worker passes prometheus.DefaultRegisterer.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Total number of scheduled job runs by job and status",
		}, []string{"job", "status"}),

		JobDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of scheduled job runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 60},
		}, []string{"job"}),

		JobLastSuccessStamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run per job",
		}, []string{"job"}),
	}
}

// RecordJobRun increments the run counter for job with status "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(job, status string) {
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
}

// RecordJobDuration observes how long a run of job took.
func (m *WorkerMetrics) RecordJobDuration(job string, seconds float64) {
	m.JobDurationSeconds.WithLabelValues(job).Observe(seconds)
}

// RecordLastSuccess stamps the current time as job's last successful completion.
func (m *WorkerMetrics) RecordLastSuccess(job string) {
	m.JobLastSuccessStamp.WithLabelValues(job).SetToCurrentTime()
}
