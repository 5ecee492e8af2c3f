package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/resilience/retry"
)

/* ───────── モック実装 ───────── */

type stubPruner struct {
	errs   []error
	calls  int
	before time.Time
	n      int64
}

func (s *stubPruner) PruneExpired(_ context.Context, before time.Time) (int64, error) {
	s.calls++
	s.before = before
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	return s.n, nil
}

type stubCounter struct {
	counts map[entity.ArticleStatus]int64
	err    error
}

func (s *stubCounter) CountByStatus(context.Context) (map[entity.ArticleStatus]int64, error) {
	return s.counts, s.err
}

func newJobs(p *stubPruner, c *stubCounter) *Jobs {
	return &Jobs{
		Tokens:   p,
		Articles: c,
		Metrics:  NewWorkerMetrics(prometheus.NewRegistry()),
		Logger:   discardLogger(),
		Timeout:  time.Second,
		Retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			Multiplier:   2,
		},
		Now: func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

/* ───────── テスト ───────── */

func TestJobs_PruneRevokedTokens(t *testing.T) {
	p := &stubPruner{n: 7}
	j := newJobs(p, &stubCounter{})
	before := testutil.ToFloat64(metrics.RevokedTokensPrunedTotal)

	require.NoError(t, j.PruneRevokedTokens(context.Background()))

	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), p.before)
	assert.Equal(t, before+7, testutil.ToFloat64(metrics.RevokedTokensPrunedTotal))
}

func TestJobs_RefreshArticlesGauge(t *testing.T) {
	c := &stubCounter{counts: map[entity.ArticleStatus]int64{
		entity.StatusPending:   4,
		entity.StatusPublished: 9,
	}}
	j := newJobs(&stubPruner{}, c)

	require.NoError(t, j.RefreshArticlesGauge(context.Background()))

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.ArticlesByStatus.WithLabelValues("pending")))
	assert.Equal(t, 9.0, testutil.ToFloat64(metrics.ArticlesByStatus.WithLabelValues("published")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ArticlesByStatus.WithLabelValues("rejected")))

	c.err = errors.New("boom")
	assert.ErrorContains(t, j.RefreshArticlesGauge(context.Background()), "count articles by status")
}

func TestJobs_Run_RetriesTransientErrors(t *testing.T) {
	p := &stubPruner{errs: []error{&pgconn.PgError{Code: "40P01"}, nil}}
	j := newJobs(p, &stubCounter{})

	j.Run(context.Background(), JobPruneTokens, j.PruneRevokedTokens)

	assert.Equal(t, 2, p.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(j.Metrics.JobRunsTotal.WithLabelValues(JobPruneTokens, "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(j.Metrics.JobRunsTotal.WithLabelValues(JobPruneTokens, "failure")))
	assert.Greater(t, testutil.ToFloat64(j.Metrics.JobLastSuccessStamp.WithLabelValues(JobPruneTokens)), 0.0)
}

func TestJobs_Run_PermanentFailure(t *testing.T) {
	p := &stubPruner{errs: []error{errors.New("permission denied for table revoked_tokens")}}
	j := newJobs(p, &stubCounter{})

	j.Run(context.Background(), JobPruneTokens, j.PruneRevokedTokens)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(j.Metrics.JobRunsTotal.WithLabelValues(JobPruneTokens, "failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(j.Metrics.JobLastSuccessStamp.WithLabelValues(JobPruneTokens)))
}

func TestJobs_Schedule(t *testing.T) {
	j := newJobs(&stubPruner{}, &stubCounter{})
	c := cron.New()

	require.NoError(t, j.Schedule(context.Background(), c, validWorkerConfig()))
	assert.Len(t, c.Entries(), 2)

	cfg := validWorkerConfig()
	cfg.QueueGaugeSchedule = "not a schedule"
	err := j.Schedule(context.Background(), cron.New(), cfg)
	assert.ErrorContains(t, err, JobArticlesGauge)
}
