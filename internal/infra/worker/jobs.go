// Package worker holds the maintenance jobs scheduled by cmd/worker together
// with their configuration checks, metrics and health endpoints.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"news-portal/internal/config"
	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/resilience/retry"
)

// Job names used as metric labels and log fields.
const (
	JobPruneTokens   = "prune_revoked_tokens"
	JobArticlesGauge = "articles_by_status"
)

// TokenPruner deletes logout revocations that can no longer match a live token.
type TokenPruner interface {
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}

// StatusCounter counts live articles per moderation status.
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[entity.ArticleStatus]int64, error)
}

// Jobs runs the scheduled maintenance work.
type Jobs struct {
	Tokens   TokenPruner
	Articles StatusCounter
	Metrics  *WorkerMetrics
	Logger   *slog.Logger
	// Timeout bounds one run, retries included.
	Timeout time.Duration
	Retry   retry.Config
	Now     func() time.Time
}

func (j *Jobs) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// PruneRevokedTokens deletes revocations whose token has expired.
func (j *Jobs) PruneRevokedTokens(ctx context.Context) error {
	n, err := j.Tokens.PruneExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("prune revoked tokens: %w", err)
	}
	metrics.RecordTokensPruned(n)
	j.Logger.Info("revoked tokens pruned", slog.Int64("deleted", n))
	return nil
}

// RefreshArticlesGauge recomputes the articles_by_status gauge.
func (j *Jobs) RefreshArticlesGauge(ctx context.Context) error {
	counts, err := j.Articles.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count articles by status: %w", err)
	}
	metrics.UpdateArticlesByStatus(counts)
	j.Logger.Debug("articles gauge refreshed",
		slog.Int64("pending", counts[entity.StatusPending]),
		slog.Int64("published", counts[entity.StatusPublished]))
	return nil
}

// Run executes fn under the job timeout with retries and records the outcome.
// Errors are logged and counted, never returned: cron has nobody to return them to.
func (j *Jobs) Run(ctx context.Context, name string, fn func(context.Context) error) {
	start := time.Now()
	logger := j.Logger.With(slog.String("job", name))

	ctx, cancel := context.WithTimeout(ctx, j.Timeout)
	defer cancel()

	err := retry.WithBackoff(ctx, j.Retry, func() error { return fn(ctx) })
	j.Metrics.RecordJobDuration(name, time.Since(start).Seconds())
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("job failed", slog.String("error", respond.SanitizeError(err)))
		j.Metrics.RecordJobRun(name, "failure")
		return
	}
	j.Metrics.RecordJobRun(name, "success")
	j.Metrics.RecordLastSuccess(name)
}

// Schedule registers both jobs on c. Jobs run on ctx so shutdown cancels them.
func (j *Jobs) Schedule(ctx context.Context, c *cron.Cron, cfg config.WorkerConfig) error {
	if _, err := c.AddFunc(cfg.PruneSchedule, func() {
		j.Run(ctx, JobPruneTokens, j.PruneRevokedTokens)
	}); err != nil {
		return fmt.Errorf("schedule %s: %w", JobPruneTokens, err)
	}
	if _, err := c.AddFunc(cfg.QueueGaugeSchedule, func() {
		j.Run(ctx, JobArticlesGauge, j.RefreshArticlesGauge)
	}); err != nil {
		return fmt.Errorf("schedule %s: %w", JobArticlesGauge, err)
	}
	return nil
}
