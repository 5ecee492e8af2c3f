package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"news-portal/internal/config"
	"news-portal/internal/handler/http/respond"
	pgRepo "news-portal/internal/infra/adapter/persistence/postgres"
	"news-portal/internal/infra/db"
	workerPkg "news-portal/internal/infra/worker"
	"news-portal/internal/observability/logging"
	"news-portal/internal/resilience/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.New(cfg.LogFormat, cfg.SlogLevel())
	slog.SetDefault(logger)

	if err := workerPkg.ValidateConfig(cfg.Worker); err != nil {
		logger.Error("invalid worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("prune_schedule", cfg.Worker.PruneSchedule),
		slog.String("gauge_schedule", cfg.Worker.QueueGaugeSchedule),
		slog.String("timezone", cfg.Worker.Timezone),
		slog.Duration("job_timeout", cfg.Worker.JobTimeout),
		slog.Int("health_port", cfg.Worker.HealthPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := initDatabase(ctx, logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	go db.ReportPoolStats(ctx, database, 30*time.Second)

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.Worker.HealthPort), logger, database.PingContext)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	jobs := &workerPkg.Jobs{
		Tokens:   pgRepo.NewTokenRepo(database),
		Articles: pgRepo.NewArticleRepo(database),
		Metrics:  workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer),
		Logger:   logger,
		Timeout:  cfg.Worker.JobTimeout,
		Retry:    retry.DBConfig(),
	}

	c := cron.New(cron.WithLocation(workerPkg.Location(cfg.Worker)))
	if err := jobs.Schedule(ctx, c, cfg.Worker); err != nil {
		logger.Error("failed to schedule jobs", slog.Any("error", err))
		os.Exit(1)
	}

	// 起動直後にゲージを埋めておく
	jobs.Run(ctx, workerPkg.JobArticlesGauge, jobs.RefreshArticlesGauge)

	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started")

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	// 実行中のジョブの完了を待つ
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// initDatabase opens the pool with retries and waits until the API has applied migrations.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) *sql.DB {
	poolCfg, err := db.LoadConnectionConfig()
	if err != nil {
		logger.Error("invalid database pool configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var database *sql.DB
	err = retry.WithBackoff(ctx, retry.JobConfig(), func() error {
		var openErr error
		database, openErr = db.Open(ctx, cfg.DatabaseURL, poolCfg)
		return openErr
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}

	waitForMigrations(ctx, logger, database)
	return database
}

func waitForMigrations(ctx context.Context, logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM revoked_tokens LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.ExecContext(ctx, probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		select {
		case <-ctx.Done():
			os.Exit(1)
		case <-time.After(3 * time.Second):
		}
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}
