package http

import (
	"context"
	"log/slog"
	"time"
)

// DefaultCleanupInterval is how often idle clients are dropped from a limiter.
const DefaultCleanupInterval = 5 * time.Minute

// StartRateLimitCleanup periodically removes clients idle for longer than
// idle from limiter until ctx is cancelled. Run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter *RateLimiter, interval, idle time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter", limiter.name),
		slog.Duration("interval", interval),
		slog.Duration("idle", idle))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter", limiter.name))
			return

		case <-ticker.C:
			removed := limiter.CleanupExpired(idle)
			remaining := limiter.Size()
			SetRateLimitClients(limiter.name, remaining)

			slog.Debug("rate limit cleanup completed",
				slog.String("limiter", limiter.name),
				slog.Int("keys_removed", removed),
				slog.Int("active_keys", remaining))
		}
	}
}
