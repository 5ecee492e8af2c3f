// Package observability groups the logging, metrics and tracing infrastructure.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
//
// Example usage:
//
//	import (
//	    "news-portal/internal/observability/logging"
//	    "news-portal/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger(slog.LevelInfo)
//	    logger.Info("application started")
//
//	    metrics.RecordAuthAttempt("login", true)
//	}
package observability
