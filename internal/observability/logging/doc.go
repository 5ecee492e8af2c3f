// Package logging builds the application's slog loggers.
//
// Production logs are JSON on stdout; LOG_FORMAT=text switches to the text
// handler for local runs. Per-request fields are attached with WithTrace,
// which adds request_id, trace_id and span_id when the context carries them:
//
//	logger := logging.NewLogger(slog.LevelInfo)
//	logging.WithTrace(r.Context(), logger).Warn("article not found", slog.Int64("article_id", id))
//
// Background jobs have no request context, so they log through the logger
// they were constructed with.
package logging
