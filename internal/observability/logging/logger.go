package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"news-portal/internal/handler/http/requestid"
)

// NewLogger creates a JSON logger writing to stdout at level.
// Source locations are attached at warn and below.
func NewLogger(level slog.Level) *slog.Logger {
	return newLogger(os.Stdout, level, false)
}

// NewTextLogger creates a human-readable logger for local development.
func NewTextLogger(level slog.Level) *slog.Logger {
	return newLogger(os.Stdout, level, true)
}

// New picks the handler from LOG_FORMAT: "text" selects NewTextLogger,
// anything else JSON.
func New(format string, level slog.Level) *slog.Logger {
	return newLogger(os.Stdout, level, strings.EqualFold(format, "text"))
}

func newLogger(w io.Writer, level slog.Level, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}
	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithRequestID returns a new logger that includes the request ID from the context.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// WithTrace adds request_id and, when a span is recording, trace_id.
func WithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	logger = WithRequestID(ctx, logger)
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		logger = logger.With("trace_id", sc.TraceID().String())
	}
	return logger
}

// WithFields returns a new logger with additional structured fields.
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"
