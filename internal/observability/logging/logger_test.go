package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"news-portal/internal/handler/http/requestid"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger(slog.LevelInfo))
	assert.NotNil(t, NewTextLogger(slog.LevelDebug))
}

func TestNew_Format(t *testing.T) {
	_, isText := New("TEXT", slog.LevelInfo).Handler().(*slog.TextHandler)
	assert.True(t, isText)
	_, isJSON := New("json", slog.LevelInfo).Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
	_, isJSON = New("", slog.LevelInfo).Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelInfo, false)

	logger.Debug("hidden")
	assert.Empty(t, buf.String(), "debug should be filtered at info level")

	logger.Info("shown", slog.String("k", "v"))
	entry := decode(t, &buf)
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "v", entry["k"])
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, slog.LevelInfo, false)

	ctx := requestid.WithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, base).Info("hello")

	assert.Equal(t, "req-123", decode(t, &buf)["request_id"])
}

func TestWithRequestID_EmptyRequestID(t *testing.T) {
	base := slog.Default()
	assert.Same(t, base, WithRequestID(context.Background(), base))
}

func TestWithTrace(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, slog.LevelInfo, false)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(requestid.WithRequestID(context.Background(), "req-1"), sc)

	WithTrace(ctx, base).Info("traced")

	entry := decode(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, slog.LevelInfo, false)

	WithFields(base, map[string]interface{}{"user_id": 7, "action": "login"}).Info("x")

	entry := decode(t, &buf)
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, "login", entry["action"])
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}
