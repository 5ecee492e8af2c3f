package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func probe(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal %s response: %v", path, err)
	}
	return rec.Code, body.Status
}

func TestHealthServer_Liveness(t *testing.T) {
	server := NewHealthServer(":0", discardLogger(), nil)

	code, status := probe(t, server.Handler(), "/health")
	if code != http.StatusOK || status != "ok" {
		t.Errorf("expected 200 ok, got %d %q", code, status)
	}
}

func TestHealthServer_Readiness(t *testing.T) {
	var checkErr error
	server := NewHealthServer(":0", discardLogger(), func(context.Context) error { return checkErr })
	h := server.Handler()

	code, status := probe(t, h, "/health/ready")
	if code != http.StatusServiceUnavailable || status != "not ready" {
		t.Errorf("expected 503 not ready before SetReady, got %d %q", code, status)
	}

	server.SetReady(true)
	code, status = probe(t, h, "/health/ready")
	if code != http.StatusOK || status != "ok" {
		t.Errorf("expected 200 ok after SetReady, got %d %q", code, status)
	}

	checkErr = errors.New("dial tcp 10.0.0.5:5432: connection refused")
	code, status = probe(t, h, "/health/ready")
	if code != http.StatusServiceUnavailable || status != "unavailable" {
		t.Errorf("expected 503 unavailable when the check fails, got %d %q", code, status)
	}

	checkErr = nil
	server.SetReady(false)
	code, _ = probe(t, h, "/health/ready")
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 after SetReady(false), got %d", code)
	}
}

func TestHealthServer_Metrics(t *testing.T) {
	server := NewHealthServer(":0", discardLogger(), nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 from /metrics, got %d", rec.Code)
	}
}

func TestHealthServer_GracefulShutdown(t *testing.T) {
	server := NewHealthServer("localhost:19095", discardLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get("http://localhost:19095/health")
	if err != nil {
		t.Fatalf("server not running: %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close response body: %v", err)
	}

	cancel()

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("expected http.ErrServerClosed, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("shutdown timeout")
	}

	if _, err := http.Get("http://localhost:19095/health"); err == nil {
		t.Error("expected connection error after shutdown, but got success")
	}
}
