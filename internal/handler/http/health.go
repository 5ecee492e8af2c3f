// Package http holds the middleware shared by every route and the health,
// readiness and liveness endpoints.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"news-portal/internal/usecase/notify"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerState is satisfied by *circuitbreaker.DBCircuitBreaker.
type BreakerState interface {
	IsOpen() bool
}

// ChannelReporter is satisfied by *notify.Service.
type ChannelReporter interface {
	ChannelHealth() []notify.ChannelHealthStatus
}

// HealthHandler reports database connectivity, pool usage, the database
// circuit breaker, rate limiter size and notification channels.
type HealthHandler struct {
	DB            *sql.DB
	Breaker       BreakerState
	Version       string
	Limiters      []*RateLimiter
	Notifications ChannelReporter
}

// ServeHTTP ヘルスチェック
// @Summary      ヘルスチェック
// @Description  DB 接続・コネクションプール・サーキットブレーカー・レート制限の状態を返します
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)

	db := CheckStatus{Status: "unhealthy", Message: "not configured"}
	if h.DB != nil {
		db = h.checkDatabase(ctx)
	}
	checks["database"] = db

	status := db.Status
	if h.Breaker != nil {
		if h.Breaker.IsOpen() {
			checks["circuit_breaker"] = CheckStatus{Status: "degraded", Message: "database circuit breaker is open"}
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["circuit_breaker"] = CheckStatus{Status: "healthy"}
		}
	}

	if len(h.Limiters) > 0 {
		details := make(map[string]any, len(h.Limiters))
		for _, l := range h.Limiters {
			details[l.name] = map[string]int{"active_keys": l.Size()}
		}
		checks["rate_limiter"] = CheckStatus{Status: "healthy", Details: details}
	}

	// 通知チャネルの障害は API の可用性に影響しないため status には反映しない
	if h.Notifications != nil {
		checks["notifications"] = notificationCheck(h.Notifications.ChannelHealth())
	}

	// degraded は警告扱いで 200 を返す
	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

func notificationCheck(channels []notify.ChannelHealthStatus) CheckStatus {
	check := CheckStatus{Status: "healthy", Details: make(map[string]any, len(channels))}
	for _, ch := range channels {
		state := "closed"
		switch {
		case !ch.Enabled:
			state = "disabled"
		case ch.CircuitBreakerOpen:
			state = "open"
			check.Status = "degraded"
			check.Message = "notification circuit breaker is open"
		}
		check.Details[ch.Name] = state
	}
	return check
}

// checkDatabase pings the database and reports pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: "database ping failed"}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "degraded", Message: "connection pool max connections not configured", Details: details}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers the readiness probe: 200 once the database responds.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers the liveness probe and always returns 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
