// Package notifier posts article moderation events to chat webhooks.
//
// Slack and Discord are supported. Both share the same delivery rules: a
// per-webhook token bucket, a bounded retry for 5xx and network errors, and a
// single wait on 429 honoring the retry_after the service returned.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"news-portal/internal/domain/entity"
)

const (
	defaultMaxAttempts = 2
	defaultBaseDelay   = 5 * time.Second
)

// webhook is the HTTP side shared by the Slack and Discord notifiers.
type webhook struct {
	service     string
	url         string
	client      *http.Client
	limiter     *RateLimiter
	maxAttempts int
	baseDelay   time.Duration
}

func newWebhook(service, url string, timeout time.Duration, limiter *RateLimiter) *webhook {
	return &webhook{
		service:     service,
		url:         url,
		client:      &http.Client{Timeout: timeout},
		limiter:     limiter,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}
}

// deliver waits for a rate limit token and posts payload, retrying transient failures.
func (w *webhook) deliver(ctx context.Context, ev entity.ModerationEvent, payload any) error {
	if err := w.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		lastErr = w.post(ctx, body)
		if lastErr == nil {
			slog.Debug("webhook delivered",
				slog.String("service", w.service),
				slog.Int64("article_id", ev.ArticleID),
				slog.String("transition", string(ev.Transition)),
				slog.Int("attempt", attempt))
			return nil
		}

		var delay time.Duration
		var rl *RateLimitError
		switch {
		case errors.As(lastErr, &rl):
			delay = rl.RetryAfter
		case !isRetryableError(lastErr):
			return lastErr
		default:
			delay = w.baseDelay * time.Duration(attempt)
		}
		if attempt == w.maxAttempts {
			break
		}

		slog.Warn("webhook delivery failed, retrying",
			slog.String("service", w.service),
			slog.Int64("article_id", ev.ArticleID),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%s webhook: %w", w.service, ctx.Err())
		}
	}
	return fmt.Errorf("%s webhook failed after %d attempts: %w", w.service, w.maxAttempts, lastErr)
}

// post sends one request and classifies the response.
func (w *webhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		// エラーメッセージに Webhook URL（トークン）を含めない
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("execute http request: %w", uerr.Err)
		}
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    w.service + " rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, respBody),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API client error: %s", w.service, string(respBody)),
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API server error: %s", w.service, string(respBody)),
		}
	default:
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}
}
