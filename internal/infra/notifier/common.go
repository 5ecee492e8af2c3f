package notifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"news-portal/internal/domain/entity"
)

// defaultRetryAfter is used when a 429 response carries no usable retry hint.
const defaultRetryAfter = 5 * time.Second

// RateLimitError represents a 429 rate limit error from a webhook service.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a 4xx client error from a webhook service.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx server error from a webhook service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// isRetryableError reports whether a backoff and second attempt can help.
// Client errors are final. Rate limits are retried by the caller using RetryAfter.
func isRetryableError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return false
	}
	return true
}

// extractRetryAfter reads retry_after (seconds) from a JSON body, then the
// Retry-After header, then falls back to defaultRetryAfter.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.RetryAfter > 0 {
		return time.Duration(payload.RetryAfter * float64(time.Second))
	}
	if h := resp.Header.Get("Retry-After"); h != "" {
		if seconds, err := strconv.Atoi(h); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRetryAfter
}

// truncate shortens text to at most maxLength bytes without splitting a rune,
// appending suffix when something was cut.
func truncate(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + suffix
}

// headline is the one-line summary of ev shared by every service.
func headline(ev entity.ModerationEvent) string {
	switch ev.Transition {
	case entity.TransitionSubmit:
		return fmt.Sprintf("Article #%d is waiting for approval", ev.ArticleID)
	case entity.TransitionApprove:
		return fmt.Sprintf("Article #%d was approved", ev.ArticleID)
	case entity.TransitionReject:
		return fmt.Sprintf("Article #%d was rejected", ev.ArticleID)
	case entity.TransitionPublish:
		return fmt.Sprintf("Article #%d was published", ev.ArticleID)
	case entity.TransitionUnpublish:
		return fmt.Sprintf("Article #%d was unpublished", ev.ArticleID)
	default:
		return fmt.Sprintf("Article #%d moved to %s", ev.ArticleID, ev.To)
	}
}

// detail lists the transition fields for the body of a message.
func detail(ev entity.ModerationEvent) string {
	return fmt.Sprintf("%s → %s by user #%d (author #%d)", ev.From, ev.To, ev.ActorID, ev.AuthorID)
}
