package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by every delivery to one webhook.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows burst requests at once and then requestsPerSecond.
//
// Example:
//
//	limiter := NewRateLimiter(1.0, 1) // Slack: 1 message per second
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow blocks until a token is available or ctx is done.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
