package http

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"news-portal/internal/handler/http/respond"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. Each client IP refills at
// perMinute tokens per minute and may burst up to burst requests.
type RateLimiter struct {
	name       string
	limit      rate.Limit
	burst      int
	trustProxy bool
	now        func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter creates a limiter. name labels its metrics and logs, e.g. "auth".
func NewRateLimiter(name string, perMinute, burst int, trustProxy bool) *RateLimiter {
	if burst <= 0 {
		burst = perMinute
	}
	return &RateLimiter{
		name:       name,
		limit:      rate.Limit(float64(perMinute) / 60),
		burst:      burst,
		trustProxy: trustProxy,
		now:        time.Now,
		visitors:   make(map[string]*visitor),
	}
}

// Limit rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r, rl.trustProxy)
		allowed, retryAfter := rl.allow(ip)
		if !allowed {
			RecordRateLimitRejection(rl.name)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			respond.Failure(w, http.StatusTooManyRequests, "Too many requests.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow consumes a token for key. When none is available it returns the
// whole seconds until the next one.
func (rl *RateLimiter) allow(key string) (bool, int) {
	now := rl.now()

	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	res := v.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, 60
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	// 予約は取り消してトークンを返す
	res.CancelAt(now)
	return false, int(math.Ceil(delay.Seconds()))
}

// CleanupExpired forgets clients idle for longer than idle and returns how
// many were removed. A forgotten client starts again with a full bucket.
func (rl *RateLimiter) CleanupExpired(idle time.Duration) int {
	cutoff := rl.now().Add(-idle)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked clients.
func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}
