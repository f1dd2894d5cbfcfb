package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kiranshivaraju/jobtrail/internal/api/response"
	"github.com/kiranshivaraju/jobtrail/internal/cache"
)

const (
	defaultRequestsPerMinute = 60
	rateWindow               = time.Minute
)

// RateLimit provides fixed-window rate limiting via Redis.
type RateLimit struct {
	cache          cache.Cache
	requestsPerMin int
	now            func() time.Time
}

// NewRateLimit creates a new RateLimit middleware.
func NewRateLimit(c cache.Cache, requestsPerMin int) *RateLimit {
	if requestsPerMin <= 0 {
		requestsPerMin = defaultRequestsPerMinute
	}
	return &RateLimit{cache: c, requestsPerMin: requestsPerMin, now: time.Now}
}

// Limit counts requests per client identity per minute.
func (rl *RateLimit) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := rl.now()
		key := cache.RateLimitKey(ClientKey(r), now)
		count, err := rl.cache.IncrWithExpiry(r.Context(), key, 2*rateWindow)
		if err != nil {
			// fail open
			slog.Warn("rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		remaining := rl.requestsPerMin - int(count)
		if remaining < 0 {
			remaining = 0
		}
		reset := now.Truncate(rateWindow).Add(rateWindow)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMin))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if count > int64(rl.requestsPerMin) {
			retryAfter := int(reset.Sub(now).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Failure(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
