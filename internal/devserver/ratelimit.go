package devserver

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// defaultRateLimit is requests per minute per token
	defaultRateLimit = 100
	// defaultBurstSize is the burst allowance per token
	defaultBurstSize = 10
	// limiterTTL is how long an idle limiter is kept before cleanup
	limiterTTL = 10 * time.Minute
	// cleanupInterval is how often stale limiters are swept
	cleanupInterval = 5 * time.Minute
)

// RateLimiter manages per-token rate limiting
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rateLimit float64
	burstSize int
	stopCh    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter with the default settings
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultRateLimit, defaultBurstSize)
}

// NewRateLimiterWithConfig creates a RateLimiter with custom limits
func NewRateLimiterWithConfig(requestsPerMinute, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: float64(requestsPerMinute) / 60.0,
		burstSize: burstSize,
		stopCh:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow checks whether a request under the given token may proceed
func (r *RateLimiter) Allow(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[token]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(r.rateLimit), r.burstSize),
		}
		r.limiters[token] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// Stop terminates the cleanup goroutine
func (r *RateLimiter) Stop() {
	close(r.stopCh)
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			for token, entry := range r.limiters {
				if time.Since(entry.lastSeen) > limiterTTL {
					delete(r.limiters, token)
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

// RateLimit is the echo middleware enforcing the per-token limit. Requests
// without a token (public endpoints) pass through unmetered.
func RateLimit(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}
			if !rl.Allow(token) {
				return tooManyRequests(c)
			}
			return next(c)
		}
	}
}
