package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultRateLimit = 120
	DefaultBurstSize = 20

	// Idle client buckets are swept every CleanupInterval and dropped after LimiterTTL
	CleanupInterval = 5 * time.Minute
	LimiterTTL      = 10 * time.Minute
)

// Decision is the outcome of taking one token from a client's bucket
type Decision struct {
	Allowed    bool
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// RateLimiter is a token bucket per client key (the caller's IP)
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute int
	perSecond rate.Limit
	burst     int
	now       func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter uses DefaultRateLimit and DefaultBurstSize
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimit, DefaultBurstSize)
}

// NewRateLimiterWithConfig starts a limiter refilling requestsPerMinute
// tokens a minute into buckets of burstSize. Call Stop when done.
func NewRateLimiterWithConfig(requestsPerMinute, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: requestsPerMinute,
		perSecond: rate.Limit(float64(requestsPerMinute) / 60),
		burst:     burstSize,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Take spends one token for key and reports what is left
func (r *RateLimiter) Take(key string) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(r.perSecond, r.burst)}
		r.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)

	d := Decision{
		Allowed:   allowed,
		Remaining: int(math.Max(0, math.Floor(tokens))),
		Reset:     now.Add(r.refill(float64(r.burst) - tokens)),
	}
	if !allowed {
		d.RetryAfter = r.refill(1 - tokens)
	}
	return d
}

// refill is how long the bucket needs to regain n tokens
func (r *RateLimiter) refill(n float64) time.Duration {
	if n <= 0 || r.perSecond <= 0 {
		return 0
	}
	return time.Duration(n / float64(r.perSecond) * float64(time.Second))
}

func (r *RateLimiter) sweep() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictStale(r.now())
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) evictStale(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, b := range r.buckets {
		if now.Sub(b.lastSeen) > LimiterTTL {
			delete(r.buckets, key)
			log.Debug().Str("client", key).Msg("Dropped idle rate limit bucket")
		}
	}
}

// Stop ends the sweeper. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// RateLimitMiddleware limits requests per client IP and reports the
// bucket through X-RateLimit-* headers
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	limit := strconv.Itoa(rl.perMinute)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			d := rl.Take(key)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

			if d.Allowed {
				return next(c)
			}

			retryAfter := int(math.Ceil(d.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			h.Set("Retry-After", strconv.Itoa(retryAfter))

			log.Warn().
				Str("client", key).
				Str("path", c.Request().URL.Path).
				Int("retry_after", retryAfter).
				Msg("Rate limit exceeded")

			return tooManyRequestsError(c, retryAfter)
		}
	}
}
