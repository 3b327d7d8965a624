package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"campusevents/utils"
)

// RateLimiter keeps one token bucket per client
type RateLimiter struct {
	visitors map[string]*Visitor
	mutex    sync.Mutex
	window   time.Duration
	burst    int
	now      func() time.Time
}

type Visitor struct {
	limiter  *TokenBucket
	lastSeen time.Time
}

// TokenBucket holds up to capacity tokens, refilled one per refillRate
type TokenBucket struct {
	tokens     int
	capacity   int
	refillRate time.Duration
	lastRefill time.Time
}

// NewRateLimiter allows requests per client per window, refilled evenly
func NewRateLimiter(window time.Duration, requests int) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		visitors: make(map[string]*Visitor),
		window:   window,
		burst:    requests,
		now:      time.Now,
	}
}

func NewTokenBucket(capacity int, refillRate time.Duration, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     capacity,
		capacity:   capacity,
		refillRate: refillRate,
		lastRefill: now,
	}
}

// take spends a token if one is available and returns the tokens left
func (tb *TokenBucket) take(now time.Time) (bool, int) {
	elapsed := now.Sub(tb.lastRefill)

	if tb.refillRate > 0 && elapsed >= tb.refillRate {
		tokensToAdd := int(elapsed / tb.refillRate)
		tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
		tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd) * tb.refillRate)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, tb.tokens
	}
	return false, 0
}

// Allow reports whether the client identified by key may proceed, and how
// many requests it has left
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	visitor, exists := rl.visitors[key]
	if !exists {
		visitor = &Visitor{
			limiter: NewTokenBucket(rl.burst, rl.window/time.Duration(rl.burst), now),
		}
		rl.visitors[key] = visitor
	}

	visitor.lastSeen = now
	return visitor.limiter.take(now)
}

// Cleanup drops visitors idle for longer than maxIdle
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	removed := 0
	now := rl.now()
	for key, visitor := range rl.visitors {
		if now.Sub(visitor.lastSeen) > maxIdle {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

// RunCleanup prunes idle visitors every interval until ctx is done
func (rl *RateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup(time.Hour)
		}
	}
}

// RateLimitMiddleware rejects clients that exceed the limiter with 429
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.Allow(getClientID(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(limiter.now().Add(limiter.window).Unix(), 10))
			utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientID returns client identifier for rate limiting
func getClientID(c *gin.Context) string {
	if adminID, exists := utils.GetAdminIDFromContext(c); exists {
		return fmt.Sprintf("admin:%s", adminID.Hex())
	}

	return fmt.Sprintf("ip:%s", c.ClientIP())
}
