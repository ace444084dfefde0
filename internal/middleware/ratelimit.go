package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/audithub/audithub/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 2 * time.Minute
	limiterIdleTTL       = 10 * time.Minute
)

// visitor tracks one caller's token bucket and when it was last used.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per caller. Authenticated requests are
// budgeted per user so a shared egress IP does not pool everyone into one
// bucket; unauthenticated requests fall back to the client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter allowing rps requests per second with
// the given burst per caller.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
	go rl.sweep()
	return rl
}

// limiterKey identifies the caller for budgeting purposes.
func limiterKey(c *gin.Context) string {
	if userID := GetUserID(c); userID > 0 {
		return fmt.Sprintf("user:%d", userID)
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// sweep drops buckets of callers idle long enough that their budget has
// fully refilled anyway.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-limiterIdleTTL)
		rl.mu.Lock()
		for key, v := range rl.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware enforces the per-caller budget on the routes it wraps.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(limiterKey(c)) {
			c.JSON(http.StatusTooManyRequests, response.Response{
				Code:    429,
				Message: "too many requests, slow down",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
