package middleware

import (
	"net/http"
	"sync"

	"bettrack/pkg/metrics"
	"bettrack/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per caller key. Instances are
// constructed at startup and passed into the router; counters are local
// to the process, so limits are per instance in a multi-instance
// deployment.
type RateLimiter struct {
	name     string
	rps      float64
	burst    int
	limiters sync.Map // map[string]*rate.Limiter
}

func NewRateLimiter(name string, rps float64, burst int) *RateLimiter {
	return &RateLimiter{name: name, rps: rps, burst: burst}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	if v, ok := rl.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(rl.rps), rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// Middleware enforces the bucket. Key selection prefers the
// authenticated user id set by JWTAuthMiddleware; unauthenticated
// callers are keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if uid := c.GetString("user_id"); uid != "" {
			key = "user:" + uid
		}

		if !rl.get(key).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues(rl.name).Inc()
			utils.RespondError(c, http.StatusTooManyRequests, "Rate limit exceeded")
			c.Abort()
			return
		}
		metrics.RateLimitAllowed.WithLabelValues(rl.name).Inc()
		c.Next()
	}
}
