package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/movienight/server/internal/api/handler/v1/response"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP, evicting buckets of
// IPs that went quiet for longer than ttl.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	reqPerMin int
	burst     int
	ttl       time.Duration
}

func NewIPRateLimiter(reqPerMin, burst int, ttl time.Duration) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors:  make(map[string]*visitor),
		reqPerMin: reqPerMin,
		burst:     burst,
		ttl:       ttl,
	}
	go rl.cleanupVisitors()

	return rl
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(float64(rl.reqPerMin)/60.0), rl.burst)
	rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}

	return limiter
}

func (rl *IPRateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.ttl {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func RateLimitByIP(rl *IPRateLimiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !rl.getLimiter(ctx.ClientIP()).Allow() {
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}
		ctx.Next()
	}
}
