package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

// NewIPRateLimiter allows perMinute requests per IP, with bursts of up
// to perMinute.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	// forget idle visitors as we go
	if len(l.visitors) > 1024 {
		for k, other := range l.visitors {
			if now.Sub(other.lastSeen) > l.idle {
				delete(l.visitors, k)
			}
		}
	}

	return v.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, please slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}
