package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter    *rate.Limiter
	lastActive time.Time
}

var ipLimiters = struct {
	sync.Mutex
	m map[string]*ipLimiter
}{
	m: make(map[string]*ipLimiter),
}

// Drop limiters for IPs that have gone quiet
func cleanupLimiters() {
	for {
		time.Sleep(1 * time.Hour)
		ipLimiters.Lock()
		now := time.Now()
		for ip, l := range ipLimiters.m {
			if now.Sub(l.lastActive) > 2*time.Hour {
				delete(ipLimiters.m, ip)
			}
		}
		ipLimiters.Unlock()
	}
}

var cleanupOnce sync.Once

// RateLimit throttles each client IP with a token bucket.
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	cleanupOnce.Do(func() { go cleanupLimiters() })

	return func(c *gin.Context) {
		ip := c.ClientIP()

		ipLimiters.Lock()
		l, exists := ipLimiters.m[ip]
		if !exists {
			l = &ipLimiter{limiter: rate.NewLimiter(limit, burst)}
			ipLimiters.m[ip] = l
		}
		l.lastActive = time.Now()
		ipLimiters.Unlock()

		if !l.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many requests"})
			return
		}

		c.Next()
	}
}
