package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/geocoder89/eventclone/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window counter per key. Copying an event is heavy, so the
// add-event route is limited per tenant.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	now     func() time.Time
	clients map[string]*clientBucket
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientBucket),
	}
}

// allow counts one hit for key and reports the wait when the window is exhausted.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[key]
	if !ok || !now.Before(b.windowEnd) {
		rl.sweep(now)
		rl.clients[key] = &clientBucket{count: 1, windowEnd: now.Add(rl.window)}
		return true, 0
	}

	if b.count >= rl.limit {
		return false, b.windowEnd.Sub(now)
	}

	b.count++
	return true, 0
}

// sweep drops expired buckets. Called with mu held.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, b := range rl.clients {
		if !now.Before(b.windowEnd) {
			delete(rl.clients, k)
		}
	}
}

func (rl *RateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			key = clientIP(c)
		}

		ok, wait := rl.allow(key)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(wait.Round(time.Second).Seconds())))
			handlers.RespondError(c, http.StatusTooManyRequests, "rate_limited",
				"Too many requests. Please try again shortly.", nil)
			return
		}
		c.Next()
	}
}

// KeyByTenant keys on the authenticated tenant. Use it after RequireAuth.
func KeyByTenant(c *gin.Context) string {
	if tenant := c.GetString(CtxTenantKey); tenant != "" {
		return "tenant:" + tenant
	}
	return ""
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}
