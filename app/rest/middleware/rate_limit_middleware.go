package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter applies per-IP token-bucket limits, tighter on the
// credential-guessing surfaces than on the rest of the API.
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}
	go rl.cleanupVisitors()
	return rl
}

func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			var limit rate.Limit
			var burst int

			path := c.Request().URL.Path
			switch {
			case strings.HasSuffix(path, "/auth/login"):
				limit = rate.Every(5 * time.Second)
				burst = 5
			case strings.HasSuffix(path, "/auth/register"):
				limit = rate.Every(time.Minute)
				burst = 3
			case strings.Contains(path, "/auth/sso/"):
				limit = rate.Every(time.Second)
				burst = 10
			default:
				limit = rate.Every(time.Second)
				burst = 20
			}

			if !rl.allow(ip, path, limit, burst) {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error": "rate limit exceeded",
					"code":  "RATE_LIMIT_EXCEEDED",
				})
			}

			return next(c)
		}
	}
}

// allow keys buckets by IP and path class so a burst against /auth/login
// does not consume the caller's budget for the rest of the API.
func (rl *RateLimiter) allow(ip, path string, limit rate.Limit, burst int) bool {
	key := ip + "|" + bucketClass(path)

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		rl.visitors[key] = &visitor{
			limiter:  rate.NewLimiter(limit, burst),
			lastSeen: time.Now(),
		}
		return true
	}

	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func bucketClass(path string) string {
	switch {
	case strings.HasSuffix(path, "/auth/login"):
		return "login"
	case strings.HasSuffix(path, "/auth/register"):
		return "register"
	case strings.Contains(path, "/auth/sso/"):
		return "sso"
	default:
		return "api"
	}
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mutex.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mutex.Unlock()
	}
}
