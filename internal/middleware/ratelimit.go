package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"conversational-task-assistant/pkg/response"
)

// RateLimit rejects a client IP once it exceeds its per-minute budget.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !m.allow(ip) {
			m.l.Warnf(c.Request.Context(), "internal.middleware.RateLimit: limit exceeded for %s", ip)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

func (m Middleware) allow(key string) bool {
	limiter, ok := m.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(m.rate, m.burst)
		m.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}
