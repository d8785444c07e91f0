package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"conversational-task-assistant/pkg/log"
)

const (
	defaultMaxClients = 1000
	limiterTTL        = 5 * time.Minute
)

// Config configures the request guards.
type Config struct {
	RateLimitEnabled bool
	RequestsPerMin   int
	MaxClients       int
}

type Middleware struct {
	l        log.Logger
	enabled  bool
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// New builds the middleware set. Idle clients drop out of the limiter cache after five minutes.
func New(l log.Logger, cfg Config) Middleware {
	size := cfg.MaxClients
	if size <= 0 {
		size = defaultMaxClients
	}
	burst := cfg.RequestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return Middleware{
		l:        l,
		enabled:  cfg.RateLimitEnabled && cfg.RequestsPerMin > 0,
		limiters: expirable.NewLRU[string, *rate.Limiter](size, nil, limiterTTL),
		rate:     rate.Limit(float64(cfg.RequestsPerMin) / 60.0),
		burst:    burst,
	}
}
