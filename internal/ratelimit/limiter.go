// Package ratelimit enforces a minimum spacing between requests per host.
package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/daehyun-ko/jobscout/internal/metrics"
)

// Limiter hands out one permit per host at a configured minimum interval.
// Waiters on the same host are served FIFO by the underlying token bucket, so
// parallel keyword workers cannot starve each other.
type Limiter struct {
	mu       sync.Mutex
	perHost  map[string]*rate.Limiter
	interval time.Duration
}

// New builds a Limiter with the given minimum delay between requests to the
// same host. A non-positive delay disables limiting.
func New(minDelay time.Duration) *Limiter {
	return &Limiter{
		perHost:  make(map[string]*rate.Limiter),
		interval: minDelay,
	}
}

// Wait blocks until a permit is available for the URL's host, or until the
// context is canceled.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host := "unknown"
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}

	start := time.Now()
	if err := l.limiterFor(host).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", host, err)
	}
	if waited := time.Since(start); waited > time.Millisecond {
		metrics.RateLimitWaitSeconds.Observe(waited.Seconds())
	}
	return nil
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.perHost[host]; ok {
		return lim
	}
	limit := rate.Inf
	if l.interval > 0 {
		limit = rate.Every(l.interval)
	}
	lim := rate.NewLimiter(limit, 1)
	l.perHost[host] = lim
	return lim
}
