package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"gitlab.com/code-round.net/internal/core/ports/secondary"
)

var _ secondary.RateLimiter = (*RateLimiter)(nil)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-key token bucket for single instance deployments.
// A full bucket holds max tokens and refills at max per window.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (l *RateLimiter) Allow(_ context.Context, key string, max int, window time.Duration) (bool, error) {
	if max <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(window/time.Duration(max)), max)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	for k, other := range l.visitors {
		if now.Sub(other.lastSeen) > window {
			delete(l.visitors, k)
		}
	}

	return v.limiter.AllowN(now, 1), nil
}
