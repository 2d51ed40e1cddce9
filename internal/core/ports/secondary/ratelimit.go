package secondary

import (
	"context"
	"time"
)

type RateLimiter interface {
	// Allow reports whether one more hit on key fits in the window
	Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}
