package bucket

import (
	"sync/atomic"
	"time"
)

// TimestampLayout is filesystem safe and sorts lexically.
const TimestampLayout = "2006-01-02T15-04-05.000000000Z"

// Clock hands out strictly increasing UTC instants, so two calls within the
// same wall clock tick still yield distinct timestamps.
type Clock struct {
	last atomic.Int64
	now  func() time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Next returns an instant later than every instant previously returned.
func (c *Clock) Next() time.Time {
	for {
		prev := c.last.Load()
		next := c.now().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if c.last.CompareAndSwap(prev, next) {
			return time.Unix(0, next).UTC()
		}
	}
}

// Stamp formats Next with TimestampLayout.
func (c *Clock) Stamp() string {
	return c.Next().Format(TimestampLayout)
}
