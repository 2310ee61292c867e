package store

import (
	"sync"
	"time"
)

// Clock is a simulated clock that can be moved forward from the admin
// control plane. It drives customer creation times and ids.
type Clock struct {
	mu     sync.RWMutex
	now    func() time.Time
	offset time.Duration
}

// NewClock creates a clock following wall time with no offset.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewFixedClock creates a clock frozen at t until advanced.
func NewFixedClock(t time.Time) *Clock {
	return &Clock{now: func() time.Time { return t }}
}

// Now returns the current simulated time in UTC.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now().Add(c.offset).UTC()
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += d
}

// Reset drops any offset.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = 0
}

// Offset returns the current offset from the underlying time source.
func (c *Clock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// Timestamp formats t the way the portal reports times: RFC 3339 in UTC
// with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
