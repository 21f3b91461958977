package usecase

import (
	"sync"
	"time"
)

// fakeClock é um relógio controlado pelos testes.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var baseNow = time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return baseNow.Add(-time.Duration(n) * 24 * time.Hour)
}
