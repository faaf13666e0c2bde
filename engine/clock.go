package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to the frame clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// maxDelta caps one tick's delta so a stalled process does not jump the animation
const maxDelta = 0.25

// FrameClock paces ticks at a fixed target interval and measures real delta time
type FrameClock struct {
	provider TimeProvider
	interval time.Duration
	last     time.Time
	next     time.Time
}

// NewFrameClock creates a clock whose first tick is due immediately
func NewFrameClock(provider TimeProvider, fps int) *FrameClock {
	c := &FrameClock{provider: provider}
	c.SetFPS(fps)
	now := provider.Now()
	c.last = now.Add(-c.interval)
	c.next = now
	return c
}

// SetFPS changes the target rate; non-positive values fall back to DefaultFPS
func (c *FrameClock) SetFPS(fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	c.interval = time.Second / time.Duration(fps)
}

// Interval returns the target time between ticks
func (c *FrameClock) Interval() time.Duration {
	return c.interval
}

// UntilNext returns how long to wait before the next tick is due
func (c *FrameClock) UntilNext() time.Duration {
	return max(c.next.Sub(c.provider.Now()), 0)
}

// Tick reports whether a frame is due and, if so, the seconds since the previous one
func (c *FrameClock) Tick() (float64, bool) {
	now := c.provider.Now()
	if now.Before(c.next) {
		return 0, false
	}
	dt := min(now.Sub(c.last).Seconds(), maxDelta)
	c.last = now

	// Keep cadence unless more than a whole interval behind
	c.next = c.next.Add(c.interval)
	if !c.next.After(now) {
		c.next = now.Add(c.interval)
	}
	return dt, true
}
