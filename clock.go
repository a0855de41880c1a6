package duet

import "time"

// Clock is the loop's time source. It feeds round timing (Round.TimeMs,
// result duration) and lets prompts mention today's date, and it is
// injectable so loop timing is deterministic in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns today's date as YYYY-MM-DD, for use in prompts.
	Today() string
}

// RealClock is the standard Clock backed by the system clock.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// Today returns today's date as YYYY-MM-DD.
func (RealClock) Today() string { return time.Now().Format("2006-01-02") }

// MockClock is a Clock for tests. It starts at a fixed time and can either
// stand still or advance by a fixed step on every Now call, which gives
// rounds deterministic, non-zero durations.
type MockClock struct {
	current time.Time
	step    time.Duration
}

// NewMockClock creates a MockClock frozen at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// WithStep makes every Now call advance the clock by step before returning.
func (m *MockClock) WithStep(step time.Duration) *MockClock {
	m.step = step
	return m
}

// Now returns the mock time, advancing it by the configured step.
func (m *MockClock) Now() time.Time {
	if m.step > 0 {
		m.current = m.current.Add(m.step)
	}
	return m.current
}

// Today returns the mock date as YYYY-MM-DD.
func (m *MockClock) Today() string { return m.current.Format("2006-01-02") }

// Advance moves the mock time forward by d.
func (m *MockClock) Advance(d time.Duration) { m.current = m.current.Add(d) }
