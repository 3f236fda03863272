// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at initial. Time moves only when
// Advance is called.
//
// FakeClock is safe for concurrent use; parallel build workers may
// read it while a test advances it.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for tests.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	// step is added after every Now call, letting a test give each
	// measured phase a known, non-zero duration without coordinating
	// Advance calls with the code under test.
	step time.Duration
}

// Now returns the current fake time, then advances by the configured
// step (zero unless SetStep was called).
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the clock forward by d. Negative durations panic.
func (c *FakeClock) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: Advance with negative duration")
	}
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// SetStep makes every subsequent Now call advance the clock by d.
func (c *FakeClock) SetStep(d time.Duration) {
	c.mu.Lock()
	c.step = d
	c.mu.Unlock()
}
