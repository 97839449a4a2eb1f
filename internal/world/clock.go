package world

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable clock for tests and replays.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// FrameClock latches game time once per tick so that every reader inside a
// tick sees the same instant. While paused, game time does not advance.
type FrameClock struct {
	source Clock
	last   time.Time // source time at the previous Tick
	now    time.Time // game time
	paused bool
}

func NewFrameClock(source Clock) *FrameClock {
	t := source.Now()
	return &FrameClock{source: source, last: t, now: t}
}

// Tick reads the source once and returns the new game time.
func (c *FrameClock) Tick() time.Time {
	t := c.source.Now()
	if !c.paused {
		c.now = c.now.Add(t.Sub(c.last))
	}
	c.last = t
	return c.now
}

// Now returns the game time latched by the last Tick.
func (c *FrameClock) Now() time.Time { return c.now }

func (c *FrameClock) Paused() bool { return c.paused }

func (c *FrameClock) SetPaused(paused bool) {
	c.paused = paused
}
