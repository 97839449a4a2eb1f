package world

import (
	"testing"
	"time"
)

func TestFrameClockLatchesPerTick(t *testing.T) {
	src := NewManualClock(epoch)
	c := NewFrameClock(src)

	src.Advance(16 * time.Millisecond)
	if !c.Now().Equal(epoch) {
		t.Fatal("expected game time to move only on Tick")
	}
	if got := c.Tick(); !got.Equal(epoch.Add(16 * time.Millisecond)) {
		t.Fatalf("expected +16ms, got %s", got.Sub(epoch))
	}
}

func TestFrameClockPause(t *testing.T) {
	src := NewManualClock(epoch)
	c := NewFrameClock(src)

	src.Advance(10 * time.Millisecond)
	c.Tick()
	c.SetPaused(true)
	src.Advance(time.Second)
	c.Tick()
	if got := c.Now().Sub(epoch); got != 10*time.Millisecond {
		t.Fatalf("expected game time frozen at 10ms, got %s", got)
	}
	c.SetPaused(false)
	src.Advance(5 * time.Millisecond)
	c.Tick()
	if got := c.Now().Sub(epoch); got != 15*time.Millisecond {
		t.Errorf("expected paused interval skipped, got %s", got)
	}
	if c.Paused() {
		t.Error("expected clock running")
	}
}
