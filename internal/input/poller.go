package input

import (
	"sync"
	"time"
)

// Poller collects key events from the terminal goroutine and hands the game
// loop a snapshot per tick. Terminals report presses and auto-repeats but
// rarely releases, so a key counts as held until HoldWindow has passed
// since its last press or until an explicit Release. Pause is edge
// triggered: one snapshot per press.
type Poller struct {
	mu       sync.Mutex
	window   time.Duration
	last     [actionCount]time.Time
	released [actionCount]bool
	pauses   int
}

func NewPoller(window time.Duration) *Poller {
	p := &Poller{window: window}
	for i := range p.released {
		p.released[i] = true
	}
	return p
}

// Press records a press (or auto-repeat) of a at time at.
func (p *Poller) Press(a Action, at time.Time) {
	if a >= actionCount {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if a == Pause {
		p.pauses++
		return
	}
	p.last[a] = at
	p.released[a] = false
}

// Release marks a as no longer held.
func (p *Poller) Release(a Action) {
	if a >= actionCount {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released[a] = true
}

// Snapshot returns the actions held at now. At most one pending pause press
// is consumed per call.
func (p *Poller) Snapshot(now time.Time) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	var s State
	for a := Action(0); a < actionCount; a++ {
		if a == Pause || p.released[a] {
			continue
		}
		if now.Sub(p.last[a]) <= p.window {
			s.held[a] = true
		} else {
			p.released[a] = true
		}
	}
	if p.pauses > 0 {
		p.pauses--
		s.held[Pause] = true
	}
	return s
}
