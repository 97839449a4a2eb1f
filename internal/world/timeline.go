package world

import "time"

// Remove, returned by a Behavior, drops the event from the timeline.
const Remove time.Duration = -1

// Behavior is a scheduled callback. It returns Remove, or the offset after
// which it should run again, measured from the delta at which it ran.
type Behavior func(self *Entity) time.Duration

// Event is one timeline entry: a behavior due at an offset from spawn time.
type Event struct {
	slot     int
	offset   time.Duration
	behavior Behavior
}

func (ev *Event) Slot() int        { return ev.slot }
func (ev *Event) SetSlot(slot int) { ev.slot = slot }

// Offset returns the time after spawn at which the event next runs.
func (ev *Event) Offset() time.Duration { return ev.offset }

// AddEvent schedules b at offset after the entity's spawn time.
func (e *Entity) AddEvent(offset time.Duration, b Behavior) *Entity {
	e.events.Track(&Event{offset: offset, behavior: b})
	return e
}

// MutateEvent replaces the continuation of the event currently running.
// Other events of the entity are untouched. Outside a behavior it is a no-op.
func (e *Entity) MutateEvent(b Behavior) *Entity {
	if e.current != nil {
		e.current.behavior = b
	}
	return e
}

// Events returns the number of scheduled events.
func (e *Entity) Events() int { return e.events.Live() }

// runTimeline fires every due event once. A rescheduled event lands at
// delta + returned offset, so it cannot fire twice within one pass. The
// pass stops as soon as a behavior destroys the entity.
func (e *Entity) runTimeline(delta time.Duration) {
	for i, n := 0, e.events.Len(); i < n; i++ {
		ev := e.events.Get(i)
		if ev == nil || ev.offset > delta {
			continue
		}
		e.current = ev
		next := ev.behavior(e)
		e.current = nil
		if next == Remove {
			e.events.Untrack(ev)
		} else {
			ev.offset = delta + next
		}
		if e.destroyed {
			return
		}
	}
}
