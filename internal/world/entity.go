package world

import (
	"time"

	"github.com/shmupcore/shmup/internal/core/ecs"
	"github.com/shmupcore/shmup/internal/render"
)

// Entity is the lifecycle unit shared by every pooled game object and by the
// root Controller. States: tracked → dispatched → destroyed. A tracked
// entity holds a slot but is neither visible, updated nor collidable until
// Dispatch accepts it.
// Accessed only from the game loop goroutine, no locks needed.
type Entity struct {
	env     *Env
	slot    int
	tracker ecs.Retirer // owning queue; nil for the root controller
	handle  render.Handle
	gate    Gate

	events  *ecs.Pool[*Event]
	current *Event // event whose behavior is running, for MutateEvent

	spawnTime  time.Time
	destroyed  bool
	dispatched bool

	teardown func() // runs once on Destroy; set by the root controller
}

func (e *Entity) init(env *Env, tracker ecs.Retirer, handle render.Handle) {
	e.env = env
	e.tracker = tracker
	e.handle = handle
	e.gate = Always
	e.events = ecs.NewPool[*Event](4)
}

func (e *Entity) Slot() int        { return e.slot }
func (e *Entity) SetSlot(slot int) { e.slot = slot }

// Handle returns the presentation handle; nil for the root controller.
func (e *Entity) Handle() render.Handle { return e.handle }

func (e *Entity) X() float64 { return e.handle.X() }
func (e *Entity) Y() float64 { return e.handle.Y() }

// Translate moves the entity's handle by (dx, dy).
func (e *Entity) Translate(dx, dy float64) {
	e.handle.SetPosition(e.handle.X()+dx, e.handle.Y()+dy)
}

func (e *Entity) SetPosition(x, y float64) {
	e.handle.SetPosition(x, y)
}

func (e *Entity) Destroyed() bool { return e.destroyed }

// Dispatched reports whether the entity passed its gate and went live.
func (e *Entity) Dispatched() bool { return e.dispatched }

// Live reports whether the entity takes part in update and collision passes.
func (e *Entity) Live() bool { return e.dispatched && !e.destroyed }

func (e *Entity) SpawnTime() time.Time { return e.spawnTime }

// DependOn replaces the dependency gate evaluated at dispatch.
func (e *Entity) DependOn(g Gate) *Entity {
	e.gate = g
	return e
}

// Reject forces the next Dispatch to fail.
func (e *Entity) Reject() {
	e.gate = Never
}

// Dispatch evaluates the gate once. On success the handle starts playing,
// joins the stage and the spawn time is recorded; on failure the entity is
// torn down without ever having been visible. Later calls are no-ops.
func (e *Entity) Dispatch() {
	if e.dispatched || e.destroyed {
		return
	}
	if !e.gate.Allow(e) {
		e.Destroy()
		return
	}
	if e.handle != nil {
		e.handle.Play()
		e.env.Stage.Add(e.handle)
	}
	e.spawnTime = e.env.Clock.Now()
	e.dispatched = true
}

// Destroy is irreversible and idempotent. It may be called from one of the
// entity's own behaviors. The slot is retired to the owning queue and
// returned to the free list on the next housekeeping pass.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.teardown != nil {
		e.teardown()
	}
	if e.tracker == nil {
		return
	}
	e.tracker.Retire(e.slot)
	if e.handle != nil {
		e.env.Stage.Remove(e.handle)
		e.handle.Destroy()
	}
}

// ensureAlive destroys the entity when its handle was invalidated from
// outside the core.
func (e *Entity) ensureAlive() bool {
	if e.tracker != nil && e.handle != nil && !e.handle.Attached() {
		e.Destroy()
		return false
	}
	return true
}

// Update runs every event whose offset has elapsed since spawn time.
func (e *Entity) Update(now time.Time) {
	if !e.Live() || !e.ensureAlive() {
		return
	}
	e.runTimeline(now.Sub(e.spawnTime))
}
