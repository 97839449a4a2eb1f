package world

import (
	"strings"
	"testing"
	"time"
)

func TestFragmentShiftsLaterEvents(t *testing.T) {
	f := newFixture(t)
	noop := func(*Entity) time.Duration { return Remove }

	f.ctrl.AddEvent(0, noop)
	f.ctrl.Fragment(500 * time.Millisecond)
	f.ctrl.AddEvent(0, noop)
	f.ctrl.AddEvent(100*time.Millisecond, noop)

	a, b, c := f.ctrl.events.Get(0), f.ctrl.events.Get(1), f.ctrl.events.Get(2)
	if got := b.Offset() - a.Offset(); got != 500*time.Millisecond {
		t.Errorf("expected second event 500ms after first, got %s", got)
	}
	if c.Offset() != 600*time.Millisecond {
		t.Errorf("expected third event at 600ms, got %s", c.Offset())
	}
	if f.ctrl.FragmentTime() != 500*time.Millisecond {
		t.Errorf("expected fragment time 500ms, got %s", f.ctrl.FragmentTime())
	}
}

func TestFragmentedEventsFireInOrder(t *testing.T) {
	f := newFixture(t)
	var order []string
	mark := func(name string) Behavior {
		return func(*Entity) time.Duration {
			order = append(order, name)
			return Remove
		}
	}
	f.ctrl.AddEvent(0, mark("first"))
	f.ctrl.Fragment(500 * time.Millisecond)
	f.ctrl.AddEvent(0, mark("second"))
	f.ctrl.Dispatch()

	f.tick(100 * time.Millisecond)
	if len(order) != 1 {
		t.Fatalf("expected only first event by 100ms, got %v", order)
	}
	f.tick(400 * time.Millisecond)
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("expected first,second, got %v", order)
	}
}

func TestControllerUpdateOrder(t *testing.T) {
	f := newFixture(t)
	var order []string
	mark := func(name string) Behavior {
		return func(*Entity) time.Duration {
			order = append(order, name)
			return Remove
		}
	}

	ps := f.shot(t, PlayerStream, 10, 10, 1, false)
	ps.AddEvent(0, mark("player shot"))
	es := f.shot(t, EnemyStream, 10, 10, 1, false)
	es.AddEvent(0, mark("enemy shot"))
	en := f.enemy(t, 10, 10, 1)
	en.AddEvent(0, mark("enemy"))
	f.ctrl.AddEvent(0, mark("controller"))

	f.ctrl.Dispatch()
	ps.Dispatch()
	es.Dispatch()
	en.Dispatch()
	f.tick(time.Millisecond)

	want := "controller,enemy,enemy shot,player shot"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestControllerDestroyCascades(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Dispatch()
	enemies := []*Enemy{f.enemy(t, 10, 10, 1), f.enemy(t, 20, 10, 1)}
	shots := []*Projectile{
		f.shot(t, EnemyStream, 10, 20, 1, true),
		f.shot(t, PlayerStream, 10, 30, 1, true),
	}
	enemies[0].Dispatch()
	shots[0].Dispatch()
	shots[1].Dispatch()

	f.ctrl.Destroy()

	for i, e := range enemies {
		if !e.Destroyed() {
			t.Errorf("enemy %d not destroyed", i)
		}
	}
	for i, p := range shots {
		if !p.Destroyed() {
			t.Errorf("projectile %d not destroyed", i)
		}
	}
	for name, n := range map[string]int{
		"enemies":      f.ctrl.Enemies.Live(),
		"enemy shots":  f.ctrl.EnemyShots.Live(),
		"player shots": f.ctrl.PlayerShots.Live(),
		"stage":        f.stage.Len(),
	} {
		if n != 0 {
			t.Errorf("expected %s empty, got %d", name, n)
		}
	}
	if f.ctrl.Live() {
		t.Error("expected controller no longer live")
	}

	f.ctrl.Destroy()
}

func TestRootEventDestroyingControllerStopsUpdate(t *testing.T) {
	f := newFixture(t)
	ran := 0
	e := f.enemy(t, 10, 10, 1)
	e.AddEvent(0, counter(&ran, 0))
	e.Dispatch()
	f.ctrl.AddEvent(0, func(*Entity) time.Duration {
		f.ctrl.Destroy()
		return Remove
	})
	f.ctrl.Dispatch()

	f.tick(time.Millisecond)

	if ran != 0 {
		t.Errorf("expected no enemy update after controller destroyed, got %d", ran)
	}
	if !e.Destroyed() {
		t.Error("expected enemy destroyed with the controller")
	}
}

func TestDestructorOnControllerCascades(t *testing.T) {
	f := newFixture(t)
	e := f.enemy(t, 10, 10, 1)
	e.Dispatch()
	shot := f.shot(t, EnemyStream, 10, 20, 1, true)
	shot.Dispatch()
	f.ctrl.AddEvent(0, Destructor())
	f.ctrl.Dispatch()

	f.tick(time.Millisecond)

	if f.ctrl.Live() {
		t.Fatal("expected controller destroyed by its own timeline")
	}
	if !e.Destroyed() || !shot.Destroyed() {
		t.Errorf("expected cascade, enemy destroyed=%v shot destroyed=%v", e.Destroyed(), shot.Destroyed())
	}
	if n := f.ctrl.Enemies.Live() + f.ctrl.EnemyShots.Live(); n != 0 {
		t.Errorf("expected pools empty, %d entities left", n)
	}
	if f.stage.Len() != 0 {
		t.Errorf("expected stage empty, got %d", f.stage.Len())
	}
}

func TestSelfDestroyOnRootEntityCascades(t *testing.T) {
	f := newFixture(t)
	e := f.enemy(t, 10, 10, 1)
	e.Dispatch()
	f.ctrl.AddEvent(0, func(self *Entity) time.Duration {
		self.Destroy()
		return Remove
	})
	f.ctrl.Dispatch()

	f.tick(time.Millisecond)

	if !e.Destroyed() || f.ctrl.Enemies.Live() != 0 {
		t.Errorf("expected enemy torn down with the root, destroyed=%v live=%d", e.Destroyed(), f.ctrl.Enemies.Live())
	}
}

func TestRuntimeSpawnedEntityNotDispatchedTwice(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Dispatch()
	f.clock.Advance(time.Second)
	e := f.enemy(t, 10, 10, 1)
	e.Dispatch()
	spawn := e.SpawnTime()

	f.clock.Advance(time.Second)
	if n := f.ctrl.Enemies.Dispatch(1); n != 1 {
		t.Fatalf("expected cursor to advance by 1, got %d", n)
	}
	if !e.SpawnTime().Equal(spawn) {
		t.Error("staged dispatch must not re-activate a live entity")
	}
}

func TestControllerFlushReleasesDestroyedSlots(t *testing.T) {
	f := newFixture(t)
	a := f.enemy(t, 0, 0, 1)
	b := f.shot(t, EnemyStream, 0, 0, 1, false)
	c := f.shot(t, PlayerStream, 0, 0, 1, false)
	a.Destroy()
	b.Destroy()
	c.Destroy()
	if n := f.ctrl.Flush(); n != 3 {
		t.Errorf("expected 3 released, got %d", n)
	}
	if n := f.ctrl.Flush(); n != 0 {
		t.Errorf("expected nothing left to release, got %d", n)
	}
}

func TestUnknownAnimationFailsSpawn(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ctrl.NewEnemy("nope", 0, 0, 1); err == nil {
		t.Fatal("expected error for unknown animation")
	}
	if f.ctrl.Enemies.Len() != 0 {
		t.Error("failed spawn must not take a slot")
	}
}
