package world

import (
	"fmt"
	"time"

	"github.com/shmupcore/shmup/internal/core/ecs"
	"go.uber.org/zap"
)

// Controller is the root entity of a session. It owns the three live
// queues and a fragment time that shifts every event declared after a
// Fragment call, so stage scripts read as a sequence of relative steps.
type Controller struct {
	Entity
	fragment time.Duration

	Enemies     *ecs.DispatchQueue[*Enemy]
	EnemyShots  *ecs.DispatchQueue[*Projectile]
	PlayerShots *ecs.DispatchQueue[*Projectile]
}

func NewController(env *Env) *Controller {
	c := &Controller{
		Enemies:     ecs.NewDispatchQueue[*Enemy](64),
		EnemyShots:  ecs.NewDispatchQueue[*Projectile](256),
		PlayerShots: ecs.NewDispatchQueue[*Projectile](128),
	}
	c.Entity.init(env, nil, nil)
	c.teardown = c.cascade
	return c
}

func (c *Controller) Env() *Env { return c.env }

// AddEvent schedules b at offset past the current fragment time.
func (c *Controller) AddEvent(offset time.Duration, b Behavior) *Controller {
	c.Entity.AddEvent(offset+c.fragment, b)
	return c
}

// Fragment advances fragment time by d.
func (c *Controller) Fragment(d time.Duration) {
	c.fragment += d
	c.env.Log.Debug("fragment", zap.Duration("at", c.fragment))
}

func (c *Controller) FragmentTime() time.Duration { return c.fragment }

// Update advances the controller's own timeline, then, unless that
// destroyed it, enemies, enemy projectiles and player projectiles in that
// order.
func (c *Controller) Update(now time.Time) {
	c.Entity.Update(now)
	if !c.Live() {
		return
	}
	c.Enemies.Each(func(_ int, e *Enemy) { e.Update(now) })
	c.EnemyShots.Each(func(_ int, p *Projectile) { p.Update(now) })
	c.PlayerShots.Each(func(_ int, p *Projectile) { p.Update(now) })
}

// Destroy stops the controller, destroys every entity still held by the
// three queues and clears them. Destroying the embedded Entity, as a root
// timeline behavior does through self, has the same effect.
func (c *Controller) Destroy() {
	c.Entity.Destroy()
}

func (c *Controller) cascade() {
	c.EnemyShots.Each(func(_ int, p *Projectile) { p.Destroy() })
	c.PlayerShots.Each(func(_ int, p *Projectile) { p.Destroy() })
	c.Enemies.Each(func(_ int, e *Enemy) { e.Destroy() })
	c.EnemyShots.Clear()
	c.PlayerShots.Clear()
	c.Enemies.Clear()
	c.env.Log.Debug("controller destroyed")
}

// Flush returns the slots of entities destroyed since the last Flush to
// their pools and reports how many were released.
func (c *Controller) Flush() int {
	return c.Enemies.Flush() + c.EnemyShots.Flush() + c.PlayerShots.Flush()
}

// NewEnemy tracks an inert enemy in the enemies queue.
func (c *Controller) NewEnemy(anim string, x, y float64, health int) (*Enemy, error) {
	h, err := c.env.Stage.NewHandle(anim, x, y)
	if err != nil {
		return nil, fmt.Errorf("enemy: %w", err)
	}
	e := &Enemy{Health: health}
	e.init(c.env, c.Enemies, h)
	c.Enemies.Track(e)
	return e, nil
}

// NewProjectile tracks an inert projectile in the stream's queue.
func (c *Controller) NewProjectile(stream Stream, anim string, x, y float64, damage int, bounded bool) (*Projectile, error) {
	h, err := c.env.Stage.NewHandle(anim, x, y)
	if err != nil {
		return nil, fmt.Errorf("%s projectile: %w", stream, err)
	}
	q := c.queue(stream)
	p := &Projectile{Damage: damage, Bounded: bounded}
	p.init(c.env, q, h)
	q.Track(p)
	return p, nil
}

func (c *Controller) queue(s Stream) *ecs.DispatchQueue[*Projectile] {
	if s == PlayerStream {
		return c.PlayerShots
	}
	return c.EnemyShots
}
