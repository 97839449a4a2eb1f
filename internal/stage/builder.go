// Package stage declares enemy waves on a controller's fragment timeline.
// All waves are tracked while the stage is built, before the controller is
// dispatched, so each wave's enemies sit contiguously behind the enemies
// queue cursor in declaration order.
package stage

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shmupcore/shmup/internal/world"
	"go.uber.org/zap"
)

var (
	ErrEmptyWave   = errors.New("wave has no enemies")
	ErrNoAnim      = errors.New("wave has no animation")
	ErrUnknownFire = errors.New("unknown fire pattern")
)

// Fire patterns.
const (
	FireNone  = ""
	FireAimed = "aimed"
	FireRing  = "ring"
)

// defaultStep is the movement period when a wave sets a velocity but no step.
const defaultStep = 16 * time.Millisecond

// WaveSpec describes one group of enemies entering together.
type WaveSpec struct {
	Anim   string
	Count  int
	X, Y   float64 // first enemy
	DX, DY float64 // spacing between consecutive enemies
	Health int

	VX, VY float64 // units per step
	Step   time.Duration
	// Lifetime destroys each enemy this long after it spawns; 0 keeps it
	// until it is shot or the stage ends.
	Lifetime time.Duration

	Fire  string
	Shot  world.ShotSpec
	Every time.Duration
	Ring  int // projectiles per ring volley

	// MinScore cancels the wave when the player's score is lower at the
	// time it is due.
	MinScore int
	// Stagger spaces the spawns of consecutive enemies; 0 spawns them all
	// at once.
	Stagger time.Duration

	Escort       int // orbs pinned around each enemy, following it
	EscortAnim   string
	EscortRadius float64
	EscortDamage int
}

// Builder turns wave specs into tracked enemies and controller events.
type Builder struct {
	ctrl   *world.Controller
	player *world.Player
	log    *zap.Logger
	waves  int
	total  int
}

func NewBuilder(ctrl *world.Controller, player *world.Player, log *zap.Logger) *Builder {
	return &Builder{ctrl: ctrl, player: player, log: log}
}

// Waves returns the number of waves declared so far.
func (b *Builder) Waves() int { return b.waves }

// Enemies returns the number of enemies tracked so far.
func (b *Builder) Enemies() int { return b.total }

// Fragment moves the declaration point d later.
func (b *Builder) Fragment(d time.Duration) {
	b.ctrl.Fragment(d)
}

// Wave tracks the wave's enemies and escorts now and schedules their
// activation at the current fragment time.
func (b *Builder) Wave(spec WaveSpec) error {
	if err := spec.validate(); err != nil {
		return fmt.Errorf("wave %d: %w", b.waves+1, err)
	}
	id := b.waves + 1

	enemies := make([]*world.Enemy, 0, spec.Count)
	escorts := make([][]*world.Projectile, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		x := spec.X + float64(i)*spec.DX
		y := spec.Y + float64(i)*spec.DY
		e, err := b.ctrl.NewEnemy(spec.Anim, x, y, spec.Health)
		if err != nil {
			b.rollback(enemies, escorts)
			return fmt.Errorf("wave %d: %w", id, err)
		}
		b.program(e, spec)
		enemies = append(enemies, e)
		orbs, err := b.escort(e, spec)
		escorts = append(escorts, orbs)
		if err != nil {
			b.rollback(enemies, escorts)
			return fmt.Errorf("wave %d: %w", id, err)
		}
	}

	q := b.ctrl.Enemies
	count := spec.Count
	minScore := spec.MinScore
	player := b.player
	log := b.log
	b.ctrl.AddEvent(0, func(*world.Entity) time.Duration {
		switch {
		case minScore > 0 && player.Score < minScore:
			q.Ignore(count)
			log.Debug("wave cancelled", zap.Int("wave", id), zap.Int("score", player.Score), zap.Int("min_score", minScore))
		case spec.Stagger > 0:
			q.Seek(count)
		default:
			q.Dispatch(count)
		}
		return world.Remove
	})

	for i, e := range enemies {
		var at time.Duration
		if spec.Stagger > 0 {
			at = time.Duration(i) * spec.Stagger
			b.ctrl.AddEvent(at, func(*world.Entity) time.Duration {
				e.Dispatch()
				return world.Remove
			})
		}
		orbs := escorts[i]
		if len(orbs) == 0 {
			continue
		}
		b.ctrl.AddEvent(at, func(*world.Entity) time.Duration {
			for _, o := range orbs {
				o.Dispatch()
			}
			return world.Remove
		})
	}

	b.waves++
	b.total += count
	b.log.Debug("wave declared",
		zap.Int("wave", id),
		zap.String("anim", spec.Anim),
		zap.Int("count", count),
		zap.Duration("at", b.ctrl.FragmentTime()),
	)
	return nil
}

func (b *Builder) program(e *world.Enemy, spec WaveSpec) {
	if spec.VX != 0 || spec.VY != 0 {
		step := spec.Step
		if step <= 0 {
			step = defaultStep
		}
		e.AddEvent(0, world.Move(spec.VX, spec.VY, step))
	}
	switch spec.Fire {
	case FireAimed:
		e.AddEvent(spec.Every, world.FireAimed(b.ctrl, b.player, spec.Shot, spec.Every))
	case FireRing:
		e.AddEvent(spec.Every, world.FireRing(b.ctrl, spec.Ring, spec.Shot, spec.Every))
	}
	if spec.Lifetime > 0 {
		e.AddEvent(spec.Lifetime, world.Destructor())
	}
}

// rollback untracks a partially built wave at once, so the next wave's
// enemies take the same slots and the queue stays contiguous.
func (b *Builder) rollback(enemies []*world.Enemy, escorts [][]*world.Projectile) {
	for _, orbs := range escorts {
		for _, o := range orbs {
			o.Handle().Destroy()
			b.ctrl.EnemyShots.Untrack(o)
		}
	}
	for _, e := range enemies {
		e.Handle().Destroy()
		b.ctrl.Enemies.Untrack(e)
	}
}

// escort tracks the orbs circling e. Each orb is gated on e being live, so
// a cancelled or already destroyed enemy takes its orbs down with it.
func (b *Builder) escort(e *world.Enemy, spec WaveSpec) ([]*world.Projectile, error) {
	if spec.Escort <= 0 {
		return nil, nil
	}
	orbs := make([]*world.Projectile, 0, spec.Escort)
	for j := 0; j < spec.Escort; j++ {
		a := 2 * math.Pi * float64(j) / float64(spec.Escort)
		ox, oy := spec.EscortRadius*math.Sin(a), -spec.EscortRadius*math.Cos(a)
		o, err := b.ctrl.NewProjectile(world.EnemyStream, spec.EscortAnim, e.X()+ox, e.Y()+oy, spec.EscortDamage, false)
		if err != nil {
			return orbs, fmt.Errorf("escort: %w", err)
		}
		o.SetRelativeTo(&e.Entity, ox, oy)
		o.DependOn(world.AnchorAlive(&e.Entity))
		orbs = append(orbs, o)
	}
	return orbs, nil
}

func (s WaveSpec) validate() error {
	switch {
	case s.Count <= 0:
		return ErrEmptyWave
	case s.Anim == "":
		return ErrNoAnim
	case s.Fire != FireNone && s.Fire != FireAimed && s.Fire != FireRing:
		return fmt.Errorf("%w: %q", ErrUnknownFire, s.Fire)
	case s.Fire != FireNone && s.Every <= 0:
		return fmt.Errorf("fire %q needs a positive period", s.Fire)
	case s.Fire == FireRing && s.Ring <= 0:
		return errors.New("ring fire needs at least one projectile")
	case s.Escort > 0 && s.EscortAnim == "":
		return errors.New("escort has no animation")
	}
	return nil
}
