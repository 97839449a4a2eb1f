package world

import (
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Positioner is anything with a playfield position.
type Positioner interface {
	X() float64
	Y() float64
}

// Move translates self by (vx, vy) every step.
func Move(vx, vy float64, step time.Duration) Behavior {
	return func(self *Entity) time.Duration {
		self.Translate(vx, vy)
		return step
	}
}

// Destructor destroys self.
func Destructor() Behavior {
	return func(self *Entity) time.Duration {
		self.Destroy()
		return Remove
	}
}

// Follow keeps self at anchor's position plus (xoff, yoff) on every pass.
// When the anchor is gone, the event mutates into Destructor and fires on
// the next pass.
func Follow(anchor *Entity, xoff, yoff float64) Behavior {
	return func(self *Entity) time.Duration {
		if anchor.Destroyed() {
			self.MutateEvent(Destructor())
			return 0
		}
		self.SetPosition(anchor.X()+xoff, anchor.Y()+yoff)
		return 0
	}
}

// Times runs b at most n times, then drops the event.
func Times(n int, b Behavior) Behavior {
	return func(self *Entity) time.Duration {
		n--
		next := b(self)
		if n <= 0 {
			return Remove
		}
		return next
	}
}

// ShotSpec describes an enemy projectile.
type ShotSpec struct {
	Anim    string
	Rotated bool // Anim is a rotation prefix; the heading picks the variant
	Damage  int
	Speed   float64 // units per step
	Step    time.Duration
}

// FireAimed shoots one projectile from self toward target every period.
func FireAimed(c *Controller, target Positioner, shot ShotSpec, every time.Duration) Behavior {
	return func(self *Entity) time.Duration {
		dx, dy := target.X()-self.X(), target.Y()-self.Y()
		if dx == 0 && dy == 0 {
			dy = 1
		}
		if !c.fire(shot, self.X(), self.Y(), dx, dy) {
			return Remove
		}
		return every
	}
}

// FireRing shoots n projectiles spread evenly around self every period.
func FireRing(c *Controller, n int, shot ShotSpec, every time.Duration) Behavior {
	return func(self *Entity) time.Duration {
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			if !c.fire(shot, self.X(), self.Y(), math.Sin(a), math.Cos(a)) {
				return Remove
			}
		}
		return every
	}
}

// fire spawns and dispatches one bounded enemy projectile heading along
// (dx, dy). It returns false when the projectile could not be created.
func (c *Controller) fire(shot ShotSpec, x, y, dx, dy float64) bool {
	anim := shot.Anim
	if shot.Rotated {
		anim = RotatedName(shot.Anim, dx, dy)
	}
	p, err := c.NewProjectile(EnemyStream, anim, x, y, shot.Damage, true)
	if err != nil {
		c.env.Log.Warn("spawn enemy projectile", zap.String("anim", anim), zap.Error(err))
		return false
	}
	norm := math.Hypot(dx, dy)
	p.AddEvent(0, Move(shot.Speed*dx/norm, shot.Speed*dy/norm, shot.Step))
	p.Dispatch()
	return true
}

// RotatedName appends the heading of (dx, dy), snapped to 45 degrees and
// measured clockwise from straight up, to prefix.
func RotatedName(prefix string, dx, dy float64) string {
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	snapped := int(math.Round(deg/45)) * 45
	snapped = ((snapped % 360) + 360) % 360
	return prefix + strconv.Itoa(snapped)
}
