package world

import "time"

// Stream selects which projectile queue a shot belongs to.
type Stream int

const (
	EnemyStream Stream = iota
	PlayerStream
)

func (s Stream) String() string {
	if s == PlayerStream {
		return "player"
	}
	return "enemy"
}

// Projectile is a pooled shot. A bounded projectile destroys itself on the
// first update where its position lies outside the playfield.
type Projectile struct {
	Entity
	Damage  int
	Bounded bool
}

func (p *Projectile) Update(now time.Time) {
	if p.Bounded && p.Live() && p.ensureAlive() && p.env.OutOfBounds(p.X(), p.Y()) {
		p.Destroy()
		return
	}
	p.Entity.Update(now)
}

// SetRelativeTo pins the projectile to anchor at the given offset until the
// anchor is destroyed, after which the projectile destroys itself.
func (p *Projectile) SetRelativeTo(anchor *Entity, xoff, yoff float64) *Projectile {
	p.AddEvent(0, Follow(anchor, xoff, yoff))
	return p
}
