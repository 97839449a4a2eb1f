package world

// Enemy is a pooled hostile with hit points.
type Enemy struct {
	Entity
	Health int
}

// Hit applies the projectile's damage and destroys the projectile. The enemy
// is destroyed when its health drops to zero; Hit reports whether that
// happened.
func (e *Enemy) Hit(p *Projectile) bool {
	e.Health -= p.Damage
	p.Destroy()
	if e.Health <= 0 {
		e.Destroy()
		return true
	}
	return false
}
