package world

import (
	"fmt"
	"time"

	"github.com/shmupcore/shmup/internal/config"
	"github.com/shmupcore/shmup/internal/render"
	"go.uber.org/zap"
)

const (
	AnimPlayerIdle      = "playerIdle"
	AnimPlayerIdleLeft  = "playerIdleLeft"
	AnimPlayerIdleRight = "playerIdleRight"

	shotStep = 10 * time.Millisecond
)

// Player is the session's single, unpooled player ship.
type Player struct {
	Health        int
	Score         int
	ShootCooldown int

	env    *Env
	cfg    config.PlayerConfig
	handle render.Handle
	anim   string
}

// NewPlayer places the player near the bottom centre of the playfield and
// puts it on stage.
func NewPlayer(env *Env, cfg config.PlayerConfig) (*Player, error) {
	w, h := env.Stage.Bounds()
	handle, err := env.Stage.NewHandle(AnimPlayerIdle, w/2, h-cfg.SpawnOffset)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	handle.Play()
	env.Stage.Add(handle)
	return &Player{
		Health: cfg.Health,
		env:    env,
		cfg:    cfg,
		handle: handle,
		anim:   AnimPlayerIdle,
	}, nil
}

func (p *Player) X() float64            { return p.handle.X() }
func (p *Player) Y() float64            { return p.handle.Y() }
func (p *Player) Handle() render.Handle { return p.handle }
func (p *Player) Animation() string     { return p.anim }

// RunAnimation switches animation only when it differs from the current one.
func (p *Player) RunAnimation(name string) {
	if p.anim == name {
		return
	}
	if err := p.handle.SetAnimation(name); err != nil {
		p.env.Log.Warn("player animation", zap.String("anim", name), zap.Error(err))
		return
	}
	p.anim = name
}

// Move steps the player by direction (xdir, ydir) times the configured speed,
// clamped so the ship stays HalfSize away from every edge.
func (p *Player) Move(xdir, ydir float64) {
	w, h := p.env.Stage.Bounds()
	half := p.cfg.HalfSize
	x := clamp(p.handle.X()+xdir*p.cfg.Speed, half, w-half)
	y := clamp(p.handle.Y()+ydir*p.cfg.Speed, half, h-half)
	p.handle.SetPosition(x, y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Shoot fires the focused single shot or the spread trio into the player
// stream and starts the cooldown.
func (p *Player) Shoot(c *Controller, focus bool) error {
	x, y := p.handle.X(), p.handle.Y()
	if focus {
		if err := c.shoot("projectileFocusIdle", x, y, 3, 0, -4); err != nil {
			return err
		}
	} else {
		trio := []struct {
			anim   string
			xoff   float64
			vx, vy float64
		}{
			{"projectileKnifeIdle315", -10, -1, -3},
			{"projectileKnifeIdle0", 0, 0, -3},
			{"projectileKnifeIdle45", 10, 1, -3},
		}
		for _, k := range trio {
			if err := c.shoot(k.anim, x+k.xoff, y, 1, k.vx, k.vy); err != nil {
				return err
			}
		}
	}
	p.ShootCooldown = p.cfg.CooldownTicks
	return nil
}

func (c *Controller) shoot(anim string, x, y float64, damage int, vx, vy float64) error {
	proj, err := c.NewProjectile(PlayerStream, anim, x, y, damage, true)
	if err != nil {
		return err
	}
	proj.AddEvent(0, Move(vx, vy, shotStep))
	proj.Dispatch()
	return nil
}

// Hit applies the projectile's damage and destroys it. Reports whether the
// player died.
func (p *Player) Hit(proj *Projectile) bool {
	p.Health -= proj.Damage
	proj.Destroy()
	return p.Health <= 0
}
