package system

import (
	"math"
	"time"

	"github.com/shmupcore/shmup/internal/config"
	"github.com/shmupcore/shmup/internal/core/event"
	coresys "github.com/shmupcore/shmup/internal/core/system"
	"github.com/shmupcore/shmup/internal/world"
	"go.uber.org/zap"
)

// CollisionSystem resolves hits after every entity has moved. Each live
// player projectile hits at most the first live enemy whose box contains
// it. Enemy projectiles are then tested against the player box; the scan
// stops at the first hit. Phase 3 (Collision).
type CollisionSystem struct {
	ctrl    *world.Controller
	player  *world.Player
	cfg     config.CollisionConfig
	clock   *world.FrameClock
	bus     *event.Bus
	log     *zap.Logger
	onDeath func()
	started time.Time
}

func NewCollisionSystem(
	ctrl *world.Controller,
	player *world.Player,
	cfg config.CollisionConfig,
	clock *world.FrameClock,
	bus *event.Bus,
	log *zap.Logger,
	onDeath func(),
) *CollisionSystem {
	return &CollisionSystem{
		ctrl:    ctrl,
		player:  player,
		cfg:     cfg,
		clock:   clock,
		bus:     bus,
		log:     log,
		onDeath: onDeath,
		started: clock.Now(),
	}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	if s.clock.Paused() || !s.ctrl.Live() {
		return
	}
	s.ctrl.PlayerShots.Each(func(_ int, p *world.Projectile) {
		if !p.Live() {
			return
		}
		if e := s.firstEnemyAt(p.X(), p.Y()); e != nil {
			s.hitEnemy(e, p)
		}
	})
	s.hitPlayer()
}

func (s *CollisionSystem) firstEnemyAt(x, y float64) *world.Enemy {
	for i, n := 0, s.ctrl.Enemies.Len(); i < n; i++ {
		e := s.ctrl.Enemies.Get(i)
		if e != nil && e.Live() && within(x, y, e.X(), e.Y(), s.cfg.EnemyHalfWidth) {
			return e
		}
	}
	return nil
}

func (s *CollisionSystem) hitEnemy(e *world.Enemy, p *world.Projectile) {
	x, y, slot := e.X(), e.Y(), e.Slot()
	if !e.Hit(p) {
		return
	}
	s.player.Score += s.cfg.KillScore
	event.Emit(s.bus, event.EnemyKilled{Slot: slot, X: x, Y: y, Score: s.player.Score})
}

func (s *CollisionSystem) hitPlayer() {
	half := s.cfg.PlayerHalfWidth
	for i, n := 0, s.ctrl.EnemyShots.Len(); i < n; i++ {
		p := s.ctrl.EnemyShots.Get(i)
		if p == nil || !p.Live() || !within(p.X(), p.Y(), s.player.X(), s.player.Y(), half) {
			continue
		}
		damage := p.Damage
		dead := s.player.Hit(p)
		event.Emit(s.bus, event.PlayerHit{Damage: damage, Health: s.player.Health})
		if dead {
			elapsed := s.clock.Now().Sub(s.started)
			s.log.Info("player down", zap.Int("score", s.player.Score), zap.Duration("elapsed", elapsed))
			event.Emit(s.bus, event.PlayerDied{Score: s.player.Score, Elapsed: elapsed})
			if s.onDeath != nil {
				s.onDeath()
			}
		}
		return
	}
}

// within reports whether (x, y) lies in the square of half-width half
// centred on (cx, cy), edges included.
func within(x, y, cx, cy, half float64) bool {
	return math.Abs(x-cx) <= half && math.Abs(y-cy) <= half
}
