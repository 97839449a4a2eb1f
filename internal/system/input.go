package system

import (
	"time"

	"github.com/shmupcore/shmup/internal/core/event"
	coresys "github.com/shmupcore/shmup/internal/core/system"
	"github.com/shmupcore/shmup/internal/input"
	"github.com/shmupcore/shmup/internal/world"
	"go.uber.org/zap"
)

// InputSystem applies the tick's input snapshot to the player: pause
// toggle, animation, movement, then shooting or cooldown. Phase 1 (Input).
type InputSystem struct {
	keys   *input.State // refreshed by the session before every tick
	player *world.Player
	ctrl   *world.Controller
	clock  *world.FrameClock
	bus    *event.Bus
	log    *zap.Logger
}

func NewInputSystem(
	keys *input.State,
	player *world.Player,
	ctrl *world.Controller,
	clock *world.FrameClock,
	bus *event.Bus,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		keys:   keys,
		player: player,
		ctrl:   ctrl,
		clock:  clock,
		bus:    bus,
		log:    log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	keys := *s.keys
	if keys.Held(input.Pause) {
		paused := !s.clock.Paused()
		s.clock.SetPaused(paused)
		event.Emit(s.bus, event.PauseToggled{Paused: paused})
	}
	if s.clock.Paused() {
		return
	}

	xdir, ydir := keys.Direction()
	switch {
	case xdir < 0:
		s.player.RunAnimation(world.AnimPlayerIdleLeft)
	case xdir > 0:
		s.player.RunAnimation(world.AnimPlayerIdleRight)
	default:
		s.player.RunAnimation(world.AnimPlayerIdle)
	}
	s.player.Move(xdir, ydir)

	if s.player.ShootCooldown > 0 {
		s.player.ShootCooldown--
		return
	}
	if keys.Held(input.Shoot) {
		if err := s.player.Shoot(s.ctrl, keys.Held(input.Focus)); err != nil {
			s.log.Warn("player shoot", zap.Error(err))
		}
	}
}
