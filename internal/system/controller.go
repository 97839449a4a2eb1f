package system

import (
	"time"

	coresys "github.com/shmupcore/shmup/internal/core/system"
	"github.com/shmupcore/shmup/internal/world"
)

// ControllerSystem advances the controller and every live entity it owns to
// the tick's game time. Phase 2 (Update).
type ControllerSystem struct {
	ctrl  *world.Controller
	clock *world.FrameClock
}

func NewControllerSystem(ctrl *world.Controller, clock *world.FrameClock) *ControllerSystem {
	return &ControllerSystem{ctrl: ctrl, clock: clock}
}

func (s *ControllerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ControllerSystem) Update(_ time.Duration) {
	if s.clock.Paused() {
		return
	}
	s.ctrl.Update(s.clock.Now())
}
