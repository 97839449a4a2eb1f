package system

import (
	"time"

	coresys "github.com/shmupcore/shmup/internal/core/system"
	"github.com/shmupcore/shmup/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem returns the slots of entities destroyed this tick to their
// pools. Phase 5 (Cleanup).
type CleanupSystem struct {
	ctrl *world.Controller
	log  *zap.Logger
}

func NewCleanupSystem(ctrl *world.Controller, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{ctrl: ctrl, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if n := s.ctrl.Flush(); n > 0 {
		s.log.Debug("released slots", zap.Int("count", n))
	}
}
