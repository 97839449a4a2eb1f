package system

import (
	"time"

	coresys "github.com/shmupcore/shmup/internal/core/system"
	"github.com/shmupcore/shmup/internal/input"
	"github.com/shmupcore/shmup/internal/replay"
)

// ReplaySystem appends the tick's input mask to the recording. Registered
// ahead of InputSystem so the frame is kept even when the tick ends the
// session. Phase 1 (Input).
type ReplaySystem struct {
	keys *input.State
	rec  *replay.Recorder
}

func NewReplaySystem(keys *input.State, rec *replay.Recorder) *ReplaySystem {
	return &ReplaySystem{keys: keys, rec: rec}
}

func (s *ReplaySystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ReplaySystem) Update(_ time.Duration) {
	s.rec.Record(s.keys.Mask())
}

// Animator steps frame playback of everything on stage.
type Animator interface {
	Animate()
}

// AnimationSystem steps sprite frame playback unless the game is paused.
// Phase 4 (Present).
type AnimationSystem struct {
	stage  Animator
	paused func() bool
}

func NewAnimationSystem(stage Animator, paused func() bool) *AnimationSystem {
	return &AnimationSystem{stage: stage, paused: paused}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhasePresent }

func (s *AnimationSystem) Update(_ time.Duration) {
	if s.paused() {
		return
	}
	s.stage.Animate()
}
