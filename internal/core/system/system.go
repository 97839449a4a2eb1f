package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate Phase = iota // 0: deliver last tick's events
	PhaseInput                  // 1: record and apply the input snapshot
	PhaseUpdate                 // 2: controller, enemies, projectiles
	PhaseCollision              // 3: hit tests, score
	PhasePresent                // 4: sprite animation
	PhaseCleanup                // 5: release retired slots
)

var phaseNames = [...]string{"pre-update", "input", "update", "collision", "present", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every game system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
