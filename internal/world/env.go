package world

import (
	"github.com/shmupcore/shmup/internal/render"
	"go.uber.org/zap"
)

// Env is what every entity of a session shares: the stage its handles live
// on, the session's frame clock, and the logger.
type Env struct {
	Stage render.Stage
	Clock Clock
	Log   *zap.Logger
}

// OutOfBounds reports whether (x, y) lies outside [0, width] × [0, height].
func (env *Env) OutOfBounds(x, y float64) bool {
	w, h := env.Stage.Bounds()
	return x < 0 || x > w || y < 0 || y > h
}
