package world

import (
	"testing"
	"time"

	"github.com/shmupcore/shmup/internal/config"
	"github.com/shmupcore/shmup/internal/data"
	"github.com/shmupcore/shmup/internal/render/scene"
	"go.uber.org/zap"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	env   *Env
	stage *scene.Stage
	clock *ManualClock
	ctrl  *Controller
}

func testCatalog() *data.AnimationCatalog {
	anims := []*data.Animation{
		{Name: AnimPlayerIdle, Frames: []string{"A"}, Loop: true},
		{Name: AnimPlayerIdleLeft, Frames: []string{"<"}},
		{Name: AnimPlayerIdleRight, Frames: []string{">"}},
		{Name: "fairy", Frames: []string{"v", "V"}, Loop: true},
		{Name: "orb", Frames: []string{"o"}},
		{Name: "projectileFocusIdle", Frames: []string{"!"}},
	}
	for _, angle := range []string{"0", "45", "90", "135", "180", "225", "270", "315"} {
		anims = append(anims,
			&data.Animation{Name: "projectileKnifeIdle" + angle, Frames: []string{"|"}},
			&data.Animation{Name: "ice" + angle, Frames: []string{"*"}},
		)
	}
	return data.NewAnimationCatalog(anims...)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := NewManualClock(epoch)
	stage := scene.NewStage(testCatalog(), 600, 600, 1)
	env := &Env{Stage: stage, Clock: clock, Log: zap.NewNop()}
	return &fixture{env: env, stage: stage, clock: clock, ctrl: NewController(env)}
}

func (f *fixture) tick(d time.Duration) {
	f.clock.Advance(d)
	f.ctrl.Update(f.clock.Now())
}

func (f *fixture) enemy(t *testing.T, x, y float64, health int) *Enemy {
	t.Helper()
	e, err := f.ctrl.NewEnemy("fairy", x, y, health)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}
	return e
}

func (f *fixture) shot(t *testing.T, stream Stream, x, y float64, damage int, bounded bool) *Projectile {
	t.Helper()
	p, err := f.ctrl.NewProjectile(stream, "orb", x, y, damage, bounded)
	if err != nil {
		t.Fatalf("new projectile: %v", err)
	}
	return p
}

func (f *fixture) player(t *testing.T) *Player {
	t.Helper()
	p, err := NewPlayer(f.env, config.Defaults().Player)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	return p
}

func counter(n *int, next time.Duration) Behavior {
	return func(*Entity) time.Duration {
		*n++
		return next
	}
}
