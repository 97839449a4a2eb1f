package system

import (
	"testing"
	"time"

	"github.com/shmupcore/shmup/internal/config"
	"github.com/shmupcore/shmup/internal/core/event"
	"github.com/shmupcore/shmup/internal/data"
	"github.com/shmupcore/shmup/internal/render/scene"
	"github.com/shmupcore/shmup/internal/world"
	"go.uber.org/zap"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	src    *world.ManualClock
	clock  *world.FrameClock
	stage  *scene.Stage
	ctrl   *world.Controller
	player *world.Player
	bus    *event.Bus
	cfg    *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := data.NewAnimationCatalog(
		&data.Animation{Name: world.AnimPlayerIdle, Frames: []string{"A"}},
		&data.Animation{Name: world.AnimPlayerIdleLeft, Frames: []string{"<"}},
		&data.Animation{Name: world.AnimPlayerIdleRight, Frames: []string{">"}},
		&data.Animation{Name: "fairy", Frames: []string{"v"}},
		&data.Animation{Name: "orb", Frames: []string{"o"}},
		&data.Animation{Name: "projectileFocusIdle", Frames: []string{"!"}},
		&data.Animation{Name: "projectileKnifeIdle315", Frames: []string{"\\"}},
		&data.Animation{Name: "projectileKnifeIdle0", Frames: []string{"|"}},
		&data.Animation{Name: "projectileKnifeIdle45", Frames: []string{"/"}},
	)
	src := world.NewManualClock(epoch)
	clock := world.NewFrameClock(src)
	stage := scene.NewStage(catalog, 600, 600, 1)
	env := &world.Env{Stage: stage, Clock: clock, Log: zap.NewNop()}
	cfg := config.Defaults()
	player, err := world.NewPlayer(env, cfg.Player)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	ctrl := world.NewController(env)
	ctrl.Dispatch()
	return &fixture{
		src:    src,
		clock:  clock,
		stage:  stage,
		ctrl:   ctrl,
		player: player,
		bus:    event.NewBus(),
		cfg:    cfg,
	}
}

func (f *fixture) enemy(t *testing.T, x, y float64, health int) *world.Enemy {
	t.Helper()
	e, err := f.ctrl.NewEnemy("fairy", x, y, health)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}
	e.Dispatch()
	return e
}

func (f *fixture) shot(t *testing.T, stream world.Stream, x, y float64, damage int) *world.Projectile {
	t.Helper()
	p, err := f.ctrl.NewProjectile(stream, "orb", x, y, damage, true)
	if err != nil {
		t.Fatalf("new projectile: %v", err)
	}
	p.Dispatch()
	return p
}

func (f *fixture) collision(onDeath func()) *CollisionSystem {
	return NewCollisionSystem(f.ctrl, f.player, f.cfg.Collision, f.clock, f.bus, zap.NewNop(), onDeath)
}
