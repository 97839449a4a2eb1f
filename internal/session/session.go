// Package session runs one play-through: it owns the frame clock, the
// controller and the player, registers the tick systems and tears
// everything down when the player dies.
package session

import (
	"fmt"
	"time"

	"github.com/shmupcore/shmup/internal/config"
	"github.com/shmupcore/shmup/internal/core/event"
	coresys "github.com/shmupcore/shmup/internal/core/system"
	"github.com/shmupcore/shmup/internal/input"
	"github.com/shmupcore/shmup/internal/render"
	"github.com/shmupcore/shmup/internal/replay"
	"github.com/shmupcore/shmup/internal/system"
	"github.com/shmupcore/shmup/internal/world"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// drainRounds bounds event delivery at teardown.
const drainRounds = 4

// Result is what a finished session reports to the score sink.
type Result struct {
	Stage    string
	Score    int
	Kills    int
	Duration time.Duration
	ReplayID string
	Replay   []byte
}

// Summary formats the result for people.
func (r Result) Summary() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("score %d, kills %d, survived %s", r.Score, r.Kills, r.Duration.Round(time.Millisecond))
}

// ScoreSink receives the result of every session that ends in death.
// Submit must not block the game loop.
type ScoreSink interface {
	Submit(Result)
}

// Session drives one play-through.
// Accessed only from the game loop goroutine, no locks needed.
type Session struct {
	cfg    *config.Config
	log    *zap.Logger
	clock  *world.FrameClock
	env    *world.Env
	ctrl   *world.Controller
	player *world.Player
	bus    *event.Bus
	runner *coresys.Runner
	rec    *replay.Recorder
	sink   ScoreSink

	keys    input.State
	started time.Time
	ticks   int
	kills   int
	ended   bool
	result  Result
}

// New builds a session on st, reading time from source. The controller is
// not dispatched until Start, so stage scripts can declare waves first.
func New(cfg *config.Config, st render.Stage, source world.Clock, sink ScoreSink, log *zap.Logger) (*Session, error) {
	clock := world.NewFrameClock(source)
	env := &world.Env{Stage: st, Clock: clock, Log: log}
	player, err := world.NewPlayer(env, cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		log:    log,
		clock:  clock,
		env:    env,
		ctrl:   world.NewController(env),
		player: player,
		bus:    event.NewBus(),
		runner: coresys.NewRunner(),
		rec:    replay.NewRecorder(4096),
		sink:   sink,
	}

	s.runner.Register(system.NewEventDispatchSystem(s.bus))
	s.runner.Register(system.NewReplaySystem(&s.keys, s.rec))
	s.runner.Register(system.NewInputSystem(&s.keys, s.player, s.ctrl, s.clock, s.bus, log))
	s.runner.Register(system.NewControllerSystem(s.ctrl, s.clock))
	s.runner.Register(system.NewCollisionSystem(s.ctrl, s.player, cfg.Collision, s.clock, s.bus, log, s.End))
	if a, ok := st.(system.Animator); ok {
		s.runner.Register(system.NewAnimationSystem(a, s.clock.Paused))
	}
	s.runner.Register(system.NewCleanupSystem(s.ctrl, log))

	event.Subscribe(s.bus, func(event.EnemyKilled) { s.kills++ })
	event.Subscribe(s.bus, func(e event.PlayerHit) {
		s.log.Debug("player hit", zap.Int("damage", e.Damage), zap.Int("health", e.Health))
	})
	event.Subscribe(s.bus, func(e event.PlayerDied) {
		p := message.NewPrinter(language.English)
		s.log.Info("You died",
			zap.String("score", p.Sprintf("%d", e.Score)),
			zap.Duration("elapsed", e.Elapsed),
			zap.Int("kills", s.kills),
		)
	})
	event.Subscribe(s.bus, func(e event.PauseToggled) {
		s.log.Info("pause", zap.Bool("paused", e.Paused))
	})

	return s, nil
}

func (s *Session) Controller() *world.Controller { return s.ctrl }
func (s *Session) Player() *world.Player         { return s.player }
func (s *Session) Bus() *event.Bus               { return s.bus }
func (s *Session) Clock() *world.FrameClock      { return s.clock }
func (s *Session) Env() *world.Env               { return s.env }

// Kills returns the kills delivered so far.
func (s *Session) Kills() int { return s.kills }

// Ticks returns the number of ticks run.
func (s *Session) Ticks() int { return s.ticks }

func (s *Session) Ended() bool { return s.ended }

// Result is valid once the session has ended.
func (s *Session) Result() Result { return s.result }

// Start dispatches the controller at the current game time.
func (s *Session) Start() {
	s.started = s.clock.Tick()
	s.ctrl.Dispatch()
	s.log.Info("session started",
		zap.Int("enemies", s.ctrl.Enemies.Len()),
		zap.Int("systems", s.runner.Len()),
		zap.Duration("stage_length", s.ctrl.FragmentTime()),
	)
}

// Tick reads the clock once and runs every system against keys. It reports
// whether the session is still running.
func (s *Session) Tick(keys input.State) bool {
	if s.ended {
		return false
	}
	prev := s.clock.Now()
	now := s.clock.Tick()
	s.keys = keys
	s.ticks++
	s.runner.Tick(now.Sub(prev))
	return !s.ended
}

// End finishes the session after the player's death: pending events are
// delivered, the replay is packed, the controller and everything it owns
// is destroyed and the result goes to the sink. Later calls are no-ops.
func (s *Session) End() {
	if !s.finish() {
		return
	}
	s.sink.Submit(s.result)
}

// Quit abandons the session without reporting a score.
func (s *Session) Quit() {
	if s.finish() {
		s.log.Info("session abandoned", zap.Int("score", s.result.Score))
	}
}

func (s *Session) finish() bool {
	if s.ended {
		return false
	}
	s.ended = true
	s.bus.Drain(drainRounds)

	s.result = Result{
		Stage:    s.cfg.Data.Stage,
		Score:    s.player.Score,
		Kills:    s.kills,
		Duration: s.clock.Now().Sub(s.started),
	}
	rp := s.rec.Snapshot(s.cfg.Data.Stage, s.cfg.Game.TickRate)
	if data, err := replay.Encode(rp); err != nil {
		s.log.Warn("replay dropped", zap.Error(err))
	} else {
		s.result.Replay = data
		s.result.ReplayID = replay.ID(data)
	}

	s.ctrl.Destroy()
	return true
}
