package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shmupcore/shmup/internal/config"
	"github.com/shmupcore/shmup/internal/core/event"
	"github.com/shmupcore/shmup/internal/data"
	"github.com/shmupcore/shmup/internal/input"
	"github.com/shmupcore/shmup/internal/persist"
	"github.com/shmupcore/shmup/internal/render/scene"
	"github.com/shmupcore/shmup/internal/replay"
	"github.com/shmupcore/shmup/internal/scripting"
	"github.com/shmupcore/shmup/internal/session"
	"github.com/shmupcore/shmup/internal/stage"
	"github.com/shmupcore/shmup/internal/term"
	"github.com/shmupcore/shmup/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	blipKill = 880
	blipHit  = 220
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Console display helpers ───────────────────────────────────────

func printBanner(name string, w, h float64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m                shmup  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mgame:\033[0m %s \033[90m(playfield %gx%g)\033[0m\n\n", name, w, h)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	top := flag.Int("top", 0, "print the N best scores and exit")
	replayID := flag.String("replay", "", "print the stored replay with this id and exit")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/shmup.toml"
	if p := os.Getenv("SHMUP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.Name, cfg.Game.Width, cfg.Game.Height)

	// 3. Open the score store
	printSection("Scores")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		store *persist.Store
		sink  session.ScoreSink = persist.NopSink{Log: log}
	)
	if cfg.Scores.Driver != "none" {
		store, err = persist.Open(ctx, cfg.Scores, log)
		if err != nil {
			return fmt.Errorf("open scores: %w", err)
		}
		defer store.Close()
		sink = store
		printOK(fmt.Sprintf("%s score store ready", cfg.Scores.Driver))
	} else {
		printOK("scores disabled")
	}

	if *top > 0 || *replayID != "" {
		if store == nil {
			return errors.New("scores disabled, nothing to show")
		}
		if *top > 0 {
			return printTop(ctx, store, *top)
		}
		return printReplay(ctx, store, *replayID)
	}

	// 4. Load game data
	printSection("Game data")
	catalog, err := data.LoadAnimationCatalog(cfg.Data.Animations)
	if err != nil {
		return fmt.Errorf("load animations: %w", err)
	}
	printStat("animations", catalog.Count())

	st := scene.NewStage(catalog, cfg.Game.Width, cfg.Game.Height, cfg.Game.FrameEvery)
	sess, err := session.New(cfg, st, world.SystemClock{}, sink, log)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}

	// 5. Declare the stage
	builder := stage.NewBuilder(sess.Controller(), sess.Player(), log)
	engine, err := scripting.NewEngine(cfg.Data.StageDir, builder, cfg.Game.Width, cfg.Game.Height, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	err = engine.RunStage(cfg.Data.Stage)
	engine.Close()
	if err != nil {
		return err
	}
	printStat("waves", builder.Waves())
	printStat("enemies", builder.Enemies())

	// 6. Terminal front end
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	poller := input.NewPoller(cfg.Input.HoldWindow)
	tui := term.New(screen, poller, cfg.Game.Width, cfg.Game.Height, log)

	sound := term.NewSound(cfg.Game.Sound, log)
	defer sound.Close()
	event.Subscribe(sess.Bus(), func(event.EnemyKilled) { sound.Blip(blipKill) })
	event.Subscribe(sess.Bus(), func(event.PlayerHit) { sound.Blip(blipHit) })

	// 7. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	tui.Start()
	sess.Start()
	log.Info("game loop started", zap.Duration("tick", cfg.Game.TickRate))

loop:
	for {
		select {
		case <-ticker.C:
			running := sess.Tick(poller.Snapshot(time.Now()))
			p := sess.Player()
			tui.Draw(st, term.HUD{
				Score:  p.Score,
				Health: p.Health,
				Kills:  sess.Kills(),
				Paused: sess.Clock().Paused(),
			})
			if !running {
				break loop
			}
		case <-tui.Quit():
			sess.Quit()
			break loop
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			sess.Quit()
			break loop
		}
	}
	tui.Close()

	res := sess.Result()
	fmt.Println()
	printSection("Result")
	printOK(res.Summary())
	if res.ReplayID != "" {
		printOK("replay " + res.ReplayID)
	}
	return nil
}

func printTop(ctx context.Context, store *persist.Store, n int) error {
	rows, err := store.Top(ctx, n)
	if err != nil {
		return fmt.Errorf("top scores: %w", err)
	}
	printSection("Top scores")
	for i, r := range rows {
		fmt.Printf("  %2d. %8d  kills %-4d %-10s %s\n", i+1, r.Score, r.Kills,
			r.Duration.Round(time.Second), r.CreatedAt.Format(time.DateTime))
	}
	return nil
}

func printReplay(ctx context.Context, store *persist.Store, id string) error {
	raw, err := store.Replay(ctx, id)
	if err != nil {
		return fmt.Errorf("replay %s: %w", id, err)
	}
	rp, err := replay.Decode(raw)
	if err != nil {
		return fmt.Errorf("replay %s: %w", id, err)
	}
	printSection("Replay")
	fmt.Printf("  stage %s, %d frames at %s\n", rp.Stage, len(rp.Frames), rp.TickRate)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// tcell owns stdout while playing
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
