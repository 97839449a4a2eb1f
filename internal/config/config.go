package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game      GameConfig      `toml:"game"`
	Player    PlayerConfig    `toml:"player"`
	Collision CollisionConfig `toml:"collision"`
	Input     InputConfig     `toml:"input"`
	Data      DataConfig      `toml:"data"`
	Scores    ScoresConfig    `toml:"scores"`
	Logging   LoggingConfig   `toml:"logging"`
}

type GameConfig struct {
	Name       string        `toml:"name"`
	Width      float64       `toml:"width"`
	Height     float64       `toml:"height"`
	TickRate   time.Duration `toml:"tick_rate"`
	FrameEvery int           `toml:"frame_every"` // ticks per animation frame
	Sound      bool          `toml:"sound"`
}

type PlayerConfig struct {
	Health        int     `toml:"health"`
	Speed         float64 `toml:"speed"`          // units per tick
	CooldownTicks int     `toml:"cooldown_ticks"` // ticks between shots
	HalfSize      float64 `toml:"half_size"`      // clamp margin to the playfield edge
	SpawnOffset   float64 `toml:"spawn_offset"`   // distance from the bottom edge
}

type CollisionConfig struct {
	EnemyHalfWidth  float64 `toml:"enemy_half_width"`
	PlayerHalfWidth float64 `toml:"player_half_width"`
	KillScore       int     `toml:"kill_score"`
}

type InputConfig struct {
	HoldWindow time.Duration `toml:"hold_window"` // terminals report no key-up; a press counts as held this long
}

type DataConfig struct {
	Animations string `toml:"animations"`
	StageDir   string `toml:"stage_dir"`
	Stage      string `toml:"stage"`
}

type ScoresConfig struct {
	Driver        string        `toml:"driver"` // "postgres", "sqlite" or "none"
	DSN           string        `toml:"dsn"`
	MaxOpenConns  int           `toml:"max_open_conns"`
	SubmitTimeout time.Duration `toml:"submit_timeout"`
	UserID        int64         `toml:"user_id"` // owner recorded with scores and replays
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // the terminal owns stdout while playing
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return fmt.Errorf("game: playfield %gx%g must be positive", c.Game.Width, c.Game.Height)
	}
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("game: tick_rate must be positive")
	}
	switch c.Scores.Driver {
	case "postgres", "sqlite", "none":
	default:
		return fmt.Errorf("scores: unknown driver %q", c.Scores.Driver)
	}
	return nil
}

// Defaults returns the built-in configuration; Load overlays the file on it.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			Name:       "shmup",
			Width:      600,
			Height:     600,
			TickRate:   16 * time.Millisecond,
			FrameEvery: 2,
			Sound:      true,
		},
		Player: PlayerConfig{
			Health:        1,
			Speed:         4,
			CooldownTicks: 5,
			HalfSize:      8,
			SpawnOffset:   64,
		},
		Collision: CollisionConfig{
			EnemyHalfWidth:  10,
			PlayerHalfWidth: 4,
			KillScore:       5,
		},
		Input: InputConfig{
			HoldWindow: 120 * time.Millisecond,
		},
		Data: DataConfig{
			Animations: "data/animations.yaml",
			StageDir:   "scripts",
			Stage:      "stage1.lua",
		},
		Scores: ScoresConfig{
			Driver:        "sqlite",
			DSN:           "shmup.db",
			MaxOpenConns:  4,
			SubmitTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "shmup.log",
		},
	}
}
