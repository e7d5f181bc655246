// Package config holds the immutable run configuration. A Config value
// is built once from defaults, an optional YAML file and flags, then
// passed down explicitly; nothing reads it through package state, so
// every search stays reproducible from its inputs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"othello/game"
	"othello/searcher"
)

// Mode selects the top-level game mode.
type Mode string

const (
	ModeNormal  Mode = "normal"  // human vs human, or human vs AI
	ModeBlitz   Mode = "blitz"   // normal with per-side clocks
	ModeContest Mode = "contest" // load a save, compute one move, save
	ModeAI      Mode = "ai"      // AI vs AI benchmark games
)

// Defaults, matching the original distribution.
const (
	DefaultSize      = 8
	DefaultBlitzTime = 30 * time.Minute
	DefaultAIDepth   = 3
	DefaultAITime    = 5 * time.Second
)

// AI configures one artificial seat.
type AI struct {
	Algorithm string        `yaml:"algorithm"` // minimax or alphabeta
	Depth     int           `yaml:"depth"`
	Heuristic string        `yaml:"heuristic"`
	Time      time.Duration `yaml:"time"` // 0 disables the budget
	Shallow   bool          `yaml:"shallow"`
}

// Config is the full run configuration.
type Config struct {
	Mode      Mode          `yaml:"mode"`
	Size      int           `yaml:"size"`
	Debug     bool          `yaml:"debug"`
	BlitzTime time.Duration `yaml:"blitz_time"`
	AIColor   string        `yaml:"ai_color"` // none, X, O, A (both seats share Black's config) or B (separate)
	Black     AI            `yaml:"ai"`
	White     AI            `yaml:"white_ai"`
}

// Default returns the shipped configuration.
func Default() Config {
	ai := AI{
		Algorithm: "minimax",
		Depth:     DefaultAIDepth,
		Heuristic: game.HeuristicCornersCaptured,
		Time:      DefaultAITime,
	}
	return Config{
		Mode:      ModeNormal,
		Size:      DefaultSize,
		BlitzTime: DefaultBlitzTime,
		AIColor:   "none",
		Black:     ai,
		White:     ai,
	}
}

// Load reads a YAML file over the defaults: keys absent from the file
// keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks every field against its legal values.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeNormal, ModeBlitz, ModeContest, ModeAI:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Size < game.MinBoardSize || c.Size > game.MaxBoardSize || c.Size%2 != 0 {
		return &game.IllegalBoardSizeError{Size: c.Size}
	}
	if c.BlitzTime <= 0 {
		return fmt.Errorf("blitz_time must be positive")
	}
	switch c.AIColor {
	case "none", "X", "O", "A", "B":
	default:
		return fmt.Errorf("ai_color must be one of none, X, O, A, B")
	}
	for _, ai := range []AI{c.Black, c.White} {
		if _, err := ai.algorithm(); err != nil {
			return err
		}
		if _, err := game.HeuristicByName(ai.Heuristic); err != nil {
			return err
		}
		if ai.Depth < 1 {
			return fmt.Errorf("ai depth must be at least 1")
		}
		if ai.Time < 0 {
			return fmt.Errorf("ai time must not be negative")
		}
	}
	return nil
}

func (a AI) algorithm() (searcher.Algorithm, error) {
	switch a.Algorithm {
	case "minimax":
		return searcher.Minimax, nil
	case "alphabeta", "ab":
		return searcher.AlphaBeta, nil
	default:
		return searcher.Minimax, fmt.Errorf("unknown algorithm %q", a.Algorithm)
	}
}

// Searcher builds the searcher described by an AI section. The
// configuration must have been validated.
func (a AI) Searcher() *searcher.Searcher {
	algorithm, err := a.algorithm()
	if err != nil {
		panic(err)
	}
	heuristic, err := game.HeuristicByName(a.Heuristic)
	if err != nil {
		panic(err)
	}
	return searcher.New(
		searcher.WithAlgorithm(algorithm),
		searcher.WithMaxDepth(a.Depth),
		searcher.WithTimeLimit(a.Time),
		searcher.WithShallowOrdering(a.Shallow),
		searcher.WithHeuristic(heuristic),
	)
}
