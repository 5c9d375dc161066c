// Package config provides YAML-based game configuration loading and
// difficulty presets for Kinderwordle.
package config

import (
	"time"

	"github.com/vovakirdan/kinderwordle/internal/game"
	"github.com/vovakirdan/kinderwordle/internal/words"
)

// Config contains all configuration for a game session.
type Config struct {
	Rules      Rules  `yaml:"rules"`
	Timing     Timing `yaml:"timing"`
	Difficulty string `yaml:"difficulty"` // optional preset name, overrides Rules.AttemptLimit
	PacksDir   string `yaml:"packs_dir"`  // extra YAML word packs
}

// Rules defines what a game is played with.
type Rules struct {
	Pack         string `yaml:"pack"`
	AttemptLimit int    `yaml:"attempt_limit"`
}

// Timing defines display delays.
type Timing struct {
	ResultDisplayMS int `yaml:"result_display_ms"` // how long a result stays on screen, at least 1
}

// ResultDisplay returns the result display delay.
func (c Config) ResultDisplay() time.Duration {
	return time.Duration(c.Timing.ResultDisplayMS) * time.Millisecond
}

// GameOptions converts the config into state machine options.
func (c Config) GameOptions(seed int64) game.Options {
	return game.Options{
		AttemptLimit:  c.Rules.AttemptLimit,
		ResultDisplay: c.ResultDisplay(),
		Seed:          seed,
		PackID:        c.Rules.Pack,
	}
}

// Validate replaces out-of-range values with defaults.
func (c *Config) Validate() {
	def := Default()
	if c.Rules.Pack == "" {
		c.Rules.Pack = def.Rules.Pack
	}
	if c.Rules.AttemptLimit < 1 {
		c.Rules.AttemptLimit = def.Rules.AttemptLimit
	}
	if c.Timing.ResultDisplayMS < 1 {
		c.Timing.ResultDisplayMS = def.Timing.ResultDisplayMS
	}
	if c.PacksDir == "" {
		c.PacksDir = def.PacksDir
	}
}

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Rules: Rules{
			Pack:         words.DefaultPack,
			AttemptLimit: game.DefaultAttemptLimit,
		},
		Timing: Timing{
			ResultDisplayMS: int(game.DefaultResultDisplay / time.Millisecond),
		},
		PacksDir: "~/.kinderwordle/packs",
	}
}
