package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset parses a preset name, case-insensitively.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
}

// AttemptLimitForPreset returns the number of attempts a preset allows.
func AttemptLimitForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 8
	case DifficultyHard:
		return 4
	default:
		return 6
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty = string(preset)
	cfg.Rules.AttemptLimit = AttemptLimitForPreset(preset)
}
