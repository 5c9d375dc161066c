package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvPack       = "KINDERWORDLE_PACK"
	EnvAttempts   = "KINDERWORDLE_ATTEMPTS"
	EnvResultMS   = "KINDERWORDLE_RESULT_MS"
	EnvDifficulty = "KINDERWORDLE_DIFFICULTY"
	EnvDB         = "KINDERWORDLE_DB"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.kinderwordle/config.yaml -> ./configs/kinderwordle.yaml -> embedded default
// Only a custom path that cannot be read or parsed is an error.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return finish(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return finish(cfg)
			}
			cfg = Default()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/kinderwordle.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return finish(cfg)
		}
		cfg = Default()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return finish(cfg)
}

// finish applies the configured difficulty preset and validates.
func finish(cfg Config) (Config, error) {
	if cfg.Difficulty != "" {
		preset, err := ParsePreset(cfg.Difficulty)
		if err != nil {
			return cfg, err
		}
		ApplyPreset(&cfg, preset)
	}
	cfg.Validate()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kinderwordle", filename)
}

// ApplyEnv overrides cfg from the process environment. Malformed values are
// skipped and reported together in the returned error.
func ApplyEnv(cfg *Config) error {
	return applyVars(cfg, os.Getenv)
}

// ApplyEnvFile overrides cfg from a dotenv file without touching the
// process environment.
func ApplyEnvFile(cfg *Config, path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return applyVars(cfg, func(key string) string { return vars[key] })
}

func applyVars(cfg *Config, lookup func(string) string) error {
	var errs []error

	if v := lookup(EnvPack); v != "" {
		cfg.Rules.Pack = v
	}
	if v := lookup(EnvDifficulty); v != "" {
		if preset, err := ParsePreset(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvDifficulty, err))
		} else {
			ApplyPreset(cfg, preset)
		}
	}
	if v := lookup(EnvAttempts); v != "" {
		if n, err := strconv.Atoi(v); err != nil || n < 1 {
			errs = append(errs, fmt.Errorf("config: %s must be a positive integer, got %q", EnvAttempts, v))
		} else {
			cfg.Rules.AttemptLimit = n
		}
	}
	if v := lookup(EnvResultMS); v != "" {
		if n, err := strconv.Atoi(v); err != nil || n < 1 {
			errs = append(errs, fmt.Errorf("config: %s must be a positive integer, got %q", EnvResultMS, v))
		} else {
			cfg.Timing.ResultDisplayMS = n
		}
	}

	return errors.Join(errs...)
}
