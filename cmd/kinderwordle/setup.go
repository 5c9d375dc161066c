package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/kinderwordle/internal/config"
	"github.com/vovakirdan/kinderwordle/internal/core"
	"github.com/vovakirdan/kinderwordle/internal/game"
	"github.com/vovakirdan/kinderwordle/internal/platform/tui"
	"github.com/vovakirdan/kinderwordle/internal/storage"
	"github.com/vovakirdan/kinderwordle/internal/words"
)

// loadConfig reads the config file, then the environment, then --env-file.
// Malformed overrides are reported and skipped.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if flagEnvFile != "" {
		if err := config.ApplyEnvFile(&cfg, flagEnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	cfg.Validate()
	return cfg, nil
}

// dbPath resolves the database path: --db, then KINDERWORDLE_DB, then the default.
func dbPath() string {
	if rootCmd.PersistentFlags().Changed("db") {
		return flagDBPath
	}
	if env := os.Getenv(config.EnvDB); env != "" {
		return env
	}
	return flagDBPath
}

// openStore opens the game database. Failure is a warning: the game still
// works, it just forgets.
func openStore(logger *log.Logger) *storage.Store {
	path := dbPath()
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		logger.Warn("could not open game database", "path", path, "error", err)
		return nil
	}
	logger.Debug("opened game database", "path", path)
	return store
}

// gameStore avoids handing a nil *storage.Store to the TUI as a non-nil interface.
func gameStore(store *storage.Store) tui.Store {
	if store == nil {
		return nil
	}
	return store
}

func statsSource(store *storage.Store) tui.StatsSource {
	if store == nil {
		return nil
	}
	return store
}

// registerUserPacks adds the packs found in the configured packs directory.
func registerUserPacks(cfg config.Config, logger *log.Logger) {
	added, err := words.RegisterDir(cfg.PacksDir)
	if err != nil {
		logger.Warn("could not load user packs", "dir", cfg.PacksDir, "error", err)
		return
	}
	if len(added) > 0 {
		logger.Info("loaded user packs", "dir", cfg.PacksDir, "packs", strings.Join(added, ","))
	}
}

// newMachine creates a game for packID with the configured rules.
func newMachine(cfg config.Config, packID string, seed int64) (*game.Machine, error) {
	pack, err := words.Get(packID)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'kinderwordle packs' to list packs)", err)
	}
	cfg.Rules.Pack = packID
	return game.New(pack, cfg.GameOptions(seed)), nil
}

// runtimeConfig returns the terminal size and seed.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// newLogger builds the process logger. The terminal modes own the screen, so
// they log to a file; everything else logs to stderr.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if toFile {
		path := flagLogFile
		if path == "" {
			home, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return nil, nil, fmt.Errorf("cannot get home directory: %w", homeErr)
			}
			path = filepath.Join(home, ".kinderwordle", "kinderwordle.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "kinderwordle",
		Level:           level,
	})
	return logger, closer, nil
}
