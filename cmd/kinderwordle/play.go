package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kinderwordle/internal/config"
	"github.com/vovakirdan/kinderwordle/internal/platform/tui"
	"github.com/vovakirdan/kinderwordle/internal/storage"
)

var (
	flagPack       string
	flagDifficulty string
	flagFresh      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start guessing a secret word from the configured pack.

The game in progress is saved after every guess and resumed the next
time you play the same pack.

Controls:
  a-z        - Type a letter
  Enter      - Submit the guess
  Backspace  - Erase the last letter
  Ctrl+N     - New word
  Tab        - Statistics
  Esc/Ctrl+C - Quit

Difficulty options:
  easy   - 8 tries
  normal - 6 tries
  hard   - 4 tries

Examples:
  kinderwordle play
  kinderwordle play --pack classic
  kinderwordle play --difficulty easy
  kinderwordle play --fresh              # discard the saved game of the pack
  kinderwordle play --config ./my-kinderwordle.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPack, "pack", "", "Word pack to play (default from config)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Start a new word instead of resuming the saved game")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyPlayFlags applies --pack and --difficulty on top of the config.
func applyPlayFlags(cfg *config.Config) error {
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyPreset(cfg, preset)
	}
	if flagPack != "" {
		cfg.Rules.Pack = flagPack
	}
	return nil
}

func play() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyPlayFlags(&cfg); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	registerUserPacks(cfg, logger)

	machine, err := newMachine(cfg, cfg.Rules.Pack, flagSeed)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
		if flagFresh {
			ns := tui.GameNamespace(storage.LocalNamespace, cfg.Rules.Pack)
			if err := store.Forget(ns, storage.GameKeys...); err != nil {
				logger.Warn("could not discard saved game", "namespace", ns, "error", err)
			}
		}
	}

	rt := runtimeConfig()
	for {
		res, err := tui.Run(machine, gameStore(store), tui.ModelOptions{
			Namespace: storage.LocalNamespace,
			Logger:    logger,
			Config:    rt,
		})
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		rt = res.Config

		if !res.WantsStats {
			return nil
		}

		goBack, err := tui.RunStats(statsSource(store), storage.LocalNamespace, rt.ScreenW, rt.ScreenH)
		if err != nil {
			return err
		}
		if !goBack {
			return nil
		}
	}
}
