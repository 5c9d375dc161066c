package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kinderwordle/internal/game"
	"github.com/vovakirdan/kinderwordle/internal/platform/tui"
	"github.com/vovakirdan/kinderwordle/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a word pack from a menu",
	Long: `Start Kinderwordle in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a word pack.
Esc in a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select pack
  Tab          - Statistics
  Q            - Quit

Examples:
  kinderwordle menu
  kinderwordle menu --db ./kinderwordle.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := menu(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func menu() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	registerUserPacks(cfg, logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig()
	current := cfg.Rules.Pack
	machines := make(map[string]*game.Machine)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rt, current)
		if err != nil {
			return err
		}
		rt = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsStats {
			goBack, err := tui.RunStats(statsSource(store), storage.LocalNamespace, rt.ScreenW, rt.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil
		}

		current = menuResult.PackID
		machine, ok := machines[current]
		if !ok {
			machine, err = newMachine(cfg, current, flagSeed)
			if err != nil {
				return err
			}
			machines[current] = machine
		}

		// Game loop: stats return to the game, esc returns to the menu
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

			if res.WantsStats {
				goBack, err := tui.RunStats(statsSource(store), storage.LocalNamespace, rt.ScreenW, rt.ScreenH)
				if err != nil {
					return err
				}
				if goBack {
					continue
				}
				return nil
			}
			if res.BackToMenu {
				break
			}
			return nil
		}
	}
}
