// kinderwordle is a Wordle-style word game for young readers, played in the
// terminal or over SSH.
//
// Usage:
//
//	kinderwordle play                    - Play with the configured word pack
//	kinderwordle menu                    - Pick a word pack interactively
//	kinderwordle serve                   - Start SSH server for remote play
//	kinderwordle stats                   - Show statistics of finished games
//	kinderwordle packs                   - List available word packs
//	kinderwordle score <secret> <try>... - Score attempts against a secret
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible secrets
//	--db <path>        - Set database path (default: ~/.kinderwordle/kinderwordle.db)
//	--config <path>    - Use a custom YAML config
//	--env-file <path>  - Apply KINDERWORDLE_* settings from a dotenv file
//	--log-level <lvl>  - debug, info, warn or error
//	--log-file <path>  - Log file for the terminal modes
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kinderwordle/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagEnvFile  string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	// A .env next to the binary is optional.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kinderwordle",
	Short: "Kinderwordle - guess the word in a few tries",
	Long: `Kinderwordle is a Wordle-style guessing game with short words for
young readers. Guess the secret word; after each try every letter turns
green (right spot), yellow (in the word, wrong spot) or gray (not in the word).

Available commands:
  play     - Play with the configured word pack
  menu     - Interactive word pack picker
  serve    - Start SSH server for remote play
  stats    - View statistics
  packs    - List word packs
  score    - Score attempts against a secret from the command line

Examples:
  kinderwordle play
  kinderwordle play --pack classic --difficulty easy
  kinderwordle menu
  kinderwordle serve --ssh :2222
  kinderwordle score ride here help ride`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to game database (env KINDERWORDLE_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Dotenv file with KINDERWORDLE_* settings")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for play/menu (default ~/.kinderwordle/kinderwordle.log)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(scoreCmd)
}
