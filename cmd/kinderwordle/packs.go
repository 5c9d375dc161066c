package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kinderwordle/internal/words"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List all available word packs",
	Long: `Shows the built-in word packs and any YAML packs found in the
configured packs directory (default ~/.kinderwordle/packs).`,
	Args: cobra.NoArgs,
	Run:  runPacks,
}

func runPacks(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	if flagLogLevel == "debug" {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(log.DebugLevel)
	}
	registerUserPacks(cfg, logger)

	packs := words.List()
	if len(packs) == 0 {
		fmt.Println("No word packs available.")
		return
	}

	fmt.Println("Available word packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Letters", "Words", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "-------", "-----", "----")

	for _, p := range packs {
		marker := ""
		if p.ID == cfg.Rules.Pack {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-7d  %-6d  %s%s\n", maxIDLen, p.ID, p.Length, p.Size, p.Name, marker)
	}

	fmt.Println()
	fmt.Println("Run 'kinderwordle play --pack <id>' to play a pack.")
}
