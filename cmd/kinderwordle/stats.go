package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kinderwordle/internal/platform/tui"
	"github.com/vovakirdan/kinderwordle/internal/storage"
)

var (
	flagPlain     bool
	flagNamespace string
	flagRecent    int
	flagClear     bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of finished games",
	Long: `Display games played, win rate, streaks, the guess distribution and the
most recent games.

Local games are kept under the "local" namespace, SSH players under
"ssh:<user>".

Examples:
  kinderwordle stats
  kinderwordle stats --plain
  kinderwordle stats --plain --ns ssh:alice
  kinderwordle stats --clear --ns ssh:alice`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive screen")
	statsCmd.Flags().StringVar(&flagNamespace, "ns", storage.LocalNamespace, "Namespace to show")
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent games to list with --plain")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the finished games of the namespace")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagClear:
		if err = store.ClearResults(flagNamespace); err == nil {
			fmt.Printf("Cleared statistics of %s.\n", flagNamespace)
		}
	case flagPlain:
		err = printStats(store, flagNamespace, flagRecent)
	default:
		rt := runtimeConfig()
		_, err = tui.RunStats(store, flagNamespace, rt.ScreenW, rt.ScreenH)
	}
	store.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printStats(store *storage.Store, namespace string, recent int) error {
	st, err := store.Stats(namespace)
	if err != nil {
		return err
	}

	fmt.Printf("Statistics - %s\n", namespace)
	fmt.Println()

	if st.Played == 0 {
		fmt.Println("No games finished yet.")
		fmt.Println()
		fmt.Println("Run 'kinderwordle play' to start a streak!")
		return nil
	}

	fmt.Printf("  Played          %d\n", st.Played)
	fmt.Printf("  Win %%           %d\n", st.WinRate())
	fmt.Printf("  Current streak  %d\n", st.CurrentStreak)
	fmt.Printf("  Max streak      %d\n", st.MaxStreak)
	fmt.Printf("  Last played     %s\n", st.LastPlayed.Local().Format("2006-01-02 15:04"))
	fmt.Println()

	fmt.Println("Guess distribution")
	maxCount := lo.Max(lo.Values(st.Distribution))
	counts := lo.Keys(st.Distribution)
	slices.Sort(counts)
	for _, attempts := range counts {
		n := st.Distribution[attempts]
		width := 1
		if maxCount > 0 {
			width = max(1, n*30/maxCount)
		}
		fmt.Printf("  %2d %s %d\n", attempts, strings.Repeat("#", width), n)
	}
	fmt.Println()

	results, err := store.RecentResults(namespace, recent)
	if err != nil {
		return err
	}

	fmt.Printf("  %-16s  %-10s  %-8s  %-5s  %s\n", "Date", "Pack", "Word", "Tries", "Result")
	fmt.Printf("  %-16s  %-10s  %-8s  %-5s  %s\n", "----", "----", "----", "-----", "------")
	for _, r := range results {
		outcome := lo.Ternary(r.Won, "won", "lost")
		fmt.Printf("  %-16s  %-10s  %-8s  %-5d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.PackID,
			strings.ToUpper(r.Secret),
			r.Attempts,
			outcome,
		)
	}
	return nil
}
