package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kinderwordle/internal/scoring"
)

var flagOnly []string

var scoreCmd = &cobra.Command{
	Use:   "score <secret> <attempt>...",
	Short: "Score attempts against a secret",
	Long: `Print how each attempt would be colored against the secret, and the
on-screen keyboard after all of them.

Legend: [X] correct spot, (X) wrong spot, .X. not in the word.

Examples:
  kinderwordle score ride here help ride
  kinderwordle score eexe xeee
  kinderwordle score ride here help --only present,absent`,
	Args: cobra.MinimumNArgs(2),
	Run:  runScore,
}

func init() {
	scoreCmd.Flags().StringSliceVar(&flagOnly, "only", []string{"correct", "present", "absent"},
		"Keyboard states to summarize: correct, present, absent")
}

func runScore(_ *cobra.Command, args []string) {
	secret := strings.ToLower(args[0])
	history := lo.Map(args[1:], func(a string, _ int) string { return strings.ToLower(a) })

	summary, err := parseStates(flagOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	n := utf8.RuneCountInString(secret)
	for _, attempt := range history {
		if utf8.RuneCountInString(attempt) != n {
			fmt.Fprintf(os.Stderr, "Error: %q has %d letters, the secret has %d\n",
				attempt, utf8.RuneCountInString(attempt), n)
			os.Exit(1)
		}
	}

	for i, attempt := range history {
		states := scoring.ScoreRow(secret, attempt)
		letters := []rune(strings.ToUpper(attempt))
		cells := make([]string, len(states))
		for j, s := range states {
			cells[j] = formatCell(letters[j], s)
		}
		solved := ""
		if scoring.Solved(secret, attempt) {
			solved = "  solved"
		}
		fmt.Printf("  %d  %s%s\n", i+1, strings.Join(cells, " "), solved)
	}
	fmt.Println()

	keyboard := scoring.ScoreKeyboard(secret, history, scoring.Alphabet)
	for _, state := range summary {
		letters := lo.Filter([]rune(scoring.Alphabet), func(r rune, _ int) bool {
			return keyboard[r] == state
		})
		if len(letters) == 0 {
			continue
		}
		fmt.Printf("  %-8s %s\n", state.String()+":", strings.ToUpper(string(letters)))
	}
}

// parseStates turns --only names into keyboard states.
func parseStates(names []string) ([]scoring.LetterState, error) {
	states := make([]scoring.LetterState, 0, len(names))
	for _, name := range names {
		state, ok := scoring.ParseLetterState(strings.ToLower(strings.TrimSpace(name)))
		if !ok || !state.Scored() {
			return nil, fmt.Errorf("unknown letter state %q (want correct, present or absent)", name)
		}
		states = append(states, state)
	}
	return lo.Uniq(states), nil
}

func formatCell(letter rune, state scoring.LetterState) string {
	switch state {
	case scoring.Correct:
		return "[" + string(letter) + "]"
	case scoring.Present:
		return "(" + string(letter) + ")"
	default:
		return "." + string(letter) + "."
	}
}
