package scoring

import (
	"slices"

	"github.com/samber/lo"
)

// IndexesOf returns every rune position of letter in text, ascending.
// The result is empty, never nil, when letter does not occur.
func IndexesOf(text string, letter rune) []int {
	positions := []int{}
	i := 0
	for _, r := range text {
		if r == letter {
			positions = append(positions, i)
		}
		i++
	}
	return positions
}

// Classify decides the state of letter given the positions where it was
// guessed and the target positions being asked about.
//
// A nil targets slice means "all guessed positions", which is how the
// keyboard aggregate asks. A board tile asks with its single position.
//
// Guessed positions outside the secret are ignored; if none remain the
// letter is Empty. Exact matches take precedence. Remaining occurrences of
// the letter in the secret are credited as Present to the non-exact guessed
// positions from left to right, one occurrence each.
func Classify(secret string, letter rune, guessed, targets []int) LetterState {
	word := []rune(secret)
	positions := validPositions(guessed, len(word))
	if len(positions) == 0 {
		return Empty
	}
	if targets == nil {
		targets = positions
	}

	for _, p := range targets {
		if p >= 0 && p < len(word) && word[p] == letter {
			return Correct
		}
	}

	if lo.Some(credited(word, letter, positions), targets) {
		return Present
	}
	return Absent
}

// validPositions deduplicates and sorts guessed positions, dropping any that
// fall outside a word of length n.
func validPositions(guessed []int, n int) []int {
	positions := lo.Uniq(lo.Filter(guessed, func(p int, _ int) bool {
		return p >= 0 && p < n
	}))
	slices.Sort(positions)
	return positions
}

// credited returns the guessed positions that earn a Present: the leftmost
// non-exact guesses, at most one per occurrence of letter in word that no
// guess matched exactly.
func credited(word []rune, letter rune, positions []int) []int {
	unmatched := 0
	for i, r := range word {
		if r == letter && !slices.Contains(positions, i) {
			unmatched++
		}
	}
	if unmatched == 0 {
		return nil
	}

	pool := lo.Filter(positions, func(p int, _ int) bool {
		return word[p] != letter
	})
	if len(pool) > unmatched {
		pool = pool[:unmatched]
	}
	return pool
}
