package scoring

import (
	"unicode/utf8"

	"github.com/samber/lo"
)

// Alphabet is the set of letters shown on the on-screen keyboard.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// ScoreAt classifies the letter of a submitted attempt at one position.
// Positions beyond the attempt or the secret are Empty.
func ScoreAt(secret, attempt string, index int) LetterState {
	letters := []rune(attempt)
	if index < 0 || index >= len(letters) {
		return Empty
	}
	letter := letters[index]
	return Classify(secret, letter, IndexesOf(attempt, letter), []int{index})
}

// ScoreRow classifies every position of a submitted attempt.
// The result always has one entry per letter of the secret.
func ScoreRow(secret, attempt string) []LetterState {
	n := utf8.RuneCountInString(secret)
	return lo.Times(n, func(i int) LetterState {
		return ScoreAt(secret, attempt, i)
	})
}

// ScoreCurrentRow returns the states of the row still being typed:
// TBD for every typed letter, Empty for the rest.
func ScoreCurrentRow(secret, attempt string) []LetterState {
	n := utf8.RuneCountInString(secret)
	typed := utf8.RuneCountInString(attempt)
	return lo.Times(n, func(i int) LetterState {
		if i < typed {
			return TBD
		}
		return Empty
	})
}

// ScoreKeyboardLetter aggregates the state of one letter over the whole
// submitted history.
func ScoreKeyboardLetter(secret string, letter rune, history []string) LetterState {
	var union []int
	for _, attempt := range history {
		union = append(union, IndexesOf(attempt, letter)...)
	}
	return Classify(secret, letter, union, nil)
}

// ScoreKeyboard aggregates every letter of alphabet over history.
func ScoreKeyboard(secret string, history []string, alphabet string) map[rune]LetterState {
	states := make(map[rune]LetterState, utf8.RuneCountInString(alphabet))
	for _, letter := range alphabet {
		states[letter] = ScoreKeyboardLetter(secret, letter, history)
	}
	return states
}

// Solved reports whether attempt matches every position of secret.
func Solved(secret, attempt string) bool {
	if secret == "" || utf8.RuneCountInString(attempt) != utf8.RuneCountInString(secret) {
		return false
	}
	return lo.EveryBy(ScoreRow(secret, attempt), func(s LetterState) bool {
		return s == Correct
	})
}
