package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRowFixtures(t *testing.T) {
	tests := []struct {
		secret  string
		attempt string
		want    []LetterState
	}{
		{"here", "help", []LetterState{Correct, Correct, Absent, Absent}},
		{"help", "here", []LetterState{Correct, Correct, Absent, Absent}},
		{"ride", "here", []LetterState{Absent, Absent, Present, Correct}},
		{"when", "here", []LetterState{Present, Present, Absent, Absent}},
		{"here", "eeee", []LetterState{Absent, Correct, Absent, Correct}},
		{"eexe", "xeee", []LetterState{Present, Correct, Present, Correct}},
		{"here", "here", []LetterState{Correct, Correct, Correct, Correct}},
	}

	for _, tt := range tests {
		t.Run(tt.secret+"/"+tt.attempt, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreRow(tt.secret, tt.attempt))
		})
	}
}

func TestScoreAtBeyondRow(t *testing.T) {
	assert.Equal(t, Empty, ScoreAt("here", "help", 4))
	assert.Equal(t, Empty, ScoreAt("ride", "here", 4))
	assert.Equal(t, Empty, ScoreAt("here", "help", -1))
}

func TestScoreRowShortAttempt(t *testing.T) {
	assert.Equal(t, []LetterState{Correct, Correct, Empty, Empty}, ScoreRow("here", "he"))
}

func TestScoreCurrentRow(t *testing.T) {
	assert.Equal(t, []LetterState{TBD, TBD, Empty, Empty}, ScoreCurrentRow("here", "ri"))
	assert.Equal(t, []LetterState{Empty, Empty, Empty, Empty}, ScoreCurrentRow("here", ""))
}

func TestScoreKeyboard(t *testing.T) {
	history := []string{"help", "ride"}
	keys := ScoreKeyboard("here", history, Alphabet)

	require.Len(t, keys, 26)
	assert.Equal(t, Correct, keys['h'])
	assert.Equal(t, Correct, keys['e'])
	assert.Equal(t, Present, keys['r'])
	assert.Equal(t, Absent, keys['l'])
	assert.Equal(t, Absent, keys['i'])
	assert.Equal(t, Empty, keys['z'])
}

func TestScoreKeyboardEmptyHistory(t *testing.T) {
	for letter, state := range ScoreKeyboard("here", nil, Alphabet) {
		assert.Equal(t, Empty, state, "letter %q", letter)
	}
}

func TestSolved(t *testing.T) {
	assert.True(t, Solved("here", "here"))
	assert.False(t, Solved("here", "help"))
	assert.False(t, Solved("here", "her"))
	assert.False(t, Solved("", ""))
}

// words returns every word of length n over letters.
func words(letters string, n int) []string {
	if n == 0 {
		return []string{""}
	}
	var out []string
	for _, prefix := range words(letters, n-1) {
		for _, r := range letters {
			out = append(out, prefix+string(r))
		}
	}
	return out
}

func TestScoreRowProperties(t *testing.T) {
	all := words("abc", 3)

	for _, secret := range all {
		for _, attempt := range all {
			row := ScoreRow(secret, attempt)
			require.Len(t, row, 3)

			// Replay gives the same answer.
			assert.Equal(t, row, ScoreRow(secret, attempt))

			credited := map[rune]int{}
			for i, r := range attempt {
				switch row[i] {
				case Correct, Present:
					credited[r]++
				case Absent:
				default:
					t.Fatalf("ScoreRow(%q, %q)[%d] = %v, want a scored state", secret, attempt, i, row[i])
				}
				if !strings.ContainsRune(secret, r) {
					assert.Equal(t, Absent, row[i], "ScoreRow(%q, %q)[%d]", secret, attempt, i)
				}
			}
			for r, n := range credited {
				assert.LessOrEqual(t, n, strings.Count(secret, string(r)),
					"ScoreRow(%q, %q) credits %q too often", secret, attempt, r)
			}
		}

		assert.True(t, Solved(secret, secret))
	}
}

func TestScoreKeyboardNeverDowngrades(t *testing.T) {
	all := words("abc", 3)

	for _, secret := range all {
		for _, first := range all {
			for _, second := range all {
				before := ScoreKeyboard(secret, []string{first}, "abc")
				after := ScoreKeyboard(secret, []string{first, second}, "abc")
				for _, r := range "abc" {
					assert.GreaterOrEqual(t, after[r].Rank(), before[r].Rank(),
						"secret %q history [%s %s] letter %q", secret, first, second, r)
				}
			}
		}
	}
}
