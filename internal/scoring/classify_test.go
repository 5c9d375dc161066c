package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexesOf(t *testing.T) {
	tests := []struct {
		text   string
		letter rune
		want   []int
	}{
		{"here", 'e', []int{1, 3}},
		{"here", 'h', []int{0}},
		{"here", 'a', []int{}},
		{"", 'a', []int{}},
		{"eeee", 'e', []int{0, 1, 2, 3}},
		{"ñaña", 'ñ', []int{0, 2}},
	}

	for _, tt := range tests {
		got := IndexesOf(tt.text, tt.letter)
		assert.NotNil(t, got)
		assert.Equal(t, tt.want, got, "IndexesOf(%q, %q)", tt.text, tt.letter)
	}
}

// positionsIn collects the union of positions of letter over attempts.
func positionsIn(attempts []string, letter rune) []int {
	var union []int
	for _, a := range attempts {
		union = append(union, IndexesOf(a, letter)...)
	}
	return union
}

func TestClassifyFromAttempts(t *testing.T) {
	const secret = "here"

	tests := []struct {
		name     string
		letter   rune
		attempts []string
		targets  []int
		want     LetterState
	}{
		{"absent letter in every position", 'a', []string{"aeee", "eaee", "eeae", "eeea"}, nil, Absent},
		{"not attempted", 'a', nil, nil, Empty},
		{"single intersecting attempt", 'h', []string{"help"}, nil, Correct},
		{"multiple attempts, one intersecting", 'h', []string{"hooo", "ohoo", "ooho", "oooh"}, nil, Correct},
		{"intersecting target", 'h', []string{"hooo", "ohoo"}, []int{0}, Correct},
		{"present in single attempt", 'h', []string{"ohoo"}, nil, Present},
		{"present in multiple attempts", 'h', []string{"ohoo", "ooho", "oooh"}, nil, Present},
		{"present with targets", 'h', []string{"ohoo", "ooho", "oooh"}, []int{1, 2}, Present},
		{"only beyond secret length", 'h', []string{"ooooh"}, nil, Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(secret, tt.letter, positionsIn(tt.attempts, tt.letter), tt.targets)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyFromPositions(t *testing.T) {
	const secret = "here"

	tests := []struct {
		name    string
		letter  rune
		guessed []int
		targets []int
		want    LetterState
	}{
		{"absent including out of range", 'a', []int{0, 1, 2, 3, 4}, nil, Absent},
		{"no positions", 'a', []int{}, nil, Empty},
		{"exact single", 'h', []int{0}, nil, Correct},
		{"exact among many", 'h', []int{0, 1, 2, 3}, nil, Correct},
		{"exact target", 'h', []int{0, 1}, []int{0}, Correct},
		{"present single", 'h', []int{1}, nil, Present},
		{"present many", 'h', []int{1, 2, 3}, nil, Present},
		{"present targets", 'h', []int{1, 2, 3}, []int{1, 2}, Present},
		{"not credited target", 'h', []int{1, 2, 3}, []int{3}, Absent},
		{"out of range only", 'h', []int{4}, nil, Empty},
		{"negative ignored", 'h', []int{-1}, nil, Empty},
		{"unsorted duplicates", 'h', []int{3, 1, 1, 2}, []int{1}, Present},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(secret, tt.letter, tt.guessed, tt.targets))
		})
	}
}

func TestClassifyExactMatchesConsumeCreditFirst(t *testing.T) {
	// One unmatched 'e' at position 0; the exact guesses at 1 and 3 must not
	// use up the credit that belongs to the guess at 2.
	assert.Equal(t, Present, Classify("eexe", 'e', []int{1, 2, 3}, []int{2}))
	assert.Equal(t, Correct, Classify("eexe", 'e', []int{1, 2, 3}, []int{1}))
}

func TestClassifyEmptySecret(t *testing.T) {
	assert.Equal(t, Empty, Classify("", 'a', []int{0}, nil))
}

func TestLetterStateString(t *testing.T) {
	for _, s := range []LetterState{Empty, TBD, Correct, Present, Absent} {
		parsed, ok := ParseLetterState(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "unknown", LetterState(42).String())

	_, ok := ParseLetterState("bogus")
	assert.False(t, ok)
}

func TestLetterStateRank(t *testing.T) {
	assert.Greater(t, Correct.Rank(), Present.Rank())
	assert.Greater(t, Present.Rank(), Absent.Rank())
	assert.Greater(t, Absent.Rank(), Empty.Rank())
	assert.Equal(t, Empty.Rank(), TBD.Rank())

	assert.True(t, Absent.Scored())
	assert.False(t, TBD.Scored())
}
