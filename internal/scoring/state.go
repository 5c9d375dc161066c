// Package scoring classifies the letters of word attempts against a secret.
//
// Everything here is a pure function of its arguments: boards and keyboards
// are re-derived from the secret and the submitted history on every render.
package scoring

// LetterState is the classification of a single letter, either at a board
// position or aggregated over the whole history for the keyboard.
type LetterState int

const (
	Empty   LetterState = iota // nothing to show (unattempted, out of range)
	TBD                        // typed into the current row, not yet submitted
	Correct                    // right letter, right position
	Present                    // in the secret, credited elsewhere
	Absent                     // not in the secret, or all occurrences already credited
)

var stateNames = map[LetterState]string{
	Empty:   "empty",
	TBD:     "tbd",
	Correct: "correct",
	Present: "present",
	Absent:  "absent",
}

func (s LetterState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseLetterState is the inverse of String.
func ParseLetterState(name string) (LetterState, bool) {
	for s, n := range stateNames {
		if n == name {
			return s, true
		}
	}
	return Empty, false
}

// Rank orders states by how much they reveal about the secret.
// Correct > Present > Absent > TBD = Empty.
func (s LetterState) Rank() int {
	switch s {
	case Correct:
		return 3
	case Present:
		return 2
	case Absent:
		return 1
	default:
		return 0
	}
}

// Scored reports whether the state is the result of scoring a submitted letter.
func (s LetterState) Scored() bool {
	return s == Correct || s == Present || s == Absent
}
