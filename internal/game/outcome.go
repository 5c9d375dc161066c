package game

import (
	"errors"
	"strings"
)

// Outcome is the result of a submission.
type Outcome int

const (
	OutcomeNone         Outcome = iota
	OutcomeInsufficient         // fewer letters than the secret
	OutcomeUnrecognized         // not a word of the active pack
	OutcomeWin
	OutcomeContinue
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInsufficient:
		return "insufficient"
	case OutcomeUnrecognized:
		return "unrecognized"
	case OutcomeWin:
		return "win"
	case OutcomeContinue:
		return "continue"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// IsError reports whether the submission was rejected.
// Rejected submissions never change the history.
func (o Outcome) IsError() bool {
	return o == OutcomeInsufficient || o == OutcomeUnrecognized
}

// Ends reports whether the outcome finishes the game.
func (o Outcome) Ends() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

var (
	ErrInsufficientLength = errors.New("game: not enough letters")
	ErrExcessLength       = errors.New("game: too many letters")
	ErrNotInWordList      = errors.New("game: not in word list")
	ErrNotPlaying         = errors.New("game: not accepting input")
	ErrInvalidSnapshot    = errors.New("game: invalid snapshot")
)

// Err returns the sentinel error for a rejected submission, or nil.
func (o Outcome) Err() error {
	switch o {
	case OutcomeInsufficient:
		return ErrInsufficientLength
	case OutcomeUnrecognized:
		return ErrNotInWordList
	default:
		return nil
	}
}

var winMessages = []string{
	"WOW!!!!!",
	"Impressive",
	"You rock",
	"Well done",
	"Got it",
	"Phew!!!",
}

// Message returns the toast shown for the outcome.
// attempts is the number of submitted attempts including this one.
func (o Outcome) Message(secret string, attempts int) string {
	switch o {
	case OutcomeInsufficient:
		return "Not enough letters"
	case OutcomeUnrecognized:
		return "Not in word list"
	case OutcomeLoss:
		return "Better luck next time: " + strings.ToUpper(secret)
	case OutcomeWin:
		i := attempts - 1
		if i < 0 {
			i = 0
		}
		if i >= len(winMessages) {
			i = len(winMessages) - 1
		}
		return winMessages[i]
	default:
		return ""
	}
}
