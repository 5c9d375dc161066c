package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform layer maps keys to actions; the game only sees actions.
type Action int

const (
	ActionNone    Action = iota
	ActionLetter         // a-z - append a letter to the current attempt
	ActionErase          // Backspace - remove the last letter
	ActionSubmit         // Enter - submit the current attempt
	ActionNewGame        // Ctrl+N - abandon the game and pick a new secret
	ActionStats          // Tab - show statistics
	ActionBack           // Escape - go back to menu
	ActionQuit           // Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLetter:
		return "Letter"
	case ActionErase:
		return "Erase"
	case ActionSubmit:
		return "Submit"
	case ActionNewGame:
		return "NewGame"
	case ActionStats:
		return "Stats"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is a single input event delivered to the game.
// Letter is only meaningful for ActionLetter.
type Input struct {
	Action Action
	Letter rune
}

// Letter returns a letter input.
func Letter(r rune) Input {
	return Input{Action: ActionLetter, Letter: r}
}

// Press returns an input for a non-letter action.
func Press(a Action) Input {
	return Input{Action: a}
}

// IsZero reports whether the input carries no action.
func (in Input) IsZero() bool {
	return in.Action == ActionNone
}

func (in Input) String() string {
	if in.Action == ActionLetter {
		return "Letter(" + string(in.Letter) + ")"
	}
	return in.Action.String()
}
