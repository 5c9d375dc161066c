package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionLetter, "Letter"},
		{ActionErase, "Erase"},
		{ActionSubmit, "Submit"},
		{ActionNewGame, "NewGame"},
		{ActionStats, "Stats"},
		{ActionBack, "Back"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestInputConstructors(t *testing.T) {
	in := Letter('h')
	if in.Action != ActionLetter || in.Letter != 'h' {
		t.Errorf("Letter('h') = %+v", in)
	}
	if in.String() != "Letter(h)" {
		t.Errorf("Letter('h').String() = %q", in.String())
	}

	sub := Press(ActionSubmit)
	if sub.Action != ActionSubmit || sub.Letter != 0 {
		t.Errorf("Press(ActionSubmit) = %+v", sub)
	}
	if sub.IsZero() {
		t.Error("Press(ActionSubmit).IsZero() = true, want false")
	}
	if !(Input{}).IsZero() {
		t.Error("Input{}.IsZero() = false, want true")
	}
}
