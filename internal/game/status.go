package game

import (
	"context"

	"github.com/looplab/fsm"
)

// Status is the lifecycle state of a game session.
type Status string

const (
	StatusLoading       Status = "loading"        // no secret established yet
	StatusInProgress    Status = "in-progress"    // accepting input
	StatusShowingResult Status = "showing-result" // a result is on screen, input dropped
	StatusWon           Status = "won"
	StatusLost          Status = "lost"
)

// Over reports whether the status is terminal.
func (s Status) Over() bool {
	return s == StatusWon || s == StatusLost
}

const (
	eventReady  = "ready"
	eventSubmit = "submit"
	eventResume = "resume"
	eventWin    = "win"
	eventLose   = "lose"
	eventReset  = "reset"
)

func statusEvents() fsm.Events {
	return fsm.Events{
		{Name: eventReady, Src: []string{string(StatusLoading)}, Dst: string(StatusInProgress)},
		{Name: eventSubmit, Src: []string{string(StatusInProgress)}, Dst: string(StatusShowingResult)},
		{Name: eventResume, Src: []string{string(StatusShowingResult)}, Dst: string(StatusInProgress)},

		// From loading only when a restored game was already over.
		{Name: eventWin, Src: []string{string(StatusShowingResult), string(StatusLoading)}, Dst: string(StatusWon)},
		{Name: eventLose, Src: []string{string(StatusShowingResult), string(StatusLoading)}, Dst: string(StatusLost)},

		{Name: eventReset, Src: []string{
			string(StatusInProgress),
			string(StatusShowingResult),
			string(StatusWon),
			string(StatusLost),
		}, Dst: string(StatusLoading)},
	}
}

func statusCallbacks(m *Machine) fsm.Callbacks {
	return fsm.Callbacks{
		"enter_" + string(StatusLoading): func(_ context.Context, _ *fsm.Event) {
			m.cancelTimer()
			m.clear()
		},
		"leave_" + string(StatusShowingResult): func(_ context.Context, _ *fsm.Event) {
			m.cancelTimer()
		},
	}
}
