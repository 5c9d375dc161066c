// Package tui provides the Bubble Tea front end for Kinderwordle.
// It handles the terminal UI loop, input mapping, persistence of the game in
// progress and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kinderwordle/internal/game"
)

// resultTimerMsg is sent when a result display timer runs out. Timer IDs are
// only unique per machine, so the message carries its machine.
type resultTimerMsg struct {
	machine *game.Machine
	id      uint64
}

// resultTimerCmd returns a command that hands the timer back after its delay.
func resultTimerCmd(machine *game.Machine, t game.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return resultTimerMsg{machine: machine, id: t.ID}
	})
}
