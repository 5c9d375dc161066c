package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kinderwordle/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game input. Keys that mean nothing to
// the game map to the zero Input.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	switch msg.String() {
	case "ctrl+c":
		return core.Press(core.ActionQuit)
	case "enter":
		return core.Press(core.ActionSubmit)
	case "backspace":
		return core.Press(core.ActionErase)
	case "ctrl+n":
		return core.Press(core.ActionNewGame)
	case "tab":
		return core.Press(core.ActionStats)
	case "esc":
		return core.Press(core.ActionBack)
	}

	// Plain letters only: chords with alt and pasted text are ignored.
	if msg.Type != tea.KeyRunes || msg.Alt || msg.Paste || len(msg.Runes) != 1 {
		return core.Input{}
	}
	r := unicode.ToLower(msg.Runes[0])
	if r < 'a' || r > 'z' {
		return core.Input{}
	}
	return core.Letter(r)
}

// GameKeyMap describes the game bindings for the help bar.
type GameKeyMap struct {
	Letters key.Binding
	Submit  key.Binding
	Erase   key.Binding
	NewGame key.Binding
	Stats   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Letters, k.Submit, k.Erase, k.NewGame, k.Stats, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Letters, k.Submit, k.Erase},
		{k.NewGame, k.Stats, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the bindings MapKey implements.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Letters: key.NewBinding(
			key.WithKeys("a", "z"),
			key.WithHelp("a-z", "type"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "guess"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "erase"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new word"),
		),
		Stats: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "stats"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionStats
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionStats
	}

	return MenuActionNone
}
