package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kinderwordle/internal/game"
	"github.com/vovakirdan/kinderwordle/internal/scoring"
)

// Keyboard layout. The last row is framed by the submit and erase keys.
var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// styles holds every lipgloss style of the game screen. Styles are bound to
// a renderer so that SSH sessions get the color profile of their client.
type styles struct {
	title   lipgloss.Style
	toast   lipgloss.Style
	help    lipgloss.Style
	tiles   map[scoring.LetterState]lipgloss.Style
	keys    map[scoring.LetterState]lipgloss.Style
	faded   lipgloss.Style
	winning lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	tile := r.NewStyle().Bold(true).Padding(0, 1)
	keyStyle := r.NewStyle().Padding(0, 1)

	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")),
		toast: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("255")).
			Padding(0, 1),
		help: r.NewStyle().
			Foreground(lipgloss.Color("241")),
		tiles: map[scoring.LetterState]lipgloss.Style{
			scoring.Empty:   tile.Foreground(lipgloss.Color("238")),
			scoring.TBD:     tile.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
			scoring.Correct: tile.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#6aaa64")),
			scoring.Present: tile.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#c9b458")),
			scoring.Absent:  tile.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#787c7e")),
		},
		keys: map[scoring.LetterState]lipgloss.Style{
			scoring.Empty:   keyStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("250")),
			scoring.Correct: keyStyle.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#6aaa64")),
			scoring.Present: keyStyle.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#c9b458")),
			scoring.Absent:  keyStyle.Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")),
		},
		faded:   keyStyle.Foreground(lipgloss.Color("240")),
		winning: r.NewStyle().Underline(true),
	}
}

// renderBoard draws one line per row. winningRow is underlined, -1 for none.
func (s styles) renderBoard(rows []game.Row, winningRow int) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, t := range row {
			letter := "·"
			if t.Letter != 0 {
				letter = string(unicode.ToUpper(t.Letter))
			}
			cells[j] = s.tiles[t.State].Render(letter)
		}
		line := strings.Join(cells, " ")
		if i == winningRow {
			line = s.winning.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n\n")
}

// renderKeyboard draws the on-screen keyboard colored with the aggregate
// letter states. A faded keyboard marks a finished game.
func (s styles) renderKeyboard(states map[rune]scoring.LetterState, faded bool) string {
	keyFor := func(label string, state scoring.LetterState) string {
		if faded {
			return s.faded.Render(label)
		}
		if !state.Scored() {
			state = scoring.Empty
		}
		return s.keys[state].Render(label)
	}

	lines := make([]string, len(keyboardRows))
	for i, row := range keyboardRows {
		var keys []string
		if i == len(keyboardRows)-1 {
			keys = append(keys, keyFor("ENTER", scoring.Empty))
		}
		for _, r := range row {
			keys = append(keys, keyFor(string(unicode.ToUpper(r)), states[r]))
		}
		if i == len(keyboardRows)-1 {
			keys = append(keys, keyFor("⌫", scoring.Empty))
		}
		lines[i] = strings.Join(keys, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
