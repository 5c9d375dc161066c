package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kinderwordle/internal/core"
	"github.com/vovakirdan/kinderwordle/internal/words"
)

// MenuItem represents a selectable word pack in the menu.
type MenuItem struct {
	PackID string
	Title  string
	Length int
	Size   int
}

// MenuModel is the Bubble Tea model for the pack picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	title     lipgloss.Style
	quitting  bool
	selected  *MenuItem // Set when user selects a pack
	openStats bool      // True if user pressed Tab for statistics
}

// NewMenuModel creates a menu of every registered pack with the cursor on
// current.
func NewMenuModel(cfg core.RuntimeConfig, current string, r *lipgloss.Renderer) MenuModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	packs := words.List()
	items := make([]MenuItem, 0, len(packs))
	cursor := 0
	for i, p := range packs {
		if p.ID == current {
			cursor = i
		}
		items = append(items, MenuItem{
			PackID: p.ID,
			Title:  p.Name,
			Length: p.Length,
			Size:   p.Size,
		})
	}

	return MenuModel{
		items:     items,
		cursor:    cursor,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit // Exit menu to show statistics
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title.Render("K I N D E R W O R D L E"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a word pack", width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No word packs installed.", width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-20s %d letters, %d words", cursor, item.Title, item.Length, item.Size)
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Stats  |  Q: Quit"
	b.WriteString(centerText(controls, width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if user requested statistics.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	PackID     string
	Config     core.RuntimeConfig
	WantsStats bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, current string) (MenuResult, error) {
	model := NewMenuModel(cfg, current, nil)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsStats() {
		result.WantsStats = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.PackID = m.Selected().PackID
	} else {
		result.Quit = true
	}

	return result, nil
}
