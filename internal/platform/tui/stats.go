package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kinderwordle/internal/storage"
)

// Stats layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show namespace sidebar
	sidebarWidth       = 20 // Width of namespace sidebar
	maxRecent          = 50 // Max finished games to load
	distributionBar    = 24 // Width of the longest distribution bar
)

// StatsSource is what the statistics screen reads. *storage.Store satisfies it.
type StatsSource interface {
	Stats(namespace string) (*storage.Stats, error)
	RecentResults(namespace string, limit int) ([]storage.Result, error)
	Namespaces() ([]string, error)
}

// StatsKeyMap defines the key bindings for the statistics screen.
type StatsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	NextNS key.Binding
	PrevNS key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextNS, k.PrevNS, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextNS, k.PrevNS},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextNS: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next player"),
		),
		PrevNS: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev player"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the statistics screen.
type StatsModel struct {
	source      StatsSource
	namespaces  []string
	nsCursor    int
	stats       *storage.Stats
	results     []storage.Result
	err         error
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool

	// fixed limits the screen to the namespace it was opened with.
	fixed bool
}

// NewStatsModel creates a statistics screen opened on namespace. A fixed
// screen never shows other namespaces, which SSH players must not see.
func NewStatsModel(source StatsSource, namespace string, fixed bool, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		source:      source,
		keys:        DefaultStatsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: !fixed && width >= minWidthForSidebar,
		fixed:       fixed,
	}

	m.namespaces = []string{namespace}
	if !fixed && source != nil {
		if all, err := source.Namespaces(); err == nil {
			if !slices.Contains(all, namespace) {
				all = append(all, namespace)
				slices.Sort(all)
			}
			m.namespaces = all
			m.nsCursor = slices.Index(all, namespace)
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Pack", Width: 10},
		{Title: "Word", Width: 8},
		{Title: "Tries", Width: 6},
		{Title: "Result", Width: 6},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth > 60 {
		columns[1].Width = min(tableWidth-40, 16)
	}

	// Leave room for title, summary, distribution and help
	height := m.height - 18
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads statistics for the selected namespace.
func (m *StatsModel) load() {
	m.stats, m.results, m.err = nil, nil, nil
	if m.source != nil && len(m.namespaces) > 0 {
		ns := m.namespaces[m.nsCursor]
		m.stats, m.err = m.source.Stats(ns)
		if m.err == nil {
			m.results, m.err = m.source.RecentResults(ns, maxRecent)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded results.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.PackID,
			strings.ToUpper(r.Secret),
			fmt.Sprintf("%d", r.Attempts),
			outcome,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the statistics model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextNS):
			if len(m.namespaces) > 1 {
				m.nsCursor = (m.nsCursor + 1) % len(m.namespaces)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevNS):
			if len(m.namespaces) > 1 {
				m.nsCursor--
				if m.nsCursor < 0 {
					m.nsCursor = len(m.namespaces) - 1
				}
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = !m.fixed && m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the statistics screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "STATISTICS"
	if len(m.namespaces) > 0 {
		title = fmt.Sprintf("STATISTICS - %s", m.namespaces[m.nsCursor])
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the statistics with a sidebar of namespaces.
func (m StatsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Players\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, ns := range m.namespaces {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.nsCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := ns
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		panelStyle.Render(m.renderContent()),
	)
}

// renderNarrowLayout renders the statistics with the namespace name above.
func (m StatsModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.namespaces) > 1 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.namespaces[m.nsCursor]), m.width))
		b.WriteString("\n\n")
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(panelStyle.Render(m.renderContent()), m.width))
	return b.String()
}

// renderContent renders the summary, the distribution and the table.
func (m StatsModel) renderContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Statistics unavailable:\n" + m.err.Error())
	}
	if m.stats == nil || m.stats.Played == 0 {
		return emptyStyle.Render("No games finished yet.\nSolve a word to start a streak!")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderSummary(m.stats),
		"",
		renderDistribution(m.stats),
		"",
		m.table.View(),
	)
}

// renderSummary renders the played / win % / streak counters.
func renderSummary(st *storage.Stats) string {
	numStyle := lipgloss.NewStyle().Bold(true).Width(10).Align(lipgloss.Center)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10).Align(lipgloss.Center)

	cells := []struct {
		value int
		label string
	}{
		{st.Played, "Played"},
		{st.WinRate(), "Win %"},
		{st.CurrentStreak, "Streak"},
		{st.MaxStreak, "Best"},
	}

	cols := make([]string, len(cells))
	for i, c := range cells {
		cols[i] = lipgloss.JoinVertical(lipgloss.Center,
			numStyle.Render(fmt.Sprintf("%d", c.value)),
			labelStyle.Render(c.label),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderDistribution renders one bar per attempt count that won a game.
func renderDistribution(st *storage.Stats) string {
	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("#6aaa64"))

	counts := make([]int, 0, len(st.Distribution))
	for attempts := range st.Distribution {
		counts = append(counts, attempts)
	}
	slices.Sort(counts)

	maxCount := 0
	for _, n := range st.Distribution {
		maxCount = max(maxCount, n)
	}

	lines := []string{"Guess distribution"}
	for _, attempts := range counts {
		n := st.Distribution[attempts]
		width := 1
		if maxCount > 0 {
			width = max(1, n*distributionBar/maxCount)
		}
		label := fmt.Sprintf("%d", n)
		bar := barStyle.Render(fmt.Sprintf("%*s", width, label))
		lines = append(lines, fmt.Sprintf("%2d %s", attempts, bar))
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the statistics screen.
// Returns true if user wants to go back, false if quitting.
func RunStats(source StatsSource, namespace string, width, height int) (goBack bool, err error) {
	model := NewStatsModel(source, namespace, false, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
