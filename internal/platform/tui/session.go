package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kinderwordle/internal/config"
	"github.com/vovakirdan/kinderwordle/internal/core"
	"github.com/vovakirdan/kinderwordle/internal/game"
	"github.com/vovakirdan/kinderwordle/internal/words"
)

// SessionStore is everything a session reads and writes.
type SessionStore interface {
	Store
	StatsSource
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Game      config.Config
	Namespace string
	Renderer  *lipgloss.Renderer
	Logger    *log.Logger
	Config    core.RuntimeConfig
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeGame
	modeStats
)

// SessionModel manages one player's flow: menu -> game -> stats and back.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store     SessionStore
	opts      SessionOptions
	logger    *log.Logger
	mode      sessionMode
	statsFrom sessionMode
	menu      MenuModel
	game      *Model
	stats     StatsModel
	machines  map[string]*game.Machine // one per pack, kept across menu visits
	quitting  bool
}

// NewSessionModel creates a new session model. store may be nil.
func NewSessionModel(store SessionStore, opts SessionOptions) SessionModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Game.Rules.Pack == "" {
		opts.Game.Rules.Pack = words.DefaultPack
	}

	return SessionModel{
		store:    store,
		opts:     opts,
		logger:   logger,
		menu:     NewMenuModel(opts.Config, opts.Game.Rules.Pack, opts.Renderer),
		machines: make(map[string]*game.Machine),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Config.ScreenW = msg.Width
		m.opts.Config.ScreenH = msg.Height
		if m.game != nil {
			m.forwardToGame(msg)
		}
		switch m.mode {
		case modeStats:
			return m.updateStats(msg)
		case modeMenu:
			return m.updateMenu(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeGame:
			return m.updateGame(msg)
		case modeStats:
			return m.updateStats(msg)
		}
		return m.updateMenu(msg)
	}

	// Timers and storage results belong to the game whatever is on screen.
	if m.game != nil {
		cmd := m.forwardToGame(msg)
		if m.game.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

// forwardToGame updates the game model in place.
func (m *SessionModel) forwardToGame(msg tea.Msg) tea.Cmd {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}
	return cmd
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.WantsStats() {
		return m.openStats(modeMenu)
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.openGame(selected.PackID)
	}

	return m, cmd
}

// openGame switches to the game screen for pack, resuming the machine this
// session already has for it.
func (m SessionModel) openGame(packID string) (tea.Model, tea.Cmd) {
	machine, ok := m.machines[packID]
	if !ok {
		pack, err := words.Get(packID)
		if err != nil {
			// Shouldn't happen since menu only shows registered packs
			m.logger.Error("unknown pack", "pack", packID, "error", err)
			m.menu = NewMenuModel(m.opts.Config, m.opts.Game.Rules.Pack, m.opts.Renderer)
			return m, nil
		}
		cfg := m.opts.Game
		cfg.Rules.Pack = packID
		machine = game.New(pack, cfg.GameOptions(m.opts.Config.Seed))
		m.machines[packID] = machine
	}

	var store Store
	if m.store != nil {
		store = m.store
	}
	gm := NewModel(machine, store, ModelOptions{
		Namespace: m.opts.Namespace,
		Logger:    m.logger,
		Renderer:  m.opts.Renderer,
		Embedded:  true,
		Config:    m.opts.Config,
	})
	m.game = &gm
	m.mode = modeGame
	return m, m.game.Init()
}

// updateGame handles key presses when in game mode.
func (m SessionModel) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.forwardToGame(msg)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.WantsStats() {
		cleared := m.game.ClearRequests()
		m.game = &cleared
		return m.openStats(modeGame)
	}

	if m.game.BackToMenu() {
		cleared := m.game.ClearRequests()
		m.game = &cleared
		m.mode = modeMenu
		m.menu = NewMenuModel(m.opts.Config, m.game.Machine().PackID(), m.opts.Renderer)
		return m, tea.Batch(cmd, m.menu.Init())
	}

	return m, cmd
}

// openStats shows this player's statistics. SSH players only see their own.
func (m SessionModel) openStats(from sessionMode) (tea.Model, tea.Cmd) {
	var source StatsSource
	if m.store != nil {
		source = m.store
	}
	m.stats = NewStatsModel(source, m.opts.Namespace, true, m.opts.Config.ScreenW, m.opts.Config.ScreenH)
	m.statsFrom = from
	m.mode = modeStats
	return m, m.stats.Init()
}

// updateStats handles updates when in stats mode.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	if statsModel, ok := next.(StatsModel); ok {
		m.stats = statsModel
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The stats screen quits its program on back; swallow that here.
	if m.stats.IsGoingBack() {
		if m.statsFrom == modeGame && m.game != nil {
			m.mode = modeGame
			return m, nil
		}
		m.mode = modeMenu
		m.menu = NewMenuModel(m.opts.Config, m.opts.Game.Rules.Pack, m.opts.Renderer)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		if m.game != nil {
			return m.game.View()
		}
	case modeStats:
		return m.stats.View()
	}
	return m.menu.View()
}
