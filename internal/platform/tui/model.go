package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kinderwordle/internal/core"
	"github.com/vovakirdan/kinderwordle/internal/game"
	"github.com/vovakirdan/kinderwordle/internal/storage"
)

// Store is the persistence the game screen needs. *storage.Store satisfies it.
type Store interface {
	PersistAll(namespace string, values map[string]any) error
	Restore(namespace, key string, dst any) (bool, error)
	SaveResult(r storage.Result) (int64, error)
}

// ModelOptions configures a game Model.
type ModelOptions struct {
	// Namespace separates players sharing one database.
	Namespace string
	Logger    *log.Logger
	Renderer  *lipgloss.Renderer

	// Embedded models leave the program running on esc and tab so that a
	// parent model can switch screens.
	Embedded bool
	Config   core.RuntimeConfig
}

type restoredMsg struct {
	machine  *game.Machine
	snapshot game.Snapshot
	found    bool
	err      error
}

type persistedMsg struct {
	err error
}

type recordedMsg struct {
	err error
}

// saveQueue drops snapshot writes that finish after a newer one was written.
type saveQueue struct {
	mu      sync.Mutex
	issued  uint64
	written uint64
}

func (q *saveQueue) ticket() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.issued++
	return q.issued
}

func (q *saveQueue) write(ticket uint64, save func() error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if ticket <= q.written {
		return nil
	}
	q.written = ticket
	return save()
}

// Model is the Bubble Tea model for one Kinderwordle game screen.
type Model struct {
	machine   *game.Machine
	store     Store
	opts      ModelOptions
	logger    *log.Logger
	keyMapper *KeyMapper
	keys      GameKeyMap
	help      help.Model
	styles    styles
	saves     *saveQueue

	recorded   bool // Whether the finished game has been saved to results
	quitting   bool
	backToMenu bool
	wantsStats bool
}

// NewModel creates a game screen around machine. store may be nil, in which
// case nothing is persisted.
func NewModel(machine *game.Machine, store Store, opts ModelOptions) Model {
	if opts.Namespace == "" {
		opts.Namespace = storage.LocalNamespace
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = opts.Config.ScreenW

	return Model{
		machine:   machine,
		store:     store,
		opts:      opts,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		keys:      DefaultGameKeyMap(),
		help:      h,
		styles:    newStyles(opts.Renderer),
		saves:     &saveQueue{},
	}
}

// Init restores the saved game, if any. A machine that already holds a game
// is resumed as is.
func (m Model) Init() tea.Cmd {
	if m.machine.Status() != game.StatusLoading {
		if t, ok := m.machine.PendingTimer(); ok {
			return resultTimerCmd(m.machine, t)
		}
		return nil
	}
	return restoreCmd(m.machine, m.store, m.stateNamespace())
}

// GameNamespace is where the game in progress of a player is kept for one
// pack.
func GameNamespace(namespace, packID string) string {
	return namespace + "/" + packID
}

func (m Model) stateNamespace() string {
	return GameNamespace(m.opts.Namespace, m.machine.PackID())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Config.ScreenW = msg.Width
		m.opts.Config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case restoredMsg:
		if msg.machine != m.machine {
			return m, nil
		}
		return m.handleRestored(msg)

	case resultTimerMsg:
		if msg.machine == m.machine {
			m.machine.Expire(msg.id)
		}
		return m, nil

	case persistedMsg:
		if msg.err != nil {
			m.logger.Warn("could not save game", "namespace", m.opts.Namespace, "error", msg.err)
		}
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.logger.Warn("could not record result", "namespace", m.opts.Namespace, "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleRestored resumes the saved game or starts a fresh one.
func (m Model) handleRestored(msg restoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("could not load saved game", "namespace", m.opts.Namespace, "error", msg.err)
	}

	if msg.found {
		err := m.machine.Restore(msg.snapshot)
		if err == nil {
			m.logger.Debug("resumed game",
				"game", m.machine.GameID(),
				"attempts", len(m.machine.History()),
				"status", m.machine.Status(),
			)
			// A game finished in an earlier run may not have been recorded.
			cmd := m.recordIfFinished()
			return m, cmd
		}
		m.logger.Warn("discarding saved game", "error", err)
	}

	return m.startGame()
}

func (m Model) startGame() (tea.Model, tea.Cmd) {
	if err := m.machine.NewGame(); err != nil {
		m.logger.Error("could not start game", "pack", m.machine.PackID(), "error", err)
		m.quitting = true
		return m, tea.Quit
	}
	m.recorded = false
	m.logger.Debug("new game", "game", m.machine.GameID(), "pack", m.machine.PackID())
	return m, m.persistCmd()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)

	if in.IsZero() {
		return m, nil
	}

	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.backToMenu = true
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit

	case core.ActionStats:
		m.wantsStats = true
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit

	case core.ActionNewGame:
		return m.startGame()
	}

	outcome, err := m.machine.Handle(in)
	if err != nil && !errors.Is(err, game.ErrNotPlaying) {
		m.logger.Error("input failed", "input", in, "error", err)
	}
	if outcome == game.OutcomeNone {
		return m, nil
	}

	if rejected := outcome.Err(); rejected != nil {
		m.logger.Debug("attempt rejected", "game", m.machine.GameID(), "attempt", m.machine.Current(), "reason", rejected)
	} else {
		m.logger.Debug("submitted", "game", m.machine.GameID(), "outcome", outcome)
	}
	if outcome.Ends() {
		m.logger.Info("game over",
			"game", m.machine.GameID(),
			"pack", m.machine.PackID(),
			"won", outcome == game.OutcomeWin,
			"attempts", len(m.machine.History()),
		)
	}

	var cmds []tea.Cmd
	if t, ok := m.machine.PendingTimer(); ok {
		cmds = append(cmds, resultTimerCmd(m.machine, t))
	}
	if !outcome.IsError() {
		cmds = append(cmds, m.persistCmd(), m.recordIfFinished())
	}
	return m, tea.Batch(cmds...)
}

// recordIfFinished saves the result of a finished game once.
func (m *Model) recordIfFinished() tea.Cmd {
	if m.recorded || !m.machine.Finished() {
		return nil
	}
	m.recorded = true

	if m.store == nil {
		return nil
	}
	store := m.store
	result := storage.Result{
		GameID:    m.machine.GameID(),
		Namespace: m.opts.Namespace,
		PackID:    m.machine.PackID(),
		Secret:    m.machine.Secret(),
		Attempts:  len(m.machine.History()),
		Won:       m.machine.Won(),
	}
	return func() tea.Msg {
		_, err := store.SaveResult(result)
		return recordedMsg{err: err}
	}
}

// persistCmd writes the game to the store.
func (m Model) persistCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	ns := m.stateNamespace()
	snap := m.machine.Snapshot()
	saves, ticket := m.saves, m.saves.ticket()
	return func() tea.Msg {
		err := saves.write(ticket, func() error {
			return saveSnapshot(store, ns, snap)
		})
		return persistedMsg{err: err}
	}
}

func restoreCmd(machine *game.Machine, store Store, ns string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return restoredMsg{machine: machine}
		}
		snap, found, err := loadSnapshot(store, ns)
		return restoredMsg{machine: machine, snapshot: snap, found: found, err: err}
	}
}

func saveSnapshot(store Store, ns string, snap game.Snapshot) error {
	return store.PersistAll(ns, map[string]any{
		storage.KeyGameID:  snap.GameID,
		storage.KeyPack:    snap.PackID,
		storage.KeySecret:  snap.Secret,
		storage.KeyHistory: snap.History,
	})
}

// loadSnapshot reports found only when a secret was stored.
func loadSnapshot(store Store, ns string) (game.Snapshot, bool, error) {
	var snap game.Snapshot

	found, err := store.Restore(ns, storage.KeySecret, &snap.Secret)
	if err != nil || !found {
		return snap, false, err
	}

	var errs []error
	if _, err := store.Restore(ns, storage.KeyHistory, &snap.History); err != nil {
		errs = append(errs, err)
	}
	if _, err := store.Restore(ns, storage.KeyGameID, &snap.GameID); err != nil {
		errs = append(errs, err)
	}
	if _, err := store.Restore(ns, storage.KeyPack, &snap.PackID); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return snap, false, err
	}
	return snap, true, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.opts.Config.ScreenW
	if m.machine.Status() == game.StatusLoading {
		return centerText("\nLoading...", width)
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.title.Render("K I N D E R W O R D L E"), width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.toast(), width))
	b.WriteString("\n\n")

	winningRow := -1
	if m.machine.Won() {
		winningRow = len(m.machine.History()) - 1
	}
	b.WriteString(centerText(m.styles.renderBoard(m.machine.Rows(), winningRow), width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.styles.renderKeyboard(m.machine.Keyboard(), m.machine.Finished()), width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.styles.help.Render(m.help.View(m.keys)), width))
	b.WriteString("\n")

	return b.String()
}

// toast returns the message line: the result on display, or a reminder once
// the game is over.
func (m Model) toast() string {
	if msg := m.machine.Message(); msg != "" {
		return m.styles.toast.Render(msg)
	}
	switch m.machine.Status() {
	case game.StatusWon:
		return m.styles.help.Render(fmt.Sprintf("Solved in %d. ctrl+n for a new word", len(m.machine.History())))
	case game.StatusLost:
		return m.styles.help.Render("The word was " + strings.ToUpper(m.machine.Secret()) + ". ctrl+n for a new word")
	}
	return " "
}

// ClearRequests returns the model with its screen switch requests reset, for
// a parent model showing it again.
func (m Model) ClearRequests() Model {
	m.backToMenu = false
	m.wantsStats = false
	return m
}

// Machine returns the game behind the screen.
func (m Model) Machine() *game.Machine {
	return m.machine
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// WantsStats returns true if user requested the statistics screen.
func (m Model) WantsStats() bool {
	return m.wantsStats
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.opts.Config
}

// RunResult tells the caller where to go after a game screen closes.
type RunResult struct {
	Config     core.RuntimeConfig
	BackToMenu bool
	WantsStats bool
}

// Run starts a Bubble Tea program for machine and blocks until it exits.
func Run(machine *game.Machine, store Store, opts ModelOptions) (RunResult, error) {
	opts.Embedded = false
	model := NewModel(machine, store, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Config: opts.Config}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{Config: opts.Config}, nil
	}
	return RunResult{
		Config:     m.Config(),
		BackToMenu: m.BackToMenu(),
		WantsStats: m.WantsStats(),
	}, nil
}
