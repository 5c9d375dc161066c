package tui

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kinderwordle/internal/config"
	"github.com/vovakirdan/kinderwordle/internal/core"
	"github.com/vovakirdan/kinderwordle/internal/game"
	"github.com/vovakirdan/kinderwordle/internal/storage"
	"github.com/vovakirdan/kinderwordle/internal/words"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestMachine(t *testing.T) *game.Machine {
	t.Helper()
	pack, err := words.Get(words.DefaultPack)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	return game.New(pack, game.Options{
		ResultDisplay: time.Millisecond,
		Seed:          7,
		PackID:        pack.ID,
	})
}

// drain runs cmd and every command it leads to, feeding messages back into m.
func drain[M tea.Model](t *testing.T, m M, cmd tea.Cmd) M {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		next, more := m.Update(msg)
		m = next.(M)
		queue = append(queue, more)
	}
	return m
}

// press sends key messages one by one and drains what they trigger.
func press[M tea.Model](t *testing.T, m M, keys ...tea.KeyMsg) M {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drain(t, next.(M), cmd)
	}
	return m
}

func typeWord(word string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(word)+1)
	for _, r := range word {
		keys = append(keys, runeKey(r))
	}
	return append(keys, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModelLoadingView(t *testing.T) {
	m := NewModel(newTestMachine(t), nil, ModelOptions{Config: core.DefaultConfig()})
	if !strings.Contains(m.View(), "Loading") {
		t.Errorf("View() before restore should show Loading, got %q", m.View())
	}
}

func TestModelStartsWithoutStore(t *testing.T) {
	m := NewModel(newTestMachine(t), nil, ModelOptions{Config: core.DefaultConfig()})
	m = drain(t, m, m.Init())

	machine := m.Machine()
	if machine.Status() != game.StatusInProgress {
		t.Fatalf("Status() = %v, want in-progress", machine.Status())
	}
	if !words.Exists(machine.PackID()) || machine.Secret() == "" {
		t.Errorf("no secret drawn: %q", machine.Secret())
	}
	if !strings.Contains(m.View(), "K I N D E R W O R D L E") {
		t.Error("View() is missing the title")
	}
}

func TestModelPlaysAndPersists(t *testing.T) {
	store := openTestStore(t)
	ns := GameNamespace(storage.LocalNamespace, words.DefaultPack)

	saved := game.Snapshot{GameID: "g1", PackID: words.DefaultPack, Secret: "ride"}
	if err := saveSnapshot(store, ns, saved); err != nil {
		t.Fatalf("saveSnapshot() failed: %v", err)
	}

	m := NewModel(newTestMachine(t), store, ModelOptions{Config: core.DefaultConfig()})
	m = drain(t, m, m.Init())

	machine := m.Machine()
	if machine.Secret() != "ride" || machine.GameID() != "g1" {
		t.Fatalf("restored %q/%q, want ride/g1", machine.Secret(), machine.GameID())
	}

	// A short word is rejected but stays in the row
	m = press(t, m, runeKey('r'), runeKey('i'), runeKey('d'))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !strings.Contains(m.View(), "Not enough letters") {
		t.Error("View() should show the insufficient length toast")
	}
	m = drain(t, m, cmd)
	if machine.Status() != game.StatusInProgress || machine.Current() != "rid" {
		t.Fatalf("after toast: status %v, current %q", machine.Status(), machine.Current())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})

	m = press(t, m, typeWord("here")...)
	if machine.Status() != game.StatusInProgress {
		t.Fatalf("Status() = %v, want in-progress after the timer", machine.Status())
	}

	got, found, err := loadSnapshot(store, ns)
	if err != nil || !found {
		t.Fatalf("loadSnapshot() = %v, %v", found, err)
	}
	if len(got.History) != 1 || got.History[0] != "here" {
		t.Errorf("persisted history = %v, want [here]", got.History)
	}

	m = press(t, m, typeWord("ride")...)
	if machine.Status() != game.StatusWon {
		t.Fatalf("Status() = %v, want won", machine.Status())
	}
	if !strings.Contains(m.View(), "Solved in 2") {
		t.Error("View() should tell the game was solved")
	}

	results, err := store.RecentResults(storage.LocalNamespace, 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 || !results[0].Won || results[0].Attempts != 2 || results[0].GameID != "g1" {
		t.Fatalf("results = %+v", results)
	}

	// Letters are ignored once the game is over
	m = press(t, m, runeKey('a'))
	if machine.Current() != "" {
		t.Errorf("Current() = %q after game over", machine.Current())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if machine.GameID() == "g1" || len(machine.History()) != 0 {
		t.Fatalf("ctrl+n did not start a new game: %q %v", machine.GameID(), machine.History())
	}
	got, _, _ = loadSnapshot(store, ns)
	if got.GameID != machine.GameID() || got.Secret != machine.Secret() {
		t.Errorf("new game not persisted: %+v", got)
	}
	_ = m
}

func TestModelRecordsRestoredFinishedGame(t *testing.T) {
	store := openTestStore(t)
	ns := GameNamespace(storage.LocalNamespace, words.DefaultPack)

	saved := game.Snapshot{
		GameID:  "lost-1",
		PackID:  words.DefaultPack,
		Secret:  "ride",
		History: []string{"here", "help", "when", "here", "help", "when"},
	}
	if err := saveSnapshot(store, ns, saved); err != nil {
		t.Fatalf("saveSnapshot() failed: %v", err)
	}

	m := NewModel(newTestMachine(t), store, ModelOptions{Config: core.DefaultConfig()})
	m = drain(t, m, m.Init())

	if m.Machine().Status() != game.StatusLost {
		t.Fatalf("Status() = %v, want lost", m.Machine().Status())
	}
	if !strings.Contains(m.View(), "RIDE") {
		t.Error("View() should reveal the secret of a lost game")
	}

	st, err := store.Stats(storage.LocalNamespace)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Played != 1 || st.Won != 0 {
		t.Errorf("Stats() = %+v, want one lost game", st)
	}
}

func TestModelDiscardsInvalidSave(t *testing.T) {
	store := openTestStore(t)
	ns := GameNamespace(storage.LocalNamespace, words.DefaultPack)

	if err := saveSnapshot(store, ns, game.Snapshot{Secret: "toolong"}); err != nil {
		t.Fatalf("saveSnapshot() failed: %v", err)
	}

	m := NewModel(newTestMachine(t), store, ModelOptions{Config: core.DefaultConfig()})
	m = drain(t, m, m.Init())

	if m.Machine().Status() != game.StatusInProgress || m.Machine().Secret() == "toolong" {
		t.Fatalf("invalid save should start a new game, got %v/%q", m.Machine().Status(), m.Machine().Secret())
	}
	got, _, _ := loadSnapshot(store, ns)
	if got.Secret != m.Machine().Secret() {
		t.Errorf("replacement game not persisted: %+v", got)
	}
}

// brokenStore fails every call.
type brokenStore struct {
	persists, restores, results int
}

func (b *brokenStore) PersistAll(string, map[string]any) error {
	b.persists++
	return errors.New("disk full")
}

func (b *brokenStore) Restore(string, string, any) (bool, error) {
	b.restores++
	return false, errors.New("database is locked")
}

func (b *brokenStore) SaveResult(storage.Result) (int64, error) {
	b.results++
	return 0, errors.New("database is locked")
}

func TestModelToleratesStoreFailures(t *testing.T) {
	var logs bytes.Buffer
	store := &brokenStore{}
	m := NewModel(newTestMachine(t), store, ModelOptions{
		Logger: log.New(&logs),
		Config: core.DefaultConfig(),
	})
	m = drain(t, m, m.Init())

	machine := m.Machine()
	if machine.Status() != game.StatusInProgress {
		t.Fatalf("Status() = %v, want in-progress without a readable save", machine.Status())
	}
	secret := machine.Secret()

	m = press(t, m, typeWord(secret)...)
	if machine.Status() != game.StatusWon {
		t.Fatalf("Status() = %v, want won", machine.Status())
	}
	if h := machine.History(); len(h) != 1 || h[0] != secret {
		t.Errorf("History() = %v, want [%s]", h, secret)
	}
	if machine.Secret() != secret {
		t.Errorf("Secret() = %q, want %q", machine.Secret(), secret)
	}

	if store.restores == 0 || store.persists < 2 || store.results != 1 {
		t.Errorf("store calls: restore %d, persist %d, result %d", store.restores, store.persists, store.results)
	}
	for _, want := range []string{"could not load saved game", "could not save game", "could not record result"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log is missing %q:\n%s", want, logs.String())
		}
	}
	if !strings.Contains(m.View(), "Solved in 1") {
		t.Error("View() should show the win")
	}
}

func TestModelKeepsNewestSave(t *testing.T) {
	store := openTestStore(t)
	ns := GameNamespace(storage.LocalNamespace, words.DefaultPack)

	m := NewModel(newTestMachine(t), store, ModelOptions{Config: core.DefaultConfig()})
	m = drain(t, m, m.Init())
	first := m.Machine().GameID()

	older := m.persistCmd()
	next, newer := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)
	if m.Machine().GameID() == first {
		t.Fatal("ctrl+n should start another game")
	}

	// The newer save finishes first; the older one must not overwrite it
	if msg := newer().(persistedMsg); msg.err != nil {
		t.Fatalf("newer save failed: %v", msg.err)
	}
	if msg := older().(persistedMsg); msg.err != nil {
		t.Fatalf("older save failed: %v", msg.err)
	}

	got, found, err := loadSnapshot(store, ns)
	if err != nil || !found {
		t.Fatalf("loadSnapshot() = %v, %v", found, err)
	}
	if got.GameID != m.Machine().GameID() || got.Secret != m.Machine().Secret() {
		t.Errorf("saved game %q, want %q", got.GameID, m.Machine().GameID())
	}
}

func TestModelIgnoresOtherMachines(t *testing.T) {
	m := NewModel(newTestMachine(t), nil, ModelOptions{Config: core.DefaultConfig()})
	m = drain(t, m, m.Init())
	secret := m.Machine().Secret()

	other := newTestMachine(t)
	next, _ := m.Update(restoredMsg{machine: other, found: true, snapshot: game.Snapshot{Secret: "ride"}})
	m = next.(Model)
	if m.Machine().Secret() != secret {
		t.Error("restore for another machine must be ignored")
	}

	// Submitting an empty row shows a result until its own timer fires
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	timer, ok := m.Machine().PendingTimer()
	if !ok {
		t.Fatal("submit should start the result timer")
	}

	next, _ = m.Update(resultTimerMsg{machine: other, id: timer.ID})
	m = next.(Model)
	if m.Machine().Status() != game.StatusShowingResult {
		t.Errorf("timer of another machine ended the result: %v", m.Machine().Status())
	}

	next, _ = m.Update(resultTimerMsg{machine: m.Machine(), id: timer.ID})
	m = next.(Model)
	if m.Machine().Status() != game.StatusInProgress {
		t.Errorf("Status() = %v, want in-progress", m.Machine().Status())
	}
}

func TestModelScreenRequests(t *testing.T) {
	for _, embedded := range []bool{false, true} {
		m := NewModel(newTestMachine(t), nil, ModelOptions{Embedded: embedded})
		m = drain(t, m, m.Init())

		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
		if !m.WantsStats() {
			t.Errorf("embedded=%v: tab should request stats", embedded)
		}
		if embedded != (cmd == nil) {
			t.Errorf("embedded=%v: cmd = %v", embedded, cmd)
		}

		m = m.ClearRequests()
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = next.(Model)
		if !m.BackToMenu() || m.WantsStats() {
			t.Errorf("embedded=%v: esc should request the menu only", embedded)
		}

		next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = next.(Model)
		if !m.IsQuitting() || cmd == nil {
			t.Errorf("embedded=%v: ctrl+c should quit", embedded)
		}
		if m.View() != "" {
			t.Error("View() after quit should be empty")
		}
	}
}

func TestModelResumesRunningMachine(t *testing.T) {
	m := NewModel(newTestMachine(t), nil, ModelOptions{})
	m = drain(t, m, m.Init())
	m = press(t, m, runeKey('h'))

	// A second screen around the same machine keeps the game
	again := NewModel(m.Machine(), nil, ModelOptions{})
	if cmd := again.Init(); cmd != nil {
		t.Error("Init() on a running machine should not restore")
	}
	if again.Machine().Current() != "h" {
		t.Errorf("Current() = %q, want h", again.Machine().Current())
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, SessionOptions{
		Game:      config.Default(),
		Namespace: SessionNamespace("alice"),
		Config:    core.DefaultConfig(),
	})
	s = drain(t, s, s.Init())

	if !strings.Contains(s.View(), "Pick a word pack") {
		t.Fatalf("session should open on the menu, got %q", s.View())
	}

	// The cursor starts on the configured pack
	s = press(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.mode != modeGame || s.game == nil {
		t.Fatalf("enter should open a game, mode = %v", s.mode)
	}
	machine := s.game.Machine()
	if machine.PackID() != words.DefaultPack || machine.Status() != game.StatusInProgress {
		t.Fatalf("game %q in %v", machine.PackID(), machine.Status())
	}

	s = press(t, s, runeKey('h'))
	if machine.Current() != "h" {
		t.Errorf("Current() = %q, want h", machine.Current())
	}

	s = press(t, s, tea.KeyMsg{Type: tea.KeyTab})
	if s.mode != modeStats || !strings.Contains(s.View(), "STATISTICS") {
		t.Fatalf("tab should show statistics, mode = %v", s.mode)
	}

	s = press(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.mode != modeGame {
		t.Fatalf("esc on stats should return to the game, mode = %v", s.mode)
	}

	s = press(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.mode != modeMenu {
		t.Fatalf("esc in game should return to the menu, mode = %v", s.mode)
	}

	// Picking the same pack again resumes the same game
	s = press(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.game.Machine() != machine || machine.Current() != "h" {
		t.Error("the session should resume its game for the pack")
	}

	s = press(t, s, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !s.quitting {
		t.Error("ctrl+c should end the session")
	}
}
