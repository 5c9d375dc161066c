// Package game implements the Kinderwordle game state machine.
//
// A Machine holds one game: the secret, the submitted history, the attempt
// being typed and the transient result of the last submission. It contains
// no I/O and no goroutines. The result display delay is exposed as a timer
// token that the platform schedules on its own event loop and hands back
// through Expire.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/vovakirdan/kinderwordle/internal/core"
	"github.com/vovakirdan/kinderwordle/internal/scoring"
)

const (
	DefaultAttemptLimit  = 6
	DefaultResultDisplay = 2000 * time.Millisecond
)

// Dictionary is the word list a game draws its secret from and checks
// attempts against.
type Dictionary interface {
	Contains(word string) bool
	Random(rng *rand.Rand) string
	WordLength() int
}

// Options configures a Machine. Zero values take the defaults.
type Options struct {
	AttemptLimit  int
	ResultDisplay time.Duration
	Seed          int64 // 0 seeds from the clock
	PackID        string
}

// Timer is a pending result display. The platform must call Expire with ID
// after Delay; a superseded or cancelled timer's ID is ignored.
type Timer struct {
	ID    uint64
	Delay time.Duration
}

// Tile is one board cell.
type Tile struct {
	Letter rune // 0 for an empty cell
	State  scoring.LetterState
}

// Row is one board row.
type Row []Tile

// Machine is a single game session.
type Machine struct {
	dict Dictionary
	opts Options
	rng  *rand.Rand
	fsm  *fsm.FSM

	gameID  string
	secret  string
	history []string
	current []rune
	outcome Outcome

	timerSeq uint64
	timer    uint64 // 0 when nothing is pending
}

// New creates a machine in the loading state. Call NewGame or Restore to
// establish a secret.
func New(dict Dictionary, opts Options) *Machine {
	if opts.AttemptLimit <= 0 {
		opts.AttemptLimit = DefaultAttemptLimit
	}
	if opts.ResultDisplay <= 0 {
		opts.ResultDisplay = DefaultResultDisplay
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Machine{
		dict: dict,
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
	m.fsm = fsm.NewFSM(string(StatusLoading), statusEvents(), statusCallbacks(m))
	return m
}

// NewGame abandons the current game, if any, and starts a fresh one with a
// random secret.
func (m *Machine) NewGame() error {
	if err := m.toLoading(); err != nil {
		return err
	}
	secret := m.dict.Random(m.rng)
	if secret == "" {
		return fmt.Errorf("game: word list is empty")
	}
	return m.begin(Snapshot{
		GameID: uuid.NewString(),
		PackID: m.opts.PackID,
		Secret: secret,
	})
}

// Restore resumes a persisted game. On error the machine stays in loading.
func (m *Machine) Restore(s Snapshot) error {
	if err := m.toLoading(); err != nil {
		return err
	}
	if err := s.Validate(m.dict.WordLength(), m.opts.AttemptLimit); err != nil {
		return err
	}
	if !m.dict.Contains(s.Secret) {
		return fmt.Errorf("%w: secret %q is not in the word list", ErrInvalidSnapshot, s.Secret)
	}
	if s.GameID == "" {
		s.GameID = uuid.NewString()
	}
	return m.begin(s)
}

func (m *Machine) toLoading() error {
	if m.Status() == StatusLoading {
		return nil
	}
	return m.fire(eventReset)
}

func (m *Machine) begin(s Snapshot) error {
	m.gameID = s.GameID
	m.secret = s.Secret
	m.history = slices.Clone(s.History)
	m.current = nil
	m.outcome = OutcomeNone

	switch {
	case s.Won():
		return m.fire(eventWin)
	case len(m.history) >= m.opts.AttemptLimit:
		return m.fire(eventLose)
	default:
		return m.fire(eventReady)
	}
}

func (m *Machine) fire(event string) error {
	if err := m.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("game: %s from %s: %w", event, m.Status(), err)
	}
	return nil
}

// AddLetter appends a lowercase a-z letter to the current attempt.
// It reports false when the letter is dropped: not playing, row full, or
// not a letter.
func (m *Machine) AddLetter(r rune) bool {
	if m.Status() != StatusInProgress || r < 'a' || r > 'z' {
		return false
	}
	if len(m.current) >= m.WordLength() {
		return false
	}
	m.current = append(m.current, r)
	return true
}

// RemoveLetter drops the last letter of the current attempt.
func (m *Machine) RemoveLetter() bool {
	if m.Status() != StatusInProgress || len(m.current) == 0 {
		return false
	}
	m.current = m.current[:len(m.current)-1]
	return true
}

// Submit evaluates the current attempt. Every outcome is shown for the
// result display time (see PendingTimer); rejected attempts stay in the
// current row. The error is non-nil only when the submission was dropped
// without an outcome.
func (m *Machine) Submit() (Outcome, error) {
	if m.Status() != StatusInProgress {
		return OutcomeNone, ErrNotPlaying
	}

	n := m.WordLength()
	attempt := string(m.current)

	var outcome Outcome
	switch {
	case len(m.current) > n:
		return OutcomeNone, fmt.Errorf("%w: %q", ErrExcessLength, attempt)
	case len(m.current) < n:
		outcome = OutcomeInsufficient
	case !m.dict.Contains(attempt):
		outcome = OutcomeUnrecognized
	default:
		m.history = append(m.history, attempt)
		m.current = nil
		switch {
		case attempt == m.secret:
			outcome = OutcomeWin
		case len(m.history) >= m.opts.AttemptLimit:
			outcome = OutcomeLoss
		default:
			outcome = OutcomeContinue
		}
	}

	if err := m.fire(eventSubmit); err != nil {
		return OutcomeNone, err
	}
	m.outcome = outcome
	m.timerSeq++
	m.timer = m.timerSeq
	return outcome, nil
}

// Guess submits a whole word at once. Words longer than the secret are
// dropped with ErrExcessLength and change nothing.
func (m *Machine) Guess(word string) (Outcome, error) {
	if m.Status() != StatusInProgress {
		return OutcomeNone, ErrNotPlaying
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if utf8.RuneCountInString(word) > m.WordLength() {
		return OutcomeNone, fmt.Errorf("%w: %q", ErrExcessLength, word)
	}
	m.current = []rune(word)
	return m.Submit()
}

// Handle applies a platform input. Letters and erasures that cannot apply
// are silently dropped.
func (m *Machine) Handle(in core.Input) (Outcome, error) {
	switch in.Action {
	case core.ActionLetter:
		m.AddLetter(in.Letter)
	case core.ActionErase:
		m.RemoveLetter()
	case core.ActionSubmit:
		return m.Submit()
	case core.ActionNewGame:
		return OutcomeNone, m.NewGame()
	}
	return OutcomeNone, nil
}

// PendingTimer returns the result display timer, if one is running.
func (m *Machine) PendingTimer() (Timer, bool) {
	if m.timer == 0 {
		return Timer{}, false
	}
	return Timer{ID: m.timer, Delay: m.opts.ResultDisplay}, true
}

// Expire ends the result display started by the timer with the given ID.
// It reports false for stale timers.
func (m *Machine) Expire(id uint64) bool {
	if id == 0 || id != m.timer || m.Status() != StatusShowingResult {
		return false
	}

	event := eventResume
	switch m.outcome {
	case OutcomeWin:
		event = eventWin
	case OutcomeLoss:
		event = eventLose
	}
	if err := m.fire(event); err != nil {
		return false
	}
	m.outcome = OutcomeNone
	return true
}

func (m *Machine) cancelTimer() {
	m.timer = 0
}

// clear forgets the game so nothing of it is visible while loading.
func (m *Machine) clear() {
	m.gameID = ""
	m.secret = ""
	m.history = nil
	m.current = nil
	m.outcome = OutcomeNone
}

// Status returns the lifecycle state.
func (m *Machine) Status() Status {
	return Status(m.fsm.Current())
}

// Secret returns the secret word, empty while loading.
func (m *Machine) Secret() string { return m.secret }

// GameID identifies the current game across restarts.
func (m *Machine) GameID() string { return m.gameID }

// PackID returns the word pack the game was started with.
func (m *Machine) PackID() string { return m.opts.PackID }

// History returns a copy of the submitted attempts.
func (m *Machine) History() []string { return slices.Clone(m.history) }

// Current returns the attempt being typed.
func (m *Machine) Current() string { return string(m.current) }

// Outcome returns the result currently on display.
func (m *Machine) Outcome() Outcome { return m.outcome }

// AttemptLimit returns the maximum number of submitted attempts.
func (m *Machine) AttemptLimit() int { return m.opts.AttemptLimit }

// WordLength returns the number of letters of the secret.
func (m *Machine) WordLength() int {
	if m.secret != "" {
		return utf8.RuneCountInString(m.secret)
	}
	return m.dict.WordLength()
}

// Message returns the toast for the result on display.
func (m *Machine) Message() string {
	return m.outcome.Message(m.secret, len(m.history))
}

// Won reports whether the secret has been found.
func (m *Machine) Won() bool {
	return len(m.history) > 0 && m.history[len(m.history)-1] == m.secret
}

// Finished reports whether no further attempts can be made, regardless of
// whether the final result is still on display.
func (m *Machine) Finished() bool {
	return m.secret != "" && (m.Won() || len(m.history) >= m.opts.AttemptLimit)
}

// Snapshot returns the persisted form of the game.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		GameID:  m.gameID,
		PackID:  m.opts.PackID,
		Secret:  m.secret,
		History: m.History(),
	}
}

// Rows returns the whole board: scored history rows, the current row, and
// empty rows up to the attempt limit.
func (m *Machine) Rows() []Row {
	n := m.WordLength()
	rows := make([]Row, 0, m.opts.AttemptLimit)

	for _, attempt := range m.history {
		rows = append(rows, tiles(attempt, scoring.ScoreRow(m.secret, attempt)))
	}
	if len(rows) < m.opts.AttemptLimit {
		current := string(m.current)
		states := scoring.ScoreCurrentRow(strings.Repeat(" ", n), current)
		rows = append(rows, tiles(current, states))
	}
	for len(rows) < m.opts.AttemptLimit {
		rows = append(rows, tiles("", make([]scoring.LetterState, n)))
	}
	return rows
}

// Keyboard returns the aggregate state of every letter a-z.
func (m *Machine) Keyboard() map[rune]scoring.LetterState {
	return scoring.ScoreKeyboard(m.secret, m.history, scoring.Alphabet)
}

func tiles(word string, states []scoring.LetterState) Row {
	letters := []rune(word)
	row := make(Row, len(states))
	for i, s := range states {
		row[i].State = s
		if i < len(letters) {
			row[i].Letter = letters[i]
		}
	}
	return row
}
