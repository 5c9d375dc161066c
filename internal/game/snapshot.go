package game

import (
	"fmt"
	"unicode/utf8"
)

// Snapshot is the persisted form of a game: enough to rebuild the board.
type Snapshot struct {
	GameID  string   `json:"game_id"`
	PackID  string   `json:"pack"`
	Secret  string   `json:"secret"`
	History []string `json:"history"`
}

// Validate checks that the snapshot describes a reachable game for words of
// the given length and the given attempt limit.
func (s Snapshot) Validate(length, limit int) error {
	if s.Secret == "" {
		return fmt.Errorf("%w: no secret", ErrInvalidSnapshot)
	}
	if n := utf8.RuneCountInString(s.Secret); n != length {
		return fmt.Errorf("%w: secret has %d letters, want %d", ErrInvalidSnapshot, n, length)
	}
	if len(s.History) > limit {
		return fmt.Errorf("%w: %d attempts exceed limit %d", ErrInvalidSnapshot, len(s.History), limit)
	}
	for i, attempt := range s.History {
		if n := utf8.RuneCountInString(attempt); n != length {
			return fmt.Errorf("%w: attempt %d has %d letters, want %d", ErrInvalidSnapshot, i+1, n, length)
		}
		if attempt == s.Secret && i != len(s.History)-1 {
			return fmt.Errorf("%w: attempts continue after a win", ErrInvalidSnapshot)
		}
	}
	return nil
}

// Won reports whether the last attempt found the secret.
func (s Snapshot) Won() bool {
	return len(s.History) > 0 && s.History[len(s.History)-1] == s.Secret
}
