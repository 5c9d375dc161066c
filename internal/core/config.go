// Package core provides fundamental types shared by the game and platform layers.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// RuntimeConfig contains configuration passed to the platform at startup.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for secret selection
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}
