package core

// RuntimeConfig contains configuration passed to a puzzle session at start.
// The platform uses it to size the board and to seed the shuffle.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Clock ticks per second (default 1)
	Seed     int64 // RNG seed for reproducible shuffles
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 1,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a puzzle session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Moves     int  // Swaps performed
	Rotations int  // Quarter turns performed
	Elapsed   int  // Seconds played, excluding pauses
	Solved    bool // Every tile is home and upright
	Paused    bool
}

// StepResult is returned by Game.Step() after each input frame.
type StepResult struct {
	State GameState
	// JustSolved is set on the step that completed the puzzle.
	JustSolved bool
}
