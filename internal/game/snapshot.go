package game

import "github.com/vovakirdan/tui-jigsaw/internal/core"

// StateType names the phase of a session.
type StateType string

const (
	StatePlaying StateType = "playing"
	StatePaused  StateType = "paused"
	StateSolved  StateType = "solved"
)

// Snapshot captures the complete session state for tests and replay checks.
type Snapshot struct {
	Tick      uint64
	GridSize  int
	Slots     []Slot
	Cursor    core.Point
	Picked    int
	Moves     int
	Rotations int
	Elapsed   int
	Misplaced int
	Preview   bool
	State     StateType
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.solved:
		state = StateSolved
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		GridSize:  g.board.Size(),
		Slots:     g.board.Slots(),
		Cursor:    g.cursor,
		Picked:    g.picked,
		Moves:     g.moves,
		Rotations: g.rotations,
		Elapsed:   g.elapsed,
		Misplaced: g.board.Misplaced(),
		Preview:   g.preview,
		State:     state,
	}
}
