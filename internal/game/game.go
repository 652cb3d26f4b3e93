// Package game holds the interactive puzzle session: a board of shuffled,
// turned tiles that the player restores by swapping and rotating them.
// It contains no rendering or terminal code.
package game

import (
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

const noPick = -1

// Game is a single puzzle session.
type Game struct {
	start  Board // Layout restored by Reset and ActionRestart
	board  Board
	tick   uint64
	cursor core.Point
	picked int

	moves     int
	rotations int
	elapsed   int

	screenW int
	screenH int

	paused  bool
	preview bool
	solved  bool
}

// New creates a session starting from the layout described by pm.
func New(pm puzzle.PlacementMap) (*Game, error) {
	board, err := BoardFrom(pm)
	if err != nil {
		return nil, err
	}
	g := &Game{start: board}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the identifier used for history records.
func (g *Game) ID() string {
	return "jigsaw"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Jigsaw"
}

// Reset restores the starting layout and clears every counter.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.board = g.start.clone()
	g.tick = 0
	g.cursor = core.Point{}
	g.picked = noPick
	g.moves = 0
	g.rotations = 0
	g.elapsed = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.preview = false
	g.solved = g.board.Solved()
}

// Resize records new screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step applies one frame of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{ScreenW: g.screenW, ScreenH: g.screenH})
		return core.StepResult{State: g.State()}
	}

	if g.solved {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionReveal) {
		g.preview = !g.preview
	}

	g.moveCursor(in)

	switch {
	case in.Has(core.ActionRotate):
		g.rotate(puzzle.Angle90)
	case in.Has(core.ActionRotateBack):
		g.rotate(puzzle.Angle270)
	case in.Has(core.ActionSelect):
		g.selectSlot()
	}

	result := core.StepResult{}
	if g.board.Solved() {
		g.solved = true
		g.picked = noPick
		g.preview = false
		result.JustSolved = true
	}
	result.State = g.State()
	return result
}

// Tick advances the clock by one second while the puzzle is being played.
func (g *Game) Tick() {
	if g.paused || g.solved {
		return
	}
	g.elapsed++
}

func (g *Game) moveCursor(in core.InputFrame) {
	last := g.board.Size() - 1
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, last)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, last)
}

func (g *Game) rotate(a puzzle.Angle) {
	g.board.turn(g.cursor.Index(g.board.Size()), a)
	g.rotations++
}

// selectSlot picks the tile under the cursor, drops it again, or swaps it
// with the tile picked earlier.
func (g *Game) selectSlot() {
	here := g.cursor.Index(g.board.Size())
	switch g.picked {
	case noPick:
		g.picked = here
	case here:
		g.picked = noPick
	default:
		g.board.swap(g.picked, here)
		g.picked = noPick
		g.moves++
	}
}

// State returns the current session state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:     g.moves,
		Rotations: g.rotations,
		Elapsed:   g.elapsed,
		Solved:    g.solved,
		Paused:    g.paused,
	}
}

// Board returns a copy of the current layout.
func (g *Game) Board() Board {
	return g.board.clone()
}

// Cursor returns the slot under the cursor.
func (g *Game) Cursor() core.Point {
	return g.cursor
}

// Picked returns the index of the picked slot, or -1.
func (g *Game) Picked() int {
	return g.picked
}

// Preview reports whether the solution preview is shown.
func (g *Game) Preview() bool {
	return g.preview
}

// Placement reports the current layout as a placement map.
func (g *Game) Placement() (puzzle.PlacementMap, error) {
	return g.board.Placement()
}
