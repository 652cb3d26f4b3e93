package game

import (
	"fmt"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
)

// Text cell geometry: a box with the tile number and its angle inside.
const (
	cellW = 7
	cellH = 4
)

// TextSize returns the screen size needed by Render for an n x n board,
// including the status line.
func TextSize(n int) (w, h int) {
	return n * cellW, n*cellH + 1
}

// Render draws the board as numbered boxes. The cursor gets a heavy frame,
// the picked slot a double one. Tile numbers are 1-based.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	n := g.board.Size()
	here := g.cursor.Index(n)

	for i := 0; i < g.board.Len(); i++ {
		p := core.PointAt(i, n)
		r := core.NewRect(p.X*cellW, p.Y*cellH, cellW, cellH)

		style := core.BoxLight
		switch i {
		case g.picked:
			style = core.BoxDouble
		case here:
			style = core.BoxHeavy
		}
		dst.DrawBox(r, style)

		s := g.board.At(i)
		dst.DrawTextCentered(r, r.Y+1, fmt.Sprintf("%02d", s.Tile+1))
		dst.DrawTextCentered(r, r.Y+2, s.Angle.String())
	}

	dst.DrawText(0, n*cellH, g.statusLine())
}

func (g *Game) statusLine() string {
	switch {
	case g.solved:
		return fmt.Sprintf("Solved in %d moves, %d turns", g.moves, g.rotations)
	case g.paused:
		return "Paused"
	default:
		return fmt.Sprintf("Moves %d  Turns %d  Left %d", g.moves, g.rotations, g.board.Misplaced())
	}
}
