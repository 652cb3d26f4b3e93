package game

import (
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// Slot is one cell of the board: which original tile it shows and how far
// that tile is turned clockwise.
type Slot struct {
	Tile  int
	Angle puzzle.Angle
}

// Home reports whether the slot at index i holds its own tile upright.
func (s Slot) Home(i int) bool {
	return s.Tile == i && s.Angle == puzzle.Angle0
}

// Board is the n x n arrangement of tiles in row-major slot order.
type Board struct {
	n     int
	slots []Slot
}

// BoardFrom lays tiles out as a shuffle left them: original tile k sits in
// slot pm.Entry(k).ShuffleID, turned by pm.Entry(k).Angle.
func BoardFrom(pm puzzle.PlacementMap) (Board, error) {
	if err := pm.Validate(); err != nil {
		return Board{}, err
	}
	slots := make([]Slot, pm.Len())
	for k, e := range pm.Entries() {
		slots[e.ShuffleID] = Slot{Tile: k, Angle: e.Angle}
	}
	return Board{n: pm.GridSize(), slots: slots}, nil
}

// Size returns n.
func (b Board) Size() int {
	return b.n
}

// Len returns the number of slots, n².
func (b Board) Len() int {
	return len(b.slots)
}

// At returns slot i.
func (b Board) At(i int) Slot {
	return b.slots[i]
}

// Slots returns a copy of every slot in row-major order.
func (b Board) Slots() []Slot {
	cp := make([]Slot, len(b.slots))
	copy(cp, b.slots)
	return cp
}

// Solved reports whether every tile is home and upright.
func (b Board) Solved() bool {
	for i, s := range b.slots {
		if !s.Home(i) {
			return false
		}
	}
	return true
}

// Misplaced counts slots that are not home or not upright.
func (b Board) Misplaced() int {
	count := 0
	for i, s := range b.slots {
		if !s.Home(i) {
			count++
		}
	}
	return count
}

// Placement reports the board in the same form a shuffle produces, so the
// current state can be written out and reassembled.
func (b Board) Placement() (puzzle.PlacementMap, error) {
	entries := make([]puzzle.PlacementEntry, len(b.slots))
	for i, s := range b.slots {
		entries[s.Tile] = puzzle.PlacementEntry{ShuffleID: i, Angle: s.Angle}
	}
	return puzzle.NewPlacementMap(entries)
}

func (b Board) clone() Board {
	return Board{n: b.n, slots: b.Slots()}
}

func (b *Board) swap(i, j int) {
	b.slots[i], b.slots[j] = b.slots[j], b.slots[i]
}

func (b *Board) turn(i int, a puzzle.Angle) {
	b.slots[i].Angle = b.slots[i].Angle.Add(a)
}
