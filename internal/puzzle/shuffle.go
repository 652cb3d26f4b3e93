package puzzle

import (
	"image"
	"math/rand"
	"time"
)

// RandomSource supplies the randomness for a shuffle. *rand.Rand satisfies it,
// so tests can pass a seeded generator and assert exact placements.
type RandomSource interface {
	Perm(n int) []int
	Intn(n int) int
}

// NewRandomSource returns a generator seeded with seed, or with the current
// time when seed is 0.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Shuffle permutes tiles uniformly at random and, when rotate is set, turns
// each one by a uniformly chosen right angle.
//
// Slot i of the result holds the original tile perm[i]. The returned map is
// keyed by original index: entry k names the slot tile k landed in and the
// angle it was turned by, which is exactly what Reassemble needs to undo it.
func Shuffle(tiles []image.Image, rnd RandomSource, rotate bool) ([]image.Image, PlacementMap, error) {
	count := len(tiles)
	if count == 0 || GridSide(count)*GridSide(count) != count {
		return nil, PlacementMap{}, inputErrorf("TILE_COUNT",
			"%d tiles do not form a square grid", count)
	}
	if rnd == nil {
		rnd = NewRandomSource(0)
	}

	perm := rnd.Perm(count)
	if len(perm) != count {
		return nil, PlacementMap{}, consistencyErrorf("BAD_PERMUTATION",
			"random source returned %d indices for %d tiles", len(perm), count)
	}

	shuffled := make([]image.Image, count)
	entries := make([]PlacementEntry, count)
	for slot, orig := range perm {
		if orig < 0 || orig >= count {
			return nil, PlacementMap{}, consistencyErrorf("OUT_OF_RANGE",
				"permutation index %d outside [0, %d)", orig, count)
		}

		angle := Angle0
		if rotate {
			angle = Angles[rnd.Intn(len(Angles))]
		}

		turned, err := Rotate(tiles[orig], angle)
		if err != nil {
			return nil, PlacementMap{}, err
		}
		shuffled[slot] = turned
		entries[orig] = PlacementEntry{ShuffleID: slot, Angle: angle}
	}

	// Rebuilding through the constructor rejects a source whose Perm repeats.
	pm, err := NewPlacementMap(entries)
	if err != nil {
		return nil, PlacementMap{}, err
	}
	return shuffled, pm, nil
}

// Step is one line of the reassembly log.
type Step struct {
	ShuffleID    int   // Slot the tile was taken from
	InverseAngle Angle // Clockwise rotation applied to restore it
}

// Reassemble restores the original row-major tile order and orientation of a
// shuffled sequence. It fails with a ConsistencyError before touching any
// pixels if pm is malformed or does not match the sequence length.
func Reassemble(shuffled []image.Image, pm PlacementMap) ([]image.Image, []Step, error) {
	if err := pm.Validate(); err != nil {
		return nil, nil, err
	}
	if pm.Len() != len(shuffled) {
		return nil, nil, consistencyErrorf("LENGTH_MISMATCH",
			"placement has %d entries but %d tiles were given", pm.Len(), len(shuffled))
	}

	tiles := make([]image.Image, pm.Len())
	steps := make([]Step, pm.Len())
	for k, e := range pm.entries {
		inv := e.Angle.Inverse()
		restored, err := Rotate(shuffled[e.ShuffleID], inv)
		if err != nil {
			return nil, nil, err
		}
		tiles[k] = restored
		steps[k] = Step{ShuffleID: e.ShuffleID, InverseAngle: inv}
	}
	return tiles, steps, nil
}

// Options selects how Prepare cuts a picture.
type Options struct {
	GridSize int
	Shuffle  bool
	Rotate   bool // Only used when Shuffle is set
}

// Puzzle is a picture cut into tiles, ready to be written out or played.
type Puzzle struct {
	Square    image.Image   // Centered square crop of the source
	Tiles     []image.Image // Tiles in original row-major order
	Shuffled  []image.Image // Tiles in slot order, rotated per Placement
	Placement PlacementMap
}

// GridSize returns n.
func (p *Puzzle) GridSize() int {
	return p.Placement.GridSize()
}

// Prepare crops img to a square, slices it and optionally shuffles the tiles.
func Prepare(img image.Image, opts Options, rnd RandomSource) (*Puzzle, error) {
	square, err := CropSquare(img)
	if err != nil {
		return nil, err
	}
	tiles, pm, err := Slice(square, opts.GridSize)
	if err != nil {
		return nil, err
	}

	p := &Puzzle{
		Square:    square,
		Tiles:     tiles,
		Shuffled:  tiles,
		Placement: pm,
	}
	if !opts.Shuffle {
		return p, nil
	}

	p.Shuffled, p.Placement, err = Shuffle(tiles, rnd, opts.Rotate)
	if err != nil {
		return nil, err
	}
	return p, nil
}
