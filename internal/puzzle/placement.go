package puzzle

import "math"

// PlacementEntry records where an original tile ended up after a shuffle.
type PlacementEntry struct {
	ShuffleID int   // Slot in the shuffled sequence holding this tile
	Angle     Angle // Clockwise rotation applied to the tile in that slot
}

// PlacementMap maps every original grid index 0..n²-1 to its PlacementEntry.
// The shuffle ids always form a permutation of 0..n²-1; maps can only be
// obtained through NewPlacementMap or IdentityPlacement, both of which enforce
// it. The zero value is an empty, invalid map.
type PlacementMap struct {
	n       int
	entries []PlacementEntry
}

// NewPlacementMap builds a map from entries indexed by original grid index.
// The entry count must be a perfect square and the shuffle ids a permutation.
func NewPlacementMap(entries []PlacementEntry) (PlacementMap, error) {
	n := GridSide(len(entries))
	if len(entries) == 0 || n*n != len(entries) {
		return PlacementMap{}, consistencyErrorf("NOT_SQUARE",
			"%d placement entries do not form a square grid", len(entries))
	}

	cp := make([]PlacementEntry, len(entries))
	copy(cp, entries)
	if err := validateEntries(cp); err != nil {
		return PlacementMap{}, err
	}
	return PlacementMap{n: n, entries: cp}, nil
}

// IdentityPlacement returns the map of an unshuffled n x n grid.
// Returns the zero map for n < 1.
func IdentityPlacement(n int) PlacementMap {
	if n < 1 {
		return PlacementMap{}
	}
	entries := make([]PlacementEntry, n*n)
	for k := range entries {
		entries[k] = PlacementEntry{ShuffleID: k, Angle: Angle0}
	}
	return PlacementMap{n: n, entries: entries}
}

// Len returns the number of tiles, n².
func (m PlacementMap) Len() int {
	return len(m.entries)
}

// GridSize returns n.
func (m PlacementMap) GridSize() int {
	return m.n
}

// Entry returns the placement of the tile at original index k.
// Panics if k is out of range.
func (m PlacementMap) Entry(k int) PlacementEntry {
	return m.entries[k]
}

// Entries returns a copy of all entries in original index order.
func (m PlacementMap) Entries() []PlacementEntry {
	cp := make([]PlacementEntry, len(m.entries))
	copy(cp, m.entries)
	return cp
}

// Inverse returns, for every shuffle slot, the original index of the tile in it.
func (m PlacementMap) Inverse() []int {
	inv := make([]int, len(m.entries))
	for k, e := range m.entries {
		inv[e.ShuffleID] = k
	}
	return inv
}

// IsIdentity reports whether every tile sits unrotated in its own slot.
func (m PlacementMap) IsIdentity() bool {
	if len(m.entries) == 0 {
		return false
	}
	for k, e := range m.entries {
		if e.ShuffleID != k || e.Angle != Angle0 {
			return false
		}
	}
	return true
}

// Validate re-checks the bijection and angle invariants.
func (m PlacementMap) Validate() error {
	if len(m.entries) == 0 {
		return consistencyErrorf("EMPTY", "placement map has no entries")
	}
	if m.n*m.n != len(m.entries) {
		return consistencyErrorf("NOT_SQUARE",
			"%d placement entries do not form a %dx%d grid", len(m.entries), m.n, m.n)
	}
	return validateEntries(m.entries)
}

// validateEntries checks angles and that shuffle ids are a permutation.
func validateEntries(entries []PlacementEntry) error {
	owner := make([]int, len(entries))
	for i := range owner {
		owner[i] = -1
	}

	for k, e := range entries {
		if !e.Angle.Valid() {
			return consistencyErrorf("INVALID_ANGLE",
				"entry %d: angle %d not in {0, 90, 180, 270}", k, int(e.Angle))
		}
		if e.ShuffleID < 0 || e.ShuffleID >= len(entries) {
			return consistencyErrorf("OUT_OF_RANGE",
				"entry %d: shuffle id %d outside [0, %d)", k, e.ShuffleID, len(entries))
		}
		if prev := owner[e.ShuffleID]; prev >= 0 {
			return consistencyErrorf("DUPLICATE_SLOT",
				"entries %d and %d both claim slot %d", prev, k, e.ShuffleID)
		}
		owner[e.ShuffleID] = k
	}
	return nil
}

// GridSide returns floor(sqrt(count)), the side of the largest square grid
// that count tiles can fill.
func GridSide(count int) int {
	if count <= 0 {
		return 0
	}
	n := int(math.Sqrt(float64(count)))
	for n*n > count {
		n--
	}
	for (n+1)*(n+1) <= count {
		n++
	}
	return n
}
