package core

import "testing"

func TestPointIndex(t *testing.T) {
	tests := []struct {
		p     Point
		n     int
		index int
	}{
		{Point{0, 0}, 3, 0},
		{Point{2, 0}, 3, 2},
		{Point{0, 1}, 3, 3},
		{Point{2, 2}, 3, 8},
		{Point{1, 3}, 4, 13},
	}

	for _, tc := range tests {
		if got := tc.p.Index(tc.n); got != tc.index {
			t.Errorf("%v.Index(%d) = %d, expected %d", tc.p, tc.n, got, tc.index)
		}
		if got := PointAt(tc.index, tc.n); got != tc.p {
			t.Errorf("PointAt(%d, %d) = %v, expected %v", tc.index, tc.n, got, tc.p)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if r.Right() != 30 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (30, 25)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below lo
		{15, 0, 10, 10}, // above hi
		{0, 0, 0, 0},    // single cell board
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestFrameOf(t *testing.T) {
	f := FrameOf(ActionRotate, ActionSelect)
	if !f.Has(ActionRotate) || !f.Has(ActionSelect) || f.Has(ActionUp) {
		t.Errorf("FrameOf actions = %v", f.Actions)
	}
	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) || !zero.Empty() {
		t.Error("zero frame should have no actions")
	}
}
