package puzzle_test

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

func TestNewPlacementMapRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []puzzle.PlacementEntry
		code    string
	}{
		{"empty", nil, "NOT_SQUARE"},
		{"not square", []puzzle.PlacementEntry{{0, 0}, {1, 0}}, "NOT_SQUARE"},
		{"duplicate slot", []puzzle.PlacementEntry{{0, 0}, {1, 0}, {1, 0}, {3, 0}}, "DUPLICATE_SLOT"},
		{"out of range", []puzzle.PlacementEntry{{0, 0}, {1, 0}, {2, 0}, {4, 0}}, "OUT_OF_RANGE"},
		{"negative", []puzzle.PlacementEntry{{-1, 0}}, "OUT_OF_RANGE"},
		{"bad angle", []puzzle.PlacementEntry{{0, 0}, {1, 45}, {2, 0}, {3, 0}}, "INVALID_ANGLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := puzzle.NewPlacementMap(tt.entries)
			if !errors.Is(err, puzzle.ErrConsistency) {
				t.Fatalf("error = %v, want ErrConsistency", err)
			}
			var ce puzzle.ConsistencyError
			if !errors.As(err, &ce) || ce.Code != tt.code {
				t.Errorf("code = %q, want %q", ce.Code, tt.code)
			}
		})
	}
}

func TestNewPlacementMapCopiesInput(t *testing.T) {
	entries := []puzzle.PlacementEntry{{1, 90}, {0, 0}, {3, 180}, {2, 270}}
	pm, err := puzzle.NewPlacementMap(entries)
	if err != nil {
		t.Fatalf("NewPlacementMap() error: %v", err)
	}
	entries[0].ShuffleID = 1000

	if pm.Entry(0).ShuffleID != 1 {
		t.Error("map must not alias the caller's slice")
	}
	if diff := cmp.Diff([]int{1, 0, 3, 2}, pm.Inverse()); diff != "" {
		t.Errorf("Inverse() mismatch (-want +got):\n%s", diff)
	}
	if pm.GridSize() != 2 || pm.Len() != 4 {
		t.Errorf("grid = %d, len = %d, want 2, 4", pm.GridSize(), pm.Len())
	}
}

func TestReassembleRejectsInvalidMaps(t *testing.T) {
	tiles, _, err := puzzle.Slice(gradient(9, 9), 3)
	if err != nil {
		t.Fatalf("Slice() error: %v", err)
	}

	if _, _, err := puzzle.Reassemble(tiles, puzzle.PlacementMap{}); !errors.Is(err, puzzle.ErrConsistency) {
		t.Errorf("zero map: error = %v, want ErrConsistency", err)
	}
	if _, _, err := puzzle.Reassemble(tiles[:4], puzzle.IdentityPlacement(3)); !errors.Is(err, puzzle.ErrConsistency) {
		t.Errorf("length mismatch: error = %v, want ErrConsistency", err)
	}
	if _, _, err := puzzle.Reassemble([]image.Image{nil}, puzzle.IdentityPlacement(1)); !errors.Is(err, puzzle.ErrInput) {
		t.Errorf("nil tile: error = %v, want ErrInput", err)
	}
}

func TestGridSide(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 3: 1, 4: 2, 8: 2, 9: 3, 99: 9, 100: 10}
	for count, want := range cases {
		if got := puzzle.GridSide(count); got != want {
			t.Errorf("GridSide(%d) = %d, want %d", count, got, want)
		}
	}
}
