package bundle

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

func testPuzzle(t *testing.T, n int, seed int64) *puzzle.Puzzle {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 24, 18))
	for y := range 18 {
		for x := range 24 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 13), B: uint8(x ^ y), A: 255})
		}
	}
	p, err := puzzle.Prepare(img, puzzle.Options{GridSize: n, Shuffle: true, Rotate: true},
		rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	return p
}

func TestWriteReadRoundTrip(t *testing.T) {
	p := testPuzzle(t, 3, 7)
	dir := t.TempDir()
	in := Bundle{
		Meta:      Meta{RunID: "run-1", Source: "cat.jpg", Seed: 7},
		Placement: p.Placement,
		Tiles:     p.Shuffled,
	}
	if err := Write(context.Background(), dir, in); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out, err := Read(context.Background(), dir)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if diff := cmp.Diff(in.Meta, out.Meta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(p.Placement.Entries(), out.Placement.Entries()); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}
	for i := range p.Shuffled {
		if !puzzle.SamePixels(out.Tiles[i], p.Shuffled[i]) {
			t.Errorf("slot %d pixels changed", i)
		}
	}

	restored, _, err := puzzle.Reassemble(out.Tiles, out.Placement)
	if err != nil {
		t.Fatalf("Reassemble() error: %v", err)
	}
	for k := range p.Tiles {
		if !puzzle.SamePixels(restored[k], p.Tiles[k]) {
			t.Errorf("tile %d not restored from disk", k)
		}
	}
}

func TestWriteRejectsMismatchedTiles(t *testing.T) {
	p := testPuzzle(t, 2, 1)
	err := Write(context.Background(), t.TempDir(), Bundle{Placement: p.Placement, Tiles: p.Shuffled[:3]})
	if !errors.Is(err, puzzle.ErrConsistency) {
		t.Errorf("Write() error = %v, want ErrConsistency", err)
	}
}

func TestReadCorruptPlacement(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate slot", "version: 1\ngrid_size: 2\ntiles:\n" +
			"  - {orig: 0, shuffle_id: 0, angle: 0}\n  - {orig: 1, shuffle_id: 0, angle: 0}\n" +
			"  - {orig: 2, shuffle_id: 2, angle: 0}\n  - {orig: 3, shuffle_id: 3, angle: 0}\n"},
		{"duplicate origin", "version: 1\ngrid_size: 2\ntiles:\n  - {orig: 0, shuffle_id: 0, angle: 0}\n" +
			"  - {orig: 0, shuffle_id: 0, angle: 0}\n  - {orig: 0, shuffle_id: 0, angle: 0}\n  - {orig: 0, shuffle_id: 0, angle: 0}\n"},
		{"grid mismatch", "version: 1\ngrid_size: 3\ntiles:\n  - {orig: 0, shuffle_id: 0, angle: 0}\n"},
		{"bad angle", "version: 1\ngrid_size: 1\ntiles:\n  - {orig: 0, shuffle_id: 0, angle: 45}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, PlacementFile), []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Read(context.Background(), dir); !errors.Is(err, puzzle.ErrConsistency) {
				t.Errorf("Read() error = %v, want ErrConsistency", err)
			}
		})
	}
}

func TestReadMissingTile(t *testing.T) {
	p := testPuzzle(t, 2, 3)
	dir := t.TempDir()
	if err := Write(context.Background(), dir, Bundle{Placement: p.Placement, Tiles: p.Shuffled}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := os.Remove(TilePath(dir, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(context.Background(), dir); !errors.Is(err, puzzle.ErrInput) {
		t.Errorf("Read() error = %v, want ErrInput", err)
	}
}

func TestEncodeDecodePlacement(t *testing.T) {
	pm, err := puzzle.NewPlacementMap([]puzzle.PlacementEntry{
		{ShuffleID: 2, Angle: puzzle.Angle90},
		{ShuffleID: 0, Angle: puzzle.Angle0},
		{ShuffleID: 3, Angle: puzzle.Angle270},
		{ShuffleID: 1, Angle: puzzle.Angle180},
	})
	if err != nil {
		t.Fatalf("NewPlacementMap() error: %v", err)
	}
	data, err := EncodePlacement(pm)
	if err != nil {
		t.Fatalf("EncodePlacement() error: %v", err)
	}
	if !strings.Contains(string(data), "grid_size: 2") {
		t.Errorf("encoded document lacks grid size:\n%s", data)
	}

	got, err := DecodePlacement(data)
	if err != nil {
		t.Fatalf("DecodePlacement() error: %v", err)
	}
	if diff := cmp.Diff(pm.Entries(), got.Entries()); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	if _, err := DecodePlacement([]byte("version: 99\ngrid_size: 1\ntiles: []\n")); err == nil {
		t.Error("expected error for unsupported version")
	}
}
