package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-jigsaw/internal/bundle"
	"github.com/vovakirdan/tui-jigsaw/internal/imageio"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// writePicture saves a 90x60 gradient so every tile is distinguishable.
func writePicture(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 90, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 90; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 4), B: uint8(x + y), A: 255})
		}
	}
	if err := imageio.Save(path, img); err != nil {
		t.Fatalf("save picture: %v", err)
	}
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "jigsaw.yaml")
	data := "grid:\n  size: 3\n  shuffle: true\n  rotate: true\nsheet:\n  titles: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestShuffleThenReassemble(t *testing.T) {
	dir := t.TempDir()
	picture := filepath.Join(dir, "gradient.png")
	writePicture(t, picture)
	cfgPath := writeConfig(t, dir)
	db := filepath.Join(dir, "history.db")
	out := filepath.Join(dir, "bundle")

	err := execute(t, "shuffle", picture, "--config", cfgPath, "--db", db, "--seed", "11", "--out", out)
	if err != nil {
		t.Fatalf("shuffle failed: %v", err)
	}

	for _, name := range []string{bundle.PlacementFile, originalSheet, shuffledSheet} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	b, err := bundle.Read(context.Background(), out)
	if err != nil {
		t.Fatalf("bundle.Read() failed: %v", err)
	}
	if b.Placement.GridSize() != 3 || b.Seed != 11 {
		t.Errorf("bundle grid %d seed %d, want 3 and 11", b.Placement.GridSize(), b.Seed)
	}

	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	run, err := store.RunByID(b.RunID)
	store.Close()
	if err != nil || run == nil {
		t.Fatalf("run %q not recorded: %v", b.RunID, err)
	}

	restored := filepath.Join(dir, "restored.png")
	err = execute(t, "reassemble", out, "--config", cfgPath, "--db", db, "--out", restored, "--verify", picture)
	if err != nil {
		t.Fatalf("reassemble failed: %v", err)
	}

	got, err := imageio.Open(restored)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	if got.Bounds().Dx() != 60 || got.Bounds().Dy() != 60 {
		t.Errorf("restored size = %v, want 60x60", got.Bounds().Size())
	}
}

func TestReassembleCorruptBundle(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	out := filepath.Join(dir, "broken")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "version: 1\ngrid_size: 2\ntiles:\n" +
		"  - {orig: 0, shuffle_id: 0, angle: 0}\n" +
		"  - {orig: 1, shuffle_id: 0, angle: 0}\n" +
		"  - {orig: 2, shuffle_id: 2, angle: 0}\n" +
		"  - {orig: 3, shuffle_id: 3, angle: 0}\n"
	if err := os.WriteFile(filepath.Join(out, bundle.PlacementFile), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "reassemble", out, "--config", cfgPath, "--db", filepath.Join(dir, "h.db"), "--out", "", "--verify", "")
	if !errors.Is(err, puzzle.ErrConsistency) {
		t.Fatalf("reassemble error = %v, want consistency error", err)
	}
	if !strings.HasPrefix(describe(err), "inconsistent placement metadata") {
		t.Errorf("describe() = %q", describe(err))
	}
}

func TestDescribe(t *testing.T) {
	in := puzzle.InputError{Code: "GRID_SIZE", Message: "grid size must be positive"}
	if got := describe(in); !strings.HasPrefix(got, "invalid input: ") {
		t.Errorf("describe(input) = %q", got)
	}
	if got := describe(errors.New("boom")); got != "boom" {
		t.Errorf("describe(plain) = %q", got)
	}
}

func TestDefaultBundleDir(t *testing.T) {
	got := defaultBundleDir(filepath.Join("pics", "cat.photo.jpg"))
	want := filepath.Join("pics", "cat.photo_puzzle")
	if got != want {
		t.Errorf("defaultBundleDir() = %q, want %q", got, want)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("firstNonEmpty() = %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty() = %q, want empty", got)
	}
}
