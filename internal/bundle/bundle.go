// Package bundle stores a shuffled puzzle on disk: one image per shuffle
// slot under tiles/ and the placement metadata in placement.yaml.
package bundle

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-jigsaw/internal/imageio"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

const (
	PlacementFile = "placement.yaml"
	TilesDir      = "tiles"
)

// Bundle is a shuffled puzzle as stored on disk.
type Bundle struct {
	Meta
	Placement puzzle.PlacementMap
	Tiles     []image.Image // Shuffled tiles in slot order
}

// TilePath returns the file name of the tile in slot i.
func TilePath(dir string, i int) string {
	return filepath.Join(dir, TilesDir, fmt.Sprintf("slot_%03d.png", i))
}

// Write saves b under dir, creating it if needed.
func Write(ctx context.Context, dir string, b Bundle) error {
	if err := b.Placement.Validate(); err != nil {
		return err
	}
	if len(b.Tiles) != b.Placement.Len() {
		return puzzle.ConsistencyError{
			Code:    "LENGTH_MISMATCH",
			Message: fmt.Sprintf("placement has %d entries but bundle has %d tiles", b.Placement.Len(), len(b.Tiles)),
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, TilesDir), 0o755); err != nil {
		return fmt.Errorf("bundle: cannot create %s: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, tile := range b.Tiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return imageio.Save(TilePath(dir, i), tile)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("bundle: writing tiles: %w", err)
	}

	data, err := yaml.Marshal(toYAML(b.Placement, b.Meta))
	if err != nil {
		return fmt.Errorf("bundle: encoding placement: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, PlacementFile), data, 0o644); err != nil {
		return fmt.Errorf("bundle: writing placement: %w", err)
	}
	return nil
}

// Read loads the bundle stored under dir. A corrupted placement file is
// reported as a puzzle.ConsistencyError before any tile is decoded.
func Read(ctx context.Context, dir string) (*Bundle, error) {
	data, err := os.ReadFile(filepath.Join(dir, PlacementFile))
	if err != nil {
		return nil, puzzle.InputError{Code: "NOT_FOUND", Message: fmt.Sprintf("read placement: %v", err)}
	}
	pm, meta, err := parse(data)
	if err != nil {
		return nil, err
	}

	tiles := make([]image.Image, pm.Len())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range tiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := imageio.Open(TilePath(dir, i))
			if err != nil {
				return err
			}
			tiles[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Bundle{Meta: meta, Placement: pm, Tiles: tiles}, nil
}
