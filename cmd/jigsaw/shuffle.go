package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/bundle"
	"github.com/vovakirdan/tui-jigsaw/internal/imageio"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/sheet"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// Sheet files written next to the bundle.
const (
	originalSheet = "original.png"
	shuffledSheet = "shuffled.png"
)

var flagOut string

var shuffleCmd = &cobra.Command{
	Use:   "shuffle <image>",
	Short: "Cut a picture into a shuffled puzzle bundle",
	Long: `Crop a picture to a centered square, cut it into an n x n grid, shuffle
and turn the tiles, and write them as a bundle directory:

  <out>/placement.yaml     placement metadata
  <out>/tiles/slot_NNN.png one image per shuffled slot
  <out>/original.png       tiles in original order
  <out>/shuffled.png       tiles as shuffled

The run is recorded in the history database.

Examples:
  jigsaw shuffle cat.jpg
  jigsaw shuffle cat.jpg --grid 5 --seed 42 --out puzzles/cat
  jigsaw shuffle cat.jpg --no-rotate`,
	Args: cobra.ExactArgs(1),
	RunE: runShuffle,
}

func init() {
	addCutFlags(shuffleCmd)
	shuffleCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Bundle directory (default <image>_puzzle)")
}

func runShuffle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	picture := args[0]

	out := flagOut
	if out == "" {
		out = defaultBundleDir(picture)
	}

	seed := resolveSeed()
	opts := cutOptions()
	prog := newProgress(logger)
	p, err := cutPicture(picture, opts, seed)
	if err != nil {
		return err
	}
	prog.done("cut picture", "grid", p.GridSize(), "tile", p.Tiles[0].Bounds().Dx(), "seed", seed)

	store := openStore(cmd)
	if store != nil {
		defer store.Close()
	}
	runID := recordRun(cmd, store, picture, seed, p)

	prog = newProgress(logger)
	b := bundle.Bundle{
		Meta:      bundle.Meta{RunID: runID, Source: picture, Seed: seed},
		Placement: p.Placement,
		Tiles:     p.Shuffled,
	}
	if err := bundle.Write(ctx, out, b); err != nil {
		return err
	}
	prog.done("wrote bundle", "dir", out, "tiles", len(p.Shuffled))

	if err := writeSheet(filepath.Join(out, originalSheet), p.Tiles, "original"); err != nil {
		return err
	}
	if err := writeSheet(filepath.Join(out, shuffledSheet), p.Shuffled, "shuffled"); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %dx%d puzzle to %s (run %s, seed %d)\n",
		p.GridSize(), p.GridSize(), out, runID, seed)
	return nil
}

// recordRun stores the run and returns its ID. Without a database the ID is
// generated locally so the bundle still carries one.
func recordRun(cmd *cobra.Command, store *storage.Store, picture string, seed int64, p *puzzle.Puzzle) string {
	logger := loggerFromContext(cmd.Context())
	if store == nil {
		return uuid.NewString()
	}

	doc, err := bundle.EncodePlacement(p.Placement)
	if err != nil {
		logger.Warn("could not encode placement", "error", err)
		return uuid.NewString()
	}
	runID, err := store.SaveRun(storage.Run{
		Source:    picture,
		GridSize:  p.GridSize(),
		Seed:      seed,
		Placement: string(doc),
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return uuid.NewString()
	}
	logger.Debug("recorded run", "id", runID)
	return runID
}

// writeSheet composes tiles on a contact sheet using the sheet config.
func writeSheet(path string, tiles []image.Image, title string) error {
	bg, err := sheet.ParseColor(appConfig.Sheet.Background)
	if err != nil {
		return err
	}
	layout := sheet.Layout{Gap: appConfig.Sheet.Gap, Background: bg}
	if appConfig.Sheet.Titles {
		layout.Title = title
	}
	img, err := sheet.Compose(tiles, layout)
	if err != nil {
		return err
	}
	return imageio.Save(path, img)
}
