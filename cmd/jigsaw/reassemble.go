package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/bundle"
	"github.com/vovakirdan/tui-jigsaw/internal/imageio"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/sheet"
)

const reassembledFile = "reassembled.png"

var (
	flagReassembleOut string
	flagVerify        string
	flagSteps         bool
)

var reassembleCmd = &cobra.Command{
	Use:   "reassemble <dir>",
	Short: "Rebuild the picture from a puzzle bundle",
	Long: `Read a bundle written by 'jigsaw shuffle', undo every placement and
rotation, and write the restored square picture.

With --verify the result is compared pixel for pixel against the tiles cut
from the given source picture.

Examples:
  jigsaw reassemble cat_puzzle
  jigsaw reassemble cat_puzzle --steps
  jigsaw reassemble cat_puzzle --verify cat.jpg -o restored.png`,
	Args: cobra.ExactArgs(1),
	RunE: runReassemble,
}

func init() {
	reassembleCmd.Flags().StringVarP(&flagReassembleOut, "out", "o", "", "Output image (default <dir>/reassembled.png)")
	reassembleCmd.Flags().StringVar(&flagVerify, "verify", "", "Source picture to compare the result against")
	reassembleCmd.Flags().BoolVar(&flagSteps, "steps", false, "Print the slot and counter-rotation used for every tile")
}

func runReassemble(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	dir := args[0]

	prog := newProgress(logger)
	b, err := bundle.Read(ctx, dir)
	if err != nil {
		return err
	}
	prog.done("read bundle", "dir", dir, "grid", b.Placement.GridSize(), "run", b.RunID)

	tiles, steps, err := puzzle.Reassemble(b.Tiles, b.Placement)
	if err != nil {
		return err
	}
	for k, s := range steps {
		logger.Debug("restored tile", "tile", k, "slot", s.ShuffleID, "rotate", s.InverseAngle)
		if flagSteps {
			fmt.Fprintf(os.Stdout, "%d\t%d\t%s\n", k, s.ShuffleID, s.InverseAngle)
		}
	}

	picture, err := sheet.Compose(tiles, sheet.Layout{})
	if err != nil {
		return err
	}
	out := flagReassembleOut
	if out == "" {
		out = filepath.Join(dir, reassembledFile)
	}
	if err := imageio.Save(out, picture); err != nil {
		return err
	}
	logger.Info("wrote picture", "path", out, "size", picture.Bounds().Dx())

	if flagVerify != "" {
		if err := verify(flagVerify, b.Placement.GridSize(), tiles); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Verified %d tiles against %s\n", len(tiles), flagVerify)
	}
	return nil
}

// verify cuts the source picture again and compares it tile by tile.
func verify(source string, n int, tiles []image.Image) error {
	img, err := imageio.Open(source)
	if err != nil {
		return err
	}
	p, err := puzzle.Prepare(img, puzzle.Options{GridSize: n}, nil)
	if err != nil {
		return err
	}
	for k, want := range p.Tiles {
		if !puzzle.SamePixels(want, tiles[k]) {
			return fmt.Errorf("verify: tile %d differs from %s", k, source)
		}
	}
	return nil
}
