package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/imageio"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// Cutting flags shared by shuffle and play.
var (
	flagGrid      int
	flagNoRotate  bool
	flagNoShuffle bool
)

func addCutFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&flagGrid, "grid", "n", 0, "Tiles per side (default from config)")
	cmd.Flags().BoolVar(&flagNoRotate, "no-rotate", false, "Keep tiles upright")
	cmd.Flags().BoolVar(&flagNoShuffle, "no-shuffle", false, "Keep tiles in order")
}

// cutOptions merges the cutting flags over the loaded config.
func cutOptions() puzzle.Options {
	opts := puzzle.Options{
		GridSize: appConfig.Grid.Size,
		Shuffle:  appConfig.Grid.Shuffle && !flagNoShuffle,
		Rotate:   appConfig.Grid.Rotate && !flagNoRotate,
	}
	if flagGrid != 0 {
		opts.GridSize = flagGrid
	}
	return opts
}

// cutPicture opens path and prepares a puzzle from it.
func cutPicture(path string, opts puzzle.Options, seed int64) (*puzzle.Puzzle, error) {
	img, err := imageio.Open(path)
	if err != nil {
		return nil, err
	}
	return puzzle.Prepare(img, opts, puzzle.NewRandomSource(seed))
}

// resolveSeed returns the --seed value, or a time-based seed that is
// reported so the run can be repeated.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return puzzle.NewRandomSource(0).Int63()
}

// defaultBundleDir names the bundle directory after the picture:
// cat.jpg -> cat_puzzle.
func defaultBundleDir(picture string) string {
	base := filepath.Base(picture)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(picture), fmt.Sprintf("%s_puzzle", name))
}
