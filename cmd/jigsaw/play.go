package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jigsaw/internal/bundle"
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/sheet"
)

var flagCellWidth int

var playCmd = &cobra.Command{
	Use:   "play <image|bundle>",
	Short: "Solve a puzzle in the terminal",
	Long: `Cut a picture into a puzzle, or load a bundle written by 'jigsaw shuffle',
and solve it by swapping and turning tiles.

Controls:
  Arrows/hjkl  - Move cursor
  Space/Enter  - Pick a tile, then pick another to swap them
  E / Z        - Turn tile clockwise / counter-clockwise
  Tab          - Show the solved picture
  P/Esc        - Pause
  R            - Restart
  ?            - All keys
  Q/Ctrl+C     - Quit

Examples:
  jigsaw play cat.jpg
  jigsaw play cat.jpg --difficulty hard
  jigsaw play cat_puzzle`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addCutFlags(playCmd)
	playCmd.Flags().IntVar(&flagCellWidth, "cell-width", 0, "Terminal columns per tile (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	target := args[0]

	// Get terminal size early so the board can be laid out
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	session, seed, err := loadSession(cmd, target)
	if err != nil {
		return err
	}
	session.Title = filepath.Base(target)
	session.CellWidth = appConfig.Play.CellWidth
	if flagCellWidth > 0 {
		session.CellWidth = flagCellWidth
	}
	session.ShowPreview = appConfig.Play.ShowPreview
	session.Player = os.Getenv("USER")

	store := openStore(cmd)
	if store != nil {
		defer store.Close()
		if session.RunID != "" {
			if run, err := store.RunByID(session.RunID); err != nil || run == nil {
				session.RunID = "" // Bundle from another machine
			}
		}
	}
	if session.RunID == "" {
		session.RunID = recordRun(cmd, store, target, seed, session.Puzzle)
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: 1,
		Seed:     seed,
	}
	logger.Debug("starting session", "grid", session.Puzzle.GridSize(), "run", session.RunID)

	st, err := tui.Run(session, store, cfg)
	if err != nil {
		return fmt.Errorf("running puzzle: %w", err)
	}
	if st.Solved {
		fmt.Printf("Solved in %d moves and %d turns (%ds)\n", st.Moves, st.Rotations, st.Elapsed)
	}
	return nil
}

// loadSession prepares a puzzle from a picture, or restores one from a bundle
// directory. Returns the seed the puzzle was shuffled with.
func loadSession(cmd *cobra.Command, target string) (tui.Session, int64, error) {
	info, err := os.Stat(target)
	if err != nil {
		return tui.Session{}, 0, puzzle.InputError{Code: "NOT_FOUND", Message: err.Error()}
	}

	if !info.IsDir() {
		seed := resolveSeed()
		p, err := cutPicture(target, cutOptions(), seed)
		if err != nil {
			return tui.Session{}, 0, err
		}
		return tui.Session{Puzzle: p}, seed, nil
	}

	b, err := bundle.Read(cmd.Context(), target)
	if err != nil {
		return tui.Session{}, 0, err
	}
	tiles, _, err := puzzle.Reassemble(b.Tiles, b.Placement)
	if err != nil {
		return tui.Session{}, 0, err
	}
	square, err := sheet.Compose(tiles, sheet.Layout{})
	if err != nil {
		return tui.Session{}, 0, err
	}
	p := &puzzle.Puzzle{
		Square:    square,
		Tiles:     tiles,
		Shuffled:  b.Tiles,
		Placement: b.Placement,
	}
	return tui.Session{Puzzle: p, RunID: b.RunID}, b.Seed, nil
}
