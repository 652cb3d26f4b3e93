package tui

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// swappedPuzzle is a 2x2 puzzle with its first two tiles exchanged.
func swappedPuzzle(t *testing.T) *puzzle.Puzzle {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 90, A: 255})
		}
	}
	tiles, _, err := puzzle.Slice(img, 2)
	if err != nil {
		t.Fatalf("Slice() failed: %v", err)
	}
	pm, err := puzzle.NewPlacementMap([]puzzle.PlacementEntry{
		{ShuffleID: 1}, {ShuffleID: 0}, {ShuffleID: 2}, {ShuffleID: 3},
	})
	if err != nil {
		t.Fatalf("NewPlacementMap() failed: %v", err)
	}
	return &puzzle.Puzzle{Square: img, Tiles: tiles, Placement: pm}
}

func newTestModel(t *testing.T, store *storage.Store, runID string, w, h int) Model {
	t.Helper()
	m, err := NewModel(Session{
		Puzzle:      swappedPuzzle(t),
		Title:       "test.png",
		RunID:       runID,
		Player:      "tester",
		CellWidth:   4,
		ShowPreview: true,
	}, store, core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 1}, nil)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{keySpace, core.ActionSelect},
		{keyRight, core.ActionRight},
		{keyTab, core.ActionReveal},
		{runes("e"), core.ActionRotate},
		{runes("z"), core.ActionRotateBack},
		{runes("k"), core.ActionUp},
		{runes("r"), core.ActionRestart},
		{runes("q"), core.ActionQuit},
		{runes("?"), core.ActionNone},
		{runes("y"), core.ActionNone},
	}
	for _, tc := range tests {
		if got := keys.Action(tc.msg); got != tc.want {
			t.Errorf("Action(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestModelSolvesAndRecords(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()
	runID, err := store.SaveRun(storage.Run{Source: "test.png", GridSize: 2, Placement: "x"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := newTestModel(t, store, runID, 120, 40)
	m = send(m, TickMsg{}, keySpace, keyRight, keySpace)

	st := m.State()
	if !st.Solved || st.Moves != 1 || st.Elapsed != 1 {
		t.Errorf("state = %+v, want solved after 1 move and 1s", st)
	}
	if !strings.Contains(m.View(), "Solved!") {
		t.Errorf("view should announce the solve:\n%s", m.View())
	}

	solves, err := store.BestSolves(2, 10)
	if err != nil {
		t.Fatalf("BestSolves() failed: %v", err)
	}
	if len(solves) != 1 || solves[0].Player != "tester" || solves[0].Moves != 1 {
		t.Errorf("recorded solves = %+v", solves)
	}
}

func TestModelTextFallback(t *testing.T) {
	m := newTestModel(t, nil, "", 12, 6)
	if m.art != nil {
		t.Fatal("tiny screen should use the text board")
	}
	view := m.View()
	if !strings.Contains(view, "02") || !strings.Contains(view, "0°") {
		t.Errorf("text board missing tile labels:\n%s", view)
	}

	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.art == nil || m.art.Width() != 4 {
		t.Error("resize should switch to picture cells")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil, "", 120, 40)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestTileArtGeometry(t *testing.T) {
	p := swappedPuzzle(t)
	art, err := NewTileArt(lipgloss.DefaultRenderer(), p.Tiles, p.Square, 5)
	if err != nil {
		t.Fatalf("NewTileArt() failed: %v", err)
	}

	if art.Width() != 4 {
		t.Errorf("Width() = %d, want odd widths rounded down to 4", art.Width())
	}
	for _, a := range puzzle.Angles {
		if lines := art.Lines(0, a); len(lines) != 2 {
			t.Errorf("tile at %v has %d rows, want 2", a, len(lines))
		}
	}
	if len(art.preview) != 4 {
		t.Errorf("preview has %d rows, want 4", len(art.preview))
	}
	if RenderPreview(art) == "" {
		t.Error("RenderPreview() should not be empty")
	}
}

func TestBoardSize(t *testing.T) {
	w, h := BoardSize(3, 8)
	if w != 30 || h != 18 {
		t.Errorf("BoardSize(3, 8) = %d, %d; want 30, 18", w, h)
	}
}
