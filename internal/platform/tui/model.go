// Package tui runs jigsaw puzzles in the terminal with Bubble Tea: key
// bindings, half-block picture rendering, the history browser and the SSH
// server that serves sessions remotely.
package tui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/game"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// chromeRows is the space taken by the title, status and help lines.
const chromeRows = 4

// TickMsg advances the session clock.
type TickMsg time.Time

// clock ticks rate times per second, aligned to the system clock.
func clock(rate int) tea.Cmd {
	return tea.Every(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Session is everything a Model needs to run one puzzle.
type Session struct {
	Puzzle      *puzzle.Puzzle
	Title       string // Shown above the board, usually the picture name
	RunID       string // History run the solve is recorded against; empty skips saving
	Player      string
	CellWidth   int // Preferred columns per tile
	ShowPreview bool
}

// Model is the Bubble Tea model for a puzzle session.
type Model struct {
	game     *game.Game
	session  Session
	art      *TileArt
	renderer *lipgloss.Renderer
	text     *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	status   string
	quitting bool
	saved    bool // Whether the solve has been recorded
}

// NewModel creates a model for the session. r may be nil for the default
// renderer; SSH sessions pass one bound to their own output.
func NewModel(s Session, store *storage.Store, cfg core.RuntimeConfig, r *lipgloss.Renderer) (Model, error) {
	g, err := game.New(s.Puzzle.Placement)
	if err != nil {
		return Model{}, err
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 1
	}

	m := Model{
		game:     g,
		session:  s,
		renderer: r,
		store:    store,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	g.Reset(cfg)
	if err := m.layout(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// layout picks the largest cell width up to the preferred one that fits the
// screen and renders the tiles for it. When even the smallest cells do not
// fit, the board falls back to text.
func (m *Model) layout() error {
	n := m.game.Board().Size()
	width := m.session.CellWidth
	for ; width >= 2; width -= 2 {
		w, h := BoardSize(n, width)
		if w <= m.config.ScreenW && h+chromeRows <= m.config.ScreenH {
			break
		}
	}

	if width < 2 {
		m.art = nil
		tw, th := game.TextSize(n)
		m.text = core.NewScreen(tw, th)
		return nil
	}
	if m.art != nil && m.art.Width() == width {
		return nil
	}

	var square image.Image
	if m.session.ShowPreview {
		square = m.session.Puzzle.Square
	}
	art, err := NewTileArt(m.renderer, m.session.Puzzle.Tiles, square, width)
	if err != nil {
		return err
	}
	m.art = art
	m.text = nil
	return nil
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return clock(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.game.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		if err := m.layout(); err != nil {
			m.status = err.Error()
		}
		return m, nil

	case TickMsg:
		m.game.Tick()
		return m, clock(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		m.saved = false
		m.status = ""
	}

	result := m.game.Step(core.FrameOf(action))
	if result.JustSolved {
		m.recordSolve(result.State)
	}
	return m, nil
}

// recordSolve saves the finished game once.
func (m *Model) recordSolve(st core.GameState) {
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil || m.session.RunID == "" {
		return
	}
	_, err := m.store.SaveSolve(storage.Solve{
		RunID:        m.session.RunID,
		Player:       m.session.Player,
		Moves:        st.Moves,
		Rotations:    st.Rotations,
		DurationSecs: st.Elapsed,
	})
	if err != nil {
		m.status = err.Error()
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title()))
	b.WriteString("\n")

	if m.art == nil {
		m.game.Render(m.text)
		b.WriteString(m.text.String())
	} else {
		board := RenderBoard(m.game, m.art)
		if m.game.Preview() {
			board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", RenderPreview(m.art))
		}
		b.WriteString(board)
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.statusLine()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) title() string {
	n := m.game.Board().Size()
	title := fmt.Sprintf("JIGSAW %dx%d", n, n)
	if m.session.Title != "" {
		title += " - " + m.session.Title
	}
	return title
}

func (m Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	st := m.game.State()
	clock := (time.Duration(st.Elapsed) * time.Second).String()
	switch {
	case st.Solved:
		return fmt.Sprintf("Solved! %d moves, %d turns in %s. r to play again", st.Moves, st.Rotations, clock)
	case st.Paused:
		return "Paused. p to resume"
	}
	return fmt.Sprintf("Moves %d  Turns %d  Left %d  %s",
		st.Moves, st.Rotations, m.game.Board().Misplaced(), clock)
}

// State returns the state of the underlying game.
func (m Model) State() core.GameState {
	return m.game.State()
}

// Run starts the Bubble Tea program for a local session.
func Run(s Session, store *storage.Store, cfg core.RuntimeConfig) (core.GameState, error) {
	model, err := NewModel(s, store, cfg, nil)
	if err != nil {
		return core.GameState{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return model.State(), nil
}
