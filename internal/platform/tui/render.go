package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/vovakirdan/tui-jigsaw/internal/game"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// Board frame colours.
var (
	frameIdle   = lipgloss.Color("240")
	frameCursor = lipgloss.Color("229")
	framePicked = lipgloss.Color("212")
	frameHome   = lipgloss.Color("42")
)

// TileArt holds every tile pre-rendered as half-block text at each of the
// four angles. A cell is width columns by width/2 rows and shows width x
// width pixels, which looks square in a typical terminal font.
type TileArt struct {
	width   int
	frames  [][4][]string // [tile][angle/90] -> lines
	preview []string
	r       *lipgloss.Renderer
}

// NewTileArt scales and renders tiles, given in original order, for cells
// width columns wide. width is rounded down to an even number, minimum 2.
// square is the whole picture, rendered for the preview pane.
func NewTileArt(r *lipgloss.Renderer, tiles []image.Image, square image.Image, width int) (*TileArt, error) {
	if width < 2 {
		width = 2
	}
	width -= width % 2

	art := &TileArt{
		width:  width,
		frames: make([][4][]string, len(tiles)),
		r:      r,
	}
	for i, tile := range tiles {
		scaled := imaging.Resize(tile, width, width, imaging.Box)
		for j, a := range puzzle.Angles {
			rotated, err := puzzle.Rotate(scaled, a)
			if err != nil {
				return nil, err
			}
			art.frames[i][j] = art.halfBlocks(rotated)
		}
	}

	if square != nil {
		side := width * puzzle.GridSide(len(tiles))
		art.preview = art.halfBlocks(imaging.Resize(square, side, side, imaging.Box))
	}
	return art, nil
}

// Width returns the cell width in columns.
func (a *TileArt) Width() int {
	return a.width
}

// Lines returns the rendered rows of tile turned by angle.
func (a *TileArt) Lines(tile int, angle puzzle.Angle) []string {
	return a.frames[tile][int(angle)/90]
}

// halfBlocks renders two pixel rows per text row: the upper pixel as the
// foreground of '▀' and the lower one as its background.
func (a *TileArt) halfBlocks(img *image.NRGBA) []string {
	b := img.Bounds()
	lines := make([]string, 0, b.Dy()/2)
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexColor(img.NRGBAAt(x, y))
			bottom := hexColor(img.NRGBAAt(x, y+1))
			sb.WriteString(a.r.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// BoardSize returns the columns and rows RenderBoard needs for an n x n
// board with cells width columns wide.
func BoardSize(n, width int) (w, h int) {
	return n * (width + 2), n * (width/2 + 2)
}

// RenderBoard draws every slot of g framed by a border. The frame colour marks
// the cursor, the picked tile and tiles already home.
func RenderBoard(g *game.Game, art *TileArt) string {
	board := g.Board()
	n := board.Size()
	cursor := g.Cursor().Index(n)

	rows := make([]string, n)
	for y := 0; y < n; y++ {
		cells := make([]string, n)
		for x := 0; x < n; x++ {
			i := y*n + x
			slot := board.At(i)

			frame := frameIdle
			switch {
			case i == g.Picked():
				frame = framePicked
			case i == cursor:
				frame = frameCursor
			case slot.Home(i):
				frame = frameHome
			}

			style := art.r.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(frame)
			cells[x] = style.Render(strings.Join(art.Lines(slot.Tile, slot.Angle), "\n"))
		}
		rows[y] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderPreview draws the solved picture.
func RenderPreview(art *TileArt) string {
	if len(art.preview) == 0 {
		return ""
	}
	return art.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frameIdle).
		Render(strings.Join(art.preview, "\n"))
}
