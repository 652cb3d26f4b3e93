// Package sheet lays out an ordered sequence of tiles as a grid on a single
// raster image, optionally under a title. It stands in for an on-screen
// viewer: callers save the sheet to a file.
package sheet

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// Layout controls how tiles are arranged.
type Layout struct {
	Rows, Cols int         // Grid shape; 0 means floor(sqrt(len(tiles))) for both
	Gap        int         // Pixels between cells and around the border
	Background color.Color // Fill behind tiles; nil means white
	Title      string      // Drawn centered above the grid when non-empty
}

const titleBand = 24 // Height of the title strip in pixels

// Compose draws tiles row-major into a Rows x Cols grid. Cells are sized to
// the largest tile so rotated, non-square tiles fit; smaller tiles are
// centered in their cell. Cells without a tile stay blank.
func Compose(tiles []image.Image, l Layout) (*image.NRGBA, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("sheet: no tiles to compose")
	}

	rows, cols := l.Rows, l.Cols
	if rows <= 0 || cols <= 0 {
		side := puzzle.GridSide(len(tiles))
		rows, cols = side, side
	}
	if rows*cols < len(tiles) {
		return nil, fmt.Errorf("sheet: %d tiles do not fit a %dx%d grid", len(tiles), rows, cols)
	}
	if l.Gap < 0 {
		return nil, fmt.Errorf("sheet: negative gap %d", l.Gap)
	}

	cellW, cellH := 0, 0
	for i, t := range tiles {
		if t == nil {
			return nil, fmt.Errorf("sheet: tile %d is nil", i)
		}
		b := t.Bounds()
		cellW = max(cellW, b.Dx())
		cellH = max(cellH, b.Dy())
	}

	top := 0
	if l.Title != "" {
		top = titleBand
	}
	width := cols*cellW + (cols+1)*l.Gap
	height := top + rows*cellH + (rows+1)*l.Gap

	bg := l.Background
	if bg == nil {
		bg = color.White
	}
	dst := imaging.New(width, height, bg)

	for i, t := range tiles {
		row, col := i/cols, i%cols
		b := t.Bounds()
		x := l.Gap + col*(cellW+l.Gap) + (cellW-b.Dx())/2
		y := top + l.Gap + row*(cellH+l.Gap) + (cellH-b.Dy())/2
		dst = imaging.Paste(dst, t, image.Pt(x, y))
	}

	if l.Title != "" {
		drawTitle(dst, l.Title, width)
	}
	return dst, nil
}

// drawTitle writes text centered in the title band using the 7x13 basic face.
func drawTitle(dst *image.NRGBA, text string, width int) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	adv := d.MeasureString(text).Ceil()
	x := max((width-adv)/2, 0)
	y := (titleBand + face.Ascent - face.Descent) / 2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". An empty string yields nil.
func ParseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	var r, g, b uint8
	a := uint8(255)
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("sheet: bad colour %q: %w", s, err)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return nil, fmt.Errorf("sheet: bad colour %q: %w", s, err)
		}
	default:
		return nil, fmt.Errorf("sheet: bad colour %q: want #rrggbb", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
