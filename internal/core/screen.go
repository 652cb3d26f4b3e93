package core

import (
	"strings"
)

// Screen is a 2D character buffer used for the text rendition of the board.
// The platform prints it when the terminal is too small for picture cells.
type Screen struct {
	width  int
	height int
	cells  [][]rune
}

// BoxStyle selects the line set used by DrawBox.
type BoxStyle int

const (
	BoxLight  BoxStyle = iota // ┌─┐
	BoxHeavy                  // ┏━┓ marks the cursor
	BoxDouble                 // ╔═╗ marks a picked tile
)

var boxRunes = map[BoxStyle][6]rune{
	BoxLight:  {'┌', '┐', '└', '┘', '─', '│'},
	BoxHeavy:  {'┏', '┓', '┗', '┛', '━', '┃'},
	BoxDouble: {'╔', '╗', '╚', '╝', '═', '║'},
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]rune, s.height)
	for y := range s.cells {
		s.cells[y] = make([]rune, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions and clears it.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = r
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// DrawTextCentered draws text centered horizontally inside r at row y.
func (s *Screen) DrawTextCentered(r Rect, y int, text string) {
	x := r.X + (r.W-len([]rune(text)))/2
	s.DrawText(x, y, text)
}

// DrawBox draws a box outline along the edges of r.
func (s *Screen) DrawBox(r Rect, style BoxStyle) {
	rs, ok := boxRunes[style]
	if !ok {
		rs = boxRunes[BoxLight]
	}

	s.Set(r.X, r.Y, rs[0])
	s.Set(r.Right()-1, r.Y, rs[1])
	s.Set(r.X, r.Bottom()-1, rs[2])
	s.Set(r.Right()-1, r.Bottom()-1, rs[3])

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, rs[4])
		s.Set(x, r.Bottom()-1, rs[4])
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, rs[5])
		s.Set(r.Right()-1, y, rs[5])
	}
}

// String converts the screen buffer to a printable string.
// Trailing spaces are trimmed from each row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(strings.TrimRight(string(s.cells[y]), " "))
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	return string(s.cells[y])
}
