package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 6)

	if s.Width() != 20 || s.Height() != 6 {
		t.Errorf("size = %dx%d, expected 20x6", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != strings.Repeat(" ", 20) {
			t.Errorf("row %d not blank: %q", y, s.Row(y))
		}
	}
}

func TestScreenSetGetBounds(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(0, 100) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipsAndCounts(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawText(5, 0, "90°°°")

	if s.Row(0) != "     90°" {
		t.Errorf("row 0 = %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(NewRect(10, 0, 10, 3), 1, "07")

	if s.Get(14, 1) != '0' || s.Get(15, 1) != '7' {
		t.Errorf("row 1 = %q", s.Row(1))
	}
}

func TestScreenDrawBoxStyles(t *testing.T) {
	tests := []struct {
		style        BoxStyle
		corner, edge rune
		vertical     rune
	}{
		{BoxLight, '┌', '─', '│'},
		{BoxHeavy, '┏', '━', '┃'},
		{BoxDouble, '╔', '═', '║'},
	}

	for _, tc := range tests {
		s := NewScreen(6, 4)
		s.DrawBox(NewRect(0, 0, 5, 4), tc.style)

		if s.Get(0, 0) != tc.corner {
			t.Errorf("style %d: corner = %q, expected %q", tc.style, s.Get(0, 0), tc.corner)
		}
		if s.Get(2, 3) != tc.edge {
			t.Errorf("style %d: bottom edge = %q, expected %q", tc.style, s.Get(2, 3), tc.edge)
		}
		if s.Get(4, 1) != tc.vertical {
			t.Errorf("style %d: right edge = %q, expected %q", tc.style, s.Get(4, 1), tc.vertical)
		}
		if s.Get(5, 1) != ' ' {
			t.Errorf("style %d: box drawn outside its rect", tc.style)
		}
	}
}

func TestScreenStringTrimsRows(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "AB")
	s.DrawText(2, 2, "C")

	if got, want := s.String(), "AB\n\n  C"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawText(0, 0, "Hello")
	s.Resize(12, 5)

	if s.Width() != 12 || s.Height() != 5 {
		t.Errorf("size = %dx%d, expected 12x5", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}
