// Package puzzle implements the grid puzzle transform: cropping a picture to
// a centered square, slicing it into an n x n grid of tiles, shuffling and
// rotating the tiles, and reassembling them exactly from the recorded
// placement.
//
// The package is pure and synchronous. Pixel work is delegated to
// github.com/disintegration/imaging; decoding and display live elsewhere.
package puzzle

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// CropSquare cuts the largest centered square out of img.
// Odd leftovers are split with the extra pixel on the right/bottom side.
func CropSquare(img image.Image) (image.Image, error) {
	if img == nil {
		return nil, inputErrorf("NIL_IMAGE", "no image to crop")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, inputErrorf("EMPTY_IMAGE", "image has zero dimension %dx%d", w, h)
	}

	side := min(w, h)
	left := (w - side) / 2
	top := (h - side) / 2
	rect := image.Rect(left, top, left+side, top+side).Add(b.Min)
	return imaging.Crop(img, rect), nil
}

// Slice partitions img into n x n tiles in row-major order and returns them
// with the identity placement. Piece size is floored, so trailing pixel rows
// and columns that do not divide evenly by n are dropped.
func Slice(img image.Image, n int) ([]image.Image, PlacementMap, error) {
	if n < 1 {
		return nil, PlacementMap{}, inputErrorf("GRID_SIZE", "grid size %d must be at least 1", n)
	}
	if img == nil {
		return nil, PlacementMap{}, inputErrorf("NIL_IMAGE", "no image to slice")
	}

	b := img.Bounds()
	pieceW := b.Dx() / n
	pieceH := b.Dy() / n
	if pieceW == 0 || pieceH == 0 {
		return nil, PlacementMap{}, inputErrorf("GRID_TOO_FINE",
			"grid size %d exceeds image size %dx%d", n, b.Dx(), b.Dy())
	}

	tiles := make([]image.Image, 0, n*n)
	for row := range n {
		for col := range n {
			rect := image.Rect(col*pieceW, row*pieceH, (col+1)*pieceW, (row+1)*pieceH).Add(b.Min)
			tiles = append(tiles, imaging.Crop(img, rect))
		}
	}
	return tiles, IdentityPlacement(n), nil
}

// Rotate turns img clockwise by a, growing the bounds so nothing is clipped.
// Right-angle rotations are lossless. The result never aliases img.
func Rotate(img image.Image, a Angle) (*image.NRGBA, error) {
	if img == nil {
		return nil, inputErrorf("NIL_IMAGE", "no image to rotate")
	}
	// imaging rotates counter-clockwise.
	switch a {
	case Angle0:
		return imaging.Clone(img), nil
	case Angle90:
		return imaging.Rotate270(img), nil
	case Angle180:
		return imaging.Rotate180(img), nil
	case Angle270:
		return imaging.Rotate90(img), nil
	default:
		return nil, consistencyErrorf("INVALID_ANGLE", "angle %d not in {0, 90, 180, 270}", int(a))
	}
}

// SamePixels reports whether a and b have equal dimensions and identical
// colours at every pixel, ignoring where their bounds start.
func SamePixels(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == b
	}
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}
	for y := range ab.Dy() {
		for x := range ab.Dx() {
			ca := color.NRGBAModel.Convert(a.At(ab.Min.X+x, ab.Min.Y+y))
			cb := color.NRGBAModel.Convert(b.At(bb.Min.X+x, bb.Min.Y+y))
			if ca != cb {
				return false
			}
		}
	}
	return true
}
