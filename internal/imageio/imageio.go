// Package imageio decodes pictures from disk and encodes tiles back to it.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register the WebP decoder with image.Decode

	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// Extensions lists the picture formats Open understands.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Supported reports whether path has a decodable picture extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Open decodes the picture at path, honouring EXIF orientation.
// Missing or undecodable files are reported as puzzle.InputError.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		code := "UNREADABLE"
		if errors.Is(err, os.ErrNotExist) {
			code = "NOT_FOUND"
		}
		return nil, puzzle.InputError{Code: code, Message: fmt.Sprintf("open %s: %v", path, err)}
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, puzzle.InputError{Code: "UNDECODABLE", Message: fmt.Sprintf("decode %s: %v", path, err)}
	}
	return img, nil
}

// Decode reads a picture from r.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// Save encodes img to path, picking the format from the extension.
// Paths without a known extension are written as PNG.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("imageio: cannot create directory %s: %w", dir, err)
		}
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		format = imaging.PNG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: cannot create %s: %w", path, err)
	}
	if err := imaging.Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("imageio: cannot encode %s: %w", path, err)
	}
	return f.Close()
}

// List returns the decodable pictures directly inside dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("imageio: cannot read %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
