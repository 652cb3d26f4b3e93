// Package setup prepares a picture folder from bundled zip archives.
package setup

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Options locates the archives and the folder they are unpacked into.
type Options struct {
	ArchiveDir string // Scanned for *.zip, not recursive
	TargetDir  string
	Locator    string // Marker file created in TargetDir; empty skips it
}

// Report lists what Run did.
type Report struct {
	Archives  []string // Archives read, in order
	Extracted []string // Files written into TargetDir
	Pruned    []string // Empty directories removed
}

// Run creates the target folder and its locator file, unpacks every archive
// flat into it and removes empty directories left below the target.
// Members with the same base name overwrite each other in archive order.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.TargetDir == "" {
		return nil, fmt.Errorf("setup: target directory is required")
	}
	if err := os.MkdirAll(opts.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("setup: cannot create %s: %w", opts.TargetDir, err)
	}
	if opts.Locator != "" {
		if err := touch(filepath.Join(opts.TargetDir, opts.Locator)); err != nil {
			return nil, err
		}
	}

	archives, err := FindArchives(opts.ArchiveDir)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		files, err := Extract(archive, opts.TargetDir)
		if err != nil {
			return report, err
		}
		report.Archives = append(report.Archives, archive)
		report.Extracted = append(report.Extracted, files...)
	}

	report.Pruned, err = PruneEmpty(opts.TargetDir)
	if err != nil {
		return report, err
	}
	return report, nil
}

// FindArchives returns the *.zip files directly inside dir, sorted by name.
func FindArchives(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("setup: cannot list %s: %w", dir, err)
	}

	var archives []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
			continue
		}
		archives = append(archives, filepath.Join(dir, e.Name()))
	}
	sort.Strings(archives)
	return archives, nil
}

// Extract writes every file member of archive into dir under its base name.
// Directory entries are skipped. Returns the paths written.
func Extract(archive, dir string) ([]string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("setup: cannot open %s: %w", archive, err)
	}
	defer r.Close()

	var written []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := memberName(f.Name)
		if name == "" {
			continue
		}

		target := filepath.Join(dir, name)
		if err := extractFile(f, target); err != nil {
			return written, fmt.Errorf("setup: %s: %w", archive, err)
		}
		written = append(written, target)
	}
	return written, nil
}

// memberName drops any path from a zip member name. Both separators are
// handled since archives made on Windows may use backslashes.
func memberName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "." || name == ".." {
		return ""
	}
	return name
}

func extractFile(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("cannot write %s: %w", target, err)
	}
	return dst.Close()
}

// PruneEmpty removes empty directories below root, deepest first, so that
// parents emptied by the removal go too. root itself is kept.
func PruneEmpty(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("setup: cannot walk %s: %w", root, err)
	}

	// Longer paths are deeper; removing them first empties their parents.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	var pruned []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return pruned, fmt.Errorf("setup: cannot list %s: %w", dir, err)
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			return pruned, fmt.Errorf("setup: cannot remove %s: %w", dir, err)
		}
		pruned = append(pruned, dir)
	}
	return pruned, nil
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("setup: cannot create %s: %w", path, err)
	}
	return f.Close()
}
