package setup

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
)

// writeZip creates an archive holding the given members. Names ending in
// "/" become directory entries.
func writeZip(t *testing.T, path string, members map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(members[name])); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRunFlattensArchives(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "animals.zip"), map[string]string{
		"animals/":             "",
		"animals/cat.png":      "cat",
		"animals/deep/dog.jpg": "dog",
	})
	writeZip(t, filepath.Join(root, "test_pictures.ZIP"), map[string]string{
		"sky.png": "sky",
	})
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(root, "pictures")
	report, err := Run(context.Background(), Options{
		ArchiveDir: root,
		TargetDir:  target,
		Locator:    ".locator",
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(report.Archives) != 2 {
		t.Errorf("archives = %v, want 2", report.Archives)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{".locator", "cat.png", "dog.jpg", "sky.png"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("target contents mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, filepath.Join(target, "dog.jpg")); got != "dog" {
		t.Errorf("dog.jpg = %q", got)
	}
}

func TestRunKeepsExistingLocator(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "pictures")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	locator := filepath.Join(target, ".locator")
	if err := os.WriteFile(locator, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(context.Background(), Options{ArchiveDir: root, TargetDir: target, Locator: ".locator"}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := readFile(t, locator); got != "keep" {
		t.Errorf("locator content = %q, want it untouched", got)
	}
}

func TestRunRequiresTarget(t *testing.T) {
	if _, err := Run(context.Background(), Options{ArchiveDir: t.TempDir()}); err == nil {
		t.Error("Run() without target should fail")
	}
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "a.zip"), map[string]string{"a.png": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{ArchiveDir: root, TargetDir: filepath.Join(root, "out")})
	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestExtractDropsPaths(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "nested.zip")
	writeZip(t, archive, map[string]string{
		"nested/deeper/pic.png": "pic",
		"top.png":               "top",
	})

	target := filepath.Join(root, "out")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	written, err := Extract(archive, target)
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}

	want := []string{filepath.Join(target, "pic.png"), filepath.Join(target, "top.png")}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNotAZip(t *testing.T) {
	root := t.TempDir()
	bad := filepath.Join(root, "bad.zip")
	if err := os.WriteFile(bad, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Extract(bad, root); err == nil {
		t.Error("Extract() of a non-zip should fail")
	}
}

func TestPruneEmpty(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"a/b/c", "d", "e/f"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "e", "keep.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	pruned, err := PruneEmpty(root)
	if err != nil {
		t.Fatalf("PruneEmpty() failed: %v", err)
	}
	if len(pruned) != 5 {
		t.Errorf("pruned %d dirs, want 5: %v", len(pruned), pruned)
	}

	for _, gone := range []string{"a", "d", "e/f"} {
		if _, err := os.Stat(filepath.Join(root, gone)); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", gone)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "e", "keep.png")); err != nil {
		t.Errorf("keep.png lost: %v", err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Error("root must survive pruning")
	}
}

func TestMemberName(t *testing.T) {
	tests := map[string]string{
		"cat.png":     "cat.png",
		"dir/cat.png": "cat.png",
		`dir\cat.png`: "cat.png",
		"dir/":        "",
		"..":          "",
		"a/b/../..":   "",
	}
	for in, want := range tests {
		if got := memberName(in); got != want {
			t.Errorf("memberName(%q) = %q, want %q", in, got, want)
		}
	}
}
