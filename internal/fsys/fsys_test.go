package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeTree creates files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.template.md":                   "",
		"docs/guide.template.md":               "",
		"docs/guide.md":                        "",
		"node_modules/dep/README.template.md":  "",
		"packages/a/usage.template.md":         "",
		"packages/a/node_modules/x.template.md": "",
	})

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "base name pattern skips ignored dirs",
			pattern: "*.template.md",
			want: []string{
				"README.template.md",
				"docs/guide.template.md",
				"packages/a/usage.template.md",
			},
		},
		{
			name:    "suffix lookup",
			pattern: "*guide.md",
			want:    []string{"docs/guide.md"},
		},
		{
			name:    "path pattern",
			pattern: "packages/**/*.md",
			want:    []string{"packages/a/usage.template.md"},
		},
		{
			name:    "no match",
			pattern: "*.txt",
			want:    nil,
		},
	}

	fs := NewOSFileSystem([]string{"node_modules", ".git"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.FindFiles(tt.pattern, root)
			if err != nil {
				t.Fatalf("FindFiles failed: %v", err)
			}
			var rel []string
			for _, p := range got {
				r, _ := filepath.Rel(root, p)
				rel = append(rel, filepath.ToSlash(r))
			}
			if diff := cmp.Diff(tt.want, rel); diff != "" {
				t.Errorf("FindFiles(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestFindFiles_InvalidPattern(t *testing.T) {
	fs := NewOSFileSystem(nil)
	if _, err := fs.FindFiles("[", t.TempDir()); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestFindNearestAncestor(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":          "{}",
		"packages/a/package.json": "{}",
		"packages/a/src/index.js": "",
	})
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	fs := NewOSFileSystem(nil)

	path, ok, err := fs.FindNearestAncestor("package.json", filepath.Join(root, "packages/a/src"))
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	if want := filepath.Join(root, "packages/a/package.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	path, ok, err = fs.FindNearestAncestor(".git", filepath.Join(root, "packages/a/src"))
	if err != nil || !ok {
		t.Fatalf("expected .git match, got ok=%v err=%v", ok, err)
	}
	if want := filepath.Join(root, ".git"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	_, ok, err = fs.FindNearestAncestor("does-not-exist.marker", root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no match")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "README.md")
	fs := NewOSFileSystem(nil)

	if err := fs.WriteFile(path, "hello\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got != "hello\n" {
		t.Errorf("content = %q", got)
	}
	if fs.Exists(path + ".tmp") {
		t.Error("temporary file should be renamed away")
	}
	if !fs.Exists(path) {
		t.Error("Exists should report the written file")
	}
}

func TestIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"dir.md/file.md": ""})
	fs := NewOSFileSystem(nil)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"regular file", filepath.Join(root, "dir.md", "file.md"), true},
		{"directory", filepath.Join(root, "dir.md"), false},
		{"missing", filepath.Join(root, "nope.md"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fs.IsFile(tt.path); got != tt.expected {
				t.Errorf("IsFile(%s) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestEscapeGlob(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a[1].md": "",
		"a1.md":   "",
	})
	fs := NewOSFileSystem(nil)
	got, err := fs.FindFiles("*"+EscapeGlob("a[1].md"), root)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "a[1].md" {
		t.Errorf("expected literal match, got %v", got)
	}
}

func TestCachedFileSystem(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "snippet.md")
	writeTree(t, root, map[string]string{"snippet.md": "v1"})

	cached, err := NewCachedFileSystem(NewOSFileSystem(nil), 8)
	if err != nil {
		t.Fatalf("NewCachedFileSystem failed: %v", err)
	}

	if got, _ := cached.ReadFile(path); got != "v1" {
		t.Fatalf("first read = %q", got)
	}

	// Out-of-band change is not observed while cached.
	writeTree(t, root, map[string]string{"snippet.md": "v2"})
	if got, _ := cached.ReadFile(path); got != "v1" {
		t.Errorf("expected cached v1, got %q", got)
	}

	// Writing through the cache invalidates the entry.
	if err := cached.WriteFile(path, "v3"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got, _ := cached.ReadFile(path); got != "v3" {
		t.Errorf("expected v3 after write, got %q", got)
	}
	if cached.Len() != 1 {
		t.Errorf("Len = %d, want 1", cached.Len())
	}

	if _, err := cached.ReadFile(filepath.Join(root, "missing.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCachedFileSystem_Ancestors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"sub/file.md": ""})

	cached, err := NewCachedFileSystem(NewOSFileSystem(nil), 8)
	if err != nil {
		t.Fatal(err)
	}
	start := filepath.Join(root, "sub")

	if _, ok, _ := cached.FindNearestAncestor("marker.json", start); ok {
		t.Fatal("marker should not exist yet")
	}
	if err := cached.WriteFile(filepath.Join(root, "marker.json"), "{}"); err != nil {
		t.Fatal(err)
	}
	path, ok, err := cached.FindNearestAncestor("marker.json", start)
	if err != nil || !ok {
		t.Fatalf("expected marker after write, ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, "marker.json") {
		t.Errorf("path = %s", path)
	}
}

func TestNewCachedFileSystem_InvalidSize(t *testing.T) {
	if _, err := NewCachedFileSystem(NewOSFileSystem(nil), 0); err == nil {
		t.Error("expected error for zero size")
	}
}
