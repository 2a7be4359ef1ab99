package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tacogips/mdocs/internal/fsys"
	"github.com/tacogips/mdocs/internal/project"
	"github.com/tacogips/mdocs/internal/template/parser"
)

// writeTree creates files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// newTestProject writes files into a temporary repository and resolves it.
func newTestProject(t *testing.T, files map[string]string) (*project.Context, fsys.FileSystem) {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, files)
	fs := fsys.NewOSFileSystem([]string{"node_modules", ".git"})
	proj, err := project.Resolve(fs, root)
	if err != nil {
		t.Fatalf("failed to resolve project: %v", err)
	}
	return proj, fs
}

func testOptions(proj *project.Context) GenerateOptions {
	return GenerateOptions{
		Project:        proj,
		TemplateExt:    ".template.md",
		DefaultExt:     ".md",
		MaxInlineDepth: 16,
		EditNoteRepeat: 1,
	}
}

// stripNotes removes the leading and trailing edit notes from generated output.
func stripNotes(t *testing.T, content, srcRel string) string {
	t.Helper()
	note := EditNote(srcRel, 1)
	if !strings.HasPrefix(content, note+"\n") || !strings.HasSuffix(content, "\n"+note+"\n") {
		t.Fatalf("output is not wrapped in the edit note for %s:\n%s", srcRel, content)
	}
	return strings.TrimSuffix(strings.TrimPrefix(content, note+"\n"), "\n"+note+"\n")
}

func TestGenerate(t *testing.T) {
	proj, fs := newTestProject(t, map[string]string{
		"package.json": `{"name": "my-lib"}`,
		"README.template.md": "!MENU_TITLE Home\n!MENU\n\n!VAR name my-lib\n# !VAR name\n\n" +
			"!INLINE ./examples/usage.js\n",
		"docs/guide.template.md": "!MENU_ORDER 1\n!OUTPUT ../GUIDE.md\n!MENU\n# Guide\n",
		"examples/usage.js":      "const lib = require('..')\n",
	})
	gen := NewGenerator(fs)

	result, err := gen.Generate(context.Background(), testOptions(proj))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.FilesCreated != 2 {
		t.Errorf("expected 2 files created, got %d", result.FilesCreated)
	}

	menu := `<p align='center'><a href="/README.md#readme"><b>Home</b></a> &nbsp; | &nbsp; ` +
		`<a href="/GUIDE.md#readme">Guide</a></p>`
	readme, err := os.ReadFile(filepath.Join(proj.Base, "README.md"))
	if err != nil {
		t.Fatalf("README.md not written: %v", err)
	}
	want := menu + "\n\n# my-lib\n\n// ./examples/usage.js\n\nconst lib = require('my-lib')\n"
	if diff := cmp.Diff(want, stripNotes(t, string(readme), "/README.template.md")); diff != "" {
		t.Errorf("README.md mismatch (-want +got):\n%s", diff)
	}

	guide, err := os.ReadFile(filepath.Join(proj.Base, "GUIDE.md"))
	if err != nil {
		t.Fatalf("GUIDE.md not written: %v", err)
	}
	if !strings.Contains(string(guide), `<b>Guide</b>`) {
		t.Errorf("expected GUIDE.md to highlight its own entry:\n%s", guide)
	}

	// A second run overwrites the outputs.
	result, err = gen.Generate(context.Background(), testOptions(proj))
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	if result.FilesOverwritten != 2 || result.FilesCreated != 0 {
		t.Errorf("expected 2 overwritten, got created=%d overwritten=%d",
			result.FilesCreated, result.FilesOverwritten)
	}
}

func TestGenerateWithoutMenu(t *testing.T) {
	proj, fs := newTestProject(t, map[string]string{
		"package.json":       `{"name": "x"}`,
		"README.template.md": "# Plain\n\ntext",
		"other.template.md":  "!MENU_ORDER -1\n!MENU\n",
	})

	if _, err := NewGenerator(fs).Generate(context.Background(), testOptions(proj)); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	readme, err := os.ReadFile(filepath.Join(proj.Base, "README.md"))
	if err != nil {
		t.Fatalf("README.md not written: %v", err)
	}
	if got := stripNotes(t, string(readme), "/README.template.md"); got != "# Plain\n\ntext" {
		t.Errorf("expected content untouched by menu logic, got %q", got)
	}
}

func TestDryRun(t *testing.T) {
	proj, fs := newTestProject(t, map[string]string{
		"package.json":       `{"name": "x"}`,
		"README.template.md": "# Readme",
	})

	result, err := NewGenerator(fs).DryRun(context.Background(), testOptions(proj))
	if err != nil {
		t.Fatalf("DryRun failed: %v", err)
	}
	if len(result.DryRunFiles) != 1 {
		t.Fatalf("expected 1 dry-run file, got %d", len(result.DryRunFiles))
	}
	file := result.DryRunFiles[0]
	if file.Path != filepath.Join(proj.Base, "README.md") || file.Exists {
		t.Errorf("unexpected dry-run file: %+v", file)
	}
	if _, err := os.Stat(file.Path); !os.IsNotExist(err) {
		t.Errorf("dry run must not write %s", file.Path)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantUsage bool
		contains  string
	}{
		{
			name:      "no templates",
			files:     map[string]string{"package.json": `{"name": "x"}`, "README.md": ""},
			wantUsage: true,
			contains:  filepath.Join("**", "*.template.md"),
		},
		{
			name: "duplicate destination",
			files: map[string]string{
				"package.json":       `{"name": "x"}`,
				"README.template.md": "a",
				"intro.template.md":  "!OUTPUT README.md\nb",
			},
			wantUsage: true,
			contains:  "README.md",
		},
		{
			name: "unresolvable inline",
			files: map[string]string{
				"package.json":       `{"name": "x"}`,
				"README.template.md": "!INLINE ./missing.js",
			},
			wantUsage: true,
			contains:  "missing.js",
		},
		{
			name: "inline target is a directory",
			files: map[string]string{
				"package.json":        `{"name": "x"}`,
				"README.template.md":  "!INLINE ./parts/sub.md",
				"parts/sub.md/one.md": "",
			},
			wantUsage: true,
			contains:  "not a regular file",
		},
		{
			name: "cycle through the template",
			files: map[string]string{
				"package.json":       `{"name": "x"}`,
				"README.template.md": "!INLINE ./part.md",
				"part.md":            "!INLINE ./README.template.md",
			},
			wantUsage: true,
			contains:  "circular",
		},
		{
			name: "duplicate menu line",
			files: map[string]string{
				"package.json":       `{"name": "x"}`,
				"README.template.md": "!MENU\n!MENU",
			},
			wantUsage: false,
		},
		{
			name: "output escaping the base",
			files: map[string]string{
				"package.json":       `{"name": "x"}`,
				"README.template.md": "!OUTPUT ../README.md\nx",
			},
			wantUsage: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, fs := newTestProject(t, tt.files)
			_, err := NewGenerator(fs).Generate(context.Background(), testOptions(proj))
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var gerr *GeneratorError
			if !errors.As(err, &gerr) {
				t.Fatalf("expected *GeneratorError, got %T: %v", err, err)
			}
			if gerr.Usage() != tt.wantUsage {
				t.Errorf("expected usage=%v, got %v: %v", tt.wantUsage, gerr.Usage(), err)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error to mention %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestGenerateCancelled(t *testing.T) {
	proj, fs := newTestProject(t, map[string]string{
		"package.json":       `{"name": "x"}`,
		"README.template.md": "# Readme",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(fs).Generate(ctx, testOptions(proj))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestProcessErrorCarriesTemplatePath(t *testing.T) {
	proj, fs := newTestProject(t, map[string]string{
		"package.json":       `{"name": "x"}`,
		"README.template.md": "!VAR  nameless",
	})

	_, err := NewGenerator(fs).Generate(context.Background(), testOptions(proj))
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a wrapped *parser.ParseError, got %T: %v", err, err)
	}
	if perr.File != filepath.Join(proj.Base, "README.template.md") {
		t.Errorf("expected parse error to name the template, got %q", perr.File)
	}
}

func TestProcessErrorOmitsShiftedLineNumbers(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"inline after metadata", "!MENU_ORDER 1\n!INLINE ./missing.js"},
		{"variable after metadata", "!MENU_TITLE Home\n!VAR  nameless"},
		{"menu after metadata", "!MENU_ORDER 1\n!MENU\n!MENU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, fs := newTestProject(t, map[string]string{
				"package.json":       `{"name": "x"}`,
				"README.template.md": tt.content,
			})

			_, err := NewGenerator(fs).Generate(context.Background(), testOptions(proj))
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected a wrapped *parser.ParseError, got %T: %v", err, err)
			}
			if perr.Line != 0 {
				t.Errorf("expected no line number for stripped content, got %d: %v", perr.Line, err)
			}
		})
	}
}
