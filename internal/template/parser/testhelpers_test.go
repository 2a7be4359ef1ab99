package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
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

// assertParseErrorType fails unless err is a *ParseError of the given type.
func assertParseErrorType(t *testing.T, err error, want ParseErrorType) *ParseError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of type %d, got nil", want)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Type != want {
		t.Fatalf("expected error type %d, got %d: %v", want, perr.Type, err)
	}
	return perr
}
