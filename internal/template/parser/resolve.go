package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/fsys"
)

// Resolver maps an !INLINE path spec to an absolute file path.
//
//   - "/docs/x.md" is joined onto RepoRoot.
//   - "x.md" (no slash) must match exactly one file named "*x.md" under SearchRoot.
//   - anything else is relative to the directory of the including file.
//
// Specs without an extension get DefaultExt appended.
type Resolver struct {
	FS fsys.FileSystem
	// RepoRoot anchors "/"-prefixed specs.
	RepoRoot string
	// SearchRoot is searched for bare file names.
	SearchRoot string
	// DefaultExt is appended to specs without an extension.
	DefaultExt string
}

// Resolve returns the absolute path spec refers to when written in contextFile.
func (r *Resolver) Resolve(spec, contextFile string) (string, error) {
	if spec == "" {
		return "", newParseErrorWithDirective(MissingArgument, "empty inline path", "")
	}

	target := spec
	if filepath.Ext(target) == "" {
		target += r.DefaultExt
	}

	baseDir := filepath.Dir(contextFile)
	var path string

	switch {
	case !strings.Contains(target, "/"):
		baseDir = r.SearchRoot
		found, err := r.FS.FindFiles("*"+fsys.EscapeGlob(target), r.SearchRoot)
		if err != nil {
			return "", &ParseError{
				Type:      InlineNotFound,
				Message:   fmt.Sprintf("failed to search %s for `%s`", r.SearchRoot, spec),
				Directive: spec,
				Cause:     err,
			}
		}
		switch len(found) {
		case 0:
			return "", newParseErrorWithDirective(InlineNotFound,
				fmt.Sprintf("can't find any file matching `*%s` under `%s`", target, r.SearchRoot), spec)
		case 1:
			path = found[0]
		default:
			return "", newParseErrorWithDirective(AmbiguousInline,
				fmt.Sprintf("`%s` matches %d files under `%s`: %s",
					spec, len(found), r.SearchRoot, strings.Join(found, ", ")), spec)
		}
	case strings.HasPrefix(target, "/"):
		baseDir = r.RepoRoot
		path = filepath.Join(r.RepoRoot, filepath.FromSlash(target))
	default:
		path = filepath.Join(baseDir, filepath.FromSlash(target))
	}

	if !r.within(path) {
		return "", newParseErrorWithDirective(PathOutsideRoot,
			fmt.Sprintf("`%s` resolves to `%s`, outside of `%s`", spec, path, r.RepoRoot), spec)
	}
	if !r.FS.Exists(path) {
		return "", newParseErrorWithDirective(InlineNotFound,
			fmt.Sprintf("can't find `%s`: resolved to `%s` from `%s`", spec, path, baseDir), spec)
	}
	if !r.FS.IsFile(path) {
		return "", newParseErrorWithDirective(InlineNotFound,
			fmt.Sprintf("`%s` resolves to `%s`, which is not a regular file", spec, path), spec)
	}

	debug.Debug("[parser] Resolved inline %s -> %s", spec, path)
	return path, nil
}

// within reports whether path lies under RepoRoot or SearchRoot.
func (r *Resolver) within(path string) bool {
	for _, root := range []string{r.RepoRoot, r.SearchRoot} {
		if root == "" {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return r.RepoRoot == "" && r.SearchRoot == ""
}
