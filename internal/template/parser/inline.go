package parser

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/fsys"
	"github.com/tacogips/mdocs/internal/project"
)

const (
	// defaultMaxInlineDepth is the default maximum inline depth.
	defaultMaxInlineDepth = 16

	argumentsToken = "!ARGUMENTS"
)

var argumentPattern = regexp.MustCompile(`!ARGUMENT-(\d+)`)

// Expander replaces "!INLINE <path> [args...] [--hide-source-path]" lines with
// the recursively expanded content of the referenced file.
type Expander struct {
	Resolver *Resolver
	FS       fsys.FileSystem
	// MaxDepth bounds the inline nesting depth. Zero means the default.
	MaxDepth int
}

// NewExpander creates an Expander reading through fs.
func NewExpander(fs fsys.FileSystem, resolver *Resolver, maxDepth int) *Expander {
	return &Expander{
		Resolver: resolver,
		FS:       fs,
		MaxDepth: maxDepth,
	}
}

// Expand expands every !INLINE line of content. contextFile is the file the
// content belongs to; nested paths resolve relative to each nested file.
// pkg drives import rewriting of inlined blocks and may be nil.
func (e *Expander) Expand(content, contextFile string, pkg *project.PackageInfo) (string, error) {
	return e.expand(content, contextFile, pkg, []string{contextFile})
}

// expand walks content line by line. chain is the active resolution chain,
// outermost file first.
func (e *Expander) expand(content, contextFile string, pkg *project.PackageInfo, chain []string) (string, error) {
	lines := strings.Split(content, "\n")
	var b strings.Builder

	for i, line := range lines {
		if !isInlineLine(strings.TrimRight(line, "\r")) {
			b.WriteString(line)
			if i != len(lines)-1 {
				b.WriteByte('\n')
			}
			continue
		}

		block, err := e.inline(line, contextFile, pkg, chain)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) && perr.File == "" {
				perr.File = contextFile
			}
			return "", err
		}
		b.WriteString(block)
	}

	return b.String(), nil
}

// inline produces the replacement block for one !INLINE line.
func (e *Expander) inline(line, contextFile string, pkg *project.PackageInfo, chain []string) (string, error) {
	cmd, err := parseInlineLine(line)
	if err != nil {
		return "", err
	}

	if depth := len(chain); depth > e.maxDepth() {
		return "", newParseErrorWithDirective(MaxInlineDepth,
			fmt.Sprintf("maximum inline depth (%d) exceeded: %s", e.maxDepth(), strings.Join(chain, " -> ")),
			cmd.Raw)
	}

	path, err := e.Resolver.Resolve(cmd.Spec(), contextFile)
	if err != nil {
		return "", err
	}

	if slices.Contains(chain, path) {
		cycle := append(slices.Clone(chain), path)
		return "", newParseErrorWithDirective(CircularInline,
			fmt.Sprintf("circular inline detected: %s", strings.Join(cycle, " -> ")),
			cmd.Raw)
	}

	text, err := e.FS.ReadFile(path)
	if err != nil {
		return "", &ParseError{
			Type:      ReadFailed,
			Message:   fmt.Sprintf("failed to read %s", path),
			Directive: cmd.Raw,
			Cause:     err,
		}
	}
	debug.Debug("[parser] Inlining %s (depth=%d, args=%v, flags=%v)", path, len(chain), cmd.Inputs[1:], cmd.Flags)

	text = strings.TrimRight(text, "\n")
	text = substituteArguments(text, cmd.Inputs)
	text, hidden := stripHideSourcePath(text)

	expanded, err := e.expand(text, path, pkg, append(slices.Clone(chain), path))
	if err != nil {
		return "", err
	}

	expanded, err = RewriteImports(expanded, path, pkg)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if !hidden && !cmd.Flags[FlagHideSourcePath] {
		b.WriteString("// " + cmd.Spec() + "\n\n")
	}
	b.WriteString(expanded)
	b.WriteByte('\n')
	return b.String(), nil
}

func (e *Expander) maxDepth() int {
	if e.MaxDepth > 0 {
		return e.MaxDepth
	}
	return defaultMaxInlineDepth
}

// substituteArguments replaces !ARGUMENT-N with inputs[N] (the path spec is
// input 0) and !ARGUMENTS with the inputs after the path, space separated.
// Indices without a matching input are left as written.
func substituteArguments(text string, inputs []string) string {
	text = argumentPattern.ReplaceAllStringFunc(text, func(m string) string {
		idx, err := strconv.Atoi(m[len("!ARGUMENT-"):])
		if err != nil || idx >= len(inputs) {
			return m
		}
		return inputs[idx]
	})
	return strings.ReplaceAll(text, argumentsToken, strings.Join(inputs[1:], " "))
}

// stripHideSourcePath removes marker lines and reports whether any was present.
func stripHideSourcePath(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	hidden := false
	for _, line := range lines {
		if strings.TrimRight(line, "\r") == HideSourcePathMarker {
			hidden = true
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), hidden
}
