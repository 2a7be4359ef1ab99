// Package generator discovers templates and runs each one through the
// expansion pipeline: menu, variables, inline expansion, edit note, write.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/fsys"
	"github.com/tacogips/mdocs/internal/project"
	"github.com/tacogips/mdocs/internal/template/menu"
	"github.com/tacogips/mdocs/internal/template/model"
	"github.com/tacogips/mdocs/internal/template/parser"
)

// Generator generates documentation from templates.
type Generator interface {
	// Generate expands every template of the project and writes the results.
	// Templates are processed one at a time; outputs written before a
	// failure stay on disk.
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)

	// DryRun expands every template without writing anything.
	DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation.
type GenerateOptions struct {
	// Project is the resolved project context.
	Project *project.Context

	// TemplateExt is the template file suffix (".template.md").
	TemplateExt string

	// DefaultExt is appended to !INLINE paths without an extension.
	DefaultExt string

	// MaxInlineDepth bounds !INLINE nesting. Zero means the default.
	MaxInlineDepth int

	// EditNoteRepeat is the number of warning blocks in the edit note.
	EditNoteRepeat int
}

// DryRunFile describes a file that would be written in dry-run mode.
type DryRunFile struct {
	// Path is the destination path.
	Path string
	// Source is the template path relative to the repository base.
	Source string
	// Content is the fully expanded content.
	Content string
	// Exists indicates the destination already exists and would be overwritten.
	Exists bool
}

// GenerateResult contains generation statistics.
type GenerateResult struct {
	// Templates are the discovered templates in processing order.
	Templates []*model.Template

	// FilesCreated is the number of new files written.
	FilesCreated int

	// FilesOverwritten is the number of existing files replaced.
	FilesOverwritten int

	// Files contains the destination paths of all processed templates.
	Files []string

	// DryRunFiles contains detailed information for dry-run mode (only populated in dry-run).
	DryRunFiles []DryRunFile
}

// DefaultGenerator implements Generator on top of a FileSystem.
type DefaultGenerator struct {
	fs fsys.FileSystem
}

// NewGenerator creates a new DefaultGenerator.
func NewGenerator(fs fsys.FileSystem) Generator {
	return &DefaultGenerator{fs: fs}
}

// Generate expands and writes every template.
func (g *DefaultGenerator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, false)
}

// DryRun expands every template without writing files.
func (g *DefaultGenerator) DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, true)
}

// generate is the internal implementation for both Generate and DryRun.
func (g *DefaultGenerator) generate(ctx context.Context, opts GenerateOptions, dryRun bool) (*GenerateResult, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	debug.Debug("[generator] Starting generation: base=%s, repoRoot=%s, dryRun=%v",
		opts.Project.Base, opts.Project.RepoRoot, dryRun)

	templates, err := Discover(g.fs, opts.Project, opts.TemplateExt)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Templates:   templates,
		Files:       []string{},
		DryRunFiles: []DryRunFile{},
	}

	resolver := &parser.Resolver{
		FS:         g.fs,
		RepoRoot:   opts.Project.RepoRoot,
		SearchRoot: opts.Project.Base,
		DefaultExt: opts.DefaultExt,
	}
	expander := parser.NewExpander(g.fs, resolver, opts.MaxInlineDepth)

	for _, t := range templates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		content, err := Process(t, templates, expander, opts.EditNoteRepeat)
		if err != nil {
			return result, err
		}

		result.Files = append(result.Files, t.DistPath)
		exists := g.fs.Exists(t.DistPath)

		if dryRun {
			debug.Debug("[generator] Dry run: would write %s (size: %d bytes)", t.DistPath, len(content))
			result.DryRunFiles = append(result.DryRunFiles, DryRunFile{
				Path:    t.DistPath,
				Source:  t.PathRel,
				Content: content,
				Exists:  exists,
			})
			continue
		}

		if err := g.fs.WriteFile(t.DistPath, content); err != nil {
			return result, newGeneratorError(GeneratorWriteFailed, "failed to write output", t.DistPath, err)
		}
		if exists {
			result.FilesOverwritten++
		} else {
			result.FilesCreated++
		}
	}

	debug.Debug("[generator] Generation complete: created=%d, overwritten=%d, templates=%d",
		result.FilesCreated, result.FilesOverwritten, len(templates))
	return result, nil
}

// Process runs one template through the pipeline and returns the content to
// write. all is the full template list, used read-only for the menu.
func Process(t *model.Template, all []*model.Template, expander *parser.Expander, editNoteRepeat int) (string, error) {
	debug.DebugSection(fmt.Sprintf("[generator] Processing %s", t.PathRel))

	content, err := menu.Apply(t, all)
	if err != nil {
		return "", processError(t, "failed to insert menu", err)
	}
	t.Content = content

	content, err = parser.ApplyVariables(t.Content)
	if err != nil {
		return "", processError(t, "failed to apply variables", err)
	}
	t.Content = content

	content, err = expander.Expand(t.Content, t.Path, t.Package)
	if err != nil {
		return "", processError(t, "failed to expand inlines", err)
	}
	t.Content = content

	return WrapEditNote(t.Content, t.PathRel, editNoteRepeat), nil
}

// processError wraps a stage failure, attaching the template path to parse
// errors that lack one.
func processError(t *model.Template, message string, err error) error {
	var gerr *GeneratorError
	if errors.As(err, &gerr) {
		return err
	}
	return newGeneratorError(GeneratorProcessFailed, message, t.Path, parser.WithFile(err, t.Path))
}

// validateOptions validates GenerateOptions.
func validateOptions(opts GenerateOptions) error {
	if opts.Project == nil {
		return fmt.Errorf("project context cannot be nil")
	}

	if opts.Project.Base == "" {
		return fmt.Errorf("project base directory cannot be empty")
	}

	if opts.TemplateExt == "" {
		return fmt.Errorf("template extension cannot be empty")
	}

	return nil
}
