package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/fsys"
	"github.com/tacogips/mdocs/internal/project"
	"github.com/tacogips/mdocs/internal/template/menu"
	"github.com/tacogips/mdocs/internal/template/model"
	"github.com/tacogips/mdocs/internal/template/parser"
)

// Discover finds every template under the project base, in walk order, and
// loads each one: content with metadata lines removed, destination paths,
// menu metadata and owning package. ext is the template suffix.
func Discover(fs fsys.FileSystem, proj *project.Context, ext string) ([]*model.Template, error) {
	paths, err := fs.FindFiles("*"+fsys.EscapeGlob(ext), proj.Base)
	if err != nil {
		return nil, newGeneratorError(GeneratorReadFailed, "failed to search for templates", proj.Base, err)
	}
	if len(paths) == 0 {
		return nil, NoTemplatesError(proj.Dir, ext)
	}
	debug.Debug("[generator] Discovered %d template(s) under %s", len(paths), proj.Base)

	templates := make([]*model.Template, 0, len(paths))
	byDest := make(map[string]string, len(paths))
	sources := make(map[string]bool, len(paths))
	for _, p := range paths {
		sources[p] = true
	}

	for _, path := range paths {
		t, err := loadTemplate(fs, proj, path, ext)
		if err != nil {
			return nil, err
		}

		if other, dup := byDest[t.DistPath]; dup {
			return nil, newGeneratorError(GeneratorDuplicateOutput,
				fmt.Sprintf("%s and %s both write %s", other, t.PathRel, t.DistPathRel), t.Path, nil)
		}
		if sources[t.DistPath] {
			return nil, newGeneratorError(GeneratorDuplicateOutput,
				fmt.Sprintf("%s would overwrite template %s", t.PathRel, t.DistPathRel), t.Path, nil)
		}
		byDest[t.DistPath] = t.PathRel

		templates = append(templates, t)
	}

	return templates, nil
}

// NoTemplatesError reports that no template matching ext exists under dir.
func NoTemplatesError(dir, ext string) *GeneratorError {
	glob := filepath.Join(dir, "**", "*"+ext)
	return newGeneratorError(GeneratorNoTemplates,
		fmt.Sprintf("can't find any `%s` file", glob), "", nil)
}

// loadTemplate reads one template and derives its metadata.
func loadTemplate(fs fsys.FileSystem, proj *project.Context, path, ext string) (*model.Template, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, newGeneratorError(GeneratorReadFailed, "failed to read template", path, err)
	}

	meta, body, err := parser.ExtractMetadata(content)
	if err != nil {
		return nil, newGeneratorError(GeneratorProcessFailed, "invalid template metadata", path,
			parser.WithFile(err, path))
	}

	pkg, err := project.FindPackage(fs, filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	t := &model.Template{
		Path:         path,
		Content:      body,
		Output:       meta.Output,
		DistPath:     distPath(path, ext, meta.Output),
		FilenameBase: filenameBase(path),
		Menu:         meta.Menu,
		Package:      pkg,
	}
	if t.Menu.Title == "" {
		t.Menu.Title = menu.Titlize(t.FilenameBase)
	}

	if t.PathRel, err = relativeToBase(proj.Base, t.Path); err != nil {
		return nil, err
	}
	if t.DistPathRel, err = relativeToBase(proj.Base, t.DistPath); err != nil {
		return nil, err
	}

	debug.Debug("[generator] Template %s -> %s (order=%d, title=%q, section=%q, skip=%v)",
		t.PathRel, t.DistPathRel, t.Menu.Order, t.Menu.Title, t.Menu.Section, t.Menu.Skip)
	return t, nil
}

// distPath returns where the expansion of the template at path is written:
// the !OUTPUT file next to the template, else the path with the template
// suffix replaced by its final extension (".template.md" -> ".md").
func distPath(path, ext, output string) string {
	if output != "" {
		return filepath.Join(filepath.Dir(path), filepath.FromSlash(output))
	}
	return strings.TrimSuffix(path, ext) + filepath.Ext(ext)
}

// filenameBase returns the base name of path up to its first dot.
func filenameBase(path string) string {
	name, _, _ := strings.Cut(filepath.Base(path), ".")
	return name
}

// relativeToBase returns path relative to base as a "/"-prefixed slash path.
func relativeToBase(base, path string) (string, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", newGeneratorError(GeneratorPathError,
			fmt.Sprintf("%s is outside of the repository base %s", path, base), path, err)
	}
	return "/" + filepath.ToSlash(rel), nil
}
