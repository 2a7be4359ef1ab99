// Package model holds the data types shared by the mdocs pipeline stages.
package model

import "github.com/tacogips/mdocs/internal/project"

// MenuInfo is the navigation metadata a template declares about itself.
type MenuInfo struct {
	// Order is the sort key (!MENU_ORDER, default 0).
	Order int
	// Title is the display title (!MENU_TITLE, else derived from the file name).
	Title string
	// Link overrides the link target (!MENU_LINK).
	Link string
	// Section groups consecutive entries onto one line (!MENU_SECTION).
	Section string
	// Skip omits the template from every menu (!MENU_SKIP).
	Skip bool
	// Indent prefixes the entry with non-breaking spaces (!MENU_INDENT).
	Indent int
}

// Template is one discovered template file. Content is the working text and
// is replaced by each pipeline stage until it is written to DistPath.
type Template struct {
	// Path is the absolute template path.
	Path string
	// PathRel is Path relative to the repository base, "/"-prefixed with forward slashes.
	PathRel string
	// Content is the working text.
	Content string
	// Output is the raw !OUTPUT argument, empty when absent.
	Output string
	// DistPath is the absolute destination path.
	DistPath string
	// DistPathRel is DistPath relative to the repository base, "/"-prefixed with forward slashes.
	DistPathRel string
	// FilenameBase is the template base name up to its first dot.
	FilenameBase string
	// Menu is the navigation metadata.
	Menu MenuInfo
	// Package is the owning package manifest (nil when only a monorepo governs).
	Package *project.PackageInfo
}

// LinkTarget returns the explicit menu link or, failing that, the destination path.
func (t *Template) LinkTarget() string {
	if t.Menu.Link != "" {
		return t.Menu.Link
	}
	return t.DistPathRel
}
