// Package menu assembles the navigation bar that replaces a template's !MENU
// line from the menu metadata of every discovered template.
package menu

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/template/model"
	"github.com/tacogips/mdocs/internal/template/parser"
)

const (
	menuLine       = "!" + parser.TokenMenu
	lineSeparator  = " &nbsp; | &nbsp; "
	linkSeparator  = " | "
	indentUnit     = "&nbsp; "
	sectionPrefix  = ": "
	paragraphOpen  = "<p align='center'>"
	paragraphClose = "</p>"
)

// Build renders the menu as seen from current. all is not modified.
func Build(current *model.Template, all []*model.Template) string {
	ordered := slices.Clone(all)
	slices.SortStableFunc(ordered, func(a, b *model.Template) int {
		return cmp.Compare(a.Menu.Order, b.Menu.Order)
	})

	var lines []string
	prevSection := ""
	for _, t := range ordered {
		section := t.Menu.Section
		sameSection := section == prevSection
		prevSection = section
		// Skipped entries still break a run of the same section.
		if t.Menu.Skip {
			continue
		}

		link := renderLink(t, t == current)
		switch {
		case section == "":
			lines = append(lines, link)
		case !sameSection || len(lines) == 0:
			lines = append(lines, section+sectionPrefix+link)
		default:
			lines[len(lines)-1] += linkSeparator + link
		}
	}

	return paragraphOpen + strings.Join(lines, lineSeparator) + paragraphClose
}

// renderLink renders one menu entry.
func renderLink(t *model.Template, current bool) string {
	title := Title(t)
	if current {
		title = "<b>" + title + "</b>"
	}
	link := fmt.Sprintf(`<a href="%s#readme">%s</a>`, t.LinkTarget(), title)
	if t.Menu.Indent > 0 {
		link = strings.Repeat(indentUnit, t.Menu.Indent) + link
	}
	return link
}

// Title returns the display title of t.
func Title(t *model.Template) string {
	if t.Menu.Title != "" {
		return t.Menu.Title
	}
	return Titlize(t.FilenameBase)
}

// Apply replaces the !MENU line of t.Content with the menu built from all and
// returns the result. Content without a !MENU line is returned unchanged. The
// line must be exactly "!MENU"; any other occurrence of the token, or a
// second !MENU line, is an error. Errors carry no line number since
// metadata lines are already stripped from t.Content.
func Apply(t *model.Template, all []*model.Template) (string, error) {
	lines := strings.Split(t.Content, "\n")
	at := -1

	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		switch {
		case trimmed == menuLine:
			if at >= 0 {
				return "", &parser.ParseError{
					Type:      parser.DuplicateDirective,
					Message:   fmt.Sprintf("%s appears more than once", menuLine),
					File:      t.Path,
					Directive: trimmed,
				}
			}
			at = i
		case strings.Contains(trimmed, menuLine):
			return "", &parser.ParseError{
				Type:      parser.MisplacedDirective,
				Message:   fmt.Sprintf("%s must stand alone on its line", menuLine),
				File:      t.Path,
				Directive: trimmed,
			}
		}
	}

	if at < 0 {
		return t.Content, nil
	}

	lines[at] = Build(t, all)
	debug.Debug("[menu] Inserted menu into %s at line %d", t.PathRel, at+1)
	return strings.Join(lines, "\n"), nil
}
