package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tacogips/mdocs/internal/debug"
)

const varDeclPrefix = "!" + TokenVar + " "

// Reference forms of a declared variable.
const (
	varRef       = "!VAR "
	varLinkRef   = "!VAR|LINK "
	varAnchorRef = "!VAR|ANCHOR "
)

type variable struct {
	name  string
	value string
}

// ApplyVariables removes "!VAR name value..." declarations from content and
// substitutes every reference to the declared names:
//
//	!VAR name         -> value
//	!VAR|LINK name    -> <a href=#slug>value</a>
//	!VAR|ANCHOR name  -> #slug
//
// A reference only matches when the name ends on a word boundary.
func ApplyVariables(content string) (string, error) {
	vars, body, err := extractVariables(content)
	if err != nil {
		return "", err
	}

	for _, v := range vars {
		anchor := "#" + Slug(v.value)
		replacements := []struct {
			prefix string
			with   string
		}{
			{varRef, v.value},
			{varLinkRef, "<a href=" + anchor + ">" + v.value + "</a>"},
			{varAnchorRef, anchor},
		}
		for _, r := range replacements {
			pattern := regexp.MustCompile(regexp.QuoteMeta(r.prefix+v.name) + `\b`)
			body = pattern.ReplaceAllLiteralString(body, r.with)
		}
	}

	debug.Debug("[parser] Applied %d variable(s): %v", len(vars), vars)
	return body, nil
}

// extractVariables returns the declarations in order, later ones overriding
// earlier ones of the same name, and the body without declaration lines.
func extractVariables(content string) ([]variable, string, error) {
	lines := strings.Split(content, "\n")
	body := make([]string, 0, len(lines))
	var vars []variable
	index := make(map[string]int)

	for _, line := range lines {
		if !strings.HasPrefix(line, varDeclPrefix) {
			body = append(body, line)
			continue
		}

		name, value, _ := strings.Cut(strings.TrimRight(line[len(varDeclPrefix):], "\r"), " ")
		if name == "" {
			return nil, "", newParseErrorWithDirective(MissingArgument,
				"!VAR declaration requires a name", line)
		}
		if pos, ok := index[name]; ok {
			debug.Debug("[parser] Variable %s redeclared", name)
			vars[pos].value = value
			continue
		}
		index[name] = len(vars)
		vars = append(vars, variable{name: name, value: value})
	}

	return vars, strings.Join(body, "\n"), nil
}

// slugRemoved lists the characters GitHub drops when deriving heading anchors.
const slugRemoved = "`~!@#$%^&*()+=<>?,./:;\"'|{}[]\\–—" +
	"　。？！，、；：“”【】（）〔〕［］﹃﹄‘’﹁﹂…－～《》〈〉「」"

// Slug derives a GitHub-style heading anchor from text.
func Slug(text string) string {
	lowered := strings.ReplaceAll(strings.ToLower(text), " ", "-")
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(slugRemoved, r) {
			return -1
		}
		return r
	}, lowered)
}

// String returns a debug representation of the variable.
func (v variable) String() string {
	return fmt.Sprintf("%s=%q", v.name, v.value)
}
