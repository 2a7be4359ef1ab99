package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/template/model"
)

// Directive tokens. A directive line is "!" + token, optionally followed by a
// space and an argument.
const (
	TokenOutput      = "OUTPUT"
	TokenMenu        = "MENU"
	TokenMenuOrder   = "MENU_ORDER"
	TokenMenuLink    = "MENU_LINK"
	TokenMenuTitle   = "MENU_TITLE"
	TokenMenuSkip    = "MENU_SKIP"
	TokenMenuSection = "MENU_SECTION"
	TokenMenuIndent  = "MENU_INDENT"
	TokenVar         = "VAR"
	TokenInline      = "INLINE"

	// HideSourcePathMarker is a body-only line inside inlined files that
	// suppresses the source-path comment for that inclusion.
	HideSourcePathMarker = "!HIDE-SOURCE-PATH"
)

// MetadataTokens are the singleton tokens extracted from a template at discovery.
var MetadataTokens = []string{
	TokenOutput,
	TokenMenuIndent,
	TokenMenuOrder,
	TokenMenuLink,
	TokenMenuSkip,
	TokenMenuSection,
	TokenMenuTitle,
}

// Directive is one parsed directive line.
type Directive struct {
	// Name is the token without the leading "!".
	Name string
	// Argument is the text after "!TOKEN ", trimmed.
	Argument string
	// Flag is true when the directive carries no argument.
	Flag bool
	// Line is the 1-indexed line the directive was found on.
	Line int
}

// Directives is the result of a directive extraction pass: the directives
// found, keyed by token, and the body with their lines removed.
type Directives struct {
	Found map[string]Directive
	Body  string
}

// Get returns the directive for token.
func (d *Directives) Get(token string) (Directive, bool) {
	dir, ok := d.Found[token]
	return dir, ok
}

// Has reports whether token was present.
func (d *Directives) Has(token string) bool {
	_, ok := d.Found[token]
	return ok
}

// ExtractDirective extracts a single token from content.
// It returns the directive, whether it was present, and the remaining content.
func ExtractDirective(token, content string) (Directive, bool, string, error) {
	dirs, err := ExtractDirectives(content, token)
	if err != nil {
		return Directive{}, false, "", err
	}
	dir, ok := dirs.Get(token)
	return dir, ok, dirs.Body, nil
}

// ExtractDirectives removes every directive line for tokens from content in a
// single pass. Each token may appear at most once, and only as a whole line:
// "!TOKEN" or "!TOKEN argument". Any other occurrence of "!TOKEN" is an error.
func ExtractDirectives(content string, tokens ...string) (*Directives, error) {
	lines := strings.Split(content, "\n")
	result := &Directives{Found: make(map[string]Directive)}
	body := make([]string, 0, len(lines))

	for i, line := range lines {
		lineNo := i + 1
		dir, matched, err := matchDirectiveLine(line, lineNo, tokens)
		if err != nil {
			return nil, err
		}
		if !matched {
			body = append(body, line)
			continue
		}

		if prev, dup := result.Found[dir.Name]; dup {
			return nil, newParseErrorWithLine(DuplicateDirective,
				fmt.Sprintf("!%s appears more than once (first on line %d)", dir.Name, prev.Line),
				strings.TrimRight(line, "\r"), lineNo)
		}
		debug.Debug("[parser] Directive !%s on line %d: %q", dir.Name, lineNo, dir.Argument)
		result.Found[dir.Name] = dir
	}

	result.Body = strings.Join(body, "\n")
	return result, nil
}

// matchDirectiveLine classifies line against tokens.
func matchDirectiveLine(line string, lineNo int, tokens []string) (Directive, bool, error) {
	trimmed := strings.TrimRight(line, "\r")
	for _, token := range tokens {
		prefix := "!" + token
		switch {
		case trimmed == prefix:
			return Directive{Name: token, Flag: true, Line: lineNo}, true, nil
		case strings.HasPrefix(trimmed, prefix+" "):
			arg := strings.TrimSpace(trimmed[len(prefix)+1:])
			return Directive{Name: token, Argument: arg, Flag: arg == "", Line: lineNo}, true, nil
		case strings.Contains(trimmed, prefix):
			return Directive{}, false, newParseErrorWithLine(MisplacedDirective,
				fmt.Sprintf("!%s must stand alone at the start of its line", token),
				trimmed, lineNo)
		}
	}
	return Directive{}, false, nil
}

// Metadata is what a template declares about itself through singleton tokens.
type Metadata struct {
	// Output is the !OUTPUT file name, empty when absent.
	Output string
	// Menu is the navigation metadata. Menu.Title is empty when not declared.
	Menu model.MenuInfo
}

// ExtractMetadata extracts the metadata tokens from a template and returns
// them together with the template body stripped of their lines.
func ExtractMetadata(content string) (*Metadata, string, error) {
	dirs, err := ExtractDirectives(content, MetadataTokens...)
	if err != nil {
		return nil, "", err
	}

	meta := &Metadata{}
	argOf := func(token string) (string, error) {
		dir, ok := dirs.Get(token)
		if !ok {
			return "", nil
		}
		if dir.Flag {
			return "", newParseErrorWithLine(MissingArgument,
				fmt.Sprintf("!%s requires an argument", token), "!"+token, dir.Line)
		}
		return dir.Argument, nil
	}
	intOf := func(token string) (int, error) {
		arg, err := argOf(token)
		if err != nil || arg == "" {
			return 0, err
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			dir, _ := dirs.Get(token)
			return 0, &ParseError{
				Type:      InvalidArgument,
				Message:   fmt.Sprintf("!%s expects an integer", token),
				Directive: "!" + token + " " + arg,
				Line:      dir.Line,
				Cause:     err,
			}
		}
		return n, nil
	}

	if meta.Output, err = argOf(TokenOutput); err != nil {
		return nil, "", err
	}
	if meta.Menu.Link, err = argOf(TokenMenuLink); err != nil {
		return nil, "", err
	}
	if meta.Menu.Section, err = argOf(TokenMenuSection); err != nil {
		return nil, "", err
	}
	if meta.Menu.Title, err = argOf(TokenMenuTitle); err != nil {
		return nil, "", err
	}
	if meta.Menu.Order, err = intOf(TokenMenuOrder); err != nil {
		return nil, "", err
	}
	if meta.Menu.Indent, err = intOf(TokenMenuIndent); err != nil {
		return nil, "", err
	}
	meta.Menu.Skip = dirs.Has(TokenMenuSkip)

	return meta, dirs.Body, nil
}
