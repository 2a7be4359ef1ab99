package parser

import (
	"fmt"
	"strings"
)

// FlagHideSourcePath suppresses the source-path comment of one inclusion.
const FlagHideSourcePath = "--hide-source-path"

var knownInlineFlags = map[string]bool{
	FlagHideSourcePath: true,
}

// inlineCommand is a parsed "!INLINE <path> [args...] [--flags...]" line.
type inlineCommand struct {
	// Inputs are the positional words in order; Inputs[0] is the path spec.
	Inputs []string
	// Flags holds every "--" word, regardless of position.
	Flags map[string]bool
	// Raw is the original line.
	Raw string
}

// Spec returns the path spec as written.
func (c *inlineCommand) Spec() string {
	return c.Inputs[0]
}

func isInlineLine(line string) bool {
	return line == "!"+TokenInline || strings.HasPrefix(line, "!"+TokenInline+" ")
}

// parseInlineLine splits an !INLINE line into positional inputs and flags.
func parseInlineLine(line string) (*inlineCommand, error) {
	raw := strings.TrimRight(line, "\r")
	words := strings.Fields(raw)
	cmd := &inlineCommand{
		Flags: make(map[string]bool),
		Raw:   raw,
	}

	for _, word := range words[1:] {
		if strings.HasPrefix(word, "--") {
			if !knownInlineFlags[word] {
				return nil, newParseErrorWithDirective(InvalidArgument,
					fmt.Sprintf("unknown !INLINE flag %s", word), raw)
			}
			cmd.Flags[word] = true
			continue
		}
		cmd.Inputs = append(cmd.Inputs, word)
	}

	if len(cmd.Inputs) == 0 {
		return nil, newParseErrorWithDirective(MissingArgument, "!INLINE requires a file path", raw)
	}
	return cmd, nil
}
