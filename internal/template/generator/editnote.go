package generator

import "strings"

// DefaultEditNoteRepeat is how many warning blocks an edit note holds by default.
const DefaultEditNoteRepeat = 5

// EditNote returns the HTML comment placed around generated files, telling
// readers to edit srcRel instead. The warning block is repeated repeat times,
// padded with blank lines so that it stays visible in diffs.
func EditNote(srcRel string, repeat int) string {
	if repeat <= 0 {
		repeat = DefaultEditNoteRepeat
	}

	padding := strings.Repeat("\n", 5)
	block := strings.Join([]string{
		padding,
		"    WARNING, READ THIS.",
		"    This is a computed file. Do not edit.",
		"    Edit `" + srcRel + "` instead.",
		padding,
	}, "\n")

	parts := make([]string, 0, repeat+2)
	parts = append(parts, "<!---")
	for i := 0; i < repeat; i++ {
		parts = append(parts, block)
	}
	parts = append(parts, "-->")
	return strings.Join(parts, "\n")
}

// WrapEditNote places the edit note for srcRel before and after content.
func WrapEditNote(content, srcRel string, repeat int) string {
	note := EditNote(srcRel, repeat)
	return note + "\n" + content + "\n" + note + "\n"
}
