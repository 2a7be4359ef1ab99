package menu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Titlize turns a file name base such as "getting-started" into a menu title.
// Words longer than three characters get an upper-case first letter; shorter
// words are kept as written.
func Titlize(filenameBase string) string {
	words := strings.Split(filenameBase, "-")
	for i, word := range words {
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
