package game

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maskGlyph is the placeholder shown in place of each answer character
const maskGlyph = "☆"

// WordLength returns the display length of a word: its code-point count with
// all whitespace removed. The empty word has length 0.
func WordLength(word string) int {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, word)
	return utf8.RuneCountInString(cleaned)
}

// MaskWord replaces a word with one placeholder glyph per display character,
// never fewer than one glyph.
func MaskWord(word string) string {
	n := WordLength(word)
	if n < 1 {
		n = 1
	}
	return strings.Repeat(maskGlyph, n)
}
