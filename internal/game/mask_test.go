package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordLength(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"cat", 3},
		{"ice cream", 8},
		{"  padded  ", 6},
		{"고양이", 3},
		{"a b c", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WordLength(tt.word), "word %q", tt.word)
	}
}

func TestMaskWordOneGlyphPerCodePoint(t *testing.T) {
	assert.Equal(t, strings.Repeat(maskGlyph, 3), MaskWord("cat"))
	assert.Equal(t, strings.Repeat(maskGlyph, 8), MaskWord("ice cream"))
	assert.Equal(t, strings.Repeat(maskGlyph, 3), MaskWord("고양이"))
}

func TestMaskWordNeverEmpty(t *testing.T) {
	assert.Equal(t, maskGlyph, MaskWord(""))
	assert.Equal(t, maskGlyph, MaskWord("   "))
}
