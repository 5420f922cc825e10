package charclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWordChar(t *testing.T) {
	assert.True(t, IsWordChar('a'))
	assert.True(t, IsWordChar('9'))
	assert.True(t, IsWordChar('_'))
	assert.False(t, IsWordChar(' '))
	assert.False(t, IsWordChar('-'))
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(' '))
	assert.True(t, IsWhitespace('\n'))
	assert.True(t, IsWhitespace('\t'))
	assert.False(t, IsWhitespace('a'))
}

func TestIsPunctuationExcludesUnderscoreDashPlus(t *testing.T) {
	assert.True(t, IsPunctuation('.'))
	assert.True(t, IsPunctuation(','))
	assert.True(t, IsPunctuation('!'))
	assert.False(t, IsPunctuation('_'))
	assert.False(t, IsPunctuation('-'))
	assert.False(t, IsPunctuation('+'))
	assert.False(t, IsPunctuation('a'))
}

func TestIsDelimiter(t *testing.T) {
	assert.True(t, IsDelimiter(' '))
	assert.True(t, IsDelimiter('.'))
	assert.True(t, IsDelimiter('+')) // symbol, not punctuation, but still a delimiter
	assert.False(t, IsDelimiter('a'))
	assert.False(t, IsDelimiter('_'))
}

func TestIsStartBoundChar(t *testing.T) {
	assert.True(t, IsStartBoundChar(' '))
	assert.True(t, IsStartBoundChar('('))
	assert.True(t, IsStartBoundChar('['))
	assert.True(t, IsStartBoundChar('{'))
	assert.True(t, IsStartBoundChar(',')) // punctuation, not a closer
	assert.False(t, IsStartBoundChar(')')) // closer punctuation
	assert.False(t, IsStartBoundChar('a'))
}

func TestIsEndBoundChar(t *testing.T) {
	assert.True(t, IsEndBoundChar(' '))
	assert.True(t, IsEndBoundChar('.'))
	assert.False(t, IsEndBoundChar('a'))
}

func TestInEmojiLowPlane(t *testing.T) {
	assert.True(t, InEmojiLowPlane(0x1F600))   // 😀 SMP
	assert.True(t, InEmojiLowPlane(0x200D))    // ZWJ
	assert.True(t, InEmojiLowPlane(0xFE0F))    // variation selector
	assert.True(t, InEmojiLowPlane(0x2764))    // heavy black heart
	assert.False(t, InEmojiLowPlane('a'))
}

func TestCodePointAt(t *testing.T) {
	s := "a😀b"
	r, size := CodePointAt(s, 0)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, size)

	r, size = CodePointAt(s, 1)
	assert.Equal(t, '😀', r)
	assert.Equal(t, 4, size)

	r, size = CodePointAt(s, len(s))
	assert.Equal(t, rune(0), r)
	assert.Equal(t, 0, size)
}

func TestWordBound(t *testing.T) {
	assert.True(t, WordBound(0, false, 'a', true))  // string start
	assert.True(t, WordBound('a', true, 0, false))  // string end
	assert.True(t, WordBound(' ', true, 'a', true)) // whitespace before
	assert.False(t, WordBound('a', true, 'b', true))
}
