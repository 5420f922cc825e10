/*
Package charclass provides the Unicode code-point predicates the parser
and the Markdown mirror build on: word bounds, delimiters, punctuation,
whitespace, and a fast low-plane bitmap used to pre-filter candidate
emoji starts before handing off to internal/emoji's full scan.

Predicates are expressed as unicode.RangeTable tables wrapped by
golang.org/x/text/runes.In, rather than hand-rolled switch
statements over code-point ranges, because every range beyond a single
stdlib unicode category in this repository's source pack is built that
way.
*/
package charclass

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
)

// emojiLowPlaneTable covers the BMP symbol blocks that host dingbats,
// miscellaneous symbols, and the keycap/regional-indicator machinery
// consumed by internal/emoji. Built as a unicode.RangeTable (the same
// shape as the stdlib's own unicode.White_Space/unicode.Punct) so it
// composes with runes.In like any other Unicode property table.
var emojiLowPlaneTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200D, Hi: 0x200D, Stride: 1}, // zero width joiner
		{Lo: 0x203C, Hi: 0x2049, Stride: 1}, // double/interrobang marks
		{Lo: 0x2122, Hi: 0x2B59, Stride: 1}, // trademark through misc symbols/arrows
		{Lo: 0x3030, Hi: 0x303D, Stride: 1}, // wavy dash, part alternation mark
		{Lo: 0x3297, Hi: 0x3299, Stride: 1}, // circled ideographs used as emoji
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
}

var (
	whitespaceSet = runes.In(unicode.White_Space)
	punctSet      = runes.In(unicode.Punct)
	symbolSet     = runes.In(unicode.Symbol)
	emojiLowSet   = runes.In(emojiLowPlaneTable)
)

// IsWordChar reports whether r participates in a "word" for boundary
// purposes: letters, digits, and underscore.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// IsWhitespace reports whether r is Unicode whitespace.
func IsWhitespace(r rune) bool {
	return whitespaceSet.Contains(r)
}

// IsPunctuation reports whether r is Unicode punctuation, excluding the
// three characters §4.1 carves out because they are treated as word
// characters by mention/command/hashtag matching: '_', '-', '+'.
func IsPunctuation(r rune) bool {
	if r == '_' || r == '-' || r == '+' {
		return false
	}
	return punctSet.Contains(r)
}

// IsDelimiter reports whether r is a word-bound delimiter: whitespace,
// punctuation, or a standalone Unicode symbol (arrows, math operators,
// currency signs — none of these continue a word either).
func IsDelimiter(r rune) bool {
	return IsWhitespace(r) || IsPunctuation(r) || symbolSet.Contains(r)
}

// IsStartBoundChar reports whether r may immediately precede an opening
// Markdown marker (§4.3.1): whitespace, an opening bracket, or punctuation
// that is not itself a closer.
func IsStartBoundChar(r rune) bool {
	switch r {
	case '(', '[', '{':
		return true
	}
	if IsWhitespace(r) {
		return true
	}
	if IsPunctuation(r) {
		return !isCloserPunct(r)
	}
	return false
}

// IsEndBoundChar reports whether r may immediately follow a closing
// Markdown marker (§4.3.1): a delimiter or punctuation character. String
// end is handled by callers (there is no rune to test).
func IsEndBoundChar(r rune) bool {
	return IsDelimiter(r)
}

func isCloserPunct(r rune) bool {
	switch r {
	case ')', ']', '}', '.', '!', '?', ';', ':':
		return true
	}
	return false
}

// InEmojiLowPlane reports whether r falls in one of the BMP symbol blocks
// that can start or continue an emoji sequence. It is a cheap
// pre-filter: a false result means r definitely cannot be part of an
// emoji sequence in the low plane; a true result only means internal/emoji
// should attempt a full match.
func InEmojiLowPlane(r rune) bool {
	if r >= 0x1F000 && r <= 0x1FFFF {
		return true
	}
	return emojiLowSet.Contains(r)
}

// CodePointAt decodes the full Unicode scalar value starting at byte
// offset i in s, returning the rune and its width in bytes. It never
// splits a surrogate pair because Go strings are UTF-8: there are no
// surrogate halves to split. RuneError/size 1 is returned for invalid
// UTF-8, matching utf8.DecodeRuneInString.
func CodePointAt(s string, i int) (rune, int) {
	if i < 0 || i >= len(s) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s[i:])
}

// WordBound reports whether the position between the optional runes
// before and after is a word boundary: true at string start/end (ok=false
// for the missing side) or when either neighbor is whitespace/delimiter.
func WordBound(before rune, beforeOK bool, after rune, afterOK bool) bool {
	if !beforeOK || !afterOK {
		return true
	}
	return IsDelimiter(before) || IsDelimiter(after)
}
