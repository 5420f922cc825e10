/*
Package emoji implements the greedy emoji-sequence recognizer (C2):
given a position in a source string, it reports the exclusive end index
of the longest emoji sequence starting there, or "no match".

The scan loop is hand-written rather than built on a third-party emoji
library because every candidate in this repository's source pack
(kyokomi/emoji, the teacher's own emoji map) is a name/shortcode→glyph
lookup table, not a positional sequence scanner; see DESIGN.md. The
ranges below and the "fully-qualified only" conformance rule follow
mwhittaker/emojis' emoji-test.txt parser, and the sorted-range-plus-
binary-search shape follows rhogenson/emoji's generated tables.
*/
package emoji

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/richedit/core/internal/charclass"
)

// base covers single-codepoint emoji in the BMP dingbat/symbol blocks and
// the whole SMP pictograph range (U+1F000-U+1FFFF). It intentionally
// over-approximates: Match still requires the codepoint to additionally
// pass the low-plane bitmap or SMP check before treating it as a base.
var baseRanges = []struct{ lo, hi rune }{
	{0x203C, 0x2049},
	{0x2122, 0x2B59},
	{0x3030, 0x303D},
	{0x3297, 0x3299},
}

func init() {
	sort.Slice(baseRanges, func(i, j int) bool { return baseRanges[i].lo < baseRanges[j].lo })
}

const (
	zwj             rune = 0x200D
	variationText   rune = 0xFE0E
	variationEmoji  rune = 0xFE0F
	skinToneLo      rune = 0x1F3FB
	skinToneHi      rune = 0x1F3FF
	regionalLo      rune = 0x1F1E6
	regionalHi      rune = 0x1F1FF
	keycapCombining rune = 0x20E3
)

func isBase(r rune) bool {
	if r >= 0x1F000 && r <= 0x1FFFF {
		return true
	}
	// baseRanges is sorted by lo; binary-search for the last range that
	// could contain r, then check its bounds.
	n := len(baseRanges)
	idx := sort.Search(n, func(i int) bool { return baseRanges[i].lo > r })
	if idx == 0 {
		return false
	}
	rg := baseRanges[idx-1]
	return r >= rg.lo && r <= rg.hi
}

func isVariationSelector(r rune) bool { return r == variationText || r == variationEmoji }
func isSkinTone(r rune) bool          { return r >= skinToneLo && r <= skinToneHi }
func isRegionalIndicator(r rune) bool { return r >= regionalLo && r <= regionalHi }

// Match attempts a greedy longest match of an emoji sequence in s
// starting at byte offset i. It returns the exclusive end byte offset
// and true on success, or (i, false) if no sequence starts at i.
func Match(s string, i int) (int, bool) {
	r, size := charclass.CodePointAt(s, i)
	if size == 0 {
		return i, false
	}
	if !isKeycapBase(r) && !charclass.InEmojiLowPlane(r) {
		return i, false
	}
	if kc, ok := matchKeycap(s, i); ok {
		return kc, true
	}
	if fl, ok := matchFlag(s, i); ok {
		return fl, true
	}
	if isRegionalIndicator(r) {
		// An unpaired regional indicator is not an emoji on its own.
		return i, false
	}
	return matchPictographic(s, i)
}

// matchPictographic consumes: base [variation-selector | skin-tone]
// (ZWJ base [variation-selector | skin-tone])*
func matchPictographic(s string, i int) (int, bool) {
	r, size := charclass.CodePointAt(s, i)
	if size == 0 || !isBase(r) {
		return i, false
	}
	end := i + size

	for {
		end = consumeModifier(s, end)
		next, nsize := charclass.CodePointAt(s, end)
		if nsize == 0 || next != zwj {
			break
		}
		after, asize := charclass.CodePointAt(s, end+nsize)
		if asize == 0 || !isBase(after) {
			break
		}
		end = end + nsize + asize
	}
	return end, true
}

// consumeModifier consumes at most one variation selector or skin-tone
// modifier immediately at pos, returning the new position.
func consumeModifier(s string, pos int) int {
	r, size := charclass.CodePointAt(s, pos)
	if size == 0 {
		return pos
	}
	if isVariationSelector(r) || isSkinTone(r) {
		return pos + size
	}
	return pos
}

// matchFlag consumes a pair of regional-indicator symbols. Regional
// indicators are only ever consumed in pairs (§4.2).
func matchFlag(s string, i int) (int, bool) {
	r1, size1 := charclass.CodePointAt(s, i)
	if size1 == 0 || !isRegionalIndicator(r1) {
		return i, false
	}
	r2, size2 := charclass.CodePointAt(s, i+size1)
	if size2 == 0 || !isRegionalIndicator(r2) {
		return i, false
	}
	return i + size1 + size2, true
}

// matchKeycap consumes digit/#/* + U+FE0F + U+20E3.
func matchKeycap(s string, i int) (int, bool) {
	r, size := charclass.CodePointAt(s, i)
	if size == 0 || !isKeycapBase(r) {
		return i, false
	}
	pos := i + size
	r2, size2 := charclass.CodePointAt(s, pos)
	if size2 == 0 || r2 != variationEmoji {
		return i, false
	}
	pos += size2
	r3, size3 := charclass.CodePointAt(s, pos)
	if size3 == 0 || r3 != keycapCombining {
		return i, false
	}
	return pos + size3, true
}

func isKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

// textAliases maps a word-bound-flanked text shorthand to its Unicode
// emoji glyph, in the manner of the teacher's commit-type emoji map:
// a small fixed table looked up by exact string, longest alias first so
// ":-)" is tried before ":)" is assumed to have failed.
var textAliases = []struct {
	alias string
	glyph string
}{
	{":-)", "🙂"},
	{":)", "🙂"},
	{":-(", "🙁"},
	{":(", "🙁"},
	{":-D", "😀"},
	{":D", "😀"},
	{";-)", "😉"},
	{";)", "😉"},
	{":-P", "😛"},
	{":P", "😛"},
	{":-p", "😛"},
	{":p", "😛"},
	{":'(", "😢"},
	{"<3", "❤️"},
	{":-|", "😐"},
	{":|", "😐"},
	{":-O", "😮"},
	{":O", "😮"},
}

func init() {
	sort.Slice(textAliases, func(i, j int) bool {
		return len(textAliases[i].alias) > len(textAliases[j].alias)
	})
}

// MatchTextAlias attempts to match one of the fixed text-emoji aliases
// (":)", ":(", ...) at byte offset i in s, requiring word bounds on both
// sides per §4.2. It returns the glyph, the exclusive end byte offset,
// and true on success.
func MatchTextAlias(s string, i int) (glyph string, end int, ok bool) {
	before, beforeOK := precedingRune(s, i)
	if beforeOK && !charclass.IsDelimiter(before) {
		return "", i, false
	}
	for _, ta := range textAliases {
		if !strings.HasPrefix(s[i:], ta.alias) {
			continue
		}
		candidateEnd := i + len(ta.alias)
		after, afterSize := charclass.CodePointAt(s, candidateEnd)
		if afterSize > 0 && !charclass.IsDelimiter(after) {
			continue
		}
		return ta.glyph, candidateEnd, true
	}
	return "", i, false
}

func precedingRune(s string, i int) (rune, bool) {
	if i <= 0 {
		return 0, false
	}
	r, size := utf8.DecodeLastRuneInString(s[:i])
	if size == 0 {
		return 0, false
	}
	return r, true
}
