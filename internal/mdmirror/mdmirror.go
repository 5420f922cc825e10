/*
Package mdmirror implements the Markdown mirror (C5): converting between
the canonical Token sequence and a Markdown-flavored source string, and
translating code-point positions between the two coordinate spaces so a
caret or selection survives the round trip.

MDToText is a thin wrapper over internal/parser (Markdown source is just
another Parse call); TextToMD is its inverse, grounded on the same
marker-by-format-bit bookkeeping as internal/parser/markdown.go, run in
reverse: literal marker tokens are echoed as-is, and any format bit that
survives on a content token without a backing literal marker (set
programmatically, e.g. by SetFormat) gets a marker synthesized around it.
*/
package mdmirror

import (
	"strings"
	"unicode/utf8"

	"github.com/richedit/core/internal/charclass"
	"github.com/richedit/core/internal/parser"
	"github.com/richedit/core/internal/runeutil"
	"github.com/richedit/core/internal/token"
)

// Breakpoint pairs a code-point offset in the Token-sequence coordinate
// space with the corresponding offset in the Markdown source.
type Breakpoint struct {
	TextPos int
	MDPos   int
}

// MDToText parses Markdown source into the canonical Token sequence,
// using opts to decide which non-Markdown recognizers also run. It
// returns breakpoints suitable for TranslateToMD/TranslateToText.
func MDToText(md string, opts parser.Options) ([]token.Token, []Breakpoint) {
	opts.Markdown = true
	tokens := parser.Parse(md, opts)
	return tokens, breakpointsFromTokens(tokens)
}

// breakpointsFromTokens builds one breakpoint per token boundary: in the
// Markdown source every token occupies Value's length, while in the
// Token-sequence coordinate space a literal Markdown marker token
// occupies zero width (it is punctuation belonging to the rendering, not
// to the logical text).
func breakpointsFromTokens(tokens []token.Token) []Breakpoint {
	bps := make([]Breakpoint, 0, len(tokens)+1)
	var textPos, mdPos int
	bps = append(bps, Breakpoint{textPos, mdPos})
	for _, t := range tokens {
		mdPos += runeutil.Len(t.Value)
		if t.Kind != token.Markdown {
			textPos += t.Len()
		}
		bps = append(bps, Breakpoint{textPos, mdPos})
	}
	return bps
}

// TranslateToMD maps a code-point offset in the Token-sequence space to
// its corresponding offset in the Markdown source.
func TranslateToMD(bps []Breakpoint, textPos int) int {
	return translate(bps, textPos, true)
}

// TranslateToText maps a code-point offset in the Markdown source to its
// corresponding offset in the Token-sequence space.
func TranslateToText(bps []Breakpoint, mdPos int) int {
	return translate(bps, mdPos, false)
}

func translate(bps []Breakpoint, pos int, fromText bool) int {
	if len(bps) == 0 {
		return 0
	}
	get := func(b Breakpoint) (int, int) {
		if fromText {
			return b.TextPos, b.MDPos
		}
		return b.MDPos, b.TextPos
	}
	for i := 0; i < len(bps)-1; i++ {
		loSrc, loDst := get(bps[i])
		hiSrc, hiDst := get(bps[i+1])
		if pos < loSrc {
			return loDst
		}
		if pos <= hiSrc {
			if hiSrc == loSrc {
				return loDst
			}
			return loDst + (pos-loSrc)*(hiDst-loDst)/(hiSrc-loSrc)
		}
	}
	_, dst := get(bps[len(bps)-1])
	return dst
}

// ToClean strips the literal Markdown-marker tokens out of an MD-bearing
// sequence (one produced by MDToText, or held live by the editor
// coordinator in Markdown mode), returning the "clean" sequence a
// non-Markdown-aware consumer expects plus the breakpoints needed to
// carry a range across the transform with AdjustRange.
func ToClean(mdBearing []token.Token) ([]token.Token, []Breakpoint) {
	bps := breakpointsFromTokens(mdBearing)
	clean := make([]token.Token, 0, len(mdBearing))
	for _, t := range mdBearing {
		if t.Kind == token.Markdown {
			continue
		}
		clean = append(clean, t)
	}
	return token.Normalize(clean), bps
}

// AdjustRange translates r from the coordinate space bps.TextPos is drawn
// from (the clean sequence) to the one bps.MDPos is drawn from (the
// MD-bearing source), or the reverse when toClean is true. Both endpoints
// are translated by the same rule; there is no Start/End distinction. A
// clean offset that sits at a stripped marker maps to the Markdown offset
// before that marker, for From and To alike.
func AdjustRange(bps []Breakpoint, r token.TextRange, toClean bool) token.TextRange {
	translate := TranslateToText
	if !toClean {
		translate = TranslateToMD
	}
	return token.TextRange{
		From: translate(bps, r.From),
		To:   translate(bps, r.To),
	}
}

var markerChar = map[token.Format]byte{
	token.Bold:      '*',
	token.Italic:    '_',
	token.Strike:    '~',
	token.Monospace: '`',
}

// synthesizableBits is the canonical open/close order used when a format
// bit has no backing literal marker token and must be synthesized.
// Heading, Marked, and Highlight are deliberately excluded: the parser
// never produces them from source syntax (see DESIGN.md), so there is no
// established Markdown spelling to invert them into.
var synthesizableBits = []token.Format{token.Bold, token.Italic, token.Strike, token.Monospace}

var synthesizableMask = func() token.Format {
	var m token.Format
	for _, bit := range synthesizableBits {
		m |= bit
	}
	return m
}()

// TextToMD serializes tokens back into Markdown source, returning
// breakpoints suitable for TranslateToMD/TranslateToText.
func TextToMD(tokens []token.Token) (string, []Breakpoint) {
	var out strings.Builder
	var backed, synthesized token.Format
	inLiteralLink := false
	var lastRune rune
	haveLastRune := false

	var textPos, mdPos int
	bps := []Breakpoint{{textPos, mdPos}}

	emit := func(s string) {
		if s == "" {
			return
		}
		out.WriteString(s)
		mdPos += runeutil.Len(s)
		r, _ := utf8.DecodeLastRuneInString(s)
		lastRune = r
		haveLastRune = true
	}

	for _, t := range tokens {
		switch t.Kind {
		case token.Markdown:
			if bit, ok := markerBit(t.Value); ok {
				if backed.Has(bit) {
					backed &^= bit
				} else {
					backed |= bit
				}
			}
			switch t.Value {
			case "[":
				inLiteralLink = true
			case ")":
				inLiteralLink = false
			}
			emit(t.Value)
			bps = append(bps, Breakpoint{textPos, mdPos})
			continue
		case token.Link:
			closeSynthesized(emit, &synthesized, t.Format)
			openSynthesized(emit, &synthesized, backed, t.Format, lastRune, haveLastRune)
			if t.LinkAuto || inLiteralLink {
				emit(t.Value)
			} else {
				emit("[")
				emit(t.Value)
				emit("](")
				emit(t.LinkURL)
				emit(")")
			}
			textPos += t.Len()
			bps = append(bps, Breakpoint{textPos, mdPos})
			continue
		}

		closeSynthesized(emit, &synthesized, t.Format)
		openSynthesized(emit, &synthesized, backed, t.Format, lastRune, haveLastRune)
		emit(t.Value)
		textPos += t.Len()
		bps = append(bps, Breakpoint{textPos, mdPos})
	}

	closeSynthesized(emit, &synthesized, 0)
	bps = append(bps, Breakpoint{textPos, mdPos})

	return out.String(), bps
}

func markerBit(marker string) (token.Format, bool) {
	if len(marker) != 1 {
		return 0, false
	}
	for bit, c := range markerChar {
		if marker[0] == c {
			return bit, true
		}
	}
	return 0, false
}

// closeSynthesized closes every synthesized marker whose bit is not in
// want, in the reverse of synthesizableBits order.
func closeSynthesized(emit func(string), synthesized *token.Format, want token.Format) {
	for i := len(synthesizableBits) - 1; i >= 0; i-- {
		bit := synthesizableBits[i]
		if synthesized.Has(bit) && !want.Has(bit) {
			emit(string([]byte{markerChar[bit]}))
			*synthesized &^= bit
		}
	}
}

// openSynthesized opens a synthesized marker for every bit in want that
// is neither already backed by a literal marker nor already synthesized.
// Per §4.5 rule (i): when this opens at least one genuinely new marker
// and the previously emitted rune is not a legal Markdown opener left
// boundary (IsStartBoundChar), a space is inserted first so the opener
// the parser reads back is actually parse-legal instead of being
// swallowed as plain mid-word punctuation.
func openSynthesized(emit func(string), synthesized *token.Format, backed, want token.Format, lastRune rune, haveLastRune bool) {
	opening := (want &^ backed &^ *synthesized) & synthesizableMask
	if opening != 0 && haveLastRune && !charclass.IsStartBoundChar(lastRune) {
		emit(" ")
	}
	for _, bit := range synthesizableBits {
		if want.Has(bit) && !backed.Has(bit) && !synthesized.Has(bit) {
			emit(string([]byte{markerChar[bit]}))
			*synthesized |= bit
		}
	}
}
