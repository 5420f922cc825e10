package parser

import (
	"strings"

	"github.com/richedit/core/internal/charclass"
	"github.com/richedit/core/internal/token"
)

// mdMarkerEntry is one still-open marker on the format stack: bit is the
// format it toggles, tokenIndex is its position in the output slice so an
// unterminated opener can later be demoted to plain text in place.
type mdMarkerEntry struct {
	bit        token.Format
	tokenIndex int
}

// mdState tracks open Markdown markers by format bit rather than by
// nesting position (§9 design note): closing "*" pops whichever stack
// entry carries the Bold bit, regardless of how many other markers
// opened after it.
type mdState struct {
	stack []mdMarkerEntry
}

func (m *mdState) currentFormat() token.Format {
	var f token.Format
	for _, e := range m.stack {
		f |= e.bit
	}
	return f
}

func (m *mdState) hasOpen(bit token.Format) bool {
	for _, e := range m.stack {
		if e.bit == bit {
			return true
		}
	}
	return false
}

func (m *mdState) open(bit token.Format, idx int) {
	m.stack = append(m.stack, mdMarkerEntry{bit: bit, tokenIndex: idx})
}

func (m *mdState) close(bit token.Format) {
	for i, e := range m.stack {
		if e.bit == bit {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return
		}
	}
}

func markerBit(c byte) (token.Format, bool) {
	switch c {
	case '*':
		return token.Bold, true
	case '_':
		return token.Italic, true
	case '~':
		return token.Strike, true
	case '`':
		return token.Monospace, true
	}
	return 0, false
}

// tryMarkdown dispatches to the custom-link form at '[' or to single-char
// emphasis markers, returning the new scan position on success.
func (p *scanner) tryMarkdown(i int) (int, bool) {
	c := p.s[i]

	if c == '[' {
		if end, label, url, ok := p.matchCustomLink(i); ok {
			p.flushPending()
			cur := p.md.currentFormat()
			p.out = append(p.out,
				token.Token{Kind: token.Markdown, Value: "[", Format: cur},
				token.Token{Kind: token.Text, Value: label, Format: cur | token.LinkLabel},
				token.Token{Kind: token.Markdown, Value: "]", Format: cur},
				token.Token{Kind: token.Markdown, Value: "(", Format: cur | token.FormatLink},
				token.Token{Kind: token.Link, Value: url, LinkURL: url, LinkAuto: false, Format: cur},
				token.Token{Kind: token.Markdown, Value: ")", Format: cur},
			)
			return end, true
		}
		return i, false
	}

	bit, isMarker := markerBit(c)
	if !isMarker {
		return i, false
	}

	if p.md.hasOpen(bit) {
		after, afterSize := charclass.CodePointAt(p.s, i+1)
		if afterSize > 0 && !charclass.IsEndBoundChar(after) {
			return i, false
		}
		p.flushPending()
		p.md.close(bit)
		p.out = append(p.out, token.Token{Kind: token.Markdown, Value: string(c), Format: p.md.currentFormat()})
		return i + 1, true
	}

	if i > 0 {
		before, size := lastRune(p.s[:i])
		if size > 0 && !charclass.IsStartBoundChar(before) {
			return i, false
		}
	}
	p.flushPending()
	cur := p.md.currentFormat()
	p.out = append(p.out, token.Token{Kind: token.Markdown, Value: string(c), Format: cur})
	p.md.open(bit, len(p.out)-1)
	return i + 1, true
}

// matchCustomLink attempts a full-lookahead match of "[label](url)" at i,
// rather than incrementally opening at "[" and backtracking on a failed
// close: a pragmatic simplification (see DESIGN.md) that yields the same
// observable token sequence for every case the invariants in §4.3.1 cover.
func (p *scanner) matchCustomLink(i int) (end int, label string, url string, ok bool) {
	const capLen = 2000
	rest := p.s[i:]
	runes := 0
	for off := range rest {
		if runes == capLen {
			rest = rest[:off]
			break
		}
		runes++
	}
	if len(rest) == 0 || rest[0] != '[' {
		return 0, "", "", false
	}
	closeBracket := strings.IndexByte(rest, ']')
	if closeBracket < 0 {
		return 0, "", "", false
	}
	label = rest[1:closeBracket]
	if strings.ContainsAny(label, "\n\r") {
		return 0, "", "", false
	}
	if closeBracket+1 >= len(rest) || rest[closeBracket+1] != '(' {
		return 0, "", "", false
	}
	urlStart := closeBracket + 2
	closeParen := strings.IndexByte(rest[urlStart:], ')')
	if closeParen < 0 {
		return 0, "", "", false
	}
	url = rest[urlStart : urlStart+closeParen]
	if url == "" || strings.ContainsAny(url, " \t\n\r()") {
		return 0, "", "", false
	}
	end = i + urlStart + closeParen + 1
	return end, label, url, true
}

// closeUnterminatedMarkers demotes any still-open marker tokens to plain
// Text at end of input, keeping their Value and the format that was in
// effect before they opened; interior tokens keep whatever format applied
// while the marker was open (§4.3.1).
func (p *scanner) closeUnterminatedMarkers() {
	for _, e := range p.md.stack {
		if e.tokenIndex >= 0 && e.tokenIndex < len(p.out) {
			p.out[e.tokenIndex].Kind = token.Text
		}
	}
	p.md.stack = nil
}
