package textalgebra

import (
	"github.com/richedit/core/internal/parser"
	"github.com/richedit/core/internal/runeutil"
	"github.com/richedit/core/internal/token"
)

// snapEmojiBoundsOutward implements removeText's "if the deletion
// boundary falls inside an emoji range, snap outward to that emoji's
// bounds" (§4.4): from moves down to the enclosing emoji's start offset,
// to moves up to its end offset, so the whole glyph is always removed
// together rather than split. This is distinct from clampPos's ordinary
// nearest-boundary rule (still used for solid tokens and every other
// operation that calls SplitAt): removeText is the one place the spec
// names a direction, and it is always outward, never nearest.
func snapEmojiBoundsOutward(tokens []token.Token, from, to int) (int, int) {
	return snapEmojiPos(tokens, from, true), snapEmojiPos(tokens, to, false)
}

func snapEmojiPos(tokens []token.Token, pos int, toStart bool) int {
	starts := prefixStarts(tokens)
	total := starts[len(starts)-1]
	if pos <= 0 || pos >= total {
		return pos
	}
	for k, t := range tokens {
		s, e := starts[k], starts[k+1]
		if pos <= s || pos >= e {
			continue
		}
		if t.Kind != token.Text {
			return pos
		}
		local := pos - s
		for _, rng := range t.Emoji {
			if local > rng.From && local < rng.To {
				if toStart {
					return s + rng.From
				}
				return s + rng.To
			}
		}
		return pos
	}
	return pos
}

// RemoveText deletes the code-point range [from, to) and returns the
// normalized remainder.
func RemoveText(tokens []token.Token, from, to int) []token.Token {
	total := token.TotalLen(tokens)
	from = clampInt(from, 0, total)
	to = clampInt(to, 0, total)
	if from > to {
		from, to = to, from
	}
	from, to = snapEmojiBoundsOutward(tokens, from, to)
	left, rest := SplitAt(tokens, from)
	_, right := SplitAt(rest, to-from)
	return token.Normalize(append(append([]token.Token{}, left...), right...))
}

// CutText removes the code-point range [from, to) and also returns the
// removed tokens, for a clipboard-style cut. The same emoji-outward snap
// RemoveText applies is performed once up front so cut and remaining
// partition the source identically instead of disagreeing about which
// side of a boundary emoji an un-snapped Slice call would keep.
func CutText(tokens []token.Token, from, to int) (removed []token.Token, remaining []token.Token) {
	total := token.TotalLen(tokens)
	from = clampInt(from, 0, total)
	to = clampInt(to, 0, total)
	if from > to {
		from, to = to, from
	}
	from, to = snapEmojiBoundsOutward(tokens, from, to)
	removed = Slice(tokens, from, to)
	remaining = RemoveText(tokens, from, to)
	return removed, remaining
}

// shouldAbsorb reports whether neighbor should be folded into the
// reparse window around an edit, rather than left untouched: plain Text
// always is (so the recognizers re-run with real surrounding context),
// and so is any Link token — insertText merges with an immediately
// adjacent auto-Link and re-parses the union unconditionally (§4.4); the
// stickyLink mechanism of §4.4.2 is a distinct, separate rule about a
// Link surviving a full replaceText of its own content, not a
// precondition for this baseline absorb-and-reparse behavior.
func shouldAbsorb(t token.Token, opts parser.Options) bool {
	switch t.Kind {
	case token.Text, token.Link:
		return true
	}
	return false
}

// reparseWindow finds the code-point span around pos that must be
// re-tokenized for an edit to take effect: the token straddling pos (if
// any), widened to include whichever neighbors should absorb the change.
// This is a deliberate approximation of true incremental re-parsing (see
// DESIGN.md): it recovers correct boundary context for the common case of
// Text and Link neighbors, but a word character sitting directly
// against an unrelated solid token (Mention, Command, HashTag,
// UserSticker) at the window edge is not threaded through as context.
func reparseWindow(tokens []token.Token, pos int, opts parser.Options) (winStart, winEnd int) {
	starts := prefixStarts(tokens)
	n := len(tokens)
	winStart, winEnd = pos, pos

	for k := 0; k < n; k++ {
		s, e := starts[k], starts[k+1]
		if pos > s && pos < e {
			winStart, winEnd = s, e
			return winStart, winEnd
		}
		if pos == s && k > 0 {
			left := tokens[k-1]
			if shouldAbsorb(left, opts) {
				winStart = starts[k-1]
			}
		}
		if pos == e && k < n {
			if k+1 < n {
				right := tokens[k+1]
				if shouldAbsorb(right, opts) {
					winEnd = starts[k+2]
				}
			}
		}
	}
	return winStart, winEnd
}

// ReplaceText substitutes the code-point range [from, to) with text,
// re-tokenizing only the minimal window that the edit could affect (see
// reparseWindow), and returns the normalized result.
func ReplaceText(tokens []token.Token, from, to int, text string, opts parser.Options) []token.Token {
	total := token.TotalLen(tokens)
	from = clampInt(from, 0, total)
	to = clampInt(to, 0, total)
	if from > to {
		from, to = to, from
	}

	startFormat := GetFormatAt(tokens, from)
	endFormat := startFormat
	if endIdx, endOffset := TokenForPos(tokens, to, token.End); endIdx >= 0 && endOffset > 0 {
		endFormat = tokens[endIdx].Format
	}

	winStartFrom, _ := reparseWindow(tokens, from, opts)
	_, winEndTo := reparseWindow(tokens, to, opts)
	if winEndTo < winStartFrom {
		winEndTo = winStartFrom
	}

	left, rest := SplitAt(tokens, winStartFrom)
	windowTokens, right := SplitAt(rest, winEndTo-winStartFrom)

	windowText := token.ConcatValues(windowTokens)
	windowLen := runeutil.Len(windowText)
	localFrom := clampInt(from-winStartFrom, 0, windowLen)
	localTo := clampInt(to-winStartFrom, 0, windowLen)

	newWindowText := runeutil.Slice(windowText, 0, localFrom) + text + runeutil.Slice(windowText, localTo, windowLen)
	reparsed := parser.Parse(newWindowText, opts)
	splitPoint := localFrom + runeutil.Len(text)
	reparsed = restoreBoundaryFormats(reparsed, splitPoint, startFormat, endFormat)

	out := append([]token.Token{}, left...)
	out = append(out, reparsed...)
	out = append(out, right...)
	return token.Normalize(out)
}

// restoreBoundaryFormats implements the ReplaceText format-preservation
// rule of §4.4: "the first new token inherits the format of the removed
// start token; if the removed end token had a different format, any
// pure-text tail beyond the inserted text receives that end format."
// Reparsing a window always derives Format purely from Markdown markers
// (or the zero value for plain text); a token the parser left at Format 0
// is a candidate for inheriting the pre-edit formatting of whichever side
// of the inserted text it falls on. A token straddling the split point
// (the freshly inserted text merged with surrounding context by the
// re-tokenizer, e.g. a sticky-format insertion absorbed into a plain-text
// neighbor) is split in two at splitPoint so the inserted run keeps
// startFormat and the tail beyond it reverts to endFormat.
func restoreBoundaryFormats(reparsed []token.Token, splitPoint int, startFormat, endFormat token.Format) []token.Token {
	out := make([]token.Token, 0, len(reparsed)+1)
	cursor := 0
	for _, t := range reparsed {
		length := t.Len()
		start, end := cursor, cursor+length
		cursor = end
		if t.Kind != token.Text || t.Format != 0 {
			out = append(out, t)
			continue
		}
		switch {
		case end <= splitPoint:
			t.Format = startFormat
			out = append(out, t)
		case start >= splitPoint:
			t.Format = endFormat
			out = append(out, t)
		default:
			left, right := splitToken(t, splitPoint-start)
			left.Format = startFormat
			right.Format = endFormat
			out = append(out, left, right)
		}
	}
	return out
}

// InsertText splices text in at code-point offset pos; it is ReplaceText
// over the empty range [pos, pos).
func InsertText(tokens []token.Token, pos int, text string, opts parser.Options) []token.Token {
	return ReplaceText(tokens, pos, pos, text, opts)
}
