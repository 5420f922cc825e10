package textalgebra

import "github.com/richedit/core/internal/token"

// GetFormat returns the formats common to every token touching the
// code-point range [from, to): the bitwise AND of each covered token's
// Format. An empty range, or a range with no covered tokens, reports 0.
func GetFormat(tokens []token.Token, from, to int) token.Format {
	total := token.TotalLen(tokens)
	from = clampInt(from, 0, total)
	to = clampInt(to, 0, total)
	if from >= to {
		return 0
	}
	segment := Slice(tokens, from, to)
	if len(segment) == 0 {
		return 0
	}
	result := segment[0].Format
	for _, t := range segment[1:] {
		result &= t.Format
	}
	return result
}

// GetFormatAt returns the format a character typed at code-point offset
// pos would inherit (§4.4 "getFormat"): a sticky Text token exactly at
// pos wins, otherwise the token immediately to the left of pos, falling
// back to the token immediately to the right at the start of the
// sequence or when the sequence is empty.
func GetFormatAt(tokens []token.Token, pos int) token.Format {
	total := token.TotalLen(tokens)
	pos = clampInt(pos, 0, total)
	idx, offset := TokenForPos(tokens, pos, token.Start)
	if idx < 0 {
		return 0
	}
	if offset == 0 && tokens[idx].Kind == token.Text && tokens[idx].StickyText {
		return tokens[idx].Format
	}
	leftIdx, leftOffset := TokenForPos(tokens, pos, token.End)
	if leftIdx >= 0 && leftOffset == tokens[leftIdx].Len() && tokens[leftIdx].Len() > 0 {
		return tokens[leftIdx].Format
	}
	return tokens[idx].Format
}

// SetFormat applies upd to every token touching [from, to), splitting
// boundary tokens as needed, and returns the normalized result. Tokens
// entirely outside the range are untouched. With an empty range, it
// instead inserts a sticky Text token at pos carrying the resulting
// format (§4.4 "With len = 0"), so a character typed at the caret
// inherits it without any visible token existing yet.
func SetFormat(tokens []token.Token, from, to int, upd token.FormatUpdate) []token.Token {
	total := token.TotalLen(tokens)
	from = clampInt(from, 0, total)
	to = clampInt(to, 0, total)
	if from > to {
		from, to = to, from
	}
	if from == to {
		current := GetFormatAt(tokens, from)
		sticky := token.Token{Kind: token.Text, StickyText: true, Format: upd.Apply(current)}
		left, right := SplitAt(tokens, from)
		out := append([]token.Token{}, left...)
		out = append(out, sticky)
		out = append(out, right...)
		return out
	}

	left, rest := SplitAt(tokens, from)
	middle, right := SplitAt(rest, to-from)

	out := append([]token.Token{}, left...)
	for _, t := range middle {
		t.Format = upd.Apply(t.Format)
		out = append(out, t)
	}
	out = append(out, right...)
	return token.Normalize(out)
}
