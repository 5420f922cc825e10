package textalgebra

import (
	"github.com/richedit/core/internal/runeutil"
	"github.com/richedit/core/internal/token"
)

// splitToken splits a non-solid token's Value at code-point offset local,
// partitioning its embedded emoji ranges between the two halves. Callers
// must ensure local does not fall inside an emoji range or a solid token
// (clampPos guarantees this).
func splitToken(t token.Token, local int) (token.Token, token.Token) {
	left := t
	right := t
	left.Value = runeutil.Slice(t.Value, 0, local)
	right.Value = runeutil.Slice(t.Value, local, t.Len())

	if len(t.Emoji) > 0 {
		var le, re []token.EmojiRange
		for _, rng := range t.Emoji {
			switch {
			case rng.To <= local:
				le = append(le, rng)
			case rng.From >= local:
				re = append(re, token.EmojiRange{From: rng.From - local, To: rng.To - local, Alias: rng.Alias})
			}
		}
		left.Emoji = le
		right.Emoji = re
	}
	return left, right
}

// SplitAt divides tokens into two sequences at code-point offset pos,
// splitting the one token that straddles pos when pos does not already
// fall on a token boundary. pos is clamped away from solid tokens and
// embedded emoji glyphs first, so neither is ever bisected.
func SplitAt(tokens []token.Token, pos int) (left []token.Token, right []token.Token) {
	pos = clampPos(tokens, pos)
	starts := prefixStarts(tokens)
	total := starts[len(starts)-1]

	if pos <= 0 {
		return nil, append([]token.Token{}, tokens...)
	}
	if pos >= total {
		return append([]token.Token{}, tokens...), nil
	}

	for k, t := range tokens {
		s, e := starts[k], starts[k+1]
		if pos == s {
			return append([]token.Token{}, tokens[:k]...), append([]token.Token{}, tokens[k:]...)
		}
		if pos > s && pos < e {
			l, r := splitToken(t, pos-s)
			left = append(append([]token.Token{}, tokens[:k]...), l)
			right = append([]token.Token{r}, tokens[k+1:]...)
			return left, right
		}
	}
	return append([]token.Token{}, tokens...), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Slice returns the sub-sequence of tokens spanning code-point offsets
// [from, to), normalized. from and to are clamped to the sequence's
// length and swapped if reversed.
func Slice(tokens []token.Token, from, to int) []token.Token {
	total := token.TotalLen(tokens)
	from = clampInt(from, 0, total)
	to = clampInt(to, 0, total)
	if from > to {
		from, to = to, from
	}
	_, rest := SplitAt(tokens, from)
	segment, _ := SplitAt(rest, to-from)
	return token.Normalize(segment)
}
