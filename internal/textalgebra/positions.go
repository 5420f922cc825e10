/*
Package textalgebra implements the formatted-string algebra (C4): the
pure, range-based operations (insert, remove, replace, slice, cut,
format, link) that a caller uses to edit a Token sequence without ever
reconstructing it by hand. Every operation takes an immutable sequence
and returns a new one; ranges are code-point offsets into the sequence's
concatenated Value, exactly as returned by token.ConcatValues.

The range-rewriting shape here follows the teacher's internal/worktree
list-processing operations: build prefix offsets once, locate the
affected span, rebuild only that span, leave the rest of the slice
untouched.
*/
package textalgebra

import "github.com/richedit/core/internal/token"

// prefixStarts returns, for n tokens, a slice of n+1 code-point offsets:
// starts[k] is the offset where token k begins, starts[n] is the total
// length.
func prefixStarts(tokens []token.Token) []int {
	starts := make([]int, len(tokens)+1)
	for i, t := range tokens {
		starts[i+1] = starts[i] + t.Len()
	}
	return starts
}

// indexAt returns the index k such that starts[k] <= pos <= starts[k+1],
// i.e. the token pos falls within or immediately borders. When pos sits
// exactly on a boundary between two tokens, k is the token to its right
// (index of the token that starts at pos), except at the very end of the
// sequence where k is len(tokens)-1 (or -1 if tokens is empty).
func indexAt(starts []int, pos int) int {
	n := len(starts) - 1
	if n == 0 {
		return -1
	}
	for k := 0; k < n; k++ {
		if pos < starts[k+1] || k == n-1 {
			return k
		}
	}
	return n - 1
}

// TokenForPos locates the token containing code-point offset pos. When
// pos sits exactly on a boundary between two tokens, side selects which
// one is reported: End snaps to the token ending at pos, Start snaps to
// the token starting at pos. offset is pos's position within that token
// and is always in [0, token length].
func TokenForPos(tokens []token.Token, pos int, side token.Side) (idx int, offset int) {
	starts := prefixStarts(tokens)
	total := starts[len(starts)-1]
	if pos < 0 {
		pos = 0
	}
	if pos > total {
		pos = total
	}
	if len(tokens) == 0 {
		return -1, 0
	}
	for k := 0; k < len(tokens); k++ {
		if pos == starts[k] {
			if side == token.End && k > 0 {
				return k - 1, tokens[k-1].Len()
			}
			return k, 0
		}
		if pos < starts[k+1] {
			return k, pos - starts[k]
		}
	}
	return len(tokens) - 1, tokens[len(tokens)-1].Len()
}

// clampPos returns the nearest position to pos that does not fall
// strictly inside a solid token or an embedded emoji glyph, since neither
// may be split (§4.4). Ties - pos is exactly as close to either end -
// resolve to the start of the atomic span.
func clampPos(tokens []token.Token, pos int) int {
	starts := prefixStarts(tokens)
	total := starts[len(starts)-1]
	if pos <= 0 {
		return 0
	}
	if pos >= total {
		return total
	}
	for k, t := range tokens {
		s, e := starts[k], starts[k+1]
		if pos <= s || pos >= e {
			continue
		}
		if t.Solid() {
			return nearestEnd(s, e, pos)
		}
		if t.Kind == token.Text && len(t.Emoji) > 0 {
			local := pos - s
			for _, rng := range t.Emoji {
				if local > rng.From && local < rng.To {
					return nearestEnd(s+rng.From, s+rng.To, pos)
				}
			}
		}
		return pos
	}
	return pos
}

func nearestEnd(lo, hi, pos int) int {
	if pos-lo <= hi-pos {
		return lo
	}
	return hi
}
