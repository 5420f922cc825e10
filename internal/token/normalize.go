package token

// Normalize restores the invariants of §3/§4.4.1 after a raw edit: it
// drops empty non-sticky Text tokens, then fuses adjacent joinable
// tokens. It never reorders tokens and never touches sticky tokens'
// position relative to their neighbors beyond dropping tokens around them.
func Normalize(tokens []Token) []Token {
	filtered := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == Text && t.Value == "" && !t.StickyText {
			continue
		}
		filtered = append(filtered, t)
	}

	out := make([]Token, 0, len(filtered))
	for _, t := range filtered {
		if n := len(out); n > 0 && Joinable(out[n-1], t) {
			out[n-1] = Join(out[n-1], t)
			continue
		}
		out = append(out, t)
	}
	return out
}
