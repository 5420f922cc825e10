package textalgebra

import "github.com/richedit/core/internal/token"

// SetLink rewrites the code-point range [from, to) into a single custom
// (non-auto) Link token pointing at url, discarding whatever formatting
// the covered text carried; its display text is the range's own
// concatenated text. Passing an empty url instead strips link-ness from
// any custom Link tokens in the range, turning them back into plain
// Text; auto-detected links are left alone, since un-linking typed text
// isn't meaningful the way un-linking a deliberately inserted link is.
func SetLink(tokens []token.Token, from, to int, url string) []token.Token {
	total := token.TotalLen(tokens)
	from = clampInt(from, 0, total)
	to = clampInt(to, 0, total)
	if from > to {
		from, to = to, from
	}
	if from == to {
		return append([]token.Token{}, tokens...)
	}

	left, rest := SplitAt(tokens, from)
	middle, right := SplitAt(rest, to-from)

	var out []token.Token
	out = append(out, left...)

	if url == "" {
		for _, t := range middle {
			if t.Kind == token.Link && !t.LinkAuto {
				t.Kind = token.Text
				t.LinkURL = ""
				t.Sticky = false
			}
			out = append(out, t)
		}
	} else {
		label := token.ConcatValues(middle)
		out = append(out, token.Token{
			Kind:    token.Link,
			Value:   label,
			LinkURL: url,
		})
	}

	out = append(out, right...)
	return token.Normalize(out)
}
