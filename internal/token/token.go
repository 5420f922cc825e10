/*
Package token defines the data model shared by the parser, the
formatted-string algebra, and the Markdown mirror: a single tagged-union
Token type, the Format bitset, and the TextRange pair.

Kind-specific data lives in per-kind optional fields on Token rather than
as an interface with one implementation per kind. This centralizes the
solid/non-solid distinction (Solid) and the joinability test (Joinable)
in one place instead of scattering a type switch across every call site
that needs them.
*/
package token

import (
	"strings"

	"github.com/richedit/core/internal/runeutil"
)

// Kind identifies the semantic role of a Token.
type Kind int

const (
	Text Kind = iota
	Link
	Mention
	Command
	HashTag
	UserSticker
	Markdown
	Newline
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Link:
		return "Link"
	case Mention:
		return "Mention"
	case Command:
		return "Command"
	case HashTag:
		return "HashTag"
	case UserSticker:
		return "UserSticker"
	case Markdown:
		return "Markdown"
	case Newline:
		return "Newline"
	default:
		return "Unknown"
	}
}

// Format is a bitset of inline formats. LinkLabel is a virtual bit: it
// never appears in a rendered format, only while the Markdown parser is
// tracking a bracketed custom-link label (§4.3.1).
type Format uint16

const (
	Bold Format = 1 << iota
	Italic
	Underline
	Strike
	Monospace
	Heading
	Marked
	Highlight
	FormatLink
	LinkLabel
)

// Has reports whether every bit in want is set in f.
func (f Format) Has(want Format) bool { return f&want == want }

// Any reports whether any bit in want is set in f.
func (f Format) Any(want Format) bool { return f&want != 0 }

// FormatUpdate is the delta form accepted by SetFormat: either Add or
// Remove may be set; a zero-value FormatUpdate with Replace=true and Set=0
// clears formatting entirely.
type FormatUpdate struct {
	// Replace, if true, ignores Add/Remove and sets the format to Set.
	Replace bool
	Set     Format
	Add     Format
	Remove  Format
}

// Apply returns the format that results from applying u to current.
func (u FormatUpdate) Apply(current Format) Format {
	if u.Replace {
		return u.Set
	}
	return (current &^ u.Remove) | u.Add
}

// EmojiRange marks an embedded emoji glyph inside a token's Value, as a
// pair of code-point offsets [From, To) local to that Value. Alias, if
// non-empty, is the text-emoji shorthand the range covers (e.g. ":)",
// whose glyph is "🙂"); Value keeps the shorthand as typed. Alias is
// empty for emoji typed directly as Unicode.
type EmojiRange struct {
	From, To int
	Alias    string
}

// TextRange is a pair of code-point offsets into the canonical source
// text, 0 <= From <= To <= length.
type TextRange struct {
	From, To int
}

// Len returns To - From.
func (r TextRange) Len() int { return r.To - r.From }

// Side selects which end of a range tokenForPos-style lookups snap to.
type Side int

const (
	Start Side = iota
	End
)

// Token is one immutable record in a token sequence. Fields not relevant
// to Kind are left at their zero value; see the Kind-specific accessors
// below for the fields each kind actually uses.
type Token struct {
	Kind   Kind
	Value  string
	Format Format
	Emoji  []EmojiRange

	// Link-specific.
	LinkURL  string
	LinkAuto bool
	// Sticky, for a Link token, means this auto-link absorbs further
	// word-bound-free insertions at either end (§4.4.2). Sticky links are
	// always auto links.
	Sticky bool

	// Mention/Command/HashTag/UserSticker payloads. Exactly one is
	// populated depending on Kind; stored separately rather than behind
	// an interface so zero-value Token stays comparable and JSON-able.
	Mention   string
	Command   string
	HashTag   string
	StickerID string

	// StickyText, valid only when Kind == Text, marks an empty Text token
	// that is a format placeholder (§3 "Sticky text tokens"). A sticky
	// Text token is the only Token allowed to have an empty Value.
	StickyText bool
}

// Len returns the code-point length of Value.
func (t Token) Len() int { return runeutil.Len(t.Value) }

// Solid reports whether t's interior must never be split by a range
// operation (§4.4). Command, HashTag, UserSticker, Mention, and auto-Link
// tokens are solid; everything else, including custom (non-auto) links,
// is not.
func (t Token) Solid() bool {
	switch t.Kind {
	case Command, HashTag, UserSticker, Mention:
		return true
	case Link:
		return t.LinkAuto
	default:
		return false
	}
}

// Joinable reports whether a and b may be fused by normalization (§4.4.1):
// same Kind, same Format, and, for Link, the same non-auto link URL, or
// both plain Text.
func Joinable(a, b Token) bool {
	if a.Kind != b.Kind || a.Format != b.Format {
		return false
	}
	switch a.Kind {
	case Text:
		return !a.StickyText && !b.StickyText
	case Link:
		return !a.LinkAuto && !b.LinkAuto && a.LinkURL == b.LinkURL
	default:
		return false
	}
}

// Join fuses b into a, concatenating Value and shifting b's emoji ranges
// by the code-point length of a.Value. Callers must check Joinable first.
func Join(a, b Token) Token {
	shift := a.Len()
	out := a
	out.Value = a.Value + b.Value
	if len(b.Emoji) > 0 {
		shifted := make([]EmojiRange, len(b.Emoji))
		for i, e := range b.Emoji {
			shifted[i] = EmojiRange{From: e.From + shift, To: e.To + shift, Alias: e.Alias}
		}
		out.Emoji = append(append([]EmojiRange{}, a.Emoji...), shifted...)
	}
	return out
}

// ConcatValues returns the concatenation of every token's Value, the
// canonical source text a sequence must reproduce (§3 invariant 1).
func ConcatValues(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Value)
	}
	return b.String()
}

// TotalLen returns the sum of every token's code-point length.
func TotalLen(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		n += t.Len()
	}
	return n
}
