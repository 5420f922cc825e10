package textalgebra

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richedit/core/internal/parser"
	"github.com/richedit/core/internal/token"
)

func parse(s string, opts parser.Options) []token.Token {
	return parser.Parse(s, opts)
}

func TestSliceConcatenation(t *testing.T) {
	toks := parse("hello @world /cmd #tag mail.ru", parser.Options{
		Mention: parser.MentionOn, Command: true, Hashtag: true, Link: true,
	})
	total := token.TotalLen(toks)
	for cut := 0; cut <= total; cut++ {
		left := Slice(toks, 0, cut)
		right := Slice(toks, cut, total)
		assert.Equal(t, token.ConcatValues(toks), token.ConcatValues(left)+token.ConcatValues(right))
	}
}

func TestSliceDoesNotSplitSolidTokens(t *testing.T) {
	toks := parse("see @someone here", parser.Options{Mention: parser.MentionOn})
	// "@someone" occupies [4, 12); slicing in the middle must clamp outward.
	seg := Slice(toks, 0, 8)
	concatenated := token.ConcatValues(seg)
	assert.True(t, concatenated == "see " || concatenated == "see @someone")
}

func TestRemoveTextThenReinsertRoundTrips(t *testing.T) {
	toks := parse("Have you seen mail.ru today", parser.Options{Link: true})
	removed, remaining := CutText(toks, 14, 21)
	assert.Equal(t, "mail.ru", token.ConcatValues(removed))
	reinserted := InsertText(remaining, 14, token.ConcatValues(removed), parser.Options{Link: true})
	assert.Equal(t, token.ConcatValues(toks), token.ConcatValues(reinserted))
}

// §4.4 removeText: a deletion boundary landing inside an embedded emoji
// range snaps outward to that emoji's bounds, rather than to whichever
// bound happens to be nearest, so a partial selection over a multi-byte
// glyph always removes the whole glyph.
func TestRemoveTextSnapsEmojiBoundaryOutward(t *testing.T) {
	// "hi 👍🏽!" - thumbs-up plus a skin-tone modifier is one logical
	// glyph spanning code-point offsets [3, 5); local offset 4 falls
	// strictly inside it, between the base and the modifier.
	toks := []token.Token{{
		Kind:  token.Text,
		Value: "hi 👍🏽!",
		Emoji: []token.EmojiRange{{From: 3, To: 5}},
	}}

	// to=4 lands inside the glyph and must snap outward to 5, removing
	// the whole glyph rather than slicing it in half.
	out := RemoveText(toks, 3, 4)
	assert.Equal(t, "hi !", token.ConcatValues(out))

	// from=4 also lands inside the glyph and must snap outward to 3.
	out = RemoveText(toks, 4, 5)
	assert.Equal(t, "hi !", token.ConcatValues(out))
}

// CutText must partition consistently with RemoveText: the removed and
// remaining halves should never disagree about which side of a boundary
// emoji keeps the glyph.
func TestCutTextSnapsEmojiBoundaryOutward(t *testing.T) {
	toks := []token.Token{{
		Kind:  token.Text,
		Value: "hi 👍🏽!",
		Emoji: []token.EmojiRange{{From: 3, To: 5}},
	}}
	removed, remaining := CutText(toks, 3, 4)
	assert.Equal(t, "👍🏽", token.ConcatValues(removed))
	assert.Equal(t, "hi !", token.ConcatValues(remaining))
}

// S2: inserting a character immediately after an auto-link merges it
// with the link and re-parses the union, extending the link's recognized
// span, regardless of stickyLink — §4.4's baseline insertText-merges-
// with-a-preceding-auto-link rule is unconditional; stickyLink (§4.4.2)
// is a separate mechanism and not a precondition for this case.
func TestInsertTextAfterLinkAbsorbsWithoutSticky(t *testing.T) {
	toks := parse("Have you seen mail.ru?", parser.Options{Link: true})
	pos := 21 // right after "mail.ru", before "?"
	out := InsertText(toks, pos, "a", parser.Options{Link: true})
	assert.Equal(t, "Have you seen mail.rua?", token.ConcatValues(out))

	var link *token.Token
	for i := range out {
		if out[i].Kind == token.Link {
			link = &out[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "mail.rua", link.Value)
		assert.Equal(t, "http://mail.rua", link.LinkURL)
	}
}

func TestInsertTextAfterStickyLinkAbsorbs(t *testing.T) {
	toks := parse("Have you seen mail.ru?", parser.Options{Link: true, StickyLink: true})
	pos := 21
	out := InsertText(toks, pos, "a", parser.Options{Link: true, StickyLink: true})
	assert.Equal(t, "Have you seen mail.rua?", token.ConcatValues(out))

	var link *token.Token
	for i := range out {
		if out[i].Kind == token.Link {
			link = &out[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "mail.rua", link.Value)
	}
}

// S5: a sticky Bold placeholder planted at offset 3 of "aa bb cc dd"
// must be absorbed by the next insertion without bleeding its format
// onto the unformatted text that follows it in the same reparse window.
func TestInsertTextAtStickyFormatSplitsTail(t *testing.T) {
	toks := []token.Token{{Kind: token.Text, Value: "aa bb cc dd"}}
	withSticky := SetFormat(toks, 3, 3, token.FormatUpdate{Add: token.Bold})

	out := InsertText(withSticky, 3, "123", parser.Options{})
	assert.Equal(t, "aa 123bb cc dd", token.ConcatValues(out))

	var values []string
	var formats []token.Format
	for _, tok := range out {
		values = append(values, tok.Value)
		formats = append(formats, tok.Format)
		assert.False(t, tok.StickyText)
	}
	if assert.Equal(t, []string{"aa ", "123", "bb cc dd"}, values) {
		assert.Equal(t, token.Format(0), formats[0])
		assert.Equal(t, token.Bold, formats[1])
		assert.Equal(t, token.Format(0), formats[2])
	}
}

func TestReplaceTextMiddleOfPlainText(t *testing.T) {
	toks := parse("hello world", parser.Options{})
	out := ReplaceText(toks, 6, 11, "there", parser.Options{})
	assert.Equal(t, "hello there", token.ConcatValues(out))
}

func TestGetFormatIntersectionAcrossRange(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Text, Value: "ab", Format: token.Bold},
		{Kind: token.Text, Value: "cd", Format: token.Bold | token.Italic},
	}
	got := GetFormat(toks, 0, 4)
	assert.Equal(t, token.Bold, got)
}

func TestGetFormatEmptyRange(t *testing.T) {
	toks := []token.Token{{Kind: token.Text, Value: "ab", Format: token.Bold}}
	assert.Equal(t, token.Format(0), GetFormat(toks, 1, 1))
}

func TestSetFormatAddsAndSplitsAtBoundary(t *testing.T) {
	toks := []token.Token{{Kind: token.Text, Value: "hello world"}}
	out := SetFormat(toks, 0, 5, token.FormatUpdate{Add: token.Bold})
	assert.Equal(t, "hello world", token.ConcatValues(out))
	first := out[0]
	assert.True(t, first.Format.Has(token.Bold))
	assert.Equal(t, "hello", first.Value)
}

func TestSetFormatReplace(t *testing.T) {
	toks := []token.Token{{Kind: token.Text, Value: "abc", Format: token.Bold}}
	out := SetFormat(toks, 0, 3, token.FormatUpdate{Replace: true, Set: token.Italic})
	assert.Equal(t, token.Italic, out[0].Format)
}

func TestSetLinkWrapsRangeAsCustomLink(t *testing.T) {
	toks := []token.Token{{Kind: token.Text, Value: "click here please"}}
	out := SetLink(toks, 6, 10, "https://example.com")
	assert.Equal(t, "click here please", token.ConcatValues(out))
	var link *token.Token
	for i := range out {
		if out[i].Kind == token.Link {
			link = &out[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "here", link.Value)
		assert.Equal(t, "https://example.com", link.LinkURL)
		assert.False(t, link.LinkAuto)
	}
}

func TestSetLinkEmptyURLStripsCustomLink(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Text, Value: "see "},
		{Kind: token.Link, Value: "here", LinkURL: "https://example.com"},
		{Kind: token.Text, Value: " now"},
	}
	out := SetLink(toks, 4, 8, "")
	assert.Equal(t, "see here now", token.ConcatValues(out))
	for _, tok := range out {
		assert.NotEqual(t, token.Link, tok.Kind)
	}
}

func TestSetLinkEmptyURLLeavesAutoLinkAlone(t *testing.T) {
	toks := parse("see mail.ru now", parser.Options{Link: true})
	out := SetLink(toks, 4, 11, "")
	foundLink := false
	for _, tok := range out {
		if tok.Kind == token.Link {
			foundLink = true
		}
	}
	assert.True(t, foundLink)
}

func TestTokenForPosBoundarySide(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Text, Value: "ab"},
		{Kind: token.Text, Value: "cd"},
	}
	idxStart, offStart := TokenForPos(toks, 2, token.Start)
	assert.Equal(t, 1, idxStart)
	assert.Equal(t, 0, offStart)

	idxEnd, offEnd := TokenForPos(toks, 2, token.End)
	assert.Equal(t, 0, idxEnd)
	assert.Equal(t, 2, offEnd)
}
