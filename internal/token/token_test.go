package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatApply(t *testing.T) {
	u := FormatUpdate{Add: Bold}
	assert.Equal(t, Bold, u.Apply(0))

	u = FormatUpdate{Add: Italic, Remove: Bold}
	assert.Equal(t, (Bold|Italic)&^Bold, u.Apply(Bold))
	assert.Equal(t, Italic, u.Apply(Bold))

	u = FormatUpdate{Replace: true, Set: Strike}
	assert.Equal(t, Strike, u.Apply(Bold|Italic))
}

func TestSolid(t *testing.T) {
	assert.True(t, Token{Kind: Mention}.Solid())
	assert.True(t, Token{Kind: Command}.Solid())
	assert.True(t, Token{Kind: HashTag}.Solid())
	assert.True(t, Token{Kind: UserSticker}.Solid())
	assert.True(t, Token{Kind: Link, LinkAuto: true}.Solid())
	assert.False(t, Token{Kind: Link, LinkAuto: false}.Solid())
	assert.False(t, Token{Kind: Text}.Solid())
}

func TestJoinableAndJoin(t *testing.T) {
	a := Token{Kind: Text, Value: "foo", Format: Bold}
	b := Token{Kind: Text, Value: "bar", Format: Bold}
	assert.True(t, Joinable(a, b))
	joined := Join(a, b)
	assert.Equal(t, "foobar", joined.Value)

	// Different formats never join.
	c := Token{Kind: Text, Value: "baz", Format: Italic}
	assert.False(t, Joinable(a, c))

	// Sticky text never joins even with identical kind/format.
	sticky := Token{Kind: Text, Value: "", Format: Bold, StickyText: true}
	assert.False(t, Joinable(a, sticky))
	assert.False(t, Joinable(sticky, a))

	// Auto-links never join even with the same URL.
	link1 := Token{Kind: Link, Value: "mail.ru", LinkAuto: true, LinkURL: "http://mail.ru"}
	link2 := Token{Kind: Link, Value: "mail.ru", LinkAuto: true, LinkURL: "http://mail.ru"}
	assert.False(t, Joinable(link1, link2))

	// Non-auto links with the same URL do join.
	custom1 := Token{Kind: Link, Value: "a", LinkURL: "http://x"}
	custom2 := Token{Kind: Link, Value: "b", LinkURL: "http://x"}
	assert.True(t, Joinable(custom1, custom2))
}

func TestJoinShiftsEmoji(t *testing.T) {
	a := Token{Kind: Text, Value: "hi "}
	b := Token{Kind: Text, Value: "😀!", Emoji: []EmojiRange{{From: 0, To: 1}}}
	joined := Join(a, b)
	assert.Equal(t, "hi 😀!", joined.Value)
	assert.Equal(t, []EmojiRange{{From: 3, To: 4}}, joined.Emoji)
}

func TestConcatValuesAndTotalLen(t *testing.T) {
	tokens := []Token{
		{Kind: Text, Value: "hello "},
		{Kind: Mention, Value: "@world"},
	}
	assert.Equal(t, "hello @world", ConcatValues(tokens))
	assert.Equal(t, 12, TotalLen(tokens))
}
