package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richedit/core/internal/token"
)

func fullOptions() Options {
	return Options{
		TextEmoji:   true,
		Hashtag:     true,
		Mention:     MentionOn,
		Command:     true,
		UserSticker: true,
		Link:        true,
		Markdown:    true,
	}
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

// S1: parse("hello @world /cmd #tag mail.ru", ...) yields exactly 8 tokens.
func TestParseScenarioS1(t *testing.T) {
	toks := Parse("hello @world /cmd #tag mail.ru", fullOptions())
	assert.Len(t, toks, 8)
	assert.Equal(t, []token.Kind{
		token.Text, token.Mention, token.Text, token.Command,
		token.Text, token.HashTag, token.Text, token.Link,
	}, kinds(toks))
	assert.Equal(t, "world", toks[1].Mention)
	assert.Equal(t, "cmd", toks[3].Command)
	assert.Equal(t, "tag", toks[5].HashTag)
	assert.Equal(t, "http://mail.ru", toks[7].LinkURL)
	assert.Equal(t, "hello @world /cmd #tag mail.ru", token.ConcatValues(toks))
}

func TestParseConcatValuesRoundTrip(t *testing.T) {
	inputs := []string{
		"plain text",
		"@mention #tag /cmd",
		"*bold* _ital_ ~strike~ `code`",
		"[label](https://example.com) trailing",
		"line1\nline2\r\nline3",
		"smiley :) at end",
		"mail.ru and user@mail.ru and https://example.com/path?x=1",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			toks := Parse(in, fullOptions())
			assert.Equal(t, in, token.ConcatValues(toks))
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	toks := Parse("", fullOptions())
	assert.Empty(t, toks)
}

func TestParseZeroOptionsOnlyNewlines(t *testing.T) {
	toks := Parse("hello @world\n#tag", Options{})
	var kindsSeen []token.Kind
	for _, tok := range toks {
		kindsSeen = append(kindsSeen, tok.Kind)
	}
	assert.Contains(t, kindsSeen, token.Newline)
	for _, tok := range toks {
		assert.NotEqual(t, token.Mention, tok.Kind)
		assert.NotEqual(t, token.HashTag, tok.Kind)
	}
}

func TestParseNewlineVariants(t *testing.T) {
	toks := Parse("a\nb\rc\r\nd", Options{})
	var values []string
	for _, tok := range toks {
		if tok.Kind == token.Newline {
			values = append(values, tok.Value)
		}
	}
	assert.Equal(t, []string{"\n", "\r", "\r\n"}, values)
}

func TestParseAdjacentHashtags(t *testing.T) {
	toks := Parse("#a#b", Options{Hashtag: true})
	assert.Len(t, toks, 2)
	assert.Equal(t, token.HashTag, toks[0].Kind)
	assert.Equal(t, token.HashTag, toks[1].Kind)
	assert.Equal(t, "a", toks[0].HashTag)
	assert.Equal(t, "b", toks[1].HashTag)
}

func TestParseHashtagRequiresWordBoundLeft(t *testing.T) {
	toks := Parse("x#tag", Options{Hashtag: true})
	for _, tok := range toks {
		assert.NotEqual(t, token.HashTag, tok.Kind)
	}
}

func TestParseUserSticker(t *testing.T) {
	toks := Parse("hi #uabc123s# there", Options{UserSticker: true})
	assert.Equal(t, token.UserSticker, toks[1].Kind)
	assert.Equal(t, "abc123", toks[1].StickerID)
}

func TestParseUserStickerTriesBeforeHashtag(t *testing.T) {
	toks := Parse("#uabc123s#", Options{UserSticker: true, Hashtag: true})
	assert.Len(t, toks, 1)
	assert.Equal(t, token.UserSticker, toks[0].Kind)
}

func TestParseBareMention(t *testing.T) {
	toks := Parse("hi @ there", Options{Mention: MentionOn})
	found := false
	for _, tok := range toks {
		if tok.Kind == token.Mention {
			found = true
			assert.Equal(t, "@", tok.Value)
			assert.Equal(t, "", tok.Mention)
		}
	}
	assert.True(t, found)
}

func TestParseStrictMentionRejectsBareAt(t *testing.T) {
	toks := Parse("hi @ there", Options{Mention: MentionStrict})
	for _, tok := range toks {
		assert.NotEqual(t, token.Mention, tok.Kind)
	}
}

func TestParseCommandRequiresWordBoundLeft(t *testing.T) {
	toks := Parse("x/cmd", Options{Command: true})
	for _, tok := range toks {
		assert.NotEqual(t, token.Command, tok.Kind)
	}
}

func TestParseLinkSchemeProtocolRelative(t *testing.T) {
	toks := Parse("see //example.com/path now", Options{Link: true})
	var link *token.Token
	for i := range toks {
		if toks[i].Kind == token.Link {
			link = &toks[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "http://example.com/path", link.LinkURL)
	}
}

func TestParseLinkEmail(t *testing.T) {
	toks := Parse("contact user@mail.ru please", Options{Link: true})
	var link *token.Token
	for i := range toks {
		if toks[i].Kind == token.Link {
			link = &toks[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "mailto:user@mail.ru", link.LinkURL)
		assert.Equal(t, "user@mail.ru", link.Value)
	}
}

func TestParseLinkTrailingPunctuationStripped(t *testing.T) {
	toks := Parse("Have you seen mail.ru?", Options{Link: true})
	var link *token.Token
	for i := range toks {
		if toks[i].Kind == token.Link {
			link = &toks[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "mail.ru", link.Value)
	}
}

func TestParseLinkUnbalancedClosingParenStripped(t *testing.T) {
	toks := Parse("(see https://example.com/a)", Options{Link: true})
	var link *token.Token
	for i := range toks {
		if toks[i].Kind == token.Link {
			link = &toks[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "https://example.com/a", link.Value)
	}
}

func TestParseLinkBalancedClosingParenKept(t *testing.T) {
	toks := Parse("see https://example.com/a(b) now", Options{Link: true})
	var link *token.Token
	for i := range toks {
		if toks[i].Kind == token.Link {
			link = &toks[i]
		}
	}
	if assert.NotNil(t, link) {
		assert.Equal(t, "https://example.com/a(b)", link.Value)
	}
}

func TestParseMarkdownBoldItalic(t *testing.T) {
	toks := Parse("*bold _and italic_*", Options{Markdown: true})
	var interior *token.Token
	for i := range toks {
		if toks[i].Kind == token.Text && toks[i].Format.Has(token.Bold) && toks[i].Format.Has(token.Italic) {
			interior = &toks[i]
		}
	}
	assert.NotNil(t, interior)
}

func TestParseMarkdownClosesByBitNotNesting(t *testing.T) {
	// '*' opens Bold, '_' opens Italic while Bold is still open, the first
	// '*' closes Bold even though Italic opened more recently (§9 design
	// note: markers close by format bit, not by stack position), and the
	// trailing '_' then closes Italic.
	toks := Parse("*bold _ital* more_", Options{Markdown: true})
	var italOnly *token.Token
	for i := range toks {
		if toks[i].Kind == token.Text && toks[i].Value == " more" {
			italOnly = &toks[i]
		}
	}
	if assert.NotNil(t, italOnly) {
		assert.True(t, italOnly.Format.Has(token.Italic))
		assert.False(t, italOnly.Format.Has(token.Bold))
	}
}

func TestParseMarkdownUnterminatedOpenerDemotedAtEOF(t *testing.T) {
	toks := Parse("*never closed", Options{Markdown: true})
	for _, tok := range toks {
		assert.NotEqual(t, token.Markdown, tok.Kind)
	}
	assert.Equal(t, "*never closed", token.ConcatValues(toks))
}

func TestParseMarkdownCustomLink(t *testing.T) {
	toks := Parse("[site](https://example.com)", Options{Markdown: true})
	var kindsSeen []token.Kind
	for _, tok := range toks {
		kindsSeen = append(kindsSeen, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Markdown, token.Text, token.Markdown,
		token.Markdown, token.Link, token.Markdown,
	}, kindsSeen)
	assert.Equal(t, "site", toks[1].Value)
	assert.True(t, toks[1].Format.Has(token.LinkLabel))
	assert.Equal(t, "https://example.com", toks[4].LinkURL)
	assert.False(t, toks[4].LinkAuto)
}

func TestParseMarkdownCustomLinkFailsOpenBracketIsLiteral(t *testing.T) {
	toks := Parse("[no closing paren here", Options{Markdown: true})
	assert.Equal(t, "[no closing paren here", token.ConcatValues(toks))
	for _, tok := range toks {
		assert.NotEqual(t, token.Markdown, tok.Kind)
	}
}

func TestParseEmojiEmbeddedInText(t *testing.T) {
	toks := Parse("hi 😀 there", Options{})
	assert.Len(t, toks, 1)
	assert.Equal(t, token.Text, toks[0].Kind)
	if assert.Len(t, toks[0].Emoji, 1) {
		rng := toks[0].Emoji[0]
		assert.Equal(t, []rune(toks[0].Value)[rng.From:rng.To], []rune("😀"))
		assert.Equal(t, "", rng.Alias)
	}
}

func TestParseTextEmojiAlias(t *testing.T) {
	toks := Parse("hi :) there", Options{TextEmoji: true})
	assert.Len(t, toks, 1)
	if assert.Len(t, toks[0].Emoji, 1) {
		rng := toks[0].Emoji[0]
		assert.Equal(t, ":)", rng.Alias)
		assert.Equal(t, []rune(":)"), []rune(toks[0].Value)[rng.From:rng.To])
	}
}
