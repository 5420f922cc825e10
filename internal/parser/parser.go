/*
Package parser implements the tokenizing parser (C3): Parse turns a plain
source string into the normalized Token sequence described by §4, honoring
the caller's Options to decide which solid-token families are recognized.

The scan loop is a single left-to-right pass with a first-match-wins rule
list, grounded on delthas/discord-formatting's rule-list scanning loop: a
small ordered list of "try this recognizer at the current position" calls,
falling through to "append one rune to the pending text buffer" when none
match. m96-chan/Slacko's character-class checks for hashtags and mentions
informed the boundary rules below.
*/
package parser

import (
	"strings"

	"github.com/richedit/core/internal/charclass"
	"github.com/richedit/core/internal/emoji"
	"github.com/richedit/core/internal/runeutil"
	"github.com/richedit/core/internal/token"
)

// scanner holds the mutable state of a single Parse call.
type scanner struct {
	s    string
	opts Options
	i    int

	pending      strings.Builder
	pendingEmoji []token.EmojiRange
	pendingLen   int

	out []token.Token

	lastWasHashtagEnd bool

	md mdState
}

// Parse scans s into a normalized Token sequence under opts.
func Parse(s string, opts Options) []token.Token {
	p := &scanner{s: s, opts: opts}
	p.run()
	return token.Normalize(p.out)
}

func (p *scanner) run() {
	for p.i < len(p.s) {
		wasHashtagEnd := p.lastWasHashtagEnd
		p.lastWasHashtagEnd = false

		if n, ok := p.tryNewline(p.i); ok {
			p.flushPending()
			p.emit(token.Token{Kind: token.Newline, Value: p.s[p.i:n]})
			p.i = n
			continue
		}

		if p.opts.Markdown {
			if n, ok := p.tryMarkdown(p.i); ok {
				p.i = n
				continue
			}
		}

		if p.opts.Mention != MentionOff {
			if n, ok := p.tryMention(p.i); ok {
				p.i = n
				continue
			}
		}

		if p.opts.Command {
			if n, ok := p.tryCommand(p.i); ok {
				p.i = n
				continue
			}
		}

		if p.opts.UserSticker {
			if n, ok := p.tryUserSticker(p.i, wasHashtagEnd); ok {
				p.i = n
				p.lastWasHashtagEnd = true
				continue
			}
		}

		if p.opts.Hashtag {
			if n, ok := p.tryHashtag(p.i, wasHashtagEnd); ok {
				p.i = n
				p.lastWasHashtagEnd = true
				continue
			}
		}

		if p.opts.Link {
			if lm, ok := p.tryLink(p.i); ok {
				p.flushPending()
				p.emit(token.Token{
					Kind:     token.Link,
					Value:    lm.Matched,
					LinkURL:  lm.URL,
					LinkAuto: true,
					Sticky:   p.opts.StickyLink,
				})
				p.i += len(lm.Matched)
				continue
			}
		}

		if end, ok := emoji.Match(p.s, p.i); ok {
			p.appendEmojiToPending(p.s[p.i:end], "")
			p.i = end
			continue
		}

		if p.opts.TextEmoji {
			if _, end, ok := emoji.MatchTextAlias(p.s, p.i); ok {
				p.appendEmojiToPending(p.s[p.i:end], p.s[p.i:end])
				p.i = end
				continue
			}
		}

		r, size := charclass.CodePointAt(p.s, p.i)
		if size == 0 {
			p.i++
			continue
		}
		p.pending.WriteRune(r)
		p.pendingLen++
		p.i += size
	}
	p.flushPending()
	p.closeUnterminatedMarkers()
}

func (p *scanner) tryNewline(i int) (int, bool) {
	switch {
	case strings.HasPrefix(p.s[i:], "\r\n"):
		return i + 2, true
	case p.s[i] == '\n' || p.s[i] == '\r':
		return i + 1, true
	}
	return i, false
}

// appendEmojiToPending appends text (always the literal source bytes) to
// the pending buffer, recording an EmojiRange over the appended span.
// alias repeats the source text when it is a text-emoji alias such as
// ":)", and is empty when text is a Unicode emoji as typed.
func (p *scanner) appendEmojiToPending(text, alias string) {
	from := p.pendingLen
	p.pending.WriteString(text)
	n := runeutil.Len(text)
	p.pendingLen += n
	p.pendingEmoji = append(p.pendingEmoji, token.EmojiRange{From: from, To: from + n, Alias: alias})
}

func (p *scanner) flushPending() {
	if p.pending.Len() == 0 {
		return
	}
	p.emit(token.Token{Kind: token.Text, Value: p.pending.String(), Emoji: p.pendingEmoji})
	p.pending.Reset()
	p.pendingEmoji = nil
	p.pendingLen = 0
}

func (p *scanner) emit(t token.Token) {
	t.Format = p.md.currentFormat()
	p.out = append(p.out, t)
}

func (p *scanner) wordBoundLeftByte(i int) bool {
	r, size := lastRune(p.s[:i])
	if size == 0 {
		return true
	}
	return charclass.IsDelimiter(r)
}

func (p *scanner) tryMention(i int) (int, bool) {
	if p.s[i] != '@' {
		return i, false
	}
	if !p.wordBoundLeftByte(i) {
		return i, false
	}
	end := i + 1
	r, size := charclass.CodePointAt(p.s, end)
	if size > 0 && isMentionStart(r) {
		nameEnd := end + size
		for {
			r, size := charclass.CodePointAt(p.s, nameEnd)
			if size == 0 || !isMentionCont(r) {
				break
			}
			nameEnd += size
		}
		name := p.s[end:nameEnd]
		p.flushPending()
		p.emit(token.Token{Kind: token.Mention, Value: p.s[i:nameEnd], Mention: name})
		return nameEnd, true
	}
	if p.opts.Mention == MentionStrict {
		return i, false
	}
	p.flushPending()
	p.emit(token.Token{Kind: token.Mention, Value: "@", Mention: ""})
	return end, true
}

func isMentionStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isMentionCont(r rune) bool {
	return isMentionStart(r) || (r >= '0' && r <= '9') || r == '_'
}

func (p *scanner) tryCommand(i int) (int, bool) {
	if p.s[i] != '/' {
		return i, false
	}
	if !p.wordBoundLeftByte(i) {
		return i, false
	}
	end := i + 1
	start := end
	for {
		r, size := charclass.CodePointAt(p.s, end)
		if size == 0 || !charclass.IsWordChar(r) {
			break
		}
		end += size
	}
	if end == start {
		return i, false
	}
	name := p.s[start:end]
	p.flushPending()
	p.emit(token.Token{Kind: token.Command, Value: p.s[i:end], Command: name})
	return end, true
}

// tryUserSticker matches "#u<hex>s#" (1-16 hex digits), tried before the
// generic hashtag recognizer at the same '#'.
func (p *scanner) tryUserSticker(i int, prevWasHashtag bool) (int, bool) {
	if !strings.HasPrefix(p.s[i:], "#u") {
		return i, false
	}
	if !prevWasHashtag && !p.wordBoundLeftByte(i) {
		return i, false
	}
	end := i + 2
	start := end
	for end < len(p.s) && end-start < 16 && isHexDigit(p.s[end]) {
		end++
	}
	if end == start {
		return i, false
	}
	if end >= len(p.s) || p.s[end] != 's' {
		return i, false
	}
	end++
	if end >= len(p.s) || p.s[end] != '#' {
		return i, false
	}
	end++
	id := p.s[start : end-2]
	p.flushPending()
	p.emit(token.Token{Kind: token.UserSticker, Value: p.s[i:end], StickerID: id})
	return end, true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}

// tryHashtag matches '#' followed by one or more word characters. The
// normal word-bound-left requirement is waived when the previous token
// emitted was itself a hashtag end, so "#a#b" yields two tags.
func (p *scanner) tryHashtag(i int, prevWasHashtag bool) (int, bool) {
	if p.s[i] != '#' {
		return i, false
	}
	if !prevWasHashtag && !p.wordBoundLeftByte(i) {
		return i, false
	}
	end := i + 1
	start := end
	first, fsize := charclass.CodePointAt(p.s, end)
	if fsize == 0 || !charclass.IsWordChar(first) {
		return i, false
	}
	for {
		r, size := charclass.CodePointAt(p.s, end)
		if size == 0 || !charclass.IsWordChar(r) {
			break
		}
		end += size
	}
	name := p.s[start:end]
	p.flushPending()
	p.emit(token.Token{Kind: token.HashTag, Value: p.s[i:end], HashTag: name})
	return end, true
}
