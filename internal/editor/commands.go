package editor

import (
	"strings"
	"time"

	"github.com/richedit/core/internal/history"
	"github.com/richedit/core/internal/mdmirror"
	"github.com/richedit/core/internal/runeutil"
	"github.com/richedit/core/internal/textalgebra"
	"github.com/richedit/core/internal/token"
)

// sanitizeIncoming applies the editor-level (not clipboard-level) text
// preprocessing every inserted string goes through: \r?\n collapsed to a
// single space when opts.Nowrap is set (§6 "nowrap").
func (c *Coordinator) sanitizeIncoming(text string) string {
	if !c.opts.Nowrap {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", " ")
}

// withClean runs fn (an edit expressed in clean-sequence coordinates)
// against the current model, round-tripping through the Markdown mirror
// when the editor is in Markdown mode (§4.5 "mdToText -> edit on clean
// -> textToMd -> re-parse"), and returns the new caret range translated
// back into whichever coordinate space the model itself is stored in.
func (c *Coordinator) withClean(fn func(clean []token.Token, r token.TextRange) ([]token.Token, token.TextRange)) ([]token.Token, token.TextRange) {
	if !c.opts.Markdown {
		return fn(c.tokens, c.caret)
	}

	clean, bps := mdmirror.ToClean(c.tokens)
	cleanCaret := mdmirror.AdjustRange(bps, c.caret, true)

	newClean, newCleanCaret := fn(clean, cleanCaret)

	mdSource, mdBps := mdmirror.TextToMD(newClean)
	newTokens := c.parse(mdSource)
	newCaret := mdmirror.AdjustRange(mdBps, newCleanCaret, false)
	return newTokens, newCaret
}

func (c *Coordinator) commit(tokens []token.Token, caret token.TextRange, action history.Action, r token.TextRange, now time.Time) {
	c.tokens = tokens
	c.pushHistory(action, r, now)
	c.setCaret(caret)
	c.markDirty()
}

// InsertText splices text in at pos and moves the caret to just past it.
func (c *Coordinator) InsertText(pos int, text string, now time.Time) {
	c.batch(func() {
		text = c.sanitizeIncoming(text)
		opts := c.parseOpts()
		newTokens, newCaret := c.withClean(func(clean []token.Token, _ token.TextRange) ([]token.Token, token.TextRange) {
			out := textalgebra.InsertText(clean, pos, text, opts)
			end := pos + runeutil.Len(text)
			if c.opts.ResetFormatOnNewline && !c.opts.Markdown && strings.Contains(text, "\n") {
				lineStart := strings.LastIndexByte(text, '\n') + 1
				out = resetStickyFormatAt(out, pos+runeutil.Len(text[:lineStart]))
			}
			return out, token.TextRange{From: end, To: end}
		})
		c.commit(newTokens, newCaret, history.Insert, token.TextRange{From: pos, To: pos + runeutil.Len(text)}, now)
	})
}

// resetStickyFormatAt implements "resetFormatOnNewline" (§6): inserting
// a newline in non-Markdown mode drops whatever format the new line
// would otherwise inherit from the text before it. It plants a
// zero-format sticky placeholder at pos the same way SetFormat(..., 0)
// would, so the next character typed there starts from no format
// instead of inheriting across the line break.
func resetStickyFormatAt(tokens []token.Token, pos int) []token.Token {
	if textalgebra.GetFormatAt(tokens, pos) == 0 {
		return tokens
	}
	return textalgebra.SetFormat(tokens, pos, pos, token.FormatUpdate{Replace: true, Set: 0})
}

// RemoveText deletes the range [from, to) and leaves the caret collapsed
// at from.
func (c *Coordinator) RemoveText(from, to int, now time.Time) {
	c.batch(func() {
		newTokens, newCaret := c.withClean(func(clean []token.Token, _ token.TextRange) ([]token.Token, token.TextRange) {
			out := textalgebra.RemoveText(clean, from, to)
			return out, token.TextRange{From: from, To: from}
		})
		c.commit(newTokens, newCaret, history.Remove, token.TextRange{From: from, To: to}, now)
	})
}

// ReplaceText substitutes [from, to) with text, moving the caret to just
// past the inserted text.
func (c *Coordinator) ReplaceText(from, to int, text string, now time.Time) {
	c.batch(func() {
		text = c.sanitizeIncoming(text)
		opts := c.parseOpts()
		newTokens, newCaret := c.withClean(func(clean []token.Token, _ token.TextRange) ([]token.Token, token.TextRange) {
			out := textalgebra.ReplaceText(clean, from, to, text, opts)
			end := from + runeutil.Len(text)
			return out, token.TextRange{From: end, To: end}
		})
		action := history.Insert
		if text == "" {
			action = history.Remove
		}
		c.commit(newTokens, newCaret, action, token.TextRange{From: from, To: to}, now)
	})
}

// Cut removes [from, to) and returns the removed tokens for a
// clipboard-style cut (§4.4 "cutText").
func (c *Coordinator) Cut(from, to int, now time.Time) []token.Token {
	var cut []token.Token
	c.batch(func() {
		newTokens, newCaret := c.withClean(func(clean []token.Token, _ token.TextRange) ([]token.Token, token.TextRange) {
			removed, remaining := textalgebra.CutText(clean, from, to)
			cut = removed
			return remaining, token.TextRange{From: from, To: from}
		})
		c.commit(newTokens, newCaret, history.Remove, token.TextRange{From: from, To: to}, now)
	})
	return cut
}

// Paste replaces [from, to) with payload, which is either a plain string
// or a token sequence (e.g. decoded from the tamtam/fragment clipboard
// MIME type, §6). When payload is a token sequence, its per-token
// formats and any custom-link annotations are re-applied over the
// plain-text replacement, since ReplaceText/InsertText only ever
// produce formats the parser itself can derive.
func (c *Coordinator) Paste(payload any, pos, to int, now time.Time) {
	switch v := payload.(type) {
	case string:
		c.ReplaceText(pos, to, v, now)
	case []token.Token:
		c.batch(func() {
			text := token.ConcatValues(v)
			text = c.sanitizeIncoming(text)
			opts := c.parseOpts()
			newTokens, newCaret := c.withClean(func(clean []token.Token, _ token.TextRange) ([]token.Token, token.TextRange) {
				out := textalgebra.ReplaceText(clean, pos, to, text, opts)
				out = reapplyPastedFormats(out, pos, v)
				end := pos + runeutil.Len(text)
				return out, token.TextRange{From: end, To: end}
			})
			c.commit(newTokens, newCaret, history.Other, token.TextRange{From: pos, To: to}, now)
		})
	}
}

// reapplyPastedFormats walks the pasted fragment's own tokens and
// reapplies their Format (and, for custom Link tokens, their LinkURL)
// onto the corresponding span of the freshly reparsed result, since
// ReplaceText's reparse only derives what the plain parser can see.
func reapplyPastedFormats(tokens []token.Token, base int, fragment []token.Token) []token.Token {
	out := tokens
	pos := base
	for _, t := range fragment {
		length := t.Len()
		if length == 0 {
			pos += length
			continue
		}
		if t.Format != 0 {
			out = textalgebra.SetFormat(out, pos, pos+length, token.FormatUpdate{Add: t.Format})
		}
		if t.Kind == token.Link && !t.LinkAuto && t.LinkURL != "" {
			out = textalgebra.SetLink(out, pos, pos+length, t.LinkURL)
		}
		pos += length
	}
	return out
}

// UpdateFormat applies update to [pos, pos+length) (§4.4 "setFormat").
func (c *Coordinator) UpdateFormat(update token.FormatUpdate, pos, length int, now time.Time) {
	c.batch(func() {
		newTokens, newCaret := c.withClean(func(clean []token.Token, caret token.TextRange) ([]token.Token, token.TextRange) {
			out := textalgebra.SetFormat(clean, pos, pos+length, update)
			return out, caret
		})
		c.tokens = newTokens
		c.pushHistory(history.Other, token.TextRange{From: pos, To: pos + length}, now)
		c.setCaret(newCaret)
		c.markDirty()
		c.notify(FormatChanged)
	})
}

// ToggleFormat inspects the format at the caret (or, for a range, the
// formats common to every covered token) and flips bit: clears it everywhere in range if every
// covered token already has it set, otherwise adds it everywhere.
func (c *Coordinator) ToggleFormat(bit token.Format, pos, length int, now time.Time) {
	var current token.Format
	if length == 0 {
		current = textalgebra.GetFormatAt(c.tokens, pos)
	} else {
		current = textalgebra.GetFormat(c.tokens, pos, pos+length)
	}
	update := token.FormatUpdate{Add: bit}
	if current.Has(bit) {
		update = token.FormatUpdate{Remove: bit}
	}
	c.UpdateFormat(update, pos, length, now)
}

// SetLink annotates [pos, pos+length) as a custom Link to url, or strips
// custom-link-ness when url is nil (§4.4 "setLink").
func (c *Coordinator) SetLink(url *string, pos, length int, now time.Time) {
	c.batch(func() {
		u := ""
		if url != nil {
			u = *url
		}
		newTokens, newCaret := c.withClean(func(clean []token.Token, caret token.TextRange) ([]token.Token, token.TextRange) {
			out := textalgebra.SetLink(clean, pos, pos+length, u)
			return out, caret
		})
		c.commit(newTokens, newCaret, history.Other, token.TextRange{From: pos, To: pos + length}, now)
	})
}

// PickLink returns every Link token currently in the model, for a
// renderer-side picker UI to present (the actual selection/URL entry is
// the renderer's job; this just enumerates candidates and, once one is
// chosen, SetLink applies it).
func (c *Coordinator) PickLink() []token.Token {
	var links []token.Token
	for _, t := range c.tokens {
		if t.Kind == token.Link {
			links = append(links, t)
		}
	}
	return links
}

// Undo moves the history pointer back one entry and restores its state
// and caret. ok is false if there is nothing to undo.
func (c *Coordinator) Undo(now time.Time) bool {
	_ = now
	entry, ok := c.hist.Undo()
	if !ok {
		return false
	}
	c.tokens = entry.State
	if entry.Caret != nil {
		c.caret = *entry.Caret
	}
	c.notify(SelectionChanged)
	c.notify(ContentUpdated)
	return true
}

// Redo moves the history pointer forward one entry and restores its
// state and caret. ok is false if there is nothing to redo.
func (c *Coordinator) Redo(now time.Time) bool {
	_ = now
	entry, ok := c.hist.Redo()
	if !ok {
		return false
	}
	c.tokens = entry.State
	if entry.Caret != nil {
		c.caret = *entry.Caret
	}
	c.notify(SelectionChanged)
	c.notify(ContentUpdated)
	return true
}

// SetValue replaces the entire document with value, resetting history.
func (c *Coordinator) SetValue(value string, now time.Time) {
	c.tokens = c.parse(value)
	c.hist = history.New(c.tokens, now, history.Options{})
	c.caret = token.TextRange{}
	c.notify(SelectionChanged)
	c.notify(ContentUpdated)
}

// SetOptions swaps the active configuration. A change to Markdown mode
// forces a round trip through the mirror first (at the old setting) so
// the logical content survives the mode switch (§4.7).
func (c *Coordinator) SetOptions(opts Options, now time.Time) {
	wasMarkdown := c.opts.Markdown
	if wasMarkdown != opts.Markdown {
		var clean []token.Token
		if wasMarkdown {
			clean, _ = mdmirror.ToClean(c.tokens)
		} else {
			clean = c.tokens
		}
		c.opts = opts
		if opts.Markdown {
			mdSource, _ := mdmirror.TextToMD(clean)
			c.tokens = c.parse(mdSource)
		} else {
			c.tokens = token.Normalize(clean)
		}
		c.hist = history.New(c.tokens, now, history.Options{})
	} else {
		c.opts = opts
	}
	c.notify(ContentUpdated)
}
