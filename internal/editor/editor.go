/*
Package editor implements the editor coordinator (C7): the only part of
this module with any notion of "current state". It owns the live token
sequence, the caret, the active Options, and the edit history, and
exposes one method per public command in §4.7. Everything it does is
delegate to internal/textalgebra, internal/mdmirror, and internal/history
for the actual work; the coordinator's own job is sequencing those calls
and notifying a caller-supplied collaborator when something changed.

This mirrors the teacher's internal/workflow orchestration shape: a
thin struct holding small collaborator interfaces (there GitClient and
LLMClient, here Diagnostics and Schedule) wired together by one method
per public entry point, rather than one large do-everything function.
*/
package editor

import (
	"fmt"
	"time"

	"github.com/richedit/core/internal/history"
	"github.com/richedit/core/internal/mdmirror"
	"github.com/richedit/core/internal/parser"
	"github.com/richedit/core/internal/textalgebra"
	"github.com/richedit/core/internal/token"
)

// NotifyKind is one of the three logical notifications §4.7 defines.
type NotifyKind int

const (
	SelectionChanged NotifyKind = iota
	FormatChanged
	ContentUpdated
)

func (k NotifyKind) String() string {
	switch k {
	case SelectionChanged:
		return "SelectionChanged"
	case FormatChanged:
		return "FormatChanged"
	case ContentUpdated:
		return "ContentUpdated"
	default:
		return "Unknown"
	}
}

// Diagnostic is a side-channel report (§7): diagnostics never propagate
// to a command's return value, only to this sink.
type Diagnostic struct {
	Message string
}

// Schedule runs fn at the next natural yield point (§5): the
// implementer-provided hook the coordinator uses to defer a single
// coalesced ContentUpdated notification instead of firing one per
// mutation within the same tick. A nil Schedule runs fn synchronously,
// i.e. every mutation notifies immediately.
type Schedule func(fn func())

// Coordinator holds the current model (§5 "the only shared resource"),
// caret, options, and history, and exposes the public command surface.
// It is not safe for concurrent use: callers must complete one command
// before invoking the next, exactly as §5 specifies.
type Coordinator struct {
	tokens []token.Token
	caret  token.TextRange
	opts   Options
	hist   *history.History

	diagnostics func(Diagnostic)
	schedule    Schedule
	notify      func(NotifyKind)

	batchDepth   int
	contentDirty bool
}

// New constructs a Coordinator from an initial raw value, parsed under
// opts. now stamps the history's initial entry.
func New(value string, opts Options, now time.Time) *Coordinator {
	c := &Coordinator{
		opts:        opts,
		diagnostics: func(Diagnostic) {},
		notify:      func(NotifyKind) {},
	}
	c.tokens = c.parse(value)
	c.hist = history.New(c.tokens, now, history.Options{})
	return c
}

// SetDiagnostics installs the side-channel diagnostics sink (§7). A nil
// sink restores the default no-op.
func (c *Coordinator) SetDiagnostics(sink func(Diagnostic)) {
	if sink == nil {
		sink = func(Diagnostic) {}
	}
	c.diagnostics = sink
}

// SetNotify installs the notification callback. A nil callback restores
// the default no-op.
func (c *Coordinator) SetNotify(fn func(NotifyKind)) {
	if fn == nil {
		fn = func(NotifyKind) {}
	}
	c.notify = fn
}

// SetSchedule installs the batching hook (§5). A nil Schedule makes every
// mutation notify synchronously.
func (c *Coordinator) SetSchedule(s Schedule) {
	c.schedule = s
}

// Tokens returns the current token sequence. Callers must not mutate it.
func (c *Coordinator) Tokens() []token.Token {
	return c.tokens
}

// Options returns the active configuration.
func (c *Coordinator) Options() Options {
	return c.opts
}

func (c *Coordinator) parse(value string) []token.Token {
	if c.opts.Markdown {
		tokens, _ := mdmirror.MDToText(value, c.opts.Options)
		return tokens
	}
	return parser.Parse(value, c.opts.Options)
}

// parseOpts is the parser.Options view of the current configuration.
func (c *Coordinator) parseOpts() parser.Options {
	return c.opts.Options
}

// batch runs fn, then emits exactly one ContentUpdated notification
// covering every mutation fn performed, deferred through Schedule when
// one is installed (§5 "batches UI synchronization to one deferred
// flush per tick"). Nested batch calls coalesce into the outermost one.
func (c *Coordinator) batch(fn func()) {
	c.batchDepth++
	fn()
	c.batchDepth--
	if c.batchDepth > 0 {
		return
	}
	if !c.contentDirty {
		return
	}
	c.contentDirty = false
	flush := func() { c.notify(ContentUpdated) }
	if c.schedule != nil {
		c.schedule(flush)
		return
	}
	flush()
}

func (c *Coordinator) markDirty() {
	c.contentDirty = true
}

// pushHistory records the current tokens as the result of action over r,
// snapshotting the caret for undo to restore.
func (c *Coordinator) pushHistory(action history.Action, r token.TextRange, now time.Time) {
	caret := c.caret
	c.hist.Push(c.tokens, action, r, &caret, now)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// setCaret moves the caret, clamped to the current text length, and
// notifies SelectionChanged if it actually moved.
func (c *Coordinator) setCaret(r token.TextRange) {
	total := token.TotalLen(c.tokens)
	r.From = clamp(r.From, 0, total)
	r.To = clamp(r.To, 0, total)
	if r.From > r.To {
		r.From, r.To = r.To, r.From
	}
	if r == c.caret {
		return
	}
	c.caret = r
	c.notify(SelectionChanged)
}

// GetSelection returns the current caret/selection range.
func (c *Coordinator) GetSelection() token.TextRange {
	return c.caret
}

// SetSelection moves the caret/selection without mutating content.
func (c *Coordinator) SetSelection(r token.TextRange) {
	c.setCaret(r)
}

// Slice returns the sub-sequence spanning [from, to); a pure read, it
// does not touch history or the caret. Per §7, an invalid range here is
// a hard contract violation (unlike the editing commands below, which
// clamp): a reversed or out-of-bounds range reports a diagnostic and
// returns an error instead of silently adjusting the bounds.
func (c *Coordinator) Slice(from, to int) ([]token.Token, error) {
	total := token.TotalLen(c.tokens)
	if from < 0 || to < 0 || from > total || to > total || from > to {
		c.diagnostics(Diagnostic{Message: fmt.Sprintf(
			"invalid range [%d,%d) for Slice against length %d", from, to, total)})
		return nil, fmt.Errorf("editor: invalid range [%d,%d) for Slice", from, to)
	}
	return textalgebra.Slice(c.tokens, from, to), nil
}

// TokenForPos locates the token containing pos (§4.4 "tokenForPos").
func (c *Coordinator) TokenForPos(pos int, side token.Side) (idx, offset int) {
	return textalgebra.TokenForPos(c.tokens, pos, side)
}
