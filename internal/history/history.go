/*
Package history implements the edit history (C6): a linear undo/redo
stack over immutable token-sequence snapshots, with action-kind
compaction and caret tracking.

History itself is pure data — it never reads the clock. Callers (the
editor coordinator) pass the instant of each push, the way
internal/worktree.go's prune pass takes the trimming bound from its
caller rather than reaching for time.Now() itself.
*/
package history

import (
	"time"

	"github.com/richedit/core/internal/token"
)

// Action classifies a push for compaction purposes. Only Insert and
// Remove are compactable (§4.6); every other mutation always starts a
// new entry.
type Action int

const (
	Other Action = iota
	Insert
	Remove
)

func (a Action) compactable() bool {
	return a == Insert || a == Remove
}

// DefaultCompactTimeout is the window within which consecutive pushes of
// the same compactable action merge into one entry.
const DefaultCompactTimeout = 600 * time.Millisecond

// DefaultMaxEntries is the number of entries the stack retains before
// trimming the oldest.
const DefaultMaxEntries = 100

// Entry is one snapshot in the stack.
type Entry struct {
	State  []token.Token
	Action Action
	Range  token.TextRange
	Caret  *token.TextRange
	Time   time.Time
}

// History is a linear undo/redo stack. The zero value is not usable;
// construct with New.
type History struct {
	entries        []Entry
	p              int
	compactTimeout time.Duration
	maxEntries     int
}

// Options configures a History. A zero-value Options uses the package
// defaults.
type Options struct {
	CompactTimeout time.Duration
	MaxEntries     int
}

// New creates a History whose first entry is the given initial state,
// pushed at now with Action Other (the starting point is never itself
// undoable past).
func New(initial []token.Token, now time.Time, opts Options) *History {
	timeout := opts.CompactTimeout
	if timeout <= 0 {
		timeout = DefaultCompactTimeout
	}
	max := opts.MaxEntries
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &History{
		entries:        []Entry{{State: initial, Action: Other, Time: now}},
		p:              0,
		compactTimeout: timeout,
		maxEntries:     max,
	}
}

// Current returns the entry at the history's current position.
func (h *History) Current() Entry {
	return h.entries[h.p]
}

// CanUndo reports whether Undo would move the pointer.
func (h *History) CanUndo() bool { return h.p > 0 }

// CanRedo reports whether Redo would move the pointer.
func (h *History) CanRedo() bool { return h.p < len(h.entries)-1 }

// Undo moves the pointer one entry back and returns the entry now
// current. ok is false (and the pointer unchanged) if already at the
// oldest entry.
func (h *History) Undo() (Entry, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.p--
	return h.Current(), true
}

// Redo moves the pointer one entry forward and returns the entry now
// current. ok is false (and the pointer unchanged) if already at the
// newest entry.
func (h *History) Redo() (Entry, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.p++
	return h.Current(), true
}

// Push records state as the result of action affecting r, optionally
// with a caret snapshot to restore on undo, at instant now. Entries
// beyond the current pointer (reachable only via Redo) are discarded
// first, exactly as a conventional undo stack drops the redo branch on
// a fresh edit.
//
// If the previous entry's action equals action, action is compactable,
// and now is within the configured compaction window of the previous
// entry's time, Push merges into that entry instead of appending: the
// ranges union and state/time/caret take the new values. Otherwise a
// new entry is appended, and the stack is trimmed from the front if it
// now exceeds maxEntries.
func (h *History) Push(state []token.Token, action Action, r token.TextRange, caret *token.TextRange, now time.Time) {
	h.entries = h.entries[:h.p+1]

	prev := &h.entries[h.p]
	if action.compactable() && prev.Action == action && now.Sub(prev.Time) < h.compactTimeout {
		prev.State = state
		prev.Range = unionRange(prev.Range, r)
		prev.Caret = caret
		prev.Time = now
		return
	}

	h.entries = append(h.entries, Entry{
		State:  state,
		Action: action,
		Range:  r,
		Caret:  caret,
		Time:   now,
	})
	h.p++

	if len(h.entries) > h.maxEntries {
		drop := len(h.entries) - h.maxEntries
		h.entries = h.entries[drop:]
		h.p -= drop
	}
}

func unionRange(a, b token.TextRange) token.TextRange {
	from := a.From
	if b.From < from {
		from = b.From
	}
	to := a.To
	if b.To > to {
		to = b.To
	}
	return token.TextRange{From: from, To: to}
}
