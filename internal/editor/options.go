package editor

import "github.com/richedit/core/internal/parser"

// Options is the editor's configuration surface (§6 "Editor options"):
// a superset of parser.Options plus the editor-only knobs that affect
// how incoming text is treated before it ever reaches the parser.
type Options struct {
	parser.Options

	// ResetFormatOnNewline clears the sticky format at the start of the
	// new line when "\n" is inserted in non-Markdown mode.
	ResetFormatOnNewline bool

	// Nowrap collapses incoming "\r?\n" to a single space in any text
	// handed to InsertText/ReplaceText/Paste, instead of letting it
	// become a Newline token.
	Nowrap bool

	// HTML and HTMLLinks are paste-only flags consulted by the caller
	// before invoking an HTMLImporter (§1 scope: HTML ingest itself is
	// an external collaborator, not implemented here).
	HTML      bool
	HTMLLinks bool
}
