/*
Package clipboard implements the clipboard payload codec (§6): encoding
and decoding the internal `tamtam/fragment` MIME type (a JSON token
sequence, used for in-app copy/paste round trips) and sanitizing
`text/plain` payloads from outside the app. `text/html` ingest is an
external collaborator (§1 scope) represented here only as the narrow
HTMLImporter interface; the editor coordinator's Paste command does not
use it, and no working importer ships in this repository.

JSON, not a third-party codec, is deliberate: every JSON use across the
retrieval pack (config files, gendoc output, `config get --json`) reaches
for encoding/json directly rather than a third-party marshaler, for the
same reason this is — a simple, non-streaming struct round trip.
*/
package clipboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/richedit/core/internal/token"
)

// FragmentMIME is the internal MIME type used for token-sequence
// clipboard round trips (§6 "tamtam/fragment").
const FragmentMIME = "tamtam/fragment"

// EncodeFragment serializes tokens as the tamtam/fragment payload.
func EncodeFragment(tokens []token.Token) (string, error) {
	data, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("clipboard: encode fragment: %w", err)
	}
	return string(data), nil
}

// DecodeFragment parses a tamtam/fragment payload. Unknown JSON fields
// are ignored (encoding/json's default), so a payload written by a newer
// version of this format still decodes; array order is preserved, since
// a JSON array has none to lose.
func DecodeFragment(data string) ([]token.Token, error) {
	var tokens []token.Token
	if err := json.Unmarshal([]byte(data), &tokens); err != nil {
		return nil, fmt.Errorf("clipboard: decode fragment: %w", err)
	}
	return tokens, nil
}

// SanitizePlainText cleans a text/plain clipboard payload (§6): NUL
// bytes become spaces (they cannot survive into a Token's Value without
// breaking invariant 1's implicit assumption of printable text), and
// line endings normalize to "\n", or to a single space when nowrap mode
// is active.
func SanitizePlainText(s string, nowrap bool) string {
	s = strings.ReplaceAll(s, "\x00", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if nowrap {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	return s
}

// HTMLImporter converts a text/html clipboard payload into a token
// sequence. Real HTML ingest is out of scope (§1): this interface exists
// only so callers needing to compile against a concrete collaborator
// have one to satisfy.
type HTMLImporter interface {
	ImportHTML(html string, htmlLinks bool) ([]token.Token, error)
}

// ErrHTMLImportUnsupported is returned by UnsupportedHTMLImporter.
var ErrHTMLImportUnsupported = fmt.Errorf("clipboard: html import is not implemented (out of scope, see spec §1)")

// UnsupportedHTMLImporter is an HTMLImporter that always fails, for
// callers that need a concrete value to wire in before a real HTML
// parser is available.
type UnsupportedHTMLImporter struct{}

func (UnsupportedHTMLImporter) ImportHTML(string, bool) ([]token.Token, error) {
	return nil, ErrHTMLImportUnsupported
}
