package parser

// MentionMode selects how aggressively @mentions are recognized, mirroring
// the external `mention?: bool | "strict"` option from §6.
type MentionMode int

const (
	MentionOff MentionMode = iota
	MentionOn
	MentionStrict
)

// Options configures a single Parse call. All booleans default to false;
// the zero Options recognizes nothing but Newline tokens.
type Options struct {
	TextEmoji   bool
	Hashtag     bool
	Mention     MentionMode
	Command     bool
	UserSticker bool
	Link        bool
	StickyLink  bool
	Markdown    bool

	// LinkProtocols is the allow-list of literal scheme prefixes (e.g.
	// "http://", "mailto:") tried before falling back to the generic
	// `scheme:` form that is always permitted once Link is enabled.
	// A nil slice uses DefaultLinkProtocols.
	LinkProtocols []string
}

// DefaultLinkProtocols is used whenever Options.LinkProtocols is nil.
var DefaultLinkProtocols = []string{"http://", "https://", "ftp://", "//"}

func (o Options) protocols() []string {
	if o.LinkProtocols != nil {
		return o.LinkProtocols
	}
	return DefaultLinkProtocols
}
