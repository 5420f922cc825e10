/*
Package shortcut parses the `"<mod>+<mod>+<key>"` shortcut syntax (§6)
and matches it against a pressed key combination. The `+`-split itself
follows the teacher's internal/stringsutil helper shape (a small
single-purpose utility, not a general tokenizer); the key comparison
uses internal/runeutil.EqualFold, and modifier names are lower-cased
with strings.ToLower.
*/
package shortcut

import (
	"fmt"
	"strings"

	"github.com/richedit/core/internal/runeutil"
)

// Mod is a keyboard modifier. Any represents the literal "any" wildcard:
// a Shortcut carrying it matches regardless of which modifiers are held.
type Mod int

const (
	Cmd Mod = iota
	Ctrl
	Alt
	Shift
	Meta
	Any
)

func parseMod(s string) (Mod, bool) {
	switch strings.ToLower(s) {
	case "cmd":
		return Cmd, true
	case "ctrl":
		return Ctrl, true
	case "alt":
		return Alt, true
	case "shift":
		return Shift, true
	case "meta":
		return Meta, true
	case "any":
		return Any, true
	default:
		return 0, false
	}
}

// Shortcut is a parsed key binding: a set of modifiers plus the physical
// key name, lower-cased.
type Shortcut struct {
	Mods []Mod
	Key  string
}

// Parse parses "<mod>+<mod>+<key>" (case-insensitive modifier names,
// '+'-separated, key last). At least a key is required.
func Parse(s string) (Shortcut, error) {
	parts := splitNonEmpty(s, '+')
	if len(parts) == 0 {
		return Shortcut{}, fmt.Errorf("shortcut: empty shortcut spec")
	}

	key := strings.ToLower(parts[len(parts)-1])
	if key == "" {
		return Shortcut{}, fmt.Errorf("shortcut: missing key in %q", s)
	}

	mods := make([]Mod, 0, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		m, ok := parseMod(p)
		if !ok {
			return Shortcut{}, fmt.Errorf("shortcut: unknown modifier %q in %q", p, s)
		}
		mods = append(mods, m)
	}
	return Shortcut{Mods: mods, Key: key}, nil
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	for _, field := range strings.Split(s, string(sep)) {
		field = strings.TrimSpace(field)
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}

// Platform selects which physical modifier "cmd" resolves to.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformApple
)

// resolve maps a parsed modifier to its platform-concrete form: "cmd"
// becomes Meta on Apple platforms, Ctrl elsewhere; every other modifier
// (including the Any wildcard) passes through unchanged.
func resolve(m Mod, plat Platform) Mod {
	if m != Cmd {
		return m
	}
	if plat == PlatformApple {
		return Meta
	}
	return Ctrl
}

// Matches reports whether a pressed combination (key plus the exact set
// of held modifiers) satisfies sc on the given platform. A Shortcut
// carrying the Any modifier matches any modifier combination as long as
// the key matches; otherwise every resolved modifier in sc must be held,
// and no extra held modifier may be unaccounted for.
func Matches(sc Shortcut, plat Platform, heldMods []Mod, key string) bool {
	if !runeutil.EqualFold(sc.Key, key) {
		return false
	}
	for _, m := range sc.Mods {
		if m == Any {
			return true
		}
	}

	want := make(map[Mod]bool, len(sc.Mods))
	for _, m := range sc.Mods {
		want[resolve(m, plat)] = true
	}
	held := make(map[Mod]bool, len(heldMods))
	for _, m := range heldMods {
		held[m] = true
	}
	if len(want) != len(held) {
		return false
	}
	for m := range want {
		if !held[m] {
			return false
		}
	}
	return true
}

// DetectPlatform reports the shortcut-resolution platform for goos, the
// value of runtime.GOOS. Callers pass it explicitly rather than this
// package importing "runtime" itself, keeping it pure and testable.
func DetectPlatform(goos string) Platform {
	if goos == "darwin" {
		return PlatformApple
	}
	return PlatformOther
}
