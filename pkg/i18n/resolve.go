package i18n

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LookupFunc returns the translation of key. A lookup that finds nothing
// returns key itself: that echo is the miss signal Resolve relies on.
type LookupFunc func(key string) string

// Resolve turns a dotted key into display text and never shows a raw key.
//
// The key is passed to lookup; a nil lookup echoes the key. When the result
// differs from the key it is returned unchanged. Otherwise the lookup missed
// and Resolve returns fallback when it is non-empty, or the last segment of
// the key. An empty key resolves to an empty string.
//
// A translation whose value equals its own key cannot be told apart from a
// miss and resolves like one.
func Resolve(key, fallback string, lookup LookupFunc) string {
	value, miss := resolve(key, lookup)
	if !miss {
		return value
	}
	if fallback != "" {
		return fallback
	}
	return LastSegment(key)
}

// ResolvePretty is Resolve with the miss-derived segment passed through
// Prettify. Looked-up values and explicit fallbacks are returned verbatim.
func ResolvePretty(key, fallback string, lookup LookupFunc) string {
	value, miss := resolve(key, lookup)
	if !miss {
		return value
	}
	if fallback != "" {
		return fallback
	}
	return Prettify(LastSegment(key))
}

func resolve(key string, lookup LookupFunc) (string, bool) {
	if key == "" {
		return "", false
	}
	if lookup == nil {
		return key, true
	}
	value := lookup(key)
	return value, value == key
}

// LastSegment returns the last non-empty dot-separated segment of key, or
// key itself when no segment is usable.
//
//	LastSegment("nav.menu.home") // "home"
//	LastSegment("nav.home.")     // "home"
//	LastSegment("...")           // "..."
func LastSegment(key string) string {
	parts := strings.Split(key, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if strings.TrimSpace(parts[i]) != "" {
			return parts[i]
		}
	}
	return key
}

// Prettify turns an identifier-like segment into space separated title case:
// a space goes before every upper-case letter, underscores become spaces,
// and every word starts with a capital. Runs of whitespace collapse to one
// space.
//
//	Prettify("firstName")   // "First Name"
//	Prettify("lodge_admin") // "Lodge Admin"
func Prettify(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	if len(words) == 0 {
		return ""
	}

	// A Caser keeps state and must not be shared between goroutines.
	title := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}
