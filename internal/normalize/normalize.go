package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// zeroWidth matches ZERO WIDTH SPACE, ZERO WIDTH NON-JOINER, ZERO WIDTH JOINER
// and ZERO WIDTH NO-BREAK SPACE (BOM).
var zeroWidth = runes.Predicate(func(r rune) bool {
	return (r >= '\u200b' && r <= '\u200d') || r == '\ufeff'
})

// schemes are stripped in this order, https first so that "https://" is not
// half-matched by "http".
var schemes = []string{"https://", "http://"}

// URL strips zero-width characters, surrounding whitespace, trailing slashes
// and a leading http:// or https:// (any casing) from raw.
//
// URL never fails and is idempotent: stripping the scheme can expose more
// whitespace or slashes, so the steps repeat until the string stops changing.
func URL(raw string) string {
	s := raw
	for {
		next := once(s)
		if next == s {
			return s
		}
		s = next
	}
}

// once applies every cleaning step a single time.
func once(s string) string {
	s = removeZeroWidth(s)
	s = strings.TrimFunc(s, unicode.IsSpace)
	s = strings.TrimRight(s, "/")
	return trimScheme(s)
}

func removeZeroWidth(s string) string {
	out, _, err := transform.String(runes.Remove(zeroWidth), s)
	if err != nil {
		// Remove only fails on invalid transformer state, never on input.
		return s
	}
	return out
}

// trimScheme removes one leading scheme prefix, compared case-insensitively.
func trimScheme(s string) string {
	for _, scheme := range schemes {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return s[len(scheme):]
		}
	}
	return s
}
