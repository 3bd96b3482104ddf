package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// TrimAndNormalize trims s, puts it in Unicode NFC and collapses every whitespace
// run to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// Email lower-cases and trims an address. It does not validate the format.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Text is the default for free-text fields such as messages and cover letters:
// NFC, outer whitespace trimmed, inner line breaks kept.
func Text(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
