package sanitizer

import "regexp"

var regexSpecialChars = regexp.MustCompile(`[.*+?^$()[\]{}|\\]`)

// EscapeRegex escapes regex metacharacters so user input is matched literally
// inside a Mongo $regex.
func EscapeRegex(s string) string {
	return regexSpecialChars.ReplaceAllStringFunc(s, func(match string) string {
		return "\\" + match
	})
}
