package sanitization

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// SingleLine collapses every run of whitespace, line breaks included, into one
// space and trims the result. Use it for values that end up in mail headers.
func SingleLine(input string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(input, " "))
}
