package cli

import (
	"regexp"
	"strings"
)

// globToRegexp translates a shell-style glob (only '*' and '?' are
// special) into an anchored, optionally case-insensitive regexp.
func globToRegexp(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	if caseInsensitive {
		b.WriteString("(?i)")
	}
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
