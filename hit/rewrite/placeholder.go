// Package rewrite implements the pattern-driven rewrite engine:
// [ReplacementRules][rule_i][Match]...[Replace]... rule documents that
// match a subtree against a pattern with named placeholders, bind the
// captured text, and splice a substituted replacement back in via
// transform.Merge.
package rewrite

import (
	"strings"

	"github.com/hitlang/hit/hit/hiterr"
)

// Placeholder is a parsed "pre<sym>post" pattern: a literal prefix and
// suffix around exactly one named capture.
type Placeholder struct {
	Prefix string
	Symbol string
	Suffix string
}

// HasPlaceholder reports whether s contains a "<...>" placeholder.
func HasPlaceholder(s string) bool {
	return strings.Contains(s, "<") || strings.Contains(s, ">")
}

// parsePlaceholder splits "pre<sym>post" into its three parts. It
// fails on a malformed placeholder: a '>' appearing before the '<', or
// either appearing more than once.
func parsePlaceholder(s string) (Placeholder, error) {
	open := strings.IndexByte(s, '<')
	close := strings.IndexByte(s, '>')
	if open < 0 || close < 0 {
		return Placeholder{}, hiterr.New(hiterr.KindParse, hiterr.Pos{}, "malformed placeholder '%s': missing '<' or '>'", s)
	}
	if close < open {
		return Placeholder{}, hiterr.New(hiterr.KindParse, hiterr.Pos{}, "malformed placeholder '%s': closer before opener", s)
	}
	if strings.IndexByte(s[open+1:], '<') >= 0 || strings.IndexByte(s[close+1:], '>') >= 0 {
		return Placeholder{}, hiterr.New(hiterr.KindParse, hiterr.Pos{}, "malformed placeholder '%s': more than one placeholder", s)
	}
	return Placeholder{
		Prefix: s[:open],
		Symbol: s[open+1 : close],
		Suffix: s[close+1:],
	}, nil
}

// matchPlaceholder checks value against p's prefix/suffix and, on
// success, returns the captured middle text. bindings is only read,
// to enforce that repeated uses of the same symbol within one match
// capture identical text; recording a fresh capture is left to the
// caller.
func matchPlaceholder(p Placeholder, value string, bindings map[string]string) (bool, string) {
	if !strings.HasPrefix(value, p.Prefix) || !strings.HasSuffix(value, p.Suffix) {
		return false, ""
	}
	if len(value) < len(p.Prefix)+len(p.Suffix) {
		return false, ""
	}
	mid := value[len(p.Prefix) : len(value)-len(p.Suffix)]
	if prior, ok := bindings[p.Symbol]; ok && prior != mid {
		return false, ""
	}
	return true, mid
}

// substitutePattern replaces p's placeholder in a fresh string with
// its bound text, erroring if the symbol was never bound.
func substitutePattern(s string, bindings map[string]string) (string, error) {
	if !HasPlaceholder(s) {
		return s, nil
	}
	p, err := parsePlaceholder(s)
	if err != nil {
		return "", err
	}
	val, ok := bindings[p.Symbol]
	if !ok {
		return "", hiterr.New(hiterr.KindParse, hiterr.Pos{}, "unbound placeholder symbol '%s'", p.Symbol)
	}
	return p.Prefix + val + p.Suffix, nil
}
