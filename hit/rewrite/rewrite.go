package rewrite

import (
	"github.com/hitlang/hit/hit/ast"
	"github.com/hitlang/hit/hit/hiterr"
	"github.com/hitlang/hit/hit/transform"
)

// Rule is one "[rule_i][Match]...[Replace]..." pattern: Match is
// matched (with placeholder capture) against candidate subtrees of
// the input; on success Replace is cloned, substituted, and merged in.
type Rule struct {
	Name    string
	Match   ast.Node
	Replace ast.Node
}

// LoadRules reads a rule document (already Parse()'d and
// include-resolved/merged) and returns every rule under its top-level
// "ReplacementRules" section.
func LoadRules(root ast.Node) ([]Rule, error) {
	rrSec := ast.Find(root, "ReplacementRules")
	if rrSec.H == ast.NoHandle {
		return nil, nil
	}
	var rules []Rule
	for _, sec := range rrSec.ChildrenOf(ast.KindSection) {
		match := ast.Find(sec, "Match")
		replace := ast.Find(sec, "Replace")
		if match.H == ast.NoHandle || replace.H == ast.NoHandle {
			return nil, hiterr.New(hiterr.KindParse, sec.Pos(), "rule '%s' missing Match or Replace", sec.Path())
		}
		rules = append(rules, Rule{Name: sec.Path(), Match: match, Replace: replace})
	}
	return rules, nil
}

// matchState accumulates tentative state for one matchSection attempt:
// nodes queued for deletion and symbol bindings. It is only merged
// into the caller's committed state when the whole subtree matches.
type matchState struct {
	deletes  []ast.Node
	bindings map[string]string
}

func newMatchState(parent *matchState) *matchState {
	bindings := map[string]string{}
	if parent != nil {
		for k, v := range parent.bindings {
			bindings[k] = v
		}
	}
	return &matchState{bindings: bindings}
}

// matchSection attempts to match every child of ruleSection against
// input, tentatively extending state; it returns false without
// mutating the caller's state on any failure.
func matchSection(ruleSection, input ast.Node, state *matchState) bool {
	tentative := newMatchState(state)

	for _, ruleChild := range ruleSection.Children() {
		switch ruleChild.Kind() {
		case ast.KindSection:
			if !matchSubsection(ruleChild, input, tentative) {
				return false
			}
		case ast.KindField:
			if !matchField(ruleChild, input, tentative) {
				return false
			}
		}
	}

	state.deletes = append(state.deletes, tentative.deletes...)
	state.bindings = tentative.bindings
	return true
}

func matchSubsection(ruleChild, input ast.Node, state *matchState) bool {
	if HasPlaceholder(ruleChild.Path()) {
		p, err := parsePlaceholder(ruleChild.Path())
		if err != nil {
			return false
		}
		for _, candidate := range input.ChildrenOf(ast.KindSection) {
			ok, capture := matchPlaceholder(p, candidate.Path(), state.bindings)
			if !ok {
				continue
			}
			sub := newMatchState(state)
			sub.bindings[p.Symbol] = capture
			if matchSection(ruleChild, candidate, sub) {
				state.deletes = append(state.deletes, sub.deletes...)
				state.deletes = append(state.deletes, candidate)
				state.bindings = sub.bindings
				return true
			}
		}
		return false
	}

	found := transform.Find(input, ruleChild.Path())
	if found.H == ast.NoHandle || found.Kind() != ast.KindSection {
		return false
	}
	sub := newMatchState(state)
	if !matchSection(ruleChild, found, sub) {
		return false
	}
	state.deletes = append(state.deletes, sub.deletes...)
	state.deletes = append(state.deletes, found)
	state.bindings = sub.bindings
	return true
}

func matchField(ruleChild, input ast.Node, state *matchState) bool {
	found := transform.Find(input, ruleChild.Name())
	if found.H == ast.NoHandle || found.Kind() != ast.KindField {
		return false
	}

	value := ast.Unquote(ruleChild.RawValue())
	if HasPlaceholder(value) {
		p, err := parsePlaceholder(value)
		if err != nil {
			return false
		}
		ok, capture := matchPlaceholder(p, ast.Unquote(found.RawValue()), state.bindings)
		if !ok {
			return false
		}
		state.bindings[p.Symbol] = capture
	} else if ast.Unquote(found.RawValue()) != value {
		return false
	}

	state.deletes = append(state.deletes, found)
	return true
}

// Apply runs rule against input repeatedly until it no longer
// matches, deleting matched nodes (fields unconditionally, sections
// only once left childless), cloning+substituting Replace, and
// merging the result back into input. It returns the number of times
// the rule fired.
//
// A match that consumes only nodes this rule's own earlier
// replacements produced counts as no further match: without that, a
// rule whose Replace still satisfies its Match (e.g. prepending a
// prefix to a captured value) would keep firing on its own output
// forever.
func Apply(rule Rule, input ast.Node) (int, error) {
	count := 0
	produced := map[ast.Handle]bool{}
	for {
		state := newMatchState(nil)
		if !matchSection(rule.Match, input, state) {
			return count, nil
		}

		selfOnly := true
		for _, d := range state.deletes {
			if !produced[d.H] {
				selfOnly = false
				break
			}
		}
		if selfOnly {
			return count, nil
		}

		for _, d := range state.deletes {
			if d.Kind() == ast.KindField {
				d.Parent().RemoveChild(d)
			}
		}
		for _, d := range state.deletes {
			if d.Kind() == ast.KindSection && nonBlankChildCount(d) == 0 {
				if p := d.Parent(); p.H != ast.NoHandle {
					p.RemoveChild(d)
				}
			}
		}

		replacement := transform.Clone(rule.Replace, false)
		if err := substituteTree(replacement, state.bindings); err != nil {
			return count, err
		}

		for _, n := range transform.Merge(replacement, input) {
			produced[n.H] = true
		}
		count++
	}
}

func nonBlankChildCount(n ast.Node) int {
	c := 0
	for _, ch := range n.Children() {
		if ch.Kind() != ast.KindBlank && ch.Kind() != ast.KindComment {
			c++
		}
	}
	return c
}

// substituteTree walks a cloned replacement subtree, replacing every
// placeholder occurrence in a section path or field name/value with
// its bound text.
func substituteTree(n ast.Node, bindings map[string]string) error {
	switch n.Kind() {
	case ast.KindSection:
		if HasPlaceholder(n.Path()) {
			s, err := substitutePattern(n.Path(), bindings)
			if err != nil {
				return err
			}
			n.SetPath(s)
		}
	case ast.KindField:
		if HasPlaceholder(n.Name()) {
			s, err := substitutePattern(n.Name(), bindings)
			if err != nil {
				return err
			}
			n.SetName(s)
		}
		if HasPlaceholder(n.RawValue()) {
			s, err := substitutePattern(n.RawValue(), bindings)
			if err != nil {
				return err
			}
			n.SetValue(s)
		}
	}
	for _, c := range n.Children() {
		if err := substituteTree(c, bindings); err != nil {
			return err
		}
	}
	return nil
}
