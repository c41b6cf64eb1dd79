package render

import (
	"regexp"

	"github.com/hitlang/hit/hit/ast"
	"github.com/hitlang/hit/hit/hiterr"
)

// Pattern is one "sorting" rule: fullpaths matching Section get their
// children reordered per Order, split at the "**" sentinel into a
// front group (matched greedily in order) and a back group.
type Pattern struct {
	Section    *regexp.Regexp
	FrontOrder []*regexp.Regexp
	BackOrder  []*regexp.Regexp
}

// Formatter renders a document according to a style document: an
// indent string, a maximum line length, whether legacy section
// markers are canonicalized away, and an ordered list of sorting
// patterns.
type Formatter struct {
	IndentString            string
	LineLength               int
	CanonicalSectionMarkers bool
	Patterns                []Pattern
}

// DefaultFormatter returns a Formatter with the stock style: two-space
// indentation, a 100-column line length, and canonical section markers.
func DefaultFormatter() *Formatter {
	return &Formatter{IndentString: "  ", LineLength: 100, CanonicalSectionMarkers: true}
}

// NewFormatter parses style (itself a HIT document, typically already
// Parse()'d and brace-expanded by the caller) into a Formatter,
// starting from DefaultFormatter's settings for whatever the style
// document doesn't specify.
func NewFormatter(style ast.Node) (*Formatter, error) {
	f := DefaultFormatter()

	formatSec := ast.Find(style, "format")
	if formatSec.H == ast.NoHandle {
		return f, nil
	}

	if v := ast.Find(formatSec, "indent_string"); v.H != ast.NoHandle {
		f.IndentString = ast.Unquote(v.RawValue())
	}
	if v := ast.Find(formatSec, "line_length"); v.H != ast.NoHandle {
		n, err := v.IntVal()
		if err != nil {
			return nil, err
		}
		f.LineLength = int(n)
	}
	if v := ast.Find(formatSec, "canonical_section_markers"); v.H != ast.NoHandle {
		b, err := v.BoolVal()
		if err != nil {
			return nil, err
		}
		f.CanonicalSectionMarkers = b
	}

	if sorting := ast.Find(formatSec, "sorting"); sorting.H != ast.NoHandle {
		for _, patSec := range sorting.ChildrenOf(ast.KindSection) {
			p, err := parsePattern(patSec)
			if err != nil {
				return nil, err
			}
			f.Patterns = append(f.Patterns, p)
		}
	}

	return f, nil
}

func parsePattern(patSec ast.Node) (Pattern, error) {
	var p Pattern
	secField := ast.Find(patSec, "section")
	if secField.H == ast.NoHandle {
		return p, hiterr.New(hiterr.KindParse, patSec.Pos(), "sorting pattern missing 'section'")
	}
	re, err := regexp.Compile(ast.Unquote(secField.RawValue()))
	if err != nil {
		return p, hiterr.Wrap(hiterr.KindParse, patSec.Pos(), err, "invalid section regex")
	}
	p.Section = re

	orderField := ast.Find(patSec, "order")
	front := true
	if orderField.H != ast.NoHandle {
		for _, word := range splitFields(ast.Unquote(orderField.RawValue())) {
			if word == "**" {
				front = false
				continue
			}
			re, err := regexp.Compile(word)
			if err != nil {
				return p, hiterr.Wrap(hiterr.KindParse, patSec.Pos(), err, "invalid order regex '%s'", word)
			}
			if front {
				p.FrontOrder = append(p.FrontOrder, re)
			} else {
				p.BackOrder = append(p.BackOrder, re)
			}
		}
	}
	return p, nil
}

func splitFields(s string) []string {
	var out []string
	cur := []byte{}
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			flush()
			continue
		}
		cur = append(cur, c)
	}
	flush()
	return out
}

// Walk applies every matching Pattern's sort rule to n and recurses
// into n's children, then (if CanonicalSectionMarkers) canonicalizes
// every section's markers.
func (f *Formatter) Walk(n ast.Node) {
	if n.Kind() == ast.KindSection || n.Kind() == ast.KindRoot {
		for _, p := range f.Patterns {
			if p.Section.MatchString(n.FullPath()) {
				f.sortGroup(n, p)
			}
		}
	}
	if n.Kind() == ast.KindSection && f.CanonicalSectionMarkers {
		n.SetOpenMarker("")
		n.SetCloseMarker("")
	}
	for _, c := range n.Children() {
		f.Walk(c)
	}
}

// unit is a field or section together with the single comment/blank
// immediately preceding it (zero Node when there is none). Earlier
// comments in a longer run stay independent units and do not travel
// when the field is reordered.
type unit struct {
	lead ast.Node
	node ast.Node
}

func nameOf(n ast.Node) string {
	if n.Kind() == ast.KindField {
		return n.Name()
	}
	if n.Kind() == ast.KindSection {
		return n.Path()
	}
	return ""
}

// sortGroup reorders n's children per pattern p: greedy-match
// front_order, then back_order, pulling matched child-units out in
// turn; everything left over keeps its original relative order and
// sits between the two groups.
func (f *Formatter) sortGroup(n ast.Node, p Pattern) {
	units := groupIntoUnits(n.Children())
	used := make([]bool, len(units))

	var front, back []unit
	for _, re := range p.FrontOrder {
		for i, u := range units {
			if used[i] || (u.node.Kind() != ast.KindField && u.node.Kind() != ast.KindSection) {
				continue
			}
			if re.MatchString(nameOf(u.node)) {
				front = append(front, u)
				used[i] = true
			}
		}
	}
	for _, re := range p.BackOrder {
		for i, u := range units {
			if used[i] || (u.node.Kind() != ast.KindField && u.node.Kind() != ast.KindSection) {
				continue
			}
			if re.MatchString(nameOf(u.node)) {
				back = append(back, u)
				used[i] = true
			}
		}
	}

	var unused []unit
	for i, u := range units {
		if !used[i] {
			unused = append(unused, u)
		}
	}

	// Note: back is reversed when concatenated, matching the
	// reference sorter's final-order assembly.
	var ordered []unit
	ordered = append(ordered, front...)
	ordered = append(ordered, unused...)
	for i := len(back) - 1; i >= 0; i-- {
		ordered = append(ordered, back[i])
	}

	n.Tree.DetachChildren(n.H)
	reattach(n, ordered)
}

func reattach(n ast.Node, ordered []unit) {
	for _, u := range ordered {
		if u.lead.H != ast.NoHandle {
			n.AddChild(u.lead)
		}
		n.AddChild(u.node)
	}
}

// groupIntoUnits scans children in order, pairing each field/section
// with the one comment/blank node directly before it.
func groupIntoUnits(children []ast.Node) []unit {
	var units []unit
	for i := 0; i < len(children); i++ {
		c := children[i]
		if (c.Kind() == ast.KindComment || c.Kind() == ast.KindBlank) && i+1 < len(children) {
			next := children[i+1]
			if next.Kind() == ast.KindField || next.Kind() == ast.KindSection {
				units = append(units, unit{lead: c, node: next})
				i++
				continue
			}
		}
		units = append(units, unit{node: c})
	}
	return units
}
