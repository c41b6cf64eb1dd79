// Package transform implements the HIT tree transforms: explode
// (rewriting shorthand "a/b/c" paths into nested sections), merge
// (splicing one tree's fields/sections into another by fullpath),
// clone (deep copy, optionally stamped with an absolute path), and
// find (the level-by-level, union-of-candidates path lookup, a
// re-export of ast.Find).
package transform

import (
	"strings"

	"github.com/hitlang/hit/hit/ast"
)

// Find resolves path relative to n. It is a thin re-export of
// ast.Find so callers working in this package don't need to import
// ast just for lookups.
func Find(n ast.Node, path string) ast.Node { return ast.Find(n, path) }

// Explode rewrites every Section or Field directly under n whose
// local path/name contains '/' into nested sections, one per
// slash-separated segment, with the final segment renamed to the
// leaf's own local name. An intermediate segment that already exists
// as a sibling section is reused rather than duplicated. Recurses
// into every (possibly newly created) child section so a full-tree
// call exhaustively removes every '/' from local names.
//
// This mirrors the literal tree-rewrite spec.md describes, not the
// no-op a WASP-fronted variant of the original parser takes (there,
// buildHITTree already expands shorthand paths at construction time,
// so its explode() has nothing left to do) -- callers here still
// need a real, idempotent transform because nothing upstream of this
// package performs that expansion.
func Explode(n ast.Node) {
	for _, c := range n.Children() {
		switch c.Kind() {
		case ast.KindSection:
			explodeSection(n, c)
		case ast.KindField:
			explodeField(n, c)
		}
	}
	for _, c := range n.Children() {
		if c.Kind() == ast.KindSection {
			Explode(c)
		}
	}
}

func explodeSection(parent, sec ast.Node) {
	segments := strings.Split(sec.Path(), "/")
	if len(segments) < 2 {
		return
	}
	sec.SetPath(segments[len(segments)-1])
	container := ensurePath(parent, segments[:len(segments)-1])
	parent.DetachChild(sec)
	container.AddChild(sec)
}

func explodeField(parent, field ast.Node) {
	segments := strings.Split(field.Name(), "/")
	if len(segments) < 2 {
		return
	}
	field.SetName(segments[len(segments)-1])
	container := ensurePath(parent, segments[:len(segments)-1])
	parent.DetachChild(field)
	container.AddChild(field)
}

// ensurePath returns the section reached by walking segments under
// parent, creating any missing intermediate sections (sharing the
// field/section's source location) along the way.
func ensurePath(parent ast.Node, segments []string) ast.Node {
	cur := parent
	for _, seg := range segments {
		found := ast.Node{}
		for _, c := range cur.Children() {
			if c.Kind() == ast.KindSection && c.Path() == seg {
				found = c
				break
			}
		}
		if found.H == ast.NoHandle {
			h := cur.Tree.NewSection(seg, cur.File(), cur.Line(), cur.Column())
			newNode := cur.Tree.Node(h)
			cur.AddChild(newNode)
			cur = newNode
		} else {
			cur = found
		}
	}
	return cur
}
