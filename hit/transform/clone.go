package transform

import "github.com/hitlang/hit/hit/ast"

// Clone deep-copies n into its own tree, detached from any parent.
// When absolutePath is true the clone's top node is stamped with n's
// current FullPath as its OverridePath, so rendering it anywhere
// still emits the original fully-qualified path (e.g.
// "foo/bar/baz = 42") instead of just its local name.
func Clone(n ast.Node, absolutePath bool) ast.Node {
	h := n.Tree.CloneNode(n, absolutePath)
	return n.Tree.Node(h)
}

// CloneInto deep-copies n into dst's arena rather than n's own tree,
// detached from any parent. Node handles are only ever valid within
// the arena that allocated them, so any clone destined to be attached
// as a child inside a *different* tree (as Merge does when splicing
// fields/sections from one document into another) must land there
// directly instead of being cloned into its source tree first.
func CloneInto(dst *ast.Tree, n ast.Node, absolutePath bool) ast.Node {
	h := dst.CloneNode(n, absolutePath)
	return dst.Node(h)
}
