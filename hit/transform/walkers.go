package transform

import "github.com/hitlang/hit/hit/ast"

// GatherParamWalker walks a tree collecting every Field's fullpath and
// quote-stripped value, the basis for the "common" and "subtract" CLI
// commands.
func GatherParamWalker(root ast.Node) map[string]string {
	out := map[string]string{}
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for _, c := range n.Children() {
			switch c.Kind() {
			case ast.KindField:
				out[c.FullPath()] = ast.Unquote(c.RawValue())
			case ast.KindSection:
				walk(c)
			}
		}
	}
	walk(root)
	return out
}

// RemoveParamWalker deletes every Field in root whose (fullpath,
// value) pair appears in params, used by "subtract" to strip out
// whatever the subtrahend document also declares identically.
func RemoveParamWalker(root ast.Node, params map[string]string) {
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for _, c := range n.Children() {
			if c.Kind() == ast.KindSection {
				walk(c)
			}
		}
		for _, c := range n.Children() {
			if c.Kind() != ast.KindField {
				continue
			}
			if v, ok := params[c.FullPath()]; ok && v == ast.Unquote(c.RawValue()) {
				n.RemoveChild(c)
			}
		}
	}
	walk(root)
}

// RemoveEmptySectionWalker prunes sections left childless (ignoring
// Blank/Comment children, which don't count as content) by a prior
// RemoveParamWalker pass, working bottom-up so nested empties collapse.
func RemoveEmptySectionWalker(root ast.Node) {
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for _, c := range n.Children() {
			if c.Kind() == ast.KindSection {
				walk(c)
			}
		}
		for _, c := range n.Children() {
			if c.Kind() != ast.KindSection {
				continue
			}
			if nonBlankChildren(c) == 0 {
				n.RemoveChild(c)
			}
		}
	}
	walk(root)
}

func nonBlankChildren(n ast.Node) int {
	count := 0
	for _, c := range n.Children() {
		if c.Kind() != ast.KindBlank && c.Kind() != ast.KindComment {
			count++
		}
	}
	return count
}
