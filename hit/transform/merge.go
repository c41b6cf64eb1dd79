package transform

import "github.com/hitlang/hit/hit/ast"

// Merge splices from (already exploded, see Explode) into into, in
// two passes:
//
//  1. Field pass: every field in from is looked up by fullpath in
//     into. If found and it is a field, its raw value and kind are
//     overwritten in place. If absent but its parent section exists in
//     into, the field is cloned under that parent. Otherwise it is left
//     for the section pass.
//  2. Section pass: every section in from whose fullpath is absent in
//     into, but whose parent is present, is cloned wholesale under that
//     parent.
//
// Both passes walk from in document order so relative ordering is
// preserved as each clone lands.
//
// Merge returns every node in into it touched: fields overwritten in
// place plus the tops of cloned-in fields and sections.
func Merge(from, into ast.Node) []ast.Node {
	var touched []ast.Node
	var fields []ast.Node
	var sections []ast.Node
	var collect func(ast.Node)
	collect = func(n ast.Node) {
		for _, c := range n.Children() {
			switch c.Kind() {
			case ast.KindField:
				fields = append(fields, c)
			case ast.KindSection:
				sections = append(sections, c)
				collect(c)
			}
		}
	}
	collect(from)

	for _, f := range fields {
		fullpath := f.FullPath()
		target := findFullpath(into, fullpath)
		if target.H != ast.NoHandle && target.Kind() == ast.KindField {
			target.SetValue(f.RawValue())
			target.SetValueKind(f.ValueKind())
			touched = append(touched, target)
			continue
		}
		parentPath := parentOf(fullpath)
		parent := findFullpath(into, parentPath)
		if parentPath == "" {
			parent = into
		}
		if parent.H != ast.NoHandle || parentPath == "" {
			clone := CloneInto(parent.Tree, f, false)
			parent.AddChild(clone)
			touched = append(touched, clone)
		}
	}

	for _, s := range sections {
		fullpath := s.FullPath()
		if existing := findFullpath(into, fullpath); existing.H != ast.NoHandle {
			continue
		}
		parentPath := parentOf(fullpath)
		parent := into
		if parentPath != "" {
			parent = findFullpath(into, parentPath)
		}
		if parent.H != ast.NoHandle {
			clone := CloneInto(parent.Tree, s, false)
			parent.AddChild(clone)
			touched = append(touched, clone)
		}
	}
	return touched
}

func parentOf(fullpath string) string {
	for i := len(fullpath) - 1; i >= 0; i-- {
		if fullpath[i] == '/' {
			return fullpath[:i]
		}
	}
	return ""
}

// findFullpath resolves an absolute fullpath (relative to root's own
// root, not to root itself) by walking it segment by segment from
// root. root is expected to be the tree's root node.
func findFullpath(root ast.Node, fullpath string) ast.Node {
	if fullpath == "" {
		return root
	}
	return ast.Find(root, fullpath)
}
