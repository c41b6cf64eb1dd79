// Package render implements the HIT pretty-printer: the recursive
// node-to-text renderer (with its value-formatting and string-reflow
// rules) and the style-driven Formatter built on top of it.
package render

import (
	"strings"

	"github.com/hitlang/hit/hit/ast"
)

// Render walks root's children and concatenates their rendered text,
// stripping the leading newline of the very first emitted child so
// the document doesn't begin with a blank line.
func Render(root ast.Node, indentText string, maxlen int) string {
	var b strings.Builder
	first := true
	for _, c := range root.Children() {
		s := renderNode(c, 0, indentText, maxlen)
		if first && strings.HasPrefix(s, "\n") {
			s = s[1:]
		}
		first = false
		b.WriteString(s)
	}
	return b.String()
}

func renderNode(n ast.Node, depth int, indentText string, maxlen int) string {
	indent := strings.Repeat(indentText, depth)
	switch n.Kind() {
	case ast.KindSection:
		return renderSection(n, depth, indent, indentText, maxlen)
	case ast.KindField:
		return renderField(n, depth, indent, indentText, maxlen)
	case ast.KindComment:
		if n.IsInline() {
			return " " + n.Text()
		}
		return "\n" + indent + n.Text()
	case ast.KindBlank:
		return "\n"
	default:
		return ""
	}
}

func renderSection(n ast.Node, depth int, indent, indentText string, maxlen int) string {
	var b strings.Builder
	path := n.Path()
	showHeader := path != "" && path != "-"
	if showHeader {
		b.WriteString("\n" + indent + "[" + n.OpenMarker() + path + "]")
	}
	for _, c := range n.Children() {
		b.WriteString(renderNode(c, depth+1, indentText, maxlen))
	}
	if showHeader {
		closer := n.CloseMarker()
		b.WriteString("\n" + indent + "[" + closer + "]")
	}
	return b.String()
}

func renderField(n ast.Node, depth int, indent, indentText string, maxlen int) string {
	var b strings.Builder
	name := n.Name()
	if n.OverridePath() != "" {
		name = n.OverridePath()
	}
	prefix := indent + name + " = "
	b.WriteString("\n" + prefix + formatValue(n.RawValue(), n.ValueKind(), len(prefix), indentText, depth, maxlen))
	for _, c := range n.Children() {
		b.WriteString(renderNode(c, depth+1, indentText, maxlen))
	}
	return b.String()
}
