// Package brace implements the brace-expression sub-language embedded
// in HIT field values: "${" ( word | brace_node )* "}". It provides
// both the structural parser (used by the lexer to skip brace
// expressions as opaque string contents) and the expander (used after
// parsing to interpret "${cmd arg...}" forms against a registry of
// named evaluators).
package brace

import (
	"fmt"
	"strings"
)

// Node is a node of the brace sub-grammar. A leaf carries Value (a
// whitespace-delimited word); an interior node represents a "${ ... }"
// group and owns its Children in document order. Offset/Len describe
// the node's extent within the outer string that was parsed (only
// meaningful for the root of a parse).
type Node struct {
	Offset   int
	Len      int
	Value    string
	Children []Node
}

// IsLeaf reports whether n is a bare word rather than a nested group.
func (n Node) IsLeaf() bool {
	return n.Value != ""
}

const spaceChars = "\n\t \r"

func skipSpace(input string, start int) int {
	for start < len(input) && strings.IndexByte(spaceChars, input[start]) >= 0 {
		start++
	}
	return start
}

func untilSpace(input string, start int) int {
	const stop = spaceChars + "}"
	for start < len(input) && strings.IndexByte(stop, input[start]) < 0 {
		start++
	}
	return start
}

// ParseNode parses a single "${ ... }" group starting at start (which
// must point at the '$' of "${"). It returns the offset just past the
// matching '}' and the parsed node (with Offset/Len populated).
func ParseNode(input string, start int) (int, Node, error) {
	var n Node
	n.Offset = start
	pos := start + 2 // eat opening "${"

	pos, err := parseBody(input, pos, &n)
	if err != nil {
		return 0, Node{}, err
	}
	pos = skipSpace(input, pos)
	if pos >= len(input) || input[pos] != '}' {
		return 0, Node{}, fmt.Errorf("missing closing '}' in brace expression")
	}
	pos++ // eat closing "}"
	n.Len = pos - n.Offset
	return pos, n, nil
}

func parseBody(input string, start int, n *Node) (int, error) {
	pos := skipSpace(input, start)
	for pos < len(input) && input[pos] != '}' {
		if strings.HasPrefix(input[pos:], "${") {
			next, child, err := ParseNode(input, pos)
			if err != nil {
				return 0, err
			}
			n.Children = append(n.Children, child)
			pos = next
		} else {
			end := untilSpace(input, pos)
			n.Children = append(n.Children, Node{Value: input[pos:end]})
			pos = end
		}
		pos = skipSpace(input, pos)
	}
	return pos, nil
}

// String renders n back to its textual brace-expression form,
// primarily useful for debugging and tests.
func (n Node) String() string {
	return n.indented(0)
}

func (n Node) indented(indent int) string {
	prefix := strings.Repeat("    ", indent)
	if n.Value != "" {
		return prefix + n.Value + "\n"
	}
	var b strings.Builder
	b.WriteString(prefix + "${\n")
	for _, c := range n.Children {
		b.WriteString(c.indented(indent + 1))
	}
	b.WriteString(prefix + "}\n")
	return b.String()
}
