package ast

import "strings"

// Find resolves a "/"-separated path relative to n, matching the
// reference implementation's level-by-level, union-of-candidates
// search: at each path segment, every node in the *current* candidate
// set contributes any matching children to the *next* candidate set
// (not just the first match), and the final answer is the first node
// in the last candidate set. A bare leading "/" or "." prefix is not
// special-cased here; callers pass the path already relative to n.
func Find(n Node, path string) Node {
	segments := strings.Split(path, "/")
	candidates := []Node{n}

	for _, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		var next []Node
		for _, c := range candidates {
			for _, child := range c.Children() {
				if childName(child) == seg {
					next = append(next, child)
				}
			}
		}
		candidates = next
		if len(candidates) == 0 {
			return Node{Tree: n.Tree, H: NoHandle}
		}
	}

	if len(candidates) == 0 || candidates[0].H == n.H {
		return Node{Tree: n.Tree, H: NoHandle}
	}
	return candidates[0]
}

func childName(n Node) string {
	switch n.Kind() {
	case KindSection:
		return n.rec().path
	case KindField:
		return n.rec().name
	default:
		return ""
	}
}
