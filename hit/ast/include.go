package ast

import (
	"path/filepath"
	"strings"

	"github.com/hitlang/hit/hit/hiterr"
	"github.com/spf13/afero"
)

// includePrefix starts a "!include <path>" line. It is recognized
// as a pre-parse pass over raw text (rather than a lexer token) so
// included content can be spliced in before tokenization, with every
// resulting token tagged with the included file's own name/line/column.
const includePrefix = "!include"

// Resolve reads file from fs, splicing in any "!include <path>"
// directives (recursively, relative to the including file), detecting
// include cycles, and returns the fully-spliced source text ready for
// Parse. Included lines are spliced in verbatim with no position
// bookkeeping, so parsing the result reports lines of the spliced
// buffer under a single file name -- callers needing precise
// cross-file positions should prefer ResolveTree, which re-parses each file
// independently and stitches the resulting trees together so
// file/line/column metadata stays accurate to the original file it
// came from.
func Resolve(fs afero.Fs, file string) (string, error) {
	var buf strings.Builder
	if err := resolveInto(fs, file, nil, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func resolveInto(fs afero.Fs, file string, stack []string, buf *strings.Builder) error {
	for _, open := range stack {
		if open == file {
			return hiterr.New(hiterr.KindInclude, hiterr.Pos{File: file},
				"file include would create circular reference '%s'", file)
		}
	}
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return hiterr.Wrap(hiterr.KindInclude, hiterr.Pos{File: file}, err, "could not find '%s'", file)
	}
	stack = append(stack, file)
	dir := filepath.Dir(file)

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, includePrefix) {
			rest := strings.TrimSpace(trimmed[len(includePrefix):])
			if rest == "" {
				return hiterr.New(hiterr.KindInclude, hiterr.Pos{File: file, Line: i + 1}, "missing path after '!include'")
			}
			incPath := rest
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(dir, incPath)
			}
			if err := resolveInto(fs, incPath, stack, buf); err != nil {
				return err
			}
			continue
		}
		buf.WriteString(line)
		if i != len(lines)-1 {
			buf.WriteByte('\n')
		}
	}
	return nil
}

// ResolveTree parses file (and everything it transitively includes)
// into one Tree, preserving each node's originating file/line/column
// and applying override-marker conflict resolution (§4.4) between
// the including document and each included one.
func ResolveTree(fs afero.Fs, file string) (*Tree, error) {
	return resolveTree(fs, file, nil)
}

func resolveTree(fs afero.Fs, file string, stack []string) (*Tree, error) {
	for _, open := range stack {
		if open == file {
			return nil, hiterr.New(hiterr.KindInclude, hiterr.Pos{File: file},
				"file include would create circular reference '%s'", file)
		}
	}
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return nil, hiterr.Wrap(hiterr.KindInclude, hiterr.Pos{File: file}, err, "could not find '%s'", file)
	}
	stack = append(stack, file)
	dir := filepath.Dir(file)

	// !include lines are not part of the grammar Parse understands
	// (see Parse's doc comment), so blank them out before parsing
	// this file's own content; blanking rather than removing keeps
	// every other line's number unchanged for file/line/column
	// bookkeeping.
	lines := strings.Split(string(data), "\n")
	ownLines := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), includePrefix) {
			ownLines[i] = ""
			continue
		}
		ownLines[i] = line
	}
	base, err := Parse(file, strings.Join(ownLines, "\n"))
	if err != nil {
		return nil, err
	}

	// Splice in each "!include" section's own subtree at the
	// directive site by walking comments is not how includes are
	// represented post-parse (they are raw-text lines, not nodes), so
	// instead we re-scan the source text for directive lines and
	// build each included subtree, then merge it into base at the
	// root, letting MergeBlocks coalesce same-path siblings and the
	// override-marker policy below settle conflicts.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, includePrefix) {
			continue
		}
		rest := strings.TrimSpace(trimmed[len(includePrefix):])
		incPath := rest
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(dir, incPath)
		}
		incTree, err := resolveTree(fs, incPath, stack)
		if err != nil {
			return nil, err
		}
		if err := spliceInclude(base, incTree); err != nil {
			return nil, err
		}
	}

	return base, nil
}

// spliceInclude appends inc's root-level children onto base's root,
// then resolves any fullpath collisions per the override policy: a
// field present (by fullpath) in both base (the including/declaring
// side) and inc (the included side) is settled by whichever side
// carries an override marker; if both do, it's an error.
func spliceInclude(base, inc *Tree) error {
	baseRoot := base.Node(base.Root())
	incRoot := inc.Node(inc.Root())

	for _, child := range incRoot.Children() {
		grafted := graftInto(base, child)
		baseRoot.AddChild(base.Node(grafted))
	}

	return resolveOverrideConflicts(baseRoot)
}

// resolveOverrideConflicts walks the fully-spliced tree, and for any
// fullpath appearing on more than one Field, applies the §4.4 policy:
// no markers -> keep both; exactly one marked -> keep the marked one,
// discard the other; both marked -> error.
func resolveOverrideConflicts(root Node) error {
	byPath := map[string][]Node{}
	var walk func(Node)
	walk = func(n Node) {
		for _, c := range n.Children() {
			if c.Kind() == KindField {
				byPath[c.FullPath()] = append(byPath[c.FullPath()], c)
			} else if c.Kind() == KindSection {
				walk(c)
			}
		}
	}
	walk(root)

	for path, nodes := range byPath {
		if len(nodes) < 2 {
			continue
		}
		var marked []Node
		for _, n := range nodes {
			if n.OverrideKind() != OverrideNone {
				marked = append(marked, n)
			}
		}
		switch len(marked) {
		case 0:
			// both retained
		case 1:
			for _, n := range nodes {
				if n.H != marked[0].H {
					n.Parent().RemoveChild(n)
				}
			}
		default:
			return hiterr.New(hiterr.KindOverrideConflict, marked[1].Pos(),
				"'%s' specified more than once with override syntax", path)
		}
	}
	return nil
}

// graftInto deep-copies src (from a different Tree) into dst's arena
// and returns the handle of the copy, preserving file/line/column and
// all variant-specific fields.
func graftInto(dst *Tree, src Node) Handle {
	r := *src.rec()
	r.children = nil
	r.parent = NoHandle
	h := dst.newNode(r)
	for _, c := range src.Children() {
		child := graftInto(dst, c)
		dst.AddChild(h, child)
	}
	return h
}
