// Package ast implements the HIT document tree: the node model
// (Root/Section/Field/Comment/Blank), the recursive-descent parser
// that builds it from a lexer token stream, the include resolver, and
// the block merger.
//
// Following the arena/handle design noted for the reference
// implementation, a Tree owns all of its nodes in a single slice and
// parent/child relationships are expressed as integer handles rather
// than pointers. This keeps remove() a cheap unlink-from-parent
// operation and avoids lifetime entanglement between subtrees.
package ast

// Handle is an index into a Tree's node arena. The zero Handle is
// never a valid node (NoHandle); the tree's root lives at handle 1.
type Handle int

const NoHandle Handle = 0

type record struct {
	kind Kind
	dead bool

	parent   Handle
	children []Handle

	file   string
	line   int
	column int

	// Section fields.
	path        string
	openMarker  string
	closeMarker string

	// Field fields.
	name         string
	rawValue     string
	valueKind    ValueKind
	overrideKind OverrideKind

	// Comment fields.
	text     string
	isInline bool

	// Set when a clone was taken with absolute_path=true; fixes the
	// path a node reports for rendering/fullpath purposes.
	overridePath string
}

// Tree owns a forest of HIT nodes rooted at a single Root node.
type Tree struct {
	arena []record
}

// NewTree returns an empty Tree: just a Root node with no children.
func NewTree() *Tree {
	t := &Tree{arena: make([]record, 1, 64)} // index 0 unused (NoHandle)
	t.arena = append(t.arena, record{kind: KindRoot, parent: NoHandle})
	return t
}

// Root returns the handle of the tree's root node.
func (t *Tree) Root() Handle { return Handle(1) }

func (t *Tree) get(h Handle) *record {
	return &t.arena[h]
}

// newNode allocates a fresh record and returns its handle.
func (t *Tree) newNode(r record) Handle {
	t.arena = append(t.arena, r)
	return Handle(len(t.arena) - 1)
}

// AddChild appends child as the last child of parent.
func (t *Tree) AddChild(parent, child Handle) {
	t.get(child).parent = parent
	p := t.get(parent)
	p.children = append(p.children, child)
}

// InsertChild inserts child before index in parent's child list.
func (t *Tree) InsertChild(parent Handle, index int, child Handle) {
	t.get(child).parent = parent
	p := t.get(parent)
	p.children = append(p.children, NoHandle)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
}

// Children returns the live children of h, in document order.
func (t *Tree) Children(h Handle) []Handle {
	out := make([]Handle, 0, len(t.get(h).children))
	for _, c := range t.get(h).children {
		if !t.get(c).dead {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenOf returns h's children whose Kind is k.
func (t *Tree) ChildrenOf(h Handle, k Kind) []Handle {
	var out []Handle
	for _, c := range t.Children(h) {
		if t.get(c).kind == k {
			out = append(out, c)
		}
	}
	return out
}

// Parent returns h's parent, or NoHandle if h is the root.
func (t *Tree) Parent(h Handle) Handle {
	return t.get(h).parent
}

// RemoveChild detaches child from parent's child list (and thus from
// the tree). The child's own record is left in the arena (marked
// dead) so existing handles to it or its descendants don't alias a
// reused slot; its subtree is recursively marked dead as well.
func (t *Tree) RemoveChild(parent, child Handle) {
	p := t.get(parent)
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	t.markDead(child)
}

func (t *Tree) markDead(h Handle) {
	r := t.get(h)
	r.dead = true
	for _, c := range r.children {
		t.markDead(c)
	}
}

// DetachChildren clears h's child list (without marking the detached
// nodes dead) and returns the handles that were removed, so a caller
// can immediately re-add them in a new order via AddChild.
func (t *Tree) DetachChildren(h Handle) []Handle {
	r := t.get(h)
	out := r.children
	r.children = nil
	return out
}

// DetachChild unlinks child from parent's child list without marking
// child (or its subtree) dead, for callers that are about to
// re-attach it elsewhere via AddChild/InsertChild -- unlike
// RemoveChild, which is for permanent deletion.
func (t *Tree) DetachChild(parent, child Handle) {
	p := t.get(parent)
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// Kind returns the tagged-sum kind of h.
func (t *Tree) Kind(h Handle) Kind { return t.get(h).kind }

// NewSection allocates a detached (no parent yet) Section node.
// Callers attach it with AddChild/InsertChild.
func (t *Tree) NewSection(path, file string, line, column int) Handle {
	return t.newNode(record{kind: KindSection, path: path, file: file, line: line, column: column})
}

// NewField allocates a detached Field node.
func (t *Tree) NewField(name, rawValue string, vk ValueKind, file string, line, column int) Handle {
	return t.newNode(record{kind: KindField, name: name, rawValue: rawValue, valueKind: vk, file: file, line: line, column: column})
}

// NewComment allocates a detached Comment node.
func (t *Tree) NewComment(text string, inline bool, file string, line, column int) Handle {
	return t.newNode(record{kind: KindComment, text: text, isInline: inline, file: file, line: line, column: column})
}

// NewBlank allocates a detached Blank node.
func (t *Tree) NewBlank(file string, line, column int) Handle {
	return t.newNode(record{kind: KindBlank, file: file, line: line, column: column})
}

// CloneNode deep-copies src (which may belong to a different Tree)
// into t's arena, returning the detached copy's handle. When
// absolutePath is true the copy is stamped with src's FullPath as its
// OverridePath, detaching it from whatever section nesting it is
// placed under next.
func (t *Tree) CloneNode(src Node, absolutePath bool) Handle {
	r := *src.rec()
	r.children = nil
	r.parent = NoHandle
	if absolutePath {
		r.overridePath = src.FullPath()
	}
	h := t.newNode(r)
	for _, c := range src.Children() {
		child := t.CloneNode(c, false)
		t.AddChild(h, child)
	}
	return h
}
