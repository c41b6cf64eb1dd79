package ast

import (
	"strconv"
	"strings"

	"github.com/hitlang/hit/hit/hiterr"
)

// Node is an ergonomic facade over a (Tree, Handle) pair: the public
// API callers use to inspect and mutate a document instead of poking
// at Tree/Handle directly.
type Node struct {
	Tree *Tree
	H    Handle
}

func (t *Tree) Node(h Handle) Node { return Node{Tree: t, H: h} }

func (n Node) rec() *record { return n.Tree.get(n.H) }

// Kind reports which tagged-sum variant n is.
func (n Node) Kind() Kind { return n.rec().kind }

// Pos returns n's source location.
func (n Node) Pos() hiterr.Pos {
	r := n.rec()
	return hiterr.Pos{File: r.file, Line: r.line, Column: r.column}
}

func (n Node) File() string { return n.rec().file }
func (n Node) Line() int    { return n.rec().line }
func (n Node) Column() int  { return n.rec().column }

// Parent returns n's parent node. Calling Parent on the root returns
// the zero Node (H == NoHandle).
func (n Node) Parent() Node { return Node{Tree: n.Tree, H: n.Tree.Parent(n.H)} }

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool { return n.rec().parent == NoHandle }

// Root walks up to the tree's root node.
func (n Node) Root() Node {
	cur := n
	for !cur.IsRoot() {
		cur = cur.Parent()
	}
	return cur
}

// Children returns n's live children as Nodes, in document order.
func (n Node) Children() []Node {
	hs := n.Tree.Children(n.H)
	out := make([]Node, len(hs))
	for i, h := range hs {
		out[i] = Node{Tree: n.Tree, H: h}
	}
	return out
}

// ChildrenOf returns n's children of a specific Kind.
func (n Node) ChildrenOf(k Kind) []Node {
	hs := n.Tree.ChildrenOf(n.H, k)
	out := make([]Node, len(hs))
	for i, h := range hs {
		out[i] = Node{Tree: n.Tree, H: h}
	}
	return out
}

// RemoveChild detaches child from n and permanently kills its subtree.
func (n Node) RemoveChild(child Node) { n.Tree.RemoveChild(n.H, child.H) }

// DetachChild unlinks child from n without killing it, for callers
// that immediately re-attach it elsewhere.
func (n Node) DetachChild(child Node) { n.Tree.DetachChild(n.H, child.H) }

// AddChild appends child as n's last child.
func (n Node) AddChild(child Node) { n.Tree.AddChild(n.H, child.H) }

// --- Section-specific accessors ---

// Path returns a Section's own path component (e.g. "remote" for a
// node declared as "[remote]"; "a/b" for "[a/b]" before explosion).
func (n Node) Path() string {
	if n.rec().overridePath != "" {
		return n.rec().overridePath
	}
	return n.rec().path
}

// SetPath overwrites a Section's own path component.
func (n Node) SetPath(path string) { n.rec().path = path }

// OverridePath reports the absolute path stamped onto n by a prior
// Clone(absolutePath=true) call, or "" if none.
func (n Node) OverridePath() string { return n.rec().overridePath }

// SetOverridePath stamps n with an absolute full path, used by Clone
// to detach a cloned subtree from its original nesting.
func (n Node) SetOverridePath(path string) { n.rec().overridePath = path }

// FullPath returns the "/"-joined path from the root to n, following
// overridePath stamps where present.
func (n Node) FullPath() string {
	if n.rec().overridePath != "" {
		return n.rec().overridePath
	}
	var parts []string
	for cur := n; !cur.IsRoot(); cur = cur.Parent() {
		if cur.rec().overridePath != "" {
			parts = append([]string{cur.rec().overridePath}, parts...)
			break
		}
		switch cur.Kind() {
		case KindSection:
			parts = append([]string{cur.rec().path}, parts...)
		case KindField:
			parts = append([]string{cur.rec().name}, parts...)
		}
	}
	return strings.Join(parts, "/")
}

func (n Node) OpenMarker() string      { return n.rec().openMarker }
func (n Node) CloseMarker() string     { return n.rec().closeMarker }
func (n Node) SetOpenMarker(m string)  { n.rec().openMarker = m }
func (n Node) SetCloseMarker(m string) { n.rec().closeMarker = m }

// --- Field-specific accessors ---

func (n Node) Name() string { return n.rec().name }
func (n Node) SetName(name string) { n.rec().name = name }

// RawValue returns a Field's untransformed textual value, surrounding
// quotes included (brace expansion mutates it in place via
// ExpandDocument). Use StrVal for the quote-stripped value.
func (n Node) RawValue() string { return n.rec().rawValue }

// Unquote strips the quoting from a raw field value: a run of
// same-quoted literals (separated only by whitespace) concatenates
// into one string with "\<quote>" escapes resolved, and an unquoted
// value passes through untouched.
func Unquote(raw string) string {
	if len(raw) == 0 || (raw[0] != '\'' && raw[0] != '"') {
		return raw
	}
	var out []byte
	i := 0
	for i < len(raw) {
		quote := raw[i]
		if quote != '\'' && quote != '"' {
			// separator whitespace between concatenated literals
			i++
			continue
		}
		i++
		for i < len(raw) {
			if raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == quote {
				out = append(out, quote)
				i += 2
				continue
			}
			if raw[i] == quote {
				i++
				break
			}
			out = append(out, raw[i])
			i++
		}
	}
	return string(out)
}

func (n Node) SetValue(v string) { n.rec().rawValue = v }

func (n Node) ValueKind() ValueKind { return n.rec().valueKind }
func (n Node) SetValueKind(k ValueKind) { n.rec().valueKind = k }

// BoolVal parses a Field's value as a boolean
// ("true"/"false"/"yes"/"no"/"on"/"off", case-insensitive).
func (n Node) BoolVal() (bool, error) {
	v := strings.ToLower(strings.TrimSpace(Unquote(n.rec().rawValue)))
	switch v {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, hiterr.New(hiterr.KindType, n.Pos(), "invalid bool value '%s'", n.rec().rawValue)
	}
}

// IntVal parses a Field's value as a signed integer.
func (n Node) IntVal() (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(Unquote(n.rec().rawValue)), 10, 64)
	if err != nil {
		return 0, hiterr.Wrap(hiterr.KindType, n.Pos(), err, "invalid int value '%s'", n.rec().rawValue)
	}
	return v, nil
}

// FloatVal parses a Field's value as a float64.
func (n Node) FloatVal() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(Unquote(n.rec().rawValue)), 64)
	if err != nil {
		return 0, hiterr.Wrap(hiterr.KindType, n.Pos(), err, "invalid float value '%s'", n.rec().rawValue)
	}
	return v, nil
}

// StrVal returns a Field's value with its quoting stripped.
func (n Node) StrVal() (string, error) { return Unquote(n.rec().rawValue), nil }

func splitVec(raw string) []string {
	fields := strings.Fields(Unquote(raw))
	return fields
}

// VecStrVal splits a Field's quote-stripped value on whitespace.
func (n Node) VecStrVal() ([]string, error) { return splitVec(n.rec().rawValue), nil }

// VecBoolVal splits and parses a Field's value as a vector of bools.
func (n Node) VecBoolVal() ([]bool, error) {
	parts := splitVec(n.rec().rawValue)
	out := make([]bool, 0, len(parts))
	for _, p := range parts {
		switch strings.ToLower(p) {
		case "true", "yes", "on":
			out = append(out, true)
		case "false", "no", "off":
			out = append(out, false)
		default:
			return nil, hiterr.New(hiterr.KindType, n.Pos(), "invalid bool element '%s'", p)
		}
	}
	return out, nil
}

// VecIntVal splits and parses a Field's value as a vector of ints.
func (n Node) VecIntVal() ([]int64, error) {
	parts := splitVec(n.rec().rawValue)
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, hiterr.Wrap(hiterr.KindType, n.Pos(), err, "invalid int element '%s'", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// VecFloatVal splits and parses a Field's value as a vector of
// float64s.
func (n Node) VecFloatVal() ([]float64, error) {
	parts := splitVec(n.rec().rawValue)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, hiterr.Wrap(hiterr.KindType, n.Pos(), err, "invalid float element '%s'", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// Param looks up a required child field by path (as Find would) and
// returns its quote-stripped value, erroring if absent.
func (n Node) Param(path string) (string, error) {
	f := Find(n, path)
	if f.H == NoHandle {
		return "", hiterr.New(hiterr.KindType, n.Pos(), "missing required parameter '%s'", path)
	}
	return Unquote(f.RawValue()), nil
}

// ParamOptional looks up a child field by path, returning def if
// absent.
func (n Node) ParamOptional(path, def string) string {
	f := Find(n, path)
	if f.H == NoHandle {
		return def
	}
	return Unquote(f.RawValue())
}

// --- Comment-specific accessors ---

func (n Node) Text() string         { return n.rec().text }
func (n Node) SetText(text string)  { n.rec().text = text }
func (n Node) IsInline() bool       { return n.rec().isInline }
func (n Node) SetIsInline(v bool)   { n.rec().isInline = v }
