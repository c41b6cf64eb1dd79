package ast

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hitlang/hit/hit/brace"
	"github.com/hitlang/hit/hit/hiterr"
)

const maxExpandIterations = 64

// replaceEvaler implements the "replace" brace evaluator: it looks up
// a field at the given path (relative to the document root) and
// returns its current value with quoting stripped. Registered as a normal evaluator so
// the explicit call form "${replace some/path}" (>=2 words) goes
// through the same generic evaluator dispatch as "env"/"raw".
type replaceEvaler struct {
	root Node
}

func (r replaceEvaler) Eval(args []string) (string, error) {
	if len(args) == 0 {
		return "", hiterr.New(hiterr.KindBrace, r.root.Pos(), "replace: expected a path argument")
	}
	target := Find(r.root, args[0])
	if target.H == NoHandle || target.Kind() != KindField {
		return "", hiterr.New(hiterr.KindBrace, r.root.Pos(), "replace: no field at path '%s'", args[0])
	}
	return Unquote(target.RawValue()), nil
}

// ExpandDocument brace-expands every Field's raw value in-place: the
// generic "${cmd arg...}" forms (env/raw/replace, and any caller
// registered via extra) go through brace.Expander, and the shorthand
// bare-word "${path}" substitution (the intra-input special case the
// generic expander skips) is then resolved against the document tree
// via Find. Both passes iterate to a fixpoint (a replacement can
// itself contain another "${...}"), bounded by maxExpandIterations to
// guard against cyclic brace references.
// ExpandDocument does not abort on the first failing site: a brace
// expression that errors (unknown evaluator, missing '}') leaves its
// field with the value it had before the failing pass, unexpanded
// "${...}" text included, and expansion continues
// with the remaining fields. All errors encountered across the walk
// are collected and returned together as a single multierror.Error so
// a caller can report every bad site in one pass instead of fixing
// them one at a time.
func ExpandDocument(root Node, extra map[string]brace.Evaler) error {
	exp := brace.NewExpander()
	exp.Register("env", brace.EnvEvaler{})
	exp.Register("raw", brace.RawEvaler{})
	exp.Register("replace", replaceEvaler{root: root})
	for name, ev := range extra {
		exp.Register(name, ev)
	}

	var fields []Node
	var collect func(Node)
	collect = func(n Node) {
		for _, c := range n.Children() {
			if c.Kind() == KindField {
				fields = append(fields, c)
			}
			if c.Kind() == KindSection {
				collect(c)
			}
		}
	}
	collect(root)

	var errs *multierror.Error
	for _, f := range fields {
		val := f.RawValue()
		for i := 0; i < maxExpandIterations; i++ {
			next, err := exp.ExpandString(val)
			if err != nil {
				errs = multierror.Append(errs, hiterr.Wrap(hiterr.KindBrace, f.Pos(), err, "%s", err.Error()))
				break
			}
			next, _, err = expandShorthand(root, next)
			if err != nil {
				errs = multierror.Append(errs, hiterr.Wrap(hiterr.KindBrace, f.Pos(), err, "%s", err.Error()))
				break
			}
			if next == val {
				break
			}
			val = next
		}
		f.SetValue(val)
	}
	return errs.ErrorOrNil()
}

// expandShorthand resolves every bare-word "${path}" (a brace node
// with fewer than two children) by looking path up with Find and
// splicing in the target field's quote-stripped value. Returns the new string
// and whether anything changed.
func expandShorthand(root Node, input string) (string, bool, error) {
	result := input
	start := 0
	changed := false
	for {
		idx := strings.Index(result[start:], "${")
		if idx < 0 {
			break
		}
		braceStart := start + idx
		next, node, err := brace.ParseNode(result, braceStart)
		if err != nil {
			return result, changed, err
		}
		if len(node.Children) >= 2 {
			// Handled by the generic evaluator pass; skip over it here.
			start = next
			continue
		}

		path := node.Value
		if path == "" && len(node.Children) == 1 {
			path = node.Children[0].Value
		}

		target := Find(root, path)
		if target.H == NoHandle || target.Kind() != KindField {
			start = next
			continue
		}

		replacement := Unquote(target.RawValue())
		result = result[:node.Offset] + replacement + result[node.Offset+node.Len:]
		start = node.Offset + len(replacement)
		changed = true
	}
	return result, changed, nil
}
