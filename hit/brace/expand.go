package brace

import (
	"fmt"
	"os"
	"strings"
)

// Evaler is a named callable consumed by the brace expander. args are
// already expanded (nested brace groups resolved) by the time Eval is
// called.
type Evaler interface {
	Eval(args []string) (string, error)
}

// EvalerFunc adapts a plain function to the Evaler interface.
type EvalerFunc func(args []string) (string, error)

func (f EvalerFunc) Eval(args []string) (string, error) { return f(args) }

// EnvEvaler resolves an environment variable. Missing variables
// resolve to the empty string.
type EnvEvaler struct{}

func (EnvEvaler) Eval(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("env: expected one argument")
	}
	return os.Getenv(args[0]), nil
}

// RawEvaler concatenates its arguments verbatim.
type RawEvaler struct{}

func (RawEvaler) Eval(args []string) (string, error) {
	return strings.Join(args, ""), nil
}

// Expander expands "${cmd arg...}" forms in field values against a
// registry of named evaluators. The registry is configured once
// (evaluators registered) and is then only read; Used records the
// name of every evaluator called, in call order. It follows the
// single-threaded, synchronous execution model of the rest of the
// core.
type Expander struct {
	evalers map[string]Evaler
	Used    []string
}

// NewExpander returns an Expander with no evaluators registered.
func NewExpander() *Expander {
	return &Expander{evalers: make(map[string]Evaler)}
}

// Register adds a named evaluator. A later call with the same name
// replaces the previous registration.
func (e *Expander) Register(name string, ev Evaler) {
	e.evalers[name] = ev
}

// ExpandString repeatedly finds the next "${", parses a brace node,
// and either splices in the evaluator's result (when the node has two
// or more child words) or leaves the node untouched (when it has
// fewer than two children, the intra-input substitution special case
// left for a document-aware replace pass). It does not recurse into
// its own output, matching the single left-to-right scan of the
// reference implementation.
func (e *Expander) ExpandString(input string) (string, error) {
	result := input
	start := 0
	for {
		idx := strings.Index(result[start:], "${")
		if idx < 0 {
			break
		}
		braceStart := start + idx

		_, root, err := ParseNode(result, braceStart)
		if err != nil {
			return result, err
		}

		if len(root.Children) < 2 {
			start = braceStart + root.Len
			continue
		}

		replacement, err := e.expandNode(root)
		if err != nil {
			return result, err
		}

		result = result[:root.Offset] + replacement + result[root.Offset+root.Len:]
		start = root.Offset + len(replacement)
	}
	return result, nil
}

func (e *Expander) expandNode(n Node) (string, error) {
	if len(n.Children) == 0 {
		return n.Value, nil
	}

	expanded := make([]string, len(n.Children))
	for i, child := range n.Children {
		s, err := e.expandNode(child)
		if err != nil {
			return "", err
		}
		expanded[i] = s
	}

	cmd := expanded[0]
	ev, ok := e.evalers[cmd]
	if !ok {
		return "", fmt.Errorf("no valid evaler '%s'", cmd)
	}
	e.Used = append(e.Used, cmd)
	return ev.Eval(expanded[1:])
}
