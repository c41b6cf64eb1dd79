package render

import (
	"testing"

	"github.com/hitlang/hit/hit/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseStyle(t *testing.T, src string) ast.Node {
	t.Helper()
	tree, err := ast.Parse("style.hit", src)
	require.NoError(t, err)
	return tree.Node(tree.Root())
}

func TestNewFormatterDefaults(t *testing.T) {
	f, err := NewFormatter(parseStyle(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "  ", f.IndentString)
	assert.Equal(t, 100, f.LineLength)
	assert.True(t, f.CanonicalSectionMarkers)
}

func TestNewFormatterReadsStyle(t *testing.T) {
	style := parseStyle(t, "[format]\n  indent_string = '    '\n  line_length = 80\n  canonical_section_markers = true\n[]\n")
	f, err := NewFormatter(style)
	require.NoError(t, err)
	assert.Equal(t, "    ", f.IndentString)
	assert.Equal(t, 80, f.LineLength)
	assert.True(t, f.CanonicalSectionMarkers)
}

func TestFormatterSortsFrontAndBackGroups(t *testing.T) {
	style := parseStyle(t, `[format]
  [sorting]
    [remote]
      section = 'remote'
      order = 'type ** port'
    []
  []
[]
`)
	f, err := NewFormatter(style)
	require.NoError(t, err)

	doc := parseStyle(t, "[remote]\n  host = mx\n  port = 25\n  type = smtp\n[]\n")
	remote := ast.Find(doc, "remote")
	f.Walk(doc)

	names := []string{}
	for _, c := range remote.ChildrenOf(ast.KindField) {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"type", "host", "port"}, names)
}

func TestFormatterSortPullsOnlyAdjacentComment(t *testing.T) {
	style := parseStyle(t, `[format]
  [sorting]
    [remote]
      section = 'remote'
      order = 'foo'
    []
  []
[]
`)
	f, err := NewFormatter(style)
	require.NoError(t, err)

	doc := parseStyle(t, "[remote]\n  a = 1\n  # c1\n  # c2\n  foo = 2\n[]\n")
	remote := ast.Find(doc, "remote")
	f.Walk(doc)

	// Only the comment directly above foo travels with it; c1 is left
	// behind in the unmatched group, in its original relative order.
	var got []string
	for _, c := range remote.Children() {
		switch c.Kind() {
		case ast.KindField:
			got = append(got, c.Name())
		case ast.KindComment:
			got = append(got, c.Text())
		}
	}
	assert.Equal(t, []string{"# c2", "foo", "a", "# c1"}, got)
}

func TestFormatterCanonicalizesSectionMarkers(t *testing.T) {
	f := &Formatter{IndentString: "  ", LineLength: 120, CanonicalSectionMarkers: true}
	doc := parseStyle(t, "[./remote]\n  host = mx\n[../]\n")
	remote := ast.Find(doc, "remote")
	f.Walk(doc)

	assert.Equal(t, "", remote.OpenMarker())
	assert.Equal(t, "", remote.CloseMarker())
}
