package render

import (
	"testing"

	"github.com/hitlang/hit/hit/ast"
	"github.com/hitlang/hit/hit/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValueBareNumber(t *testing.T) {
	assert.Equal(t, "25", formatValue("25", ast.ValueInt, 7, "  ", 0, 80))
}

func TestFormatValueEmptyString(t *testing.T) {
	assert.Equal(t, "''", formatValue("", ast.ValueString, 7, "  ", 0, 80))
}

func TestFormatValueWhitespaceSingleQuoted(t *testing.T) {
	assert.Equal(t, "'hello world'", formatValue("hello world", ast.ValueString, 7, "  ", 0, 80))
}

func TestFormatValueNoWhitespaceBare(t *testing.T) {
	assert.Equal(t, "example.com", formatValue("example.com", ast.ValueString, 7, "  ", 0, 80))
}

func TestFormatValueReflowsLongValue(t *testing.T) {
	raw := "this value has enough words in it to overflow a very short line length"
	out := formatValue(raw, ast.ValueString, 10, "  ", 1, 30)
	assert.Contains(t, out, "\n")
	for _, line := range splitLines(out) {
		assert.LessOrEqual(t, len(line), 30)
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func TestRenderRoundTripsSimpleDocument(t *testing.T) {
	src := "host = example.com\nport = 25\n"
	tree, err := ast.Parse("test.hit", src)
	require.NoError(t, err)

	out := Render(tree.Node(tree.Root()), "  ", 80)
	reparsed, err := ast.Parse("test.hit", out)
	require.NoError(t, err)

	fields := reparsed.Node(reparsed.Root()).ChildrenOf(ast.KindField)
	require.Len(t, fields, 2)
	assert.Equal(t, "example.com", fields[0].RawValue())
	assert.Equal(t, "25", fields[1].RawValue())
}

func TestRenderBasicField(t *testing.T) {
	tree, err := ast.Parse("test.hit", "[hello] foo=42 []")
	require.NoError(t, err)

	out := Render(tree.Node(tree.Root()), "  ", 0)
	assert.Equal(t, "[hello]\n  foo = 42\n[]", out)
}

func TestRenderRoundTripsQuotesAndComments(t *testing.T) {
	src := "[hello]\n  foo = '42'\n\n  # comment\n  bar = 'baz'\n[]"
	tree, err := ast.Parse("test.hit", src)
	require.NoError(t, err)

	out := Render(tree.Node(tree.Root()), "  ", 0)
	assert.Equal(t, src, out)
}

func TestRenderMergedShorthand(t *testing.T) {
	left, err := ast.Parse("left.hit", "[foo]bar=42[]")
	require.NoError(t, err)
	right, err := ast.Parse("right.hit", "foo/baz/boo=42")
	require.NoError(t, err)

	leftRoot := left.Node(left.Root())
	rightRoot := right.Node(right.Root())
	transform.Explode(leftRoot)
	transform.Explode(rightRoot)
	transform.Merge(rightRoot, leftRoot)

	out := Render(leftRoot, "  ", 0)
	assert.Equal(t, "[foo]\n  bar = 42\n  [baz]\n    boo = 42\n  []\n[]", out)
}

func TestRenderEmptyDocument(t *testing.T) {
	tree, err := ast.Parse("test.hit", "")
	require.NoError(t, err)
	assert.Equal(t, "", Render(tree.Node(tree.Root()), "  ", 0))
}

func TestRenderSectionRoundTrip(t *testing.T) {
	src := "[remote]\n  host = mx.example.com\n[]\n"
	tree, err := ast.Parse("test.hit", src)
	require.NoError(t, err)

	out := Render(tree.Node(tree.Root()), "  ", 80)
	reparsed, err := ast.Parse("test.hit", out)
	require.NoError(t, err)

	secs := reparsed.Node(reparsed.Root()).ChildrenOf(ast.KindSection)
	require.Len(t, secs, 1)
	assert.Equal(t, "remote", secs[0].Path())
}
