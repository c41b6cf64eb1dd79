package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleDocument(t *testing.T) {
	tree, err := Parse("test.hit", "host = example.com\nport = 25\n")
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	fields := root.ChildrenOf(KindField)
	require.Len(t, fields, 2)
	assert.Equal(t, "host", fields[0].Name())
	assert.Equal(t, "example.com", fields[0].RawValue())
	assert.Equal(t, ValueString, fields[0].ValueKind())
	assert.Equal(t, "port", fields[1].Name())
	assert.Equal(t, ValueInt, fields[1].ValueKind())
}

func TestParseNestedSection(t *testing.T) {
	tree, err := Parse("test.hit", "[remote]\n  host = mx.example.com\n[]\n")
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	secs := root.ChildrenOf(KindSection)
	require.Len(t, secs, 1)
	assert.Equal(t, "remote", secs[0].Path())
	assert.Equal(t, "remote", secs[0].FullPath())

	fields := secs[0].ChildrenOf(KindField)
	require.Len(t, fields, 1)
	assert.Equal(t, "remote/host", fields[0].FullPath())
}

func TestParseLegacyCloserAndOpenMarker(t *testing.T) {
	tree, err := Parse("test.hit", "[./remote]\n  host = mx\n[../]\n")
	require.NoError(t, err)

	sec := tree.Node(tree.Root()).ChildrenOf(KindSection)[0]
	assert.Equal(t, "remote", sec.Path())
	assert.Equal(t, "./", sec.OpenMarker())
	assert.Equal(t, "../", sec.CloseMarker())
}

func TestParseOverrideMarkers(t *testing.T) {
	tree, err := Parse("test.hit", "a := 1\nb :override= 2\nc = 3\n")
	require.NoError(t, err)

	fields := tree.Node(tree.Root()).ChildrenOf(KindField)
	require.Len(t, fields, 3)
	assert.Equal(t, OverrideDeclaring, fields[0].OverrideKind())
	assert.Equal(t, OverrideIncluding, fields[1].OverrideKind())
	assert.Equal(t, OverrideNone, fields[2].OverrideKind())
}

func TestParseMissingValueErrors(t *testing.T) {
	_, err := Parse("test.hit", "a =\n")
	assert.Error(t, err)
}

func TestParseUnterminatedSectionErrors(t *testing.T) {
	_, err := Parse("test.hit", "[remote]\n  host = mx\n")
	assert.Error(t, err)
}

func TestParseExtraCloserErrors(t *testing.T) {
	_, err := Parse("test.hit", "[]\n")
	assert.Error(t, err)
}

func TestParseBlankSectionNameErrors(t *testing.T) {
	// "./" strips down to an empty path, which is distinct from the
	// bare "[]" closer token shape.
	_, err := Parse("test.hit", "[./]\n[../]\n")
	assert.Error(t, err)
}

func TestParseInlineCommentAttachment(t *testing.T) {
	tree, err := Parse("test.hit", "host = mx # primary\n")
	require.NoError(t, err)

	field := tree.Node(tree.Root()).ChildrenOf(KindField)[0]
	comments := field.ChildrenOf(KindComment)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsInline())
}

func TestParseInlineCommentOnSectionHeader(t *testing.T) {
	tree, err := Parse("test.hit", "[hello] # greeting\n  foo = 1\n[]\n")
	require.NoError(t, err)

	sec := tree.Node(tree.Root()).ChildrenOf(KindSection)[0]
	children := sec.Children()
	require.NotEmpty(t, children)
	assert.Equal(t, KindComment, children[0].Kind())
	assert.True(t, children[0].IsInline())
}

func TestParseInlineCommentAfterCloserStaysSibling(t *testing.T) {
	tree, err := Parse("test.hit", "[s]\n  a = 1\n[] # done\n")
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, KindSection, children[0].Kind())
	assert.Equal(t, KindComment, children[1].Kind())
	assert.True(t, children[1].IsInline())
}

func TestParseConcatenatedStringValue(t *testing.T) {
	tree, err := Parse("test.hit", "msg = 'foo' 'bar'\n")
	require.NoError(t, err)

	field := tree.Node(tree.Root()).ChildrenOf(KindField)[0]
	assert.Equal(t, "'foo' 'bar'", field.RawValue(), "raw value keeps the source quoting")
	v, err := field.StrVal()
	require.NoError(t, err)
	assert.Equal(t, "foobar", v)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"unquoted", "example.com", "example.com"},
		{"single-quoted", "'hello world'", "hello world"},
		{"double-quoted", `"hello"`, "hello"},
		{"empty literal", "''", ""},
		{"concatenated", "'foo''bar'", "foobar"},
		{"escaped quote", `'it\'s'`, "it's"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Unquote(tc.raw))
		})
	}
}

func TestParseNumberKindBoundaryCases(t *testing.T) {
	tree, err := Parse("test.hit", "a = e-23\nb = 12.345e+67\nc = 42\n")
	require.NoError(t, err)

	fields := tree.Node(tree.Root()).ChildrenOf(KindField)
	require.Len(t, fields, 3)
	assert.Equal(t, ValueString, fields[0].ValueKind(), "a mantissa-less exponent has no leading coefficient and isn't a number")
	assert.Equal(t, ValueFloat, fields[1].ValueKind())
	assert.Equal(t, ValueInt, fields[2].ValueKind())
}

func TestFindSearchesAllSamePathSiblings(t *testing.T) {
	// Prior to block merging, sibling sections may share a path; each
	// segment's lookup proceeds over the union of candidates.
	tree, err := Parse("test.hit", "[a]\n  x = 1\n[]\n[a]\n  y = 2\n[]\n")
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	y := Find(root, "a/y")
	require.NotEqual(t, NoHandle, y.H)
	assert.Equal(t, "2", y.RawValue())
}

func TestFindAcrossLevels(t *testing.T) {
	tree, err := Parse("test.hit", "[remote]\n  [tls]\n    cert = a.pem\n  []\n[]\n")
	require.NoError(t, err)

	root := tree.Node(tree.Root())
	found := Find(root, "remote/tls/cert")
	require.NotEqual(t, NoHandle, found.H)
	assert.Equal(t, "a.pem", found.RawValue())

	missing := Find(root, "remote/tls/missing")
	assert.Equal(t, NoHandle, missing.H)
}
