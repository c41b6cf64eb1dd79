package transform

import (
	"testing"

	"github.com/hitlang/hit/hit/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, src string) ast.Node {
	t.Helper()
	tree, err := ast.Parse("test.hit", src)
	require.NoError(t, err)
	return tree.Node(tree.Root())
}

func TestExplodeSplitsSlashSeparatedFields(t *testing.T) {
	root := parseDoc(t, "smtp/listener/addr = :25\n")
	Explode(root)

	smtp := Find(root, "smtp")
	require.NotEqual(t, ast.NoHandle, smtp.H)
	addr := Find(root, "smtp/listener/addr")
	require.NotEqual(t, ast.NoHandle, addr.H)
	assert.Equal(t, ":25", addr.RawValue())
}

func TestExplodeIsIdempotent(t *testing.T) {
	root := parseDoc(t, "a/b = 1\na/c = 2\n")
	Explode(root)
	first := len(Find(root, "a").Children())
	Explode(root)
	second := len(Find(root, "a").Children())
	assert.Equal(t, first, second)
}

func TestExplodeReusesExistingSibling(t *testing.T) {
	root := parseDoc(t, "[a]\n  x = 1\n[]\na/y = 2\n")
	Explode(root)

	aSections := root.ChildrenOf(ast.KindSection)
	require.Len(t, aSections, 1, "explode must not duplicate an existing 'a' section")

	y := Find(root, "a/y")
	require.NotEqual(t, ast.NoHandle, y.H)
	assert.Equal(t, "2", y.RawValue())
}

func TestCloneIsolatesSubtree(t *testing.T) {
	root := parseDoc(t, "[remote]\n  host = mx\n[]\n")
	sec := Find(root, "remote")

	clone := Clone(sec, false)
	clone.SetPath("remote-copy")

	orig := Find(root, "remote")
	assert.Equal(t, "remote", orig.Path())
	assert.Equal(t, "remote-copy", clone.Path())
}

func TestCloneAbsolutePathSurvivesDetachment(t *testing.T) {
	root := parseDoc(t, "[remote]\n  [tls]\n    cert = a.pem\n  []\n[]\n")
	tls := Find(root, "remote/tls")

	clone := Clone(tls, true)
	assert.Equal(t, "remote/tls", clone.FullPath())
}

func TestMergeOverwritesExistingField(t *testing.T) {
	into := parseDoc(t, "host = a\n")
	from := parseDoc(t, "host = b\nport = 25\n")

	Merge(from, into)

	host := Find(into, "host")
	require.NotEqual(t, ast.NoHandle, host.H)
	assert.Equal(t, "b", host.RawValue())

	port := Find(into, "port")
	require.NotEqual(t, ast.NoHandle, port.H)
	assert.Equal(t, "25", port.RawValue())
}

func TestMergeClonesMissingSection(t *testing.T) {
	into := parseDoc(t, "host = a\n")
	from := parseDoc(t, "[tls]\n  cert = a.pem\n[]\n")

	Merge(from, into)

	cert := Find(into, "tls/cert")
	require.NotEqual(t, ast.NoHandle, cert.H)
	assert.Equal(t, "a.pem", cert.RawValue())
}

func TestMergeIsIdempotent(t *testing.T) {
	into := parseDoc(t, "[remote]\n  host = mx\n  port = 25\n[]\n")
	from := parseDoc(t, "[remote]\n  host = mx\n  port = 25\n[]\n")

	Merge(from, into)
	Merge(from, into)

	remote := Find(into, "remote")
	require.NotEqual(t, ast.NoHandle, remote.H)
	assert.Len(t, remote.ChildrenOf(ast.KindField), 2)
	assert.Len(t, into.ChildrenOf(ast.KindSection), 1)
}

func TestGatherAndRemoveParamWalker(t *testing.T) {
	root := parseDoc(t, "[remote]\n  host = mx\n  port = 25\n[]\n")

	params := GatherParamWalker(root)
	assert.Equal(t, "mx", params["remote/host"])
	assert.Equal(t, "25", params["remote/port"])

	RemoveParamWalker(root, map[string]string{"remote/host": "mx"})
	assert.Equal(t, ast.NoHandle, Find(root, "remote/host").H)
	assert.NotEqual(t, ast.NoHandle, Find(root, "remote/port").H)
}

func TestRemoveEmptySectionWalker(t *testing.T) {
	root := parseDoc(t, "[remote]\n  host = mx\n[]\n")
	RemoveParamWalker(root, map[string]string{"remote/host": "mx"})
	RemoveEmptySectionWalker(root)

	assert.Equal(t, ast.NoHandle, Find(root, "remote").H)
}
