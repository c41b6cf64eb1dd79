package ast

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSplicesIncludedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "base.hit", []byte("a = 1\n!include inc.hit\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "inc.hit", []byte("b = 2\n"), 0o644))

	out, err := Resolve(fs, "base.hit")
	require.NoError(t, err)

	tree, err := Parse("base.hit", out)
	require.NoError(t, err)
	root := tree.Node(tree.Root())
	assert.NotEqual(t, NoHandle, Find(root, "a").H)
	assert.NotEqual(t, NoHandle, Find(root, "b").H)
}

func TestResolveMissingFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Resolve(fs, "missing.hit")
	assert.Error(t, err)
}

func TestResolveDetectsCircularInclude(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.hit", []byte("!include b.hit\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "b.hit", []byte("!include a.hit\n"), 0o644))

	_, err := Resolve(fs, "a.hit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file include would create circular reference 'a.hit'")
}

func TestResolveTreePreservesFileOrigin(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "base.hit", []byte("[B]\n  p := v_a\n[]\n!include inc.hit\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "inc.hit", []byte("[B]\n  p = v_b\n[]\n"), 0o644))

	tree, err := ResolveTree(fs, "base.hit")
	require.NoError(t, err)
	root := tree.Node(tree.Root())
	MergeBlocks(root)

	p := Find(root, "B/p")
	require.NotEqual(t, NoHandle, p.H)
	assert.Equal(t, "v_a", p.RawValue())
	assert.Equal(t, "base.hit", p.File())
}

func TestResolveTreeBothOverrideConflict(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "base.hit", []byte("p := v_a\n!include inc.hit\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "inc.hit", []byte("p :override= v_b\n"), 0o644))

	_, err := ResolveTree(fs, "base.hit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specified more than once with override syntax")
}

func TestResolveTreeNoMarkersKeepsBoth(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "base.hit", []byte("p = v_a\n!include inc.hit\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "inc.hit", []byte("p = v_b\n"), 0o644))

	tree, err := ResolveTree(fs, "base.hit")
	require.NoError(t, err)
	root := tree.Node(tree.Root())

	fields := root.ChildrenOf(KindField)
	require.Len(t, fields, 2)
}
