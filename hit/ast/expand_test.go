package ast

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandDocumentEnv(t *testing.T) {
	os.Setenv("HIT_AST_TEST_HOME", "/u/x")
	defer os.Unsetenv("HIT_AST_TEST_HOME")

	tree, err := Parse("test.hit", "x = ${ env HIT_AST_TEST_HOME }\n")
	require.NoError(t, err)
	root := tree.Node(tree.Root())

	require.NoError(t, ExpandDocument(root, nil))
	assert.Equal(t, "/u/x", Find(root, "x").RawValue())
}

func TestExpandDocumentShorthandReplace(t *testing.T) {
	tree, err := Parse("test.hit", "a = 1\nb = ${a}\n")
	require.NoError(t, err)
	root := tree.Node(tree.Root())

	require.NoError(t, ExpandDocument(root, nil))
	assert.Equal(t, "1", Find(root, "b").RawValue())
}

func TestExpandDocumentUnknownEvalerCollectsError(t *testing.T) {
	tree, err := Parse("test.hit", "a = ${nope x y}\nb = 2\n")
	require.NoError(t, err)
	root := tree.Node(tree.Root())

	err = ExpandDocument(root, nil)
	require.Error(t, err)
	// expansion still completes for every other field despite the failure
	assert.Equal(t, "2", Find(root, "b").RawValue())
}
