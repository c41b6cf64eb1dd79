package brace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandStringEnv(t *testing.T) {
	os.Setenv("HIT_TEST_VAR", "hello")
	defer os.Unsetenv("HIT_TEST_VAR")

	exp := NewExpander()
	exp.Register("env", EnvEvaler{})

	out, err := exp.ExpandString("value is ${env HIT_TEST_VAR}!")
	require.NoError(t, err)
	assert.Equal(t, "value is hello!", out)
}

func TestExpandStringRaw(t *testing.T) {
	exp := NewExpander()
	exp.Register("raw", RawEvaler{})

	out, err := exp.ExpandString("${raw foo bar}")
	require.NoError(t, err)
	assert.Equal(t, "foobar", out)
}

func TestExpandStringSkipsSingleWordGroup(t *testing.T) {
	exp := NewExpander()
	out, err := exp.ExpandString("${bare_word}")
	require.NoError(t, err)
	assert.Equal(t, "${bare_word}", out)
}

func TestExpandStringUnknownEvaler(t *testing.T) {
	exp := NewExpander()
	_, err := exp.ExpandString("${nope a b}")
	assert.Error(t, err)
}

func TestParseNodeNested(t *testing.T) {
	_, n, err := ParseNode("${raw ${env A} tail}", 0)
	require.NoError(t, err)
	require.Len(t, n.Children, 3)
	assert.Equal(t, "raw", n.Children[0].Value)
	assert.False(t, n.Children[1].IsLeaf())
	assert.Equal(t, "tail", n.Children[2].Value)
}

func TestParseNodeMissingClose(t *testing.T) {
	_, _, err := ParseNode("${raw foo", 0)
	assert.Error(t, err)
}
