package log

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputOptionOff(t *testing.T) {
	out, err := ParseOutputOption("off")
	require.NoError(t, err)
	assert.IsType(t, NopOutput{}, out)
}

func TestParseOutputOptionOffRejectsCombination(t *testing.T) {
	_, err := ParseOutputOption("off,stderr")
	assert.Error(t, err)
}

func TestParseOutputOptionStderr(t *testing.T) {
	out, err := ParseOutputOption("stderr")
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestMultiOutputFansOut(t *testing.T) {
	var a, b strings.Builder
	out := MultiOutput(WriterOutput(&a, false), WriterOutput(&b, false))
	out.Write(time.Unix(0, 0), false, "hello")

	assert.Equal(t, "hello\n", a.String())
	assert.Equal(t, "hello\n", b.String())
}

func TestWriterOutputDebugPrefix(t *testing.T) {
	var buf strings.Builder
	WriterOutput(&buf, false).Write(time.Unix(0, 0), true, "x")
	assert.Equal(t, "[debug] x\n", buf.String())
}

func TestWriterOutputTimestamps(t *testing.T) {
	var buf strings.Builder
	WriterOutput(&buf, true).Write(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), false, "x")
	assert.Equal(t, "2020-01-02T03:04:05.000Z x\n", buf.String())
}
