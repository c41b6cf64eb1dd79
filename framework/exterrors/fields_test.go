package exterrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsOuterValueWins(t *testing.T) {
	inner := WithFields(errors.New("inner"), map[string]interface{}{"k": "inner", "only": 1})
	outer := WithFields(fmt.Errorf("outer: %w", inner), map[string]interface{}{"k": "outer"})

	f := Fields(outer)
	assert.Equal(t, "outer", f["k"])
	assert.Equal(t, 1, f["only"])
}

func TestFieldsPlainError(t *testing.T) {
	assert.Empty(t, Fields(errors.New("plain")))
}
