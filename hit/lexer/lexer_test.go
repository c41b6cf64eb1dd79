package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSimpleField(t *testing.T) {
	toks := Tokenize("test.hit", "foo = 42\n")
	require.NotEmpty(t, toks)
	assert.Equal(t, []Kind{Ident, Equals, Number, Eof}, kinds(toks))
	assert.Equal(t, "foo", toks[0].Text)
	assert.Equal(t, "42", toks[2].Text)
}

func TestTokenizeSection(t *testing.T) {
	toks := Tokenize("test.hit", "[foo]\n  bar = 'hi'\n[]\n")
	assert.Equal(t, []Kind{
		LeftBracket, Path, RightBracket,
		Ident, Equals, String,
		LeftBracket, Path, RightBracket,
		Eof,
	}, kinds(toks))
	assert.Equal(t, "'hi'", toks[5].Text)
}

func TestTokenizeLegacyCloser(t *testing.T) {
	// lexPath folds the '/' separator into the Path token, so the
	// legacy closer's text is "../", not "..".
	toks := Tokenize("test.hit", "[foo]\n[../]\n")
	assert.Equal(t, []Kind{LeftBracket, Path, RightBracket, LeftBracket, Path, RightBracket, Eof}, kinds(toks))
	assert.Equal(t, "../", toks[4].Text)
}

func TestTokenizeLegacyOpenMarker(t *testing.T) {
	toks := Tokenize("test.hit", "[./foo]\n[../]\n")
	assert.Equal(t, []Kind{LeftBracket, Path, RightBracket, LeftBracket, Path, RightBracket, Eof}, kinds(toks))
	assert.Equal(t, "./foo", toks[1].Text)
}

func TestOverrideMarkers(t *testing.T) {
	toks := Tokenize("test.hit", "a := 1\nb :override= 2\nc = 3\n")
	var eqTexts []string
	for _, tok := range toks {
		if tok.Kind == Equals {
			eqTexts = append(eqTexts, tok.Text)
		}
	}
	assert.Equal(t, []string{":=", ":override=", "="}, eqTexts)
}

func TestInlineCommentAttachesSameLine(t *testing.T) {
	toks := Tokenize("test.hit", "foo = 1 # trailing\n# block\n")
	require.True(t, len(toks) >= 5)
	var inlineSeen, blockSeen bool
	for _, tok := range toks {
		if tok.Kind == InlineComment {
			inlineSeen = true
			assert.Contains(t, tok.Text, "trailing")
		}
		if tok.Kind == Comment {
			blockSeen = true
		}
	}
	assert.True(t, inlineSeen)
	assert.True(t, blockSeen)
}

func TestBlankLineBetweenFields(t *testing.T) {
	toks := Tokenize("test.hit", "a = 1\n\nb = 2\n")
	assert.Contains(t, kinds(toks), BlankLine)
}

func TestUnterminatedStringErrors(t *testing.T) {
	toks := Tokenize("test.hit", "a = 'unterminated\n")
	last := toks[len(toks)-1]
	assert.Equal(t, Error, last.Kind)
}

func TestConcatenatedStringLiterals(t *testing.T) {
	toks := Tokenize("test.hit", "a = 'foo' 'bar'\n")
	require.True(t, len(toks) >= 3)
	assert.Equal(t, String, toks[2].Kind)
	assert.Equal(t, "'foo' 'bar'", toks[2].Text)
}
