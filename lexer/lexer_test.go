package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninecc/minic/diag"
	"github.com/ninecc/minic/token"
)

func tokenize(t *testing.T, input string) []*token.Token {
	t.Helper()
	l := New(&diag.Source{Name: "test.c", Text: input})
	var out []*token.Token
	for tok := l.Tokenize(); ; tok = tok.Next {
		out = append(out, tok)
		if tok.IsEOF() {
			break
		}
	}
	return out
}

// Trivial test of number and punctuator scanning.
func TestParseNumbersAndOperators(t *testing.T) {
	toks := tokenize(t, "3 + 43 - 1")

	kinds := []token.Kind{token.Number, token.Reserved, token.Number, token.Reserved, token.Number, token.EOF}
	texts := []string{"3", "+", "43", "-", "1", ""}

	require.Len(t, toks, len(kinds))
	for i, tok := range toks {
		assert.Equal(t, kinds[i], tok.Kind, "token %d", i)
		assert.Equal(t, texts[i], tok.Text, "token %d", i)
	}
	assert.Equal(t, int64(3), toks[0].Num)
	assert.Equal(t, int64(43), toks[2].Num)
}

// Keywords are only recognized when not followed by an identifier byte.
func TestKeywordVsPrefixIdentifier(t *testing.T) {
	toks := tokenize(t, "int integer")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Reserved, toks[0].Kind)
	assert.Equal(t, "int", toks[0].Text)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "integer", toks[1].Text)
}

// Multi-character punctuators are matched before their single-char prefix.
func TestMultiCharPunctuators(t *testing.T) {
	toks := tokenize(t, "a==b!=c->d<=e>=f")
	var ops []string
	for _, tok := range toks {
		if tok.Kind == token.Reserved {
			ops = append(ops, tok.Text)
		}
	}
	assert.Equal(t, []string{"==", "!=", "->", "<=", ">="}, ops)
}

func TestLineAndBlockComments(t *testing.T) {
	toks := tokenize(t, "1 // trailing comment\n+ /* block\ncomment */ 2")
	require.Len(t, toks, 4)
	assert.Equal(t, "1", toks[0].Text)
	assert.Equal(t, "+", toks[1].Text)
	assert.Equal(t, "2", toks[2].Text)
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := tokenize(t, `"ab\ncd"`)
	require.Len(t, toks, 2)
	str := toks[0]
	assert.Equal(t, token.String, str.Kind)
	assert.Equal(t, []byte("ab\ncd\x00"), str.Str)
	assert.Equal(t, len(str.Str), str.StrLen)
}

func TestStringLiteralUnknownEscapeIsLiteralChar(t *testing.T) {
	toks := tokenize(t, `"\q"`)
	require.Len(t, toks, 2)
	assert.Equal(t, []byte("q\x00"), toks[0].Str)
}
