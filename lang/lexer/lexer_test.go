package lexer

import (
	"testing"

	"github.com/lico-lang/lico/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(lexemes []Lexeme) []token.SyntaxKind {
	out := make([]token.SyntaxKind, len(lexemes))
	for i, lx := range lexemes {
		out[i] = lx.Token.Kind
	}
	return out
}

func TestLexBytePreservation(t *testing.T) {
	src := "var x = 1 + 2\n"
	lexemes := Lex(src)

	var total uint32
	for _, lx := range lexemes {
		total += lx.Token.Len
	}
	assert.Equal(t, uint32(len(src)), total, "sum of token lengths must cover every byte")
}

func TestLexKeywordsAndIdents(t *testing.T) {
	lexemes := Lex("var notakeyword while")
	got := kinds(lexemes)
	want := []token.SyntaxKind{token.VAR_KW, token.WHITESPACE, token.IDENT, token.WHITESPACE, token.WHILE_KW}
	assert.Equal(t, want, got)
}

func TestLexNumberBases(t *testing.T) {
	lexemes := Lex("0x1F")
	require.Len(t, lexemes, 1)
	assert.Equal(t, token.INT, lexemes[0].Token.Kind)
	assert.Equal(t, token.Hexadecimal, lexemes[0].Int.Base)
	assert.False(t, lexemes[0].Int.EmptyInt)

	lexemes = Lex("0x")
	require.Len(t, lexemes, 1)
	assert.True(t, lexemes[0].Int.EmptyInt)
}

func TestLexFloatExponent(t *testing.T) {
	lexemes := Lex("1.5e10")
	require.Len(t, lexemes, 1)
	assert.Equal(t, token.FLOAT, lexemes[0].Token.Kind)
	assert.False(t, lexemes[0].Float.EmptyExponent)

	lexemes = Lex("1.5e")
	require.Len(t, lexemes, 1)
	assert.True(t, lexemes[0].Float.EmptyExponent)
}

func TestLexDotDotIsNotAFraction(t *testing.T) {
	lexemes := Lex("1..2")
	got := kinds(lexemes)
	assert.Equal(t, []token.SyntaxKind{token.INT, token.DOT2, token.INT}, got)
}

func TestLexStringTermination(t *testing.T) {
	lexemes := Lex(`"hello"`)
	require.Len(t, lexemes, 1)
	assert.True(t, lexemes[0].Str.Terminated)

	lexemes = Lex(`"hello`)
	require.Len(t, lexemes, 1)
	assert.False(t, lexemes[0].Str.Terminated)
}

func TestLexLongestMatchPunct(t *testing.T) {
	lexemes := Lex("<<=>")
	got := kinds(lexemes)
	assert.Equal(t, []token.SyntaxKind{token.LT2, token.EQ, token.GT}, got)
}

func TestLexNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		Lex("\xff\xfe   \"unterminated")
	})
}
