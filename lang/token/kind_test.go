package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxKindRanges(t *testing.T) {
	assert.True(t, INT.IsLiteral())
	assert.True(t, NIL.IsLiteral())
	assert.False(t, VAR_KW.IsLiteral())

	assert.True(t, VAR_KW.IsKeyword())
	assert.True(t, NOT_KW.IsKeyword())
	assert.False(t, PLUS.IsKeyword())

	assert.True(t, PLUS.IsPunct())
	assert.True(t, DOT2.IsPunct())
	assert.False(t, IDENT.IsPunct())

	assert.True(t, WHITESPACE.IsTrivia())
	assert.True(t, COMMENT.IsTrivia())
	assert.False(t, IDENT.IsTrivia())
}

func TestKeywordTable(t *testing.T) {
	k, ok := Keywords["while"]
	assert.True(t, ok)
	assert.Equal(t, WHILE_KW, k)

	_, ok = Keywords["notakeyword"]
	assert.False(t, ok)
}

func TestSyntaxKindString(t *testing.T) {
	assert.Equal(t, "while", WHILE_KW.String())
	assert.Equal(t, "+", PLUS.String())
	assert.Equal(t, "if expression", IF_EXPR.String())
}
