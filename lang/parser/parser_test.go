package parser

import (
	"testing"

	"github.com/lico-lang/lico/lang/cst"
	"github.com/lico-lang/lico/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLosslessRoundTrip(t *testing.T) {
	srcs := []string{
		"var x = 1 + 2 * 3\n",
		"func add(a, b) return a + b end\n",
		"if x then y end\n",
		"# a comment\nvar x = 1\n",
		"while x do x = x - 1 end\n",
	}
	for _, src := range srcs {
		tree, _ := Parse(src)
		assert.Equal(t, src, tree.Text(), "lossless round trip for %q", src)
	}
}

func TestParsePrecedence(t *testing.T) {
	// `1 + 2 * 3` should parse as `1 + (2 * 3)`: the outer node is the `+`
	// binary expression, and its right operand is itself a binary `*`
	// expression, never the reverse.
	tree, errs := Parse("1 + 2 * 3")
	require.Empty(t, errs)

	root := cst.NewRoot(tree)
	prog := root.ChildNodes()
	require.Len(t, prog, 1)
	exprStmt := prog[0]
	require.Equal(t, token.EXPR_STMT, exprStmt.Kind())

	outer := exprStmt.ChildNodes()[0]
	require.Equal(t, token.BINARY_EXPR, outer.Kind())
	outerOperands := outer.ChildNodes()
	require.Len(t, outerOperands, 2)
	assert.Equal(t, token.LITERAL, outerOperands[0].Kind())
	assert.Equal(t, token.BINARY_EXPR, outerOperands[1].Kind())
}

func TestParseLeftAssociativity(t *testing.T) {
	// `1 - 2 - 3` should parse as `(1 - 2) - 3`.
	tree, _ := Parse("1 - 2 - 3")
	root := cst.NewRoot(tree)
	exprStmt := root.ChildNodes()[0]
	outer := exprStmt.ChildNodes()[0]
	require.Equal(t, token.BINARY_EXPR, outer.Kind())
	operands := outer.ChildNodes()
	require.Len(t, operands, 2)
	assert.Equal(t, token.BINARY_EXPR, operands[0].Kind())
	assert.Equal(t, token.LITERAL, operands[1].Kind())
}

func TestParseAssignmentIsAttrStmt(t *testing.T) {
	tree, errs := Parse("x = 1\n")
	require.Empty(t, errs)
	root := cst.NewRoot(tree)
	stmt := root.ChildNodes()[0]
	assert.Equal(t, token.ATTR_STMT, stmt.Kind())
}

func TestParseMissingTokenRecovers(t *testing.T) {
	tree, errs := Parse("var x = \n")
	require.NotEmpty(t, errs)
	// despite the missing expression, the tree still exactly reproduces
	// the source text.
	assert.Equal(t, "var x = \n", tree.Text())
}

func TestParseCallAndFieldChain(t *testing.T) {
	tree, errs := Parse("a.b.c(1, 2)\n")
	require.Empty(t, errs)
	root := cst.NewRoot(tree)
	stmt := root.ChildNodes()[0]
	require.Equal(t, token.EXPR_STMT, stmt.Kind())
	call := stmt.ChildNodes()[0]
	require.Equal(t, token.CALL_EXPR, call.Kind())
	assert.Equal(t, token.ARG_LIST, call.ChildNodes()[len(call.ChildNodes())-1].Kind())
}
