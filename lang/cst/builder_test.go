package cst

import (
	"testing"

	"github.com/lico-lang/lico/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildForwardParentWrap simulates the exact marker sequence a parser
// produces for "1 + 2": a LITERAL node is opened and completed for "1",
// then retroactively wrapped (via Marker.Precede semantics) into a
// BINARY_EXPR once "+" is seen. This is the core guarantee of the
// event-stream design: the wrap costs nothing but a forward-parent offset,
// no re-parsing or tree mutation.
func TestBuildForwardParentWrap(t *testing.T) {
	events := []Event{
		{Kind: EvStartNode, NodeKind: token.LITERAL, ForwardParent: 3},
		{Kind: EvToken},
		{Kind: EvFinishNode},
		{Kind: EvStartNode, NodeKind: token.BINARY_EXPR, ForwardParent: 0},
		{Kind: EvToken},
		{Kind: EvToken},
		{Kind: EvFinishNode},
	}
	tokens := []TokenInput{
		{Kind: token.INT, Text: "1"},
		{Kind: token.PLUS, Text: "+"},
		{Kind: token.INT, Text: "2"},
	}

	root := Build(events, tokens)
	require.Equal(t, token.BINARY_EXPR, root.Kind)
	require.Len(t, root.Children, 3)
	assert.Equal(t, token.LITERAL, root.Children[0].Kind())
	assert.Equal(t, "1", root.Children[0].Node.Text())
	assert.Equal(t, "+", root.Children[1].Token.Text)
	assert.Equal(t, "2", root.Children[2].Token.Text)
	assert.Equal(t, "1+2", root.Text())
}

func TestBuildLosslessRoundTrip(t *testing.T) {
	events := []Event{
		{Kind: EvStartNode, NodeKind: token.PROGRAM},
		{Kind: EvToken},
		{Kind: EvToken},
		{Kind: EvToken},
		{Kind: EvFinishNode},
	}
	tokens := []TokenInput{
		{Kind: token.VAR_KW, Text: "var"},
		{Kind: token.WHITESPACE, Text: " "},
		{Kind: token.IDENT, Text: "x"},
	}
	root := Build(events, tokens)
	assert.Equal(t, "var x", root.Text())
}

func TestRedFacadeOffsets(t *testing.T) {
	events := []Event{
		{Kind: EvStartNode, NodeKind: token.PROGRAM},
		{Kind: EvToken},
		{Kind: EvToken},
		{Kind: EvFinishNode},
	}
	tokens := []TokenInput{
		{Kind: token.VAR_KW, Text: "var"},
		{Kind: token.IDENT, Text: "x"},
	}
	root := NewRoot(Build(events, tokens))
	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, token.TextRange{Start: 0, End: 3}, children[0].Range())
	assert.Equal(t, token.TextRange{Start: 3, End: 4}, children[1].Range())
}
