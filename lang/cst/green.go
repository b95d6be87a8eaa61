// Package cst implements Lico's lossless concrete syntax tree: an
// immutable "green" layer (kind, text, children) and a "red" facade over
// it that adds parent pointers and absolute offsets, in the rust-analyzer/
// rowan tradition. Every byte of the original source, including
// whitespace and comments, is reachable by walking the tree.
package cst

import "github.com/lico-lang/lico/lang/token"

// GreenToken is an immutable leaf: a kind and its exact source text.
type GreenToken struct {
	Kind token.SyntaxKind
	Text string
}

func (t *GreenToken) len() uint32 { return uint32(len(t.Text)) }

// GreenNode is an immutable interior node: a kind and an ordered list of
// children, each either a node or a token. Green nodes carry no parent
// pointer and no absolute offset — they are plain values, shareable and
// safe to reuse across trees, per the red/green split.
type GreenNode struct {
	Kind     token.SyntaxKind
	Children []GreenElement
	length   uint32
}

// GreenElement is a child slot: exactly one of Node or Token is non-nil.
type GreenElement struct {
	Node  *GreenNode
	Token *GreenToken
}

// Kind returns the kind of whichever alternative is populated.
func (e GreenElement) Kind() token.SyntaxKind {
	if e.Node != nil {
		return e.Node.Kind
	}
	return e.Token.Kind
}

func (e GreenElement) len() uint32 {
	if e.Node != nil {
		return e.Node.length
	}
	return e.Token.len()
}

// newGreenNode computes and caches the node's total byte length from its
// children, once, at construction time (green nodes are immutable after
// this point).
func newGreenNode(kind token.SyntaxKind, children []GreenElement) *GreenNode {
	n := &GreenNode{Kind: kind, Children: children}
	for _, c := range children {
		n.length += c.len()
	}
	return n
}

// Text reconstructs the exact source text spanned by n by concatenating
// every descendant token's text in order. This always round-trips to the
// original input byte-for-byte, which is the defining property of a
// lossless tree.
func (n *GreenNode) Text() string {
	var b []byte
	var walk func(e GreenElement)
	walk = func(e GreenElement) {
		if e.Token != nil {
			b = append(b, e.Token.Text...)
			return
		}
		for _, c := range e.Node.Children {
			walk(c)
		}
	}
	for _, c := range n.Children {
		walk(c)
	}
	return string(b)
}
