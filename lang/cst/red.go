package cst

import "github.com/lico-lang/lico/lang/token"

// Node is the red facade over a GreenNode: it adds an absolute byte
// offset and a parent pointer, both computed lazily as the tree is
// walked, so a single GreenNode can back arbitrarily many red views (for
// example, an unchanged subtree re-parented after an incremental edit)
// without copying.
type Node struct {
	green  *GreenNode
	parent *Node
	offset uint32
}

// Token is the red facade over a GreenToken.
type Token struct {
	green  *GreenToken
	parent *Node
	offset uint32
}

// NewRoot builds the red root view over a green tree with offset zero and
// no parent.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

// Kind returns the node's syntax kind.
func (n *Node) Kind() token.SyntaxKind { return n.green.Kind }

// Range returns the node's absolute byte range in the source text.
func (n *Node) Range() token.TextRange {
	return token.TextRange{Start: n.offset, End: n.offset + n.green.length}
}

// Parent returns the enclosing node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Text returns the exact source text spanned by n.
func (n *Node) Text() string { return n.green.Text() }

// Element is a red child: exactly one of Node or Token is non-nil.
type Element struct {
	Node  *Node
	Token *Token
}

// Kind returns the kind of whichever alternative is populated.
func (e Element) Kind() token.SyntaxKind {
	if e.Node != nil {
		return e.Node.Kind()
	}
	return e.Token.Kind()
}

// Range returns the absolute byte range of whichever alternative is
// populated.
func (e Element) Range() token.TextRange {
	if e.Node != nil {
		return e.Node.Range()
	}
	return e.Token.Range()
}

// Children returns the direct children of n as red elements, with offsets
// and parent pointers filled in relative to n.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.green.Children))
	off := n.offset
	for i, c := range n.green.Children {
		if c.Node != nil {
			out[i] = Element{Node: &Node{green: c.Node, parent: n, offset: off}}
		} else {
			out[i] = Element{Token: &Token{green: c.Token, parent: n, offset: off}}
		}
		off += c.len()
	}
	return out
}

// ChildNodes returns only the node children of n, skipping tokens.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for _, e := range n.Children() {
		if e.Node != nil {
			out = append(out, e.Node)
		}
	}
	return out
}

// ChildNodesOfKind returns the direct node children of n whose kind is
// exactly want, in order.
func (n *Node) ChildNodesOfKind(want token.SyntaxKind) []*Node {
	var out []*Node
	for _, c := range n.ChildNodes() {
		if c.Kind() == want {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildNodeOfKind returns the first direct node child of kind want,
// or nil if there is none.
func (n *Node) FirstChildNodeOfKind(want token.SyntaxKind) *Node {
	for _, c := range n.ChildNodes() {
		if c.Kind() == want {
			return c
		}
	}
	return nil
}

// Tokens returns only the direct token children of n that are not trivia
// (whitespace or comments), in source order.
func (n *Node) Tokens() []*Token {
	var out []*Token
	for _, e := range n.Children() {
		if e.Token != nil && !e.Token.Kind().IsTrivia() {
			out = append(out, e.Token)
		}
	}
	return out
}

// FirstTokenOfKind returns the first non-trivia direct token child of
// kind want, or nil.
func (n *Node) FirstTokenOfKind(want token.SyntaxKind) *Token {
	for _, t := range n.Tokens() {
		if t.Kind() == want {
			return t
		}
	}
	return nil
}

// Kind returns the token's syntax kind.
func (t *Token) Kind() token.SyntaxKind { return t.green.Kind }

// Text returns the token's exact source text.
func (t *Token) Text() string { return t.green.Text }

// Range returns the token's absolute byte range.
func (t *Token) Range() token.TextRange {
	return token.TextRange{Start: t.offset, End: t.offset + t.green.len()}
}

// Parent returns the node this token is a direct child of.
func (t *Token) Parent() *Node { return t.parent }

// Walk visits n and every descendant node, depth-first, pre-order.
func Walk(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.ChildNodes() {
		Walk(c, visit)
	}
}
