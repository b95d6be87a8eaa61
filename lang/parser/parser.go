// Package parser implements Lico's event-stream parser: a hand-written
// recursive-descent / Pratt parser that never builds a tree directly.
// Instead it appends to a flat event stream (lang/cst.Event) via
// Marker/CompletedMarker bookkeeping, and lang/cst.Build replays that
// stream once, at the end, into the actual green tree. This lets a
// completed node be retroactively wrapped into a new parent (Precede)
// without any backtracking or tree mutation, which is how `1 + 2` can be
// parsed as "complete a LITERAL for 1, then discover it was the LHS of a
// BINARY_EXPR" instead of needing unbounded lookahead up front.
package parser

import (
	"github.com/lico-lang/lico/lang/cst"
	"github.com/lico-lang/lico/lang/lexer"
	"github.com/lico-lang/lico/lang/token"
)

// Diagnostic is a single parse error, already anchored to a byte range so
// it can be reported without re-walking the tree.
type Diagnostic struct {
	Message string
	Range   token.TextRange
}

// Parser holds the lexed token stream (including trivia) and the event
// stream being built. It is used once per parse and then discarded; all
// of its state is consumed by Parse.
type Parser struct {
	src    string
	toks   []lexer.Lexeme
	starts []uint32 // byte offset of each token in toks
	pos    int       // index into toks, including trivia
	events []cst.Event
	errors []Diagnostic
}

// New creates a Parser over src, lexing it up front.
func New(src string) *Parser {
	toks := lexer.Lex(src)
	starts := make([]uint32, len(toks))
	var off uint32
	for i, tk := range toks {
		starts[i] = off
		off += tk.Token.Len
	}
	return &Parser{src: src, toks: toks, starts: starts}
}

// Marker denotes an open, not-yet-completed node in the event stream.
// Every Marker must be completed (via Complete) or explicitly abandoned
// before the parser moves on.
type Marker struct {
	pos  int
	done bool
}

// CompletedMarker is the result of completing a Marker: it records where
// in the event stream the node's EvStartNode event lives, so a later
// Precede call can retroactively wrap it.
type CompletedMarker struct {
	pos  int
	kind token.SyntaxKind
}

// Start opens a new node in the event stream, returning a Marker that
// must later be completed or abandoned.
func (p *Parser) Start() Marker {
	pos := len(p.events)
	p.events = append(p.events, cst.Event{Kind: cst.EvTombstone})
	return Marker{pos: pos}
}

// Complete finishes the node opened by m with the given kind and returns
// a CompletedMarker describing it.
func (p *Parser) Complete(m Marker, kind token.SyntaxKind) CompletedMarker {
	p.events[m.pos] = cst.Event{Kind: cst.EvStartNode, NodeKind: kind}
	p.events = append(p.events, cst.Event{Kind: cst.EvFinishNode})
	m.done = true
	return CompletedMarker{pos: m.pos, kind: kind}
}

// Abandon discards m: nothing it would have wrapped is lost, it simply
// never becomes a node of its own (its would-be children attach directly
// to whatever node encloses it).
func (p *Parser) Abandon(m Marker) {
	m.done = true
	if m.pos == len(p.events)-1 {
		p.events = p.events[:m.pos]
		return
	}
	p.events[m.pos] = cst.Event{Kind: cst.EvTombstone}
}

// Precede opens a new Marker that will enclose cm and everything parsed
// between cm's completion and the new marker's own completion. This is
// the mechanism that lets the parser parse "1", discover later that it
// was the left-hand side of a binary expression, and wrap it without
// having backtracked.
func (p *Parser) Precede(cm CompletedMarker) Marker {
	newPos := len(p.events)
	p.events = append(p.events, cst.Event{Kind: cst.EvTombstone})
	p.events[cm.pos] = cst.Event{
		Kind:          cst.EvStartNode,
		NodeKind:      cm.kind,
		ForwardParent: newPos - cm.pos,
	}
	return Marker{pos: newPos}
}

// nth returns the kind of the n-th significant (non-trivia) token ahead
// of the parser's current position, without consuming anything. n == 0
// is the next token to be bumped.
func (p *Parser) nth(n int) token.SyntaxKind {
	i := p.pos
	for {
		if i >= len(p.toks) {
			return token.ERROR
		}
		if p.toks[i].Token.Kind.IsTrivia() {
			i++
			continue
		}
		if n == 0 {
			return p.toks[i].Token.Kind
		}
		n--
		i++
	}
}

// at reports whether the next significant token is of kind k.
func (p *Parser) at(k token.SyntaxKind) bool { return p.nth(0) == k }

// atEOF reports whether no significant tokens remain.
func (p *Parser) atEOF() bool {
	i := p.pos
	for i < len(p.toks) && p.toks[i].Token.Kind.IsTrivia() {
		i++
	}
	return i >= len(p.toks)
}

// currentRange returns the byte range of the next significant token, used
// to anchor diagnostics for missing-token errors at a zero-width point.
func (p *Parser) currentRange() token.TextRange {
	i := p.pos
	for i < len(p.toks) && p.toks[i].Token.Kind.IsTrivia() {
		i++
	}
	if i >= len(p.toks) {
		return token.TextRange{Start: uint32(len(p.src)), End: uint32(len(p.src))}
	}
	start := p.starts[i]
	return token.TextRange{Start: start, End: start + p.toks[i].Token.Len}
}

// bumpRaw consumes exactly the token at p.pos (trivia or not) into the
// event stream as an EvToken event.
func (p *Parser) bumpRaw() {
	p.events = append(p.events, cst.Event{Kind: cst.EvToken})
	p.pos++
}

// bumpTrivia flushes any whitespace/comment tokens sitting before the
// next significant token, attaching them as leading children of whatever
// node is currently open. Every grammar production that consumes a real
// token calls this first, which is what keeps the tree lossless without
// the grammar itself ever having to think about trivia.
func (p *Parser) bumpTrivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].Token.Kind.IsTrivia() {
		p.bumpRaw()
	}
}

// Bump consumes the next significant token (plus any leading trivia)
// unconditionally.
func (p *Parser) Bump() {
	p.bumpTrivia()
	if p.pos < len(p.toks) {
		p.bumpRaw()
	}
}

// Expect consumes the next significant token if it matches kind, and
// otherwise records a zero-width "missing token" diagnostic without
// consuming anything, so the caller's recovery / follow-set logic stays
// in control of how far to skip.
func (p *Parser) Expect(kind token.SyntaxKind) bool {
	if p.at(kind) {
		p.Bump()
		return true
	}
	p.errors = append(p.errors, Diagnostic{
		Message: "expected " + kind.String() + ", found " + p.nth(0).String(),
		Range:   p.currentRange(),
	})
	return false
}

// ErrorRecover opens an ERROR node, consumes one unexpected token into it
// (unless the parser is at EOF or already at a token in recoverySet), and
// records msg as a diagnostic. This bounds how much input an unexpected
// token can swallow: callers pass the follow-set of the enclosing
// production so recovery never eats a token the caller still needs.
func (p *Parser) ErrorRecover(msg string, recoverySet ...token.SyntaxKind) {
	p.errors = append(p.errors, Diagnostic{Message: msg, Range: p.currentRange()})

	if p.atEOF() {
		return
	}
	for _, k := range recoverySet {
		if p.at(k) {
			return
		}
	}
	m := p.Start()
	p.Bump()
	p.Complete(m, token.ERROR)
}

// Errors returns every diagnostic collected during parsing.
func (p *Parser) Errors() []Diagnostic { return p.errors }

// finish replays the event stream into a green tree.
func (p *Parser) finish() *cst.GreenNode {
	p.bumpTrivia() // trailing trivia at EOF still needs a home
	inputs := make([]cst.TokenInput, 0, len(p.toks))
	var off uint32
	for _, tk := range p.toks {
		inputs = append(inputs, cst.TokenInput{
			Kind: tk.Token.Kind,
			Text: p.src[off : off+tk.Token.Len],
		})
		off += tk.Token.Len
	}
	return cst.Build(p.events, inputs)
}

// Parse lexes and parses src as a full program, returning the resulting
// green tree and any diagnostics collected along the way.
func Parse(src string) (*cst.GreenNode, []Diagnostic) {
	p := New(src)
	parseProgram(p)
	tree := p.finish()
	return tree, p.Errors()
}
