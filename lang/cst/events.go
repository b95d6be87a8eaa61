package cst

import "github.com/lico-lang/lico/lang/token"

// EventKind tags one entry in a parser's flat event stream.
type EventKind uint8

const (
	EvTombstone EventKind = iota
	EvStartNode
	EvFinishNode
	EvToken
)

// Event is one entry in the event stream a parser produces while parsing.
// The stream is built forward-only (no backtracking) and replayed once,
// at the end, by Build. ForwardParent implements retroactive
// reparenting: when a completed node turns out to be the first child of
// a node that starts later in the stream (e.g. `1 + 2` is parsed as just
// `1`, then discovered to be the LHS of a BINARY_EXPR once `+` is seen),
// the EvStartNode event for the already-emitted node gets a non-zero
// ForwardParent: the distance, in event-stream positions, to the
// EvStartNode event of its real parent. Zero means "no forward parent".
type Event struct {
	Kind          EventKind
	NodeKind      token.SyntaxKind
	ForwardParent int
}

// TokenInput is one token fed to Build, in source order, paired with its
// exact source text. The n-th EvToken event in the stream consumes the
// n-th TokenInput.
type TokenInput struct {
	Kind token.SyntaxKind
	Text string
}

// Build replays a parser's event stream into a green tree. This is the
// tree-construction half of the event-stream design: parsing only ever
// appends to the event stream and to completed-marker bookkeeping: it
// never mutates a tree directly, so speculative parses and
// Marker.Precede-based reparenting cost nothing until this single replay
// pass at the end.
func Build(events []Event, tokens []TokenInput) *GreenNode {
	var stack [][]GreenElement
	stack = append(stack, nil) // implicit outermost frame, becomes the root
	var kindStack []token.SyntaxKind

	tok := 0
	pushChild := func(e GreenElement) {
		top := len(stack) - 1
		stack[top] = append(stack[top], e)
	}

	for i := 0; i < len(events); i++ {
		ev := events[i]
		switch ev.Kind {
		case EvTombstone:
			// already consumed as part of a forward-parent chain, or an
			// abandoned marker: contributes nothing.

		case EvStartNode:
			// Walk the forward-parent chain starting at this event, collecting
			// the kinds of every node that turns out to enclose this one,
			// outermost last (since we only discover them by following the
			// chain forward). Each visited event is neutralized to Tombstone
			// so the main loop does not reprocess it when it reaches that
			// index later.
			var kinds []token.SyntaxKind
			idx := i
			kinds = append(kinds, ev.NodeKind)
			events[idx] = Event{Kind: EvTombstone}
			fp := ev.ForwardParent
			for fp != 0 {
				idx += fp
				next := events[idx]
				kinds = append(kinds, next.NodeKind)
				fp = next.ForwardParent
				events[idx] = Event{Kind: EvTombstone}
			}
			for j := len(kinds) - 1; j >= 0; j-- {
				stack = append(stack, nil)
				_ = kinds[j] // kind is recorded on the frame via a parallel stack below
			}
			// record kinds for the frames just pushed, outermost first
			kindStack = append(kindStack, reversed(kinds)...)

		case EvFinishNode:
			top := len(stack) - 1
			children := stack[top]
			stack = stack[:top]
			kind := kindStack[len(kindStack)-1]
			kindStack = kindStack[:len(kindStack)-1]
			pushChild(GreenElement{Node: newGreenNode(kind, children)})

		case EvToken:
			in := tokens[tok]
			tok++
			pushChild(GreenElement{Token: &GreenToken{Kind: in.Kind, Text: in.Text}})
		}
	}

	root := stack[0]
	if len(root) == 1 && root[0].Node != nil {
		return root[0].Node
	}
	return newGreenNode(token.PROGRAM, root)
}

func reversed(in []token.SyntaxKind) []token.SyntaxKind {
	out := make([]token.SyntaxKind, len(in))
	for i, k := range in {
		out[len(in)-1-i] = k
	}
	return out
}
