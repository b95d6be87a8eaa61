// Package grammar holds the EBNF cross-check for the hand-written parser:
// grammar.ebnf is not consulted by the parser at runtime (lang/parser is
// entirely hand-written, for the error-recovery and lossless-tree
// behavior a generated parser can't give us), but verifying it with
// golang.org/x/exp/ebnf catches the common failure mode of a grammar
// written down in docs/comments drifting out of sync with what the
// parser actually accepts: an undefined production or an unreachable
// rule here is a signal the hand-written grammar moved without this file
// following it.
package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestGrammarEBNF(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
