package compiler

import "github.com/lico-lang/lico/lang/ir"

// funcCtx is the compile-time symbol table for one function activation
// (spec §4.4's LocalID assignment). IR-level name resolution is already
// done (ir/scope.go hands every reference a globally-unique SymbolKey);
// funcCtx only maps each SymbolKey in scope to the runtime LocalID it
// occupies in this activation's locals array, and tracks the nested
// scopes and loops needed to emit correct DropLocal/break/continue code.
type funcCtx struct {
	module *ir.Module

	locals    map[ir.SymbolKey]LocalID
	nextLocal int

	scopes []*scopeFrame
	loops  []*loopFrame
}

type scopeFrame struct {
	bound []ir.SymbolKey
}

type loopFrame struct {
	// entryNextLocal is ctx.nextLocal immediately before this loop's own
	// iteration machinery (the for-loop variable, if any) was bound.
	// break/continue both drop back down to this count before jumping.
	entryNextLocal int
}

func newFuncCtx(m *ir.Module) *funcCtx {
	return &funcCtx{module: m, locals: map[ir.SymbolKey]LocalID{}}
}

// bind introduces sym as a brand new local occupying the next LocalID,
// mirroring the VM's "locals always append" convention (runtime.go's
// pushLocal/pushShared).
func (c *funcCtx) bind(sym ir.SymbolKey) LocalID {
	id := LocalID(c.nextLocal)
	c.nextLocal++
	c.locals[sym] = id
	if n := len(c.scopes); n > 0 {
		c.scopes[n-1].bound = append(c.scopes[n-1].bound, sym)
	}
	return id
}

// resolve looks up sym's LocalID. By construction every SymbolKey a
// function's body touches is either declared directly within it or was
// bound as one of its captured-cell locals at function entry (see
// compileFunctionLiteral) — so a miss here means either a free name that
// ir.Lower reported as undefined, or a use freeVarsOfFunc missed.
func (c *funcCtx) resolve(sym ir.SymbolKey) (LocalID, bool) {
	id, ok := c.locals[sym]
	return id, ok
}

// enterScope/exitScope bracket one lexical scope (a do-block, an if-arm,
// a loop body, a function body). exitScope returns how many locals need
// dropping to unwind back to the scope's entry point.
func (c *funcCtx) enterScope() {
	c.scopes = append(c.scopes, &scopeFrame{})
}

func (c *funcCtx) exitScope() int {
	n := len(c.scopes)
	top := c.scopes[n-1]
	c.scopes = c.scopes[:n-1]
	for _, sym := range top.bound {
		delete(c.locals, sym)
	}
	c.nextLocal -= len(top.bound)
	return len(top.bound)
}

func (c *funcCtx) pushLoop(entryNextLocal int) {
	c.loops = append(c.loops, &loopFrame{entryNextLocal: entryNextLocal})
}

func (c *funcCtx) popLoop() {
	c.loops = c.loops[:len(c.loops)-1]
}

func (c *funcCtx) currentLoop() (*loopFrame, bool) {
	if len(c.loops) == 0 {
		return nil, false
	}
	return c.loops[len(c.loops)-1], true
}
