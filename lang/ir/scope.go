package ir

import "github.com/lico-lang/lico/lang/token"

// ScopeKind selects what start_scope/startScope should do to the
// current-scope and in-loop bookkeeping, mirroring
// lower_ast::context::ScopeKind.
type ScopeKind uint8

const (
	// ScopeNest enters a new scope without resetting in-loop status: an
	// if-branch or do-block nested directly inside a loop body is still
	// "in a loop" for break/continue purposes.
	ScopeNest ScopeKind = iota
	// ScopeNew enters a new scope and clears in-loop status: a function
	// body is never implicitly in the loop of whatever lexically
	// contains the function literal.
	ScopeNew
	// ScopeLoop enters a new scope and sets in-loop status: a for/while
	// body.
	ScopeLoop
)

// Diagnostic is a single lowering error, carrying the source range it
// applies to so a driver can report it the way parser.Diagnostic is
// reported.
type Diagnostic struct {
	Message string
	Range   token.TextRange
}

// scopeMarker is returned by startScope and must be passed back to
// finishScope to restore the enclosing scope. The original's ScopeMarker
// panics on Drop if never finished, using Rust's linear-type discipline;
// Go has no destructor to hook the same check into, so this is enforced
// by convention (every startScope in lower.go is paired with a
// finishScope on the same path: deferred in lowerFuncBody, called
// directly everywhere else) rather than by the type system.
type scopeMarker struct {
	current ScopeIndex
	inLoop  bool
}

// context carries the state threaded through a single lowering pass:
// the module under construction, accumulated diagnostics, and the
// current/next scope counters, plus a per-scope symbol table used to
// resolve a name reference to the nearest enclosing declaration.
type context struct {
	builder *ModuleBuilder
	errors  []Diagnostic

	currentScope ScopeIndex
	nextScope    ScopeIndex
	inLoopScope  bool

	// names maps a declared spelling to the stack of symbols declared
	// under that spelling, innermost scope last. A reference resolves
	// to the top of its stack; leaving a scope pops every symbol that
	// scope pushed.
	names map[string][]SymbolKey
	// frames is a stack of per-scope name lists: frames[len-1] holds
	// every name declared directly in the scope currently being
	// lowered. startScope pushes a fresh frame, declare appends to the
	// top one, and finishScope pops it and removes exactly those names
	// from names.
	frames [][]string

	// globals memoizes the symbol minted for each distinct name that
	// resolve found nowhere in scope, so two references to the same free
	// name (print called twice, say) share one SymbolKey instead of
	// minting a fresh one per occurrence.
	globals map[string]SymbolKey
}

func newContext() *context {
	cur := NewScopeIndex()
	return &context{
		builder:      NewModuleBuilder(),
		currentScope: cur,
		nextScope:    cur.MakeNext(),
		names:        make(map[string][]SymbolKey),
		frames:       [][]string{nil}, // the top-level scope's frame
		globals:      make(map[string]SymbolKey),
	}
}

func (c *context) isInLoop() bool { return c.inLoopScope }

func (c *context) scopeIndex() ScopeIndex { return c.currentScope }

func (c *context) pushError(message string, r token.TextRange) {
	c.errors = append(c.errors, Diagnostic{Message: message, Range: r})
}

// startScope allocates a fresh scope index and applies kind's effect on
// in-loop status, returning a marker that must be passed to finishScope
// once the scope's contents have been lowered.
func (c *context) startScope(kind ScopeKind) scopeMarker {
	marker := scopeMarker{current: c.currentScope, inLoop: c.inLoopScope}
	c.currentScope = c.nextScope
	c.nextScope = c.nextScope.MakeNext()
	c.frames = append(c.frames, nil)
	switch kind {
	case ScopeNew:
		c.inLoopScope = false
	case ScopeLoop:
		c.inLoopScope = true
	case ScopeNest:
		// leave in-loop status untouched
	}
	return marker
}

// finishScope restores the scope and in-loop status captured by marker,
// and un-declares every name the exited scope pushed.
func (c *context) finishScope(marker scopeMarker) {
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	for _, name := range top {
		stack := c.names[name]
		c.names[name] = stack[:len(stack)-1]
	}
	c.currentScope = marker.current
	c.inLoopScope = marker.inLoop
}

// declare registers name as freshly bound in the current scope and
// returns its SymbolKey. Shadowing an outer declaration of the same
// spelling is allowed; it is recovered from on scope exit.
func (c *context) declare(name string) SymbolKey {
	sym := c.builder.AddSymbol(Symbol{Text: name, Scope: c.currentScope})
	c.names[name] = append(c.names[name], sym)
	top := len(c.frames) - 1
	c.frames[top] = append(c.frames[top], name)
	return sym
}

// resolve looks up the nearest enclosing declaration of name, reporting
// ok=false if name is not declared anywhere visible (a free/global
// reference, which lowerExpr reports as undefined unless it names a
// builtin the compiler binds).
func (c *context) resolve(name string) (SymbolKey, bool) {
	stack := c.names[name]
	if len(stack) == 0 {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// globalSymbol mints (or reuses) a symbol for name outside any lexical
// scope (Scope 0, never matched by a real startScope/declare pair), for
// a reference resolve couldn't find anywhere in scope. The compiler
// later binds these to a builtin; one that names no builtin, already
// reported as undefined by lowerExpr, is left unbound.
func (c *context) globalSymbol(name string) SymbolKey {
	if sym, ok := c.globals[name]; ok {
		return sym
	}
	sym := c.builder.AddSymbol(Symbol{Text: name, Scope: 0})
	c.globals[name] = sym
	return sym
}
