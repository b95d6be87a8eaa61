package compiler

// CodeBlock is one compiled function body (or the top-level program,
// held apart as Compiled.Top): its flat instruction array plus its parameter
// count. It is heap-allocated and reference-counted by being held behind
// a shared pointer from every object.Function value created over it, per
// spec §3's "compiled function's ICode is heap-allocated, reference-
// counted, and cloneable by reference" lifecycle note — the VM never
// copies a CodeBlock, only shares the pointer.
//
// Exception ↔ span fixup is lazy by construction: each ICode already
// carries its own Span/ArgSpans (see icode.go), so "the bytecode's side
// table" spec §7 refers to is simply this Code slice itself, indexed by
// the pc an exception was raised at.
type CodeBlock struct {
	Code       []ICode
	ParamCount uint8
}

// Compiled is a whole compiled program: the top-level code block plus
// every nested function body compiled along the way, in the order each
// body finished compiling (inner functions before the function around
// them), so a FunctionListID indexes directly into Functions.
type Compiled struct {
	Top       *CodeBlock
	Functions []*CodeBlock

	// BuiltinLocals names, in LocalID order, the builtins (print,
	// println, ...) the top-level frame's leading locals are bound to:
	// only the ones the program actually referenced somewhere (spec
	// §4.4's "conditional builtin binding"), computed once by Compile's
	// free-variable scan of the whole program rather than always
	// reserving every builtin's slot.
	BuiltinLocals []string
}

func (c *Compiled) Function(id FunctionListID) *CodeBlock { return c.Functions[id] }
