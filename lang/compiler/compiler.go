package compiler

import (
	"github.com/lico-lang/lico/lang/ir"
)

// builtinNames lists every identifier the compiler will bind to a VM
// host function when a program references it without ever declaring it
// (spec §5's builtin surface: print/println). Compiled.BuiltinLocals
// tells the VM which of these, in which LocalID order, the top-level
// frame needs pre-populated (see vm.Run).
var builtinNames = map[string]bool{
	"print":   true,
	"println": true,
}

// Compile lowers an already-IR'd module into flat bytecode (spec §4.4).
// IR-level name resolution is done; Compile's job is purely to assign
// runtime LocalIDs, compute closure capture sets, and linearize the
// effect/value graph into ICode.
func Compile(m *ir.Module) *Compiled {
	c := &compilerState{module: m}

	topFn := ir.Function{Effects: m.RootEffects}
	free := freeVarsOfFunc(m, topFn)

	ctx := newFuncCtx(m)
	var builtinLocals []string
	for _, sym := range free {
		name := m.Symbol(sym).Text
		if !builtinNames[name] {
			// A genuinely undeclared reference with no matching builtin
			// (ir.Lower reports it as undefined): left unbound, so
			// compileValue's ValueLocal case degrades it to Nil rather
			// than crashing the compiler.
			continue
		}
		ctx.bind(sym)
		builtinLocals = append(builtinLocals, name)
	}

	ctx.enterScope()
	frag := c.compileEffects(ctx, NewFragment(), m.Effects(m.RootEffects))
	ctx.exitScope() // no DropLocal needed: Leave tears the whole frame down anyway

	frag.Append(ICode{Op: OpLoadNil})
	frag.Append(ICode{Op: OpLeave})

	top := &CodeBlock{Code: frag.Finish(), ParamCount: 0}
	return &Compiled{Top: top, Functions: c.functions, BuiltinLocals: builtinLocals}
}

// compilerState accumulates every nested function body compiled, so
// FunctionListIDs are assigned in the order their compilation finishes:
// a function nested inside another gets a lower ID than the one around
// it (spec §4.4 step 6's "register in a Functions table").
type compilerState struct {
	module    *ir.Module
	functions []*CodeBlock
}

func (c *compilerState) registerFunction(block *CodeBlock) FunctionListID {
	id := FunctionListID(len(c.functions))
	c.functions = append(c.functions, block)
	return id
}

// compileEffects compiles an ordered effect list into frag, returning it
// for chaining. Every effect compiles to zero net stack growth (spec
// §4.3's invariant, following from ValueBlock's tail always being Nil).
func (c *compilerState) compileEffects(ctx *funcCtx, frag *Fragment, effects []ir.Effect) *Fragment {
	for _, e := range effects {
		c.compileEffect(ctx, frag, e)
	}
	return frag
}

func (c *compilerState) compileEffect(ctx *funcCtx, frag *Fragment, e ir.Effect) {
	m := c.module
	switch e.Kind {
	case ir.EffectMakeLocal:
		c.compileValue(ctx, frag, e.Value)
		ctx.bind(e.Name)
		frag.Append(ICode{Op: OpStoreNewLocal})

	case ir.EffectMakeFunc:
		c.compileFunctionLiteral(ctx, frag, m.Function(e.Func))
		ctx.bind(e.Name)
		frag.Append(ICode{Op: OpStoreNewLocal})

	case ir.EffectSetLocal:
		c.compileValue(ctx, frag, e.Value)
		local, _ := ctx.resolve(e.Local)
		frag.Append(ICode{Op: OpStoreLocal, Local: local})

	case ir.EffectSetIndex:
		c.compileValue(ctx, frag, e.Target)
		c.compileValue(ctx, frag, e.Index)
		c.compileValue(ctx, frag, e.Value)
		frag.Append(ICode{Op: OpSetItem})

	case ir.EffectSetField:
		c.compileValue(ctx, frag, e.Target)
		frag.Append(ICode{Op: OpLoadString, Str: m.String(e.Field)})
		c.compileValue(ctx, frag, e.Value)
		frag.Append(ICode{Op: OpSetItem})

	case ir.EffectSetFieldFunc:
		// `func t.a.b.name(...) .. end`: navigate every path segment but
		// the last via GetItem, then SetItem the function onto the last.
		local, _ := ctx.resolve(e.Table)
		frag.Append(ICode{Op: OpLoadLocal, Local: local})
		path := m.StringSlice(e.Path)
		for i := 0; i < len(path)-1; i++ {
			frag.Append(ICode{Op: OpLoadString, Str: path[i]})
			frag.Append(ICode{Op: OpGetItem})
		}
		frag.Append(ICode{Op: OpLoadString, Str: path[len(path)-1]})
		c.compileFunctionLiteral(ctx, frag, m.Function(e.Func))
		frag.Append(ICode{Op: OpSetItem})

	case ir.EffectSetMethod:
		// `func t.a->name(self, ...) .. end`: navigate every path segment
		// (if any) via GetItem to reach the target table, then SetMethod
		// binds the function into that table's method map (not its
		// ordinary entries map) under the method's name.
		local, _ := ctx.resolve(e.Table)
		frag.Append(ICode{Op: OpLoadLocal, Local: local})
		for _, seg := range m.StringSlice(e.Path) {
			frag.Append(ICode{Op: OpLoadString, Str: seg})
			frag.Append(ICode{Op: OpGetItem})
		}
		c.compileFunctionLiteral(ctx, frag, m.Function(e.Func))
		frag.Append(ICode{Op: OpSetMethod, Str: m.String(e.Method)})

	case ir.EffectBranch:
		thenFrag := c.compileScopedEffects(ctx, m.Effects(e.Then))
		elseFrag := c.compileScopedEffects(ctx, m.Effects(e.Else))
		c.compileValue(ctx, frag, e.Condition)
		emitBranch(frag, thenFrag, elseFrag)

	case ir.EffectLoopFor:
		c.compileForLoop(ctx, frag, e)

	case ir.EffectLoopWhile:
		c.compileWhileLoop(ctx, frag, e)

	case ir.EffectScope:
		frag.AppendFragment(c.compileScopedEffects(ctx, m.Effects(e.Body)))

	case ir.EffectCall:
		c.compileValue(ctx, frag, e.CallValue)
		args := m.ValueSlice(e.Args)
		for _, a := range args {
			c.compileValue(ctx, frag, a)
		}
		frag.Append(ICode{Op: OpCall, Argc: uint8(len(args))})
		frag.Append(ICode{Op: OpUnload})

	case ir.EffectMethodCall:
		c.compileMethodCall(ctx, frag, e.CallValue, e.CallName, e.Args)
		frag.Append(ICode{Op: OpUnload})

	case ir.EffectReturn:
		c.compileValue(ctx, frag, e.Value)
		frag.Append(ICode{Op: OpLeave})

	case ir.EffectBreakLoop:
		c.compileLoopExit(ctx, frag, false)

	case ir.EffectContinueLoop:
		c.compileLoopExit(ctx, frag, true)

	case ir.EffectNoEffectValue:
		c.compileValue(ctx, frag, e.Value)
		frag.Append(ICode{Op: OpUnload})
	}
}

// compileValueArm compiles an if-expression arm: its effects, then its
// tail value, then drops the arm's own locals — safe to do after the
// tail push since DropLocal only ever shrinks the locals array, never
// touching the operand stack the tail value just landed on.
func (c *compilerState) compileValueArm(ctx *funcCtx, effects []ir.Effect, tail ir.ValueKey) *Fragment {
	ctx.enterScope()
	f := c.compileEffects(ctx, NewFragment(), effects)
	c.compileValue(ctx, f, tail)
	n := ctx.exitScope()
	if n > 0 {
		f.Append(ICode{Op: OpDropLocal, Count: n})
	}
	return f
}

// compileScopedEffects compiles effects as their own lexical scope,
// dropping whatever locals it declared at the end — the shape every
// branch arm (EffectBranch's Then/Else) and EffectScope need.
func (c *compilerState) compileScopedEffects(ctx *funcCtx, effects []ir.Effect) *Fragment {
	ctx.enterScope()
	f := c.compileEffects(ctx, NewFragment(), effects)
	n := ctx.exitScope()
	if n > 0 {
		f.Append(ICode{Op: OpDropLocal, Count: n})
	}
	return f
}

// compileLoopExit emits the DropLocal that unwinds back to loop entry
// (break) or iteration start (continue — identical baseline, since a
// for-loop's own per-iteration variable must be dropped and re-bound by
// the next IterCurrent/StoreNewLocal either way) followed by the jump.
// isContinue selects a backward jump to the loop head; otherwise a
// forward jump past the loop.
func (c *compilerState) compileLoopExit(ctx *funcCtx, frag *Fragment, isContinue bool) {
	lp, ok := ctx.currentLoop()
	if !ok {
		// break/continue outside a loop: lower.go already reports this as
		// a diagnostic and still emits the effect; compile it to a no-op
		// rather than panicking on malformed input.
		return
	}
	n := ctx.nextLocal - lp.entryNextLocal
	if n > 0 {
		frag.Append(ICode{Op: OpDropLocal, Count: n})
	}
	if isContinue {
		frag.AppendBackwardJump(OpJump)
	} else {
		frag.AppendForwardJump(OpJump)
	}
}

// emitBranch splices cond (already on frag) into an if/else, using
// hand-computed offsets instead of Fragment's tombstone machinery for
// its own two jumps (conditional exit, then-arm's skip-past-else),
// since both arms' lengths are already known by the time they're
// spliced in — any break/continue tombstones an arm still carries
// (from a loop enclosing this branch) simply ride along through
// AppendFragment untouched, to be resolved by that loop's own Patch
// calls once this whole branch has been merged up into its body
// fragment.
func emitBranch(frag *Fragment, thenFrag, elseFrag *Fragment) {
	thenLen := thenFrag.Len()
	elseLen := elseFrag.Len()
	frag.Append(ICode{Op: OpJumpIfFalse, Offset: thenLen + 1})
	frag.AppendFragment(thenFrag)
	frag.Append(ICode{Op: OpJump, Offset: elseLen})
	frag.AppendFragment(elseFrag)
}

// compileWhileLoop lowers `while cond do body end` (spec §4.4): a
// condition re-checked at the top of every iteration, normal fallthrough
// and continue share one backward edge to the condition check, break and
// the condition-false exit share one forward edge to right after it.
func (c *compilerState) compileWhileLoop(ctx *funcCtx, frag *Fragment, e ir.Effect) {
	m := c.module
	ctx.pushLoop(ctx.nextLocal)
	defer ctx.popLoop()

	head := NewFragment()
	c.compileValue(ctx, head, e.Condition)
	head.AppendForwardJump(OpJumpIfFalse)

	ctx.enterScope()
	body := c.compileEffects(ctx, NewFragment(), m.Effects(e.Body))
	n := ctx.exitScope()
	if n > 0 {
		body.Append(ICode{Op: OpDropLocal, Count: n})
	}

	head.PatchForwardJump(OpJumpIfFalse, body.Len()+1)
	body.PatchForwardJump(OpJump, 1)

	merged := NewFragment()
	merged.AppendFragment(head)
	merged.AppendFragment(body)
	merged.AppendBackwardJump(OpJump)
	merged.PatchBackwardJump(OpJump, -1)

	frag.AppendFragment(merged)
}

// compileForLoop lowers `for v in iterable do body end` onto the
// GetIter/IterMoveNext/IterCurrent protocol (spec §4.4): GetIter runs
// once; the per-iteration variable is a fresh StoreNewLocal every pass,
// dropped (along with the body's own locals) before the next check.
func (c *compilerState) compileForLoop(ctx *funcCtx, frag *Fragment, e ir.Effect) {
	m := c.module
	c.compileValue(ctx, frag, e.Iterable)
	frag.Append(ICode{Op: OpGetIter})

	ctx.pushLoop(ctx.nextLocal)
	defer ctx.popLoop()

	head := NewFragment()
	head.Append(ICode{Op: OpIterMoveNext})
	head.AppendForwardJump(OpJumpIfFalse)
	head.Append(ICode{Op: OpIterCurrent})
	ctx.bind(e.Variable)
	head.Append(ICode{Op: OpStoreNewLocal})

	ctx.enterScope()
	body := c.compileEffects(ctx, NewFragment(), m.Effects(e.Body))
	n := ctx.exitScope()
	// Drop the body's own locals plus the per-iteration loop variable
	// before the next head check re-binds a fresh one.
	n++
	body.Append(ICode{Op: OpDropLocal, Count: n})

	head.PatchForwardJump(OpJumpIfFalse, body.Len()+1)
	body.PatchForwardJump(OpJump, 1)

	merged := NewFragment()
	merged.AppendFragment(head)
	merged.AppendFragment(body)
	merged.AppendBackwardJump(OpJump)
	merged.PatchBackwardJump(OpJump, -1)

	frag.AppendFragment(merged)
}

// compileMethodCall lowers `recv->name(args...)` to CallMethod (spec
// §4.6): recv is compiled first, then each argument. At call time the VM
// looks `name` up in a table receiver's own method map (filled by
// SetMethod from `func t->name(...) end`, which lower.go lowers through
// EffectSetMethod) before the receiver type's built-in methods; ordinary
// table fields are not consulted. recv is prepended as an implicit self
// argument only for a method-map entry marked ImplicitSelf.
func (c *compilerState) compileMethodCall(ctx *funcCtx, frag *Fragment, recv ir.ValueKey, name ir.StringKey, argsKey ir.ValueSliceKey) {
	m := c.module
	c.compileValue(ctx, frag, recv)
	args := m.ValueSlice(argsKey)
	for _, a := range args {
		c.compileValue(ctx, frag, a)
	}
	frag.Append(ICode{Op: OpCallMethod, Str: m.String(name), Argc: uint8(len(args))})
}

// compileValue compiles one expression, leaving exactly one value on
// the stack.
func (c *compilerState) compileValue(ctx *funcCtx, frag *Fragment, k ir.ValueKey) {
	m := c.module
	if !k.Valid() {
		frag.Append(ICode{Op: OpLoadNil})
		return
	}
	v := m.Value(k)
	switch v.Kind {
	case ir.ValueInt:
		frag.Append(ICode{Op: OpLoadInt, Int: v.Int})
	case ir.ValueFloat:
		frag.Append(ICode{Op: OpLoadFloat, Float: v.Float})
	case ir.ValueString:
		frag.Append(ICode{Op: OpLoadString, Str: v.Str})
	case ir.ValueBool:
		frag.Append(ICode{Op: OpLoadBool, Bool: v.Bool})
	case ir.ValueNil:
		frag.Append(ICode{Op: OpLoadNil})

	case ir.ValueLocal:
		local, ok := ctx.resolve(v.Local)
		if !ok {
			// A genuinely unbound global (no declaration, not a known
			// builtin either): compiles to Nil rather than panicking, the
			// same "degrade, don't crash the compiler" stance lower.go
			// takes for its own unresolved-input cases.
			frag.Append(ICode{Op: OpLoadNil})
			return
		}
		frag.Append(ICode{Op: OpLoadLocal, Local: local})

	case ir.ValuePrefix:
		c.compileValue(ctx, frag, v.Lhs)
		switch v.PrefOp {
		case ir.PrefixMinus:
			frag.Append(ICode{Op: OpUnm})
		case ir.PrefixPlus:
			frag.Append(ICode{Op: OpUnp})
		case ir.PrefixNot:
			frag.Append(ICode{Op: OpNot})
		case ir.PrefixBitNot:
			frag.Append(ICode{Op: OpBitNot})
		}

	case ir.ValueBinary:
		c.compileBinary(ctx, frag, v)

	case ir.ValueBranch:
		thenFrag := c.compileValueArm(ctx, m.Effects(v.Then), v.ThenTail)
		elseFrag := c.compileValueArm(ctx, m.Effects(v.Else), v.ElseTail)
		c.compileValue(ctx, frag, v.Condition)
		emitBranch(frag, thenFrag, elseFrag)

	case ir.ValueCall:
		c.compileValue(ctx, frag, v.CallValue)
		args := m.ValueSlice(v.Args)
		for _, a := range args {
			c.compileValue(ctx, frag, a)
		}
		frag.Append(ICode{Op: OpCall, Argc: uint8(len(args))})

	case ir.ValueMethodCall:
		c.compileMethodCall(ctx, frag, v.CallValue, v.CallName, v.Args)

	case ir.ValueIndex:
		c.compileValue(ctx, frag, v.CallValue)
		c.compileValue(ctx, frag, v.Index)
		frag.Append(ICode{Op: OpGetItem})

	case ir.ValueField:
		c.compileValue(ctx, frag, v.CallValue)
		frag.Append(ICode{Op: OpLoadString, Str: m.String(v.CallName)})
		frag.Append(ICode{Op: OpGetItem})

	case ir.ValueBlock:
		ctx.enterScope()
		inner := c.compileEffects(ctx, NewFragment(), m.Effects(v.Effects))
		c.compileValue(ctx, inner, v.Tail)
		n := ctx.exitScope()
		frag.AppendFragment(inner)
		if n > 0 {
			// The block's own locals must be dropped without disturbing
			// its tail value, already on top of the stack: DropLocal only
			// ever touches the locals array, never the operand stack, so
			// appending it after the tail's push is safe.
			frag.Append(ICode{Op: OpDropLocal, Count: n})
		}

	case ir.ValueFunction:
		c.compileFunctionLiteral(ctx, frag, m.Function(v.Func))

	case ir.ValueArray:
		elems := m.ValueSlice(v.Elems)
		for _, e := range elems {
			c.compileValue(ctx, frag, e)
		}
		frag.Append(ICode{Op: OpMakeArray, Count: len(elems)})

	case ir.ValueTable:
		for _, field := range v.Fields {
			switch field.Name.Kind {
			case ir.TableKeyString:
				frag.Append(ICode{Op: OpLoadString, Str: m.String(field.Name.Name)})
			case ir.TableKeyValue:
				c.compileValue(ctx, frag, field.Name.Value)
			}
			c.compileValue(ctx, frag, field.Value)
		}
		frag.Append(ICode{Op: OpMakeTable, Count: len(v.Fields)})
	}
}

// compileBinary lowers a binary operator. BinaryAnd/BinaryOr are
// rewritten onto the same branch machinery as an if-expression (`a and
// b` ≡ `if a then b else false end`, `a or b` ≡ `if a then true else b
// end`) so the lhs's value is only used for its truthiness and the rhs
// never evaluates unless needed — every other operator compiles to a
// single opcode over both eagerly-evaluated operands.
func (c *compilerState) compileBinary(ctx *funcCtx, frag *Fragment, v ir.Value) {
	if v.BinOp == ir.BinaryAnd || v.BinOp == ir.BinaryOr {
		rhsFrag := NewFragment()
		c.compileValue(ctx, rhsFrag, v.Rhs)
		litFrag := NewFragment()
		litFrag.Append(ICode{Op: OpLoadBool, Bool: v.BinOp == ir.BinaryOr})
		c.compileValue(ctx, frag, v.Lhs)
		if v.BinOp == ir.BinaryAnd {
			emitBranch(frag, rhsFrag, litFrag)
		} else {
			emitBranch(frag, litFrag, rhsFrag)
		}
		return
	}

	c.compileValue(ctx, frag, v.Lhs)
	c.compileValue(ctx, frag, v.Rhs)
	switch v.BinOp {
	case ir.BinaryAdd:
		frag.Append(ICode{Op: OpAdd})
	case ir.BinarySub:
		frag.Append(ICode{Op: OpSub})
	case ir.BinaryMul:
		frag.Append(ICode{Op: OpMul})
	case ir.BinaryDiv:
		frag.Append(ICode{Op: OpDiv})
	case ir.BinaryMod:
		frag.Append(ICode{Op: OpMod})
	case ir.BinaryShl:
		frag.Append(ICode{Op: OpShiftL})
	case ir.BinaryShr:
		frag.Append(ICode{Op: OpShiftR})
	case ir.BinaryConcat:
		frag.Append(ICode{Op: OpConcat})
	case ir.BinaryEq:
		frag.Append(ICode{Op: OpEq})
	case ir.BinaryNe:
		frag.Append(ICode{Op: OpNotEq})
	case ir.BinaryLt:
		frag.Append(ICode{Op: OpLess})
	case ir.BinaryLe:
		frag.Append(ICode{Op: OpLessEq})
	case ir.BinaryGt:
		frag.Append(ICode{Op: OpGreater})
	case ir.BinaryGe:
		frag.Append(ICode{Op: OpGreaterEq})
	case ir.BinaryBitAnd:
		frag.Append(ICode{Op: OpBitAnd})
	case ir.BinaryBitOr:
		frag.Append(ICode{Op: OpBitOr})
	case ir.BinaryBitXor:
		frag.Append(ICode{Op: OpBitXor})
	}
}

// compileFunctionLiteral implements spec §4.4 step 6's construction
// bracket: compute fn's capture set, bind captures then params as the
// child frame's leading locals, compile its body, register it, and emit
// BeginFuncSection/FuncSetProperty/FuncAddCapture*/EndFuncSection into
// the enclosing fragment. Every captured symbol that names a declaration
// or a builtin is already bound in the parent's own funcCtx — either
// directly declared there or, if parent is itself a nested function, one
// of parent's own capture cells — since freeVarsOfFunc computed it as
// free in fn and a parent function's capture set transitively includes
// everything its nested functions need. A free name that ir.Lower
// reported as undefined has no binding, and its capture uses local 0.
func (c *compilerState) compileFunctionLiteral(parent *funcCtx, parentFrag *Fragment, fn ir.Function) {
	m := c.module
	captures := freeVarsOfFunc(m, fn)

	child := newFuncCtx(m)
	for _, sym := range captures {
		child.bind(sym)
	}
	for _, p := range fn.Params {
		child.bind(p)
	}

	child.enterScope()
	body := c.compileEffects(child, NewFragment(), m.Effects(fn.Effects))
	child.exitScope()
	body.Append(ICode{Op: OpLoadNil})
	body.Append(ICode{Op: OpLeave})

	block := &CodeBlock{Code: body.Finish(), ParamCount: uint8(len(fn.Params))}
	id := c.registerFunction(block)

	parentFrag.Append(ICode{Op: OpBeginFuncSection})
	parentFrag.Append(ICode{Op: OpFuncSetProperty, ParamN: uint8(len(fn.Params)), FuncBody: id})
	for _, sym := range captures {
		local, _ := parent.resolve(sym)
		parentFrag.Append(ICode{Op: OpFuncAddCapture, Local: local})
	}
	parentFrag.Append(ICode{Op: OpEndFuncSection})
}
