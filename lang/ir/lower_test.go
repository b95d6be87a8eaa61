package ir

import "testing"

func TestLowerVarStmt(t *testing.T) {
	mod, errs := Lower("var x = 1 + 2\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	effects := mod.Effects(mod.RootEffects)
	if len(effects) != 1 || effects[0].Kind != EffectMakeLocal {
		t.Fatalf("effects = %#v", effects)
	}
	if mod.Symbol(effects[0].Name).Text != "x" {
		t.Fatalf("declared name = %q, want x", mod.Symbol(effects[0].Name).Text)
	}
	v := mod.Value(effects[0].Value)
	if v.Kind != ValueBinary || v.BinOp != BinaryAdd {
		t.Fatalf("initializer = %#v, want a '+' binary value", v)
	}
}

func TestLowerUndefinedNameIsDiagnostic(t *testing.T) {
	_, errs := Lower("x = 1\n")
	if len(errs) == 0 {
		t.Fatal("assigning to an undeclared name must produce a diagnostic")
	}
}

func TestLowerShadowing(t *testing.T) {
	mod, errs := Lower("var x = 1\nvar x = x + 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	effects := mod.Effects(mod.RootEffects)
	if len(effects) != 2 {
		t.Fatalf("want 2 effects, got %d", len(effects))
	}
	outer, inner := effects[0].Name, effects[1].Name
	if outer == inner {
		t.Fatal("the second `var x` must shadow with a distinct symbol")
	}
	// the second declaration's initializer must resolve `x` to the first
	// (outer) binding, not to the one it is about to introduce.
	initVal := mod.Value(effects[1].Value)
	if initVal.Kind != ValueBinary {
		t.Fatalf("initializer = %#v", initVal)
	}
	lhs := mod.Value(initVal.Lhs)
	if lhs.Kind != ValueLocal || lhs.Local != outer {
		t.Fatalf("rhs of second var must reference the outer x, got %#v", lhs)
	}
}

func TestLowerFuncStmtParamsAndReturn(t *testing.T) {
	mod, errs := Lower("func add(a, b) return a + b end\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	effects := mod.Effects(mod.RootEffects)
	if len(effects) != 1 || effects[0].Kind != EffectMakeFunc {
		t.Fatalf("effects = %#v", effects)
	}
	fn := mod.Function(effects[0].Func)
	if len(fn.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(fn.Params))
	}
	body := mod.Effects(fn.Effects)
	if len(body) != 1 || body[0].Kind != EffectReturn {
		t.Fatalf("function body = %#v", body)
	}
}

func TestLowerBreakOutsideLoopIsDiagnostic(t *testing.T) {
	_, errs := Lower("break\n")
	if len(errs) == 0 {
		t.Fatal("a top-level break must produce a diagnostic")
	}
}

func TestLowerBreakInsideLoopIsClean(t *testing.T) {
	_, errs := Lower("while true do break end\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
}

func TestLowerForLoopDeclaresVariable(t *testing.T) {
	mod, errs := Lower("for i in xs do var y = i end\n")
	// `xs` is never declared, so this must report exactly one
	// undefined-name diagnostic and nothing else.
	if len(errs) != 1 {
		t.Fatalf("want exactly 1 diagnostic (undefined xs), got %v", errs)
	}
	effects := mod.Effects(mod.RootEffects)
	if len(effects) != 1 || effects[0].Kind != EffectLoopFor {
		t.Fatalf("effects = %#v", effects)
	}
}

func TestLowerIfElifElseChain(t *testing.T) {
	src := "if a then\n  var x = 1\nelif b then\n  var x = 2\nelse\n  var x = 3\nend\n"
	mod, errs := Lower(src)
	// a and b are free references (no declaration), expected to surface
	// as undefined-name diagnostics rather than panics.
	_ = errs
	effects := mod.Effects(mod.RootEffects)
	if len(effects) != 1 || effects[0].Kind != EffectNoEffectValue {
		t.Fatalf("effects = %#v", effects)
	}
	branch := mod.Value(effects[0].Value)
	if branch.Kind != ValueBranch {
		t.Fatalf("top value = %#v, want a branch", branch)
	}
	// the else arm must itself be a nested branch value (the elif),
	// not a bare nil: this is what TestLowerIfElifElseChain exists to
	// pin down, since an earlier version of lowerElseChain dropped all
	// but the last elif/else arm.
	elseEffects := mod.Effects(branch.Else)
	if len(elseEffects) != 0 {
		t.Fatalf("outer else effects = %#v, want empty (tail-only)", elseEffects)
	}
	nested := mod.Value(branch.ElseTail)
	if nested.Kind != ValueBranch {
		t.Fatalf("outer else tail = %#v, want a nested branch for the elif", nested)
	}
}

func TestLowerCallAndFieldChain(t *testing.T) {
	mod, errs := Lower("var t = {}\nt.f(1, 2)\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	effects := mod.Effects(mod.RootEffects)
	if len(effects) != 2 {
		t.Fatalf("want 2 effects, got %d", len(effects))
	}
	call := mod.Value(effects[1].Value)
	if call.Kind != ValueCall {
		t.Fatalf("second statement's value = %#v, want a call", call)
	}
	callee := mod.Value(call.CallValue)
	if callee.Kind != ValueField {
		t.Fatalf("callee = %#v, want a field access", callee)
	}
	args := mod.ValueSlice(call.Args)
	if len(args) != 2 {
		t.Fatalf("want 2 args, got %d", len(args))
	}
}

func TestLowerTableConstFields(t *testing.T) {
	mod, errs := Lower("var t = { a = 1, [b] = 2, 3 }\n")
	_ = errs
	effects := mod.Effects(mod.RootEffects)
	table := mod.Value(effects[0].Value)
	if table.Kind != ValueTable {
		t.Fatalf("value = %#v, want a table", table)
	}
	if len(table.Fields) != 3 {
		t.Fatalf("want 3 fields, got %d", len(table.Fields))
	}
	if table.Fields[0].Name.Kind != TableKeyString {
		t.Fatalf("first field key = %#v, want a string key", table.Fields[0].Name)
	}
	if table.Fields[1].Name.Kind != TableKeyValue {
		t.Fatalf("second field key = %#v, want a computed value key", table.Fields[1].Name)
	}
}
