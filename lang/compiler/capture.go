package compiler

import "github.com/lico-lang/lico/lang/ir"

// freeVarsOfFunc computes fn's capture set: every Symbol its body refers
// to that fn itself does not declare, in first-use order (spec §4.4 step
// 1, "compute the free variable set"). A reference inside a nested
// function literal only contributes if IT is free in the nested function
// too — the nested function's own locals are never mistaken for a
// capture of the outer one, since each declaration gets its own unique
// ir.SymbolKey (see scope.go's context.declare).
func freeVarsOfFunc(m *ir.Module, fn ir.Function) []ir.SymbolKey {
	declared := map[ir.SymbolKey]bool{}
	for _, p := range fn.Params {
		declared[p] = true
	}
	var order []ir.SymbolKey
	used := map[ir.SymbolKey]bool{}
	markUse := func(sym ir.SymbolKey) {
		if sym == 0 || used[sym] {
			return
		}
		used[sym] = true
		order = append(order, sym)
	}

	var walkEffects func(effects []ir.Effect)
	var walkEffect func(e ir.Effect)
	var walkValue func(k ir.ValueKey)

	walkValue = func(k ir.ValueKey) {
		if !k.Valid() {
			return
		}
		v := m.Value(k)
		switch v.Kind {
		case ir.ValueBranch:
			walkValue(v.Condition)
			walkEffects(m.Effects(v.Then))
			walkValue(v.ThenTail)
			walkEffects(m.Effects(v.Else))
			walkValue(v.ElseTail)
		case ir.ValuePrefix:
			walkValue(v.Lhs)
		case ir.ValueBinary:
			walkValue(v.Lhs)
			walkValue(v.Rhs)
		case ir.ValueCall:
			walkValue(v.CallValue)
			for _, a := range m.ValueSlice(v.Args) {
				walkValue(a)
			}
		case ir.ValueIndex:
			walkValue(v.CallValue)
			walkValue(v.Index)
		case ir.ValueField:
			walkValue(v.CallValue)
		case ir.ValueMethodCall:
			walkValue(v.CallValue)
			for _, a := range m.ValueSlice(v.Args) {
				walkValue(a)
			}
		case ir.ValueBlock:
			walkEffects(m.Effects(v.Effects))
			walkValue(v.Tail)
		case ir.ValueLocal:
			if !declared[v.Local] {
				markUse(v.Local)
			}
		case ir.ValueFunction:
			nested := m.Function(v.Func)
			for _, sym := range freeVarsOfFunc(m, nested) {
				if !declared[sym] {
					markUse(sym)
				}
			}
		case ir.ValueArray:
			for _, e := range m.ValueSlice(v.Elems) {
				walkValue(e)
			}
		case ir.ValueTable:
			for _, f := range v.Fields {
				if f.Name.Kind == ir.TableKeyValue {
					walkValue(f.Name.Value)
				}
				walkValue(f.Value)
			}
		}
	}

	walkEffect = func(e ir.Effect) {
		switch e.Kind {
		case ir.EffectMakeLocal:
			walkValue(e.Value)
			declared[e.Name] = true
		case ir.EffectMakeFunc:
			nested := m.Function(e.Func)
			for _, sym := range freeVarsOfFunc(m, nested) {
				if !declared[sym] {
					markUse(sym)
				}
			}
			declared[e.Name] = true
		case ir.EffectSetLocal:
			if !declared[e.Local] {
				markUse(e.Local)
			}
			walkValue(e.Value)
		case ir.EffectSetIndex:
			walkValue(e.Target)
			walkValue(e.Index)
			walkValue(e.Value)
		case ir.EffectSetField:
			walkValue(e.Target)
			walkValue(e.Value)
		case ir.EffectSetFieldFunc:
			if !declared[e.Table] {
				markUse(e.Table)
			}
			nested := m.Function(e.Func)
			for _, sym := range freeVarsOfFunc(m, nested) {
				if !declared[sym] {
					markUse(sym)
				}
			}
		case ir.EffectSetMethod:
			if !declared[e.Table] {
				markUse(e.Table)
			}
			nested := m.Function(e.Func)
			for _, sym := range freeVarsOfFunc(m, nested) {
				if !declared[sym] {
					markUse(sym)
				}
			}
		case ir.EffectBranch:
			walkValue(e.Condition)
			walkEffects(m.Effects(e.Then))
			walkEffects(m.Effects(e.Else))
		case ir.EffectLoopFor:
			walkValue(e.Iterable)
			declared[e.Variable] = true
			walkEffects(m.Effects(e.Body))
		case ir.EffectLoopWhile:
			walkValue(e.Condition)
			walkEffects(m.Effects(e.Body))
		case ir.EffectScope:
			walkEffects(m.Effects(e.Body))
		case ir.EffectCall, ir.EffectMethodCall:
			walkValue(e.CallValue)
			for _, a := range m.ValueSlice(e.Args) {
				walkValue(a)
			}
		case ir.EffectReturn, ir.EffectNoEffectValue:
			walkValue(e.Value)
		}
	}

	walkEffects = func(effects []ir.Effect) {
		for _, e := range effects {
			walkEffect(e)
		}
	}

	walkEffects(m.Effects(fn.Effects))
	return order
}
