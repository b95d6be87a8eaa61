package ir

import "testing"

func TestModuleBuilderRoundTrip(t *testing.T) {
	b := NewModuleBuilder()

	one := b.AddValue(Value{Kind: ValueInt, Int: 1})
	two := b.AddValue(Value{Kind: ValueInt, Int: 2})
	sum := b.AddValue(Value{Kind: ValueBinary, BinOp: BinaryAdd, Lhs: one, Rhs: two})

	sym := b.AddSymbol(Symbol{Text: "x", Scope: NewScopeIndex()})
	effects := b.AddEffects([]Effect{{Kind: EffectMakeLocal, Name: sym, Value: sum}})

	mod := b.Finish(effects)

	if mod.RootEffects != effects {
		t.Fatalf("RootEffects = %v, want %v", mod.RootEffects, effects)
	}
	got := mod.Effects(effects)
	if len(got) != 1 || got[0].Kind != EffectMakeLocal {
		t.Fatalf("Effects(effects) = %#v", got)
	}
	if mod.Value(one).Int != 1 || mod.Value(two).Int != 2 {
		t.Fatal("value arena did not round trip")
	}
	if mod.Value(sum).Kind != ValueBinary || mod.Value(sum).BinOp != BinaryAdd {
		t.Fatal("binary value did not round trip")
	}
	if mod.Symbol(sym).Text != "x" {
		t.Fatalf("Symbol(sym).Text = %q, want x", mod.Symbol(sym).Text)
	}
}

func TestZeroKeysAreInvalid(t *testing.T) {
	var v ValueKey
	var e EffectsKey
	var s StringKey
	if v.Valid() || e.Valid() || s.Valid() {
		t.Fatal("zero-value keys must report Valid() == false")
	}
}

func TestModuleBuilderValueSlice(t *testing.T) {
	b := NewModuleBuilder()
	a := b.AddValue(Value{Kind: ValueInt, Int: 1})
	c := b.AddValue(Value{Kind: ValueInt, Int: 2})
	slice := b.AddValueSlice([]ValueKey{a, c})

	mod := b.Finish(b.AddEffects(nil))
	got := mod.ValueSlice(slice)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("ValueSlice = %v, want [%v %v]", got, a, c)
	}
}

func TestModuleBuilderFunctionsAccumulate(t *testing.T) {
	b := NewModuleBuilder()
	f1 := b.AddFunction(Function{Effects: b.AddEffects(nil)})
	f2 := b.AddFunction(Function{Effects: b.AddEffects(nil)})

	mod := b.Finish(b.AddEffects(nil))
	if len(mod.Funcs) != 2 || mod.Funcs[0] != f1 || mod.Funcs[1] != f2 {
		t.Fatalf("Funcs = %v, want [%v %v]", mod.Funcs, f1, f2)
	}
}
