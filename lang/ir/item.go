// Package ir is the intermediate representation the parser's CST is
// lowered into before compilation: a flat, arena-backed effect/value
// graph, adapted from original_source's foundation::ir module (itself a
// rowan-free IR sitting between the syntax tree and bytecode).
//
// Where the original uses NonZero<u32> newtypes so an Option<Key> costs
// nothing extra, Go has no niche optimization to exploit; the zero value
// of each key type is kept reserved as "no key" anyway, purely so a
// missing/elided key (a parse error recovered to nothing) can be told
// apart from key 1 without an extra bool.
package ir

// ValueKey indexes into a Module's value arena. The zero value is not a
// valid key; real keys start at 1.
type ValueKey uint32

// EffectsKey indexes into a Module's slice-of-effects arena: a single
// key names a whole ordered sequence of effects (a block body, a
// branch arm, a loop body), not one effect.
type EffectsKey uint32

// StringKey indexes into a Module's string arena.
type StringKey uint32

// SymbolKey indexes into a Module's symbol arena.
type SymbolKey uint32

// FunctionKey indexes into a Module's function arena.
type FunctionKey uint32

// ValueSliceKey indexes into a Module's slice-of-values arena (argument
// lists, array elements).
type ValueSliceKey uint32

// StringSliceKey indexes into a Module's slice-of-strings arena (a
// dotted name path lowered to its component field names).
type StringSliceKey uint32

// Valid reports whether k was actually produced by a builder method,
// as opposed to being a zero-value placeholder for "nothing here".
func (k ValueKey) Valid() bool        { return k != 0 }
func (k EffectsKey) Valid() bool      { return k != 0 }
func (k StringKey) Valid() bool       { return k != 0 }
func (k SymbolKey) Valid() bool       { return k != 0 }
func (k FunctionKey) Valid() bool     { return k != 0 }
func (k ValueSliceKey) Valid() bool   { return k != 0 }
func (k StringSliceKey) Valid() bool  { return k != 0 }

// ScopeIndex names a lexical scope introduced while lowering. Scope 1 is
// the module's top-level scope; every nested scope (a block, a loop
// body, a function body) gets the next index in allocation order.
type ScopeIndex uint32

// NewScopeIndex returns the top-level scope index.
func NewScopeIndex() ScopeIndex { return 1 }

// MakeNext returns the next scope index after s.
func (s ScopeIndex) MakeNext() ScopeIndex { return s + 1 }

// Symbol names one declared variable: its source spelling plus the
// scope it was declared in, which is what lets two lexically identical
// names in different scopes resolve to distinct locals.
type Symbol struct {
	Text  string
	Scope ScopeIndex
}

// EffectKind tags the variant held by an Effect.
type EffectKind uint8

const (
	EffectMakeLocal EffectKind = iota
	EffectMakeFunc
	EffectSetLocal
	EffectSetIndex
	EffectSetField
	EffectSetFieldFunc
	EffectSetMethod
	EffectBranch
	EffectLoopFor
	EffectLoopWhile
	EffectScope
	EffectCall
	EffectMethodCall
	EffectReturn
	EffectBreakLoop
	EffectContinueLoop
	EffectNoEffectValue
)

// Effect is a single statement-level action: declaring or mutating a
// local, running a branch or loop, making a call for its side effects,
// or returning. It mirrors foundation::ir::Effect one-for-one, folded
// from a Rust enum into a single tagged struct since Go has no sum
// types; unused fields for a given Kind are simply left zero.
type Effect struct {
	Kind EffectKind

	Name   SymbolKey // MakeLocal, MakeFunc
	Value  ValueKey  // MakeLocal, SetLocal, SetIndex, SetField, Return, NoEffectValue
	Func   FunctionKey
	Local  SymbolKey      // SetLocal
	Target ValueKey       // SetIndex, SetField
	Index  ValueKey       // SetIndex
	Field  StringKey      // SetField
	Table  SymbolKey      // SetFieldFunc, SetMethod
	Path   StringSliceKey // SetFieldFunc, SetMethod
	Method StringKey      // SetMethod

	Condition ValueKey   // Branch, LoopWhile
	Then      EffectsKey // Branch
	Else      EffectsKey // Branch
	Variable  SymbolKey  // LoopFor
	Iterable  ValueKey   // LoopFor
	Body      EffectsKey // LoopFor, LoopWhile, Scope

	CallValue ValueKey      // Call, MethodCall
	CallName  StringKey     // MethodCall
	Args      ValueSliceKey // Call, MethodCall
}

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	ValueBranch ValueKind = iota
	ValuePrefix
	ValueBinary
	ValueCall
	ValueIndex
	ValueField
	ValueMethodCall
	ValueBlock
	ValueLocal
	ValueInt
	ValueFloat
	ValueString
	ValueBool
	ValueNil
	ValueFunction
	ValueArray
	ValueTable
)

// PrefixOp identifies a unary operator lowered onto a Value.
type PrefixOp uint8

const (
	PrefixMissing PrefixOp = iota
	PrefixPlus
	PrefixMinus
	PrefixNot
	PrefixBitNot
)

// BinaryOp identifies a binary operator lowered onto a Value.
type BinaryOp uint8

const (
	BinaryMissing BinaryOp = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryShl
	BinaryShr
	BinaryConcat
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	BinaryAnd
	BinaryOr
	BinaryBitAnd
	BinaryBitOr
	BinaryBitXor
)

// TableKeyKind tags whether a table constructor entry's key is itself a
// computed Value or a fixed string.
type TableKeyKind uint8

const (
	TableKeyValue TableKeyKind = iota
	TableKeyString
)

// TableKeyName is a table constructor entry's key.
type TableKeyName struct {
	Kind  TableKeyKind
	Value ValueKey
	Name  StringKey
}

// TableField is one key/value pair of a table constructor.
type TableField struct {
	Name  TableKeyName
	Value ValueKey
}

// Value is a single expression-level computation. Like Effect, this
// folds foundation::ir::Value's Rust enum into one tagged struct.
type Value struct {
	Kind ValueKind

	Condition ValueKey   // Branch
	Then      EffectsKey // Branch
	ThenTail  ValueKey   // Branch
	Else      EffectsKey // Branch
	ElseTail  ValueKey   // Branch

	PrefOp PrefixOp // Prefix
	BinOp  BinaryOp // Binary
	Lhs    ValueKey // Prefix (operand), Binary
	Rhs    ValueKey // Binary

	CallValue ValueKey      // Call, Index, Field, MethodCall
	CallName  StringKey     // Field, MethodCall
	Args      ValueSliceKey // Call, MethodCall
	Index     ValueKey      // Index

	Effects EffectsKey // Block
	Tail    ValueKey   // Block

	Local SymbolKey // Local

	Int    int64
	Float  float64
	Str    string
	Bool   bool
	Func   FunctionKey
	Elems  ValueSliceKey // Array
	Fields []TableField  // Table
}

// Function is one lowered function body: its declared parameter
// symbols (in order, receiver first if it has one) plus the effects
// that make up its body.
type Function struct {
	Params  []SymbolKey
	Effects EffectsKey
}

// storage is the set of arenas a Module's keys index into. Every arena
// is 1-indexed: storage.values[0] is unused padding so that a zero
// ValueKey can keep meaning "no value" without colliding with a real
// entry.
type storage struct {
	values       []Value
	effectSlices [][]Effect
	strings      []string
	symbols      []Symbol
	funcs        []Function
	valueSlices  [][]ValueKey
	stringSlices [][]string
}

func newStorage() storage {
	return storage{
		values:       make([]Value, 1),
		effectSlices: make([][]Effect, 1),
		strings:      make([]string, 1),
		symbols:      make([]Symbol, 1),
		funcs:        make([]Function, 1),
		valueSlices:  make([][]ValueKey, 1),
		stringSlices: make([][]string, 1),
	}
}

// ModuleBuilder accumulates the arenas that make up a Module. It is the
// Go counterpart of foundation::ir::ModuleBuilder; unlike the original,
// there is no separate StrageBuilder layer underneath it, since Go's
// lack of a From/Into trait system removes the reason the original
// split the two types apart (see ir.rs's own comment on the split).
type ModuleBuilder struct {
	st  storage
	fns []FunctionKey
}

// NewModuleBuilder returns an empty builder.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{st: newStorage()}
}

// AddValue stores v and returns its key.
func (b *ModuleBuilder) AddValue(v Value) ValueKey {
	b.st.values = append(b.st.values, v)
	return ValueKey(len(b.st.values) - 1)
}

// AddValueSlice stores an ordered list of already-lowered values (an
// argument list, an array's elements) and returns its key.
func (b *ModuleBuilder) AddValueSlice(vs []ValueKey) ValueSliceKey {
	cp := append([]ValueKey(nil), vs...)
	b.st.valueSlices = append(b.st.valueSlices, cp)
	return ValueSliceKey(len(b.st.valueSlices) - 1)
}

// AddEffects stores an ordered sequence of effects (a block body) and
// returns its key.
func (b *ModuleBuilder) AddEffects(es []Effect) EffectsKey {
	cp := append([]Effect(nil), es...)
	b.st.effectSlices = append(b.st.effectSlices, cp)
	return EffectsKey(len(b.st.effectSlices) - 1)
}

// AddString interns a string literal or field name and returns its key.
func (b *ModuleBuilder) AddString(s string) StringKey {
	b.st.strings = append(b.st.strings, s)
	return StringKey(len(b.st.strings) - 1)
}

// AddStringSlice stores a dotted name path's component field names and
// returns its key.
func (b *ModuleBuilder) AddStringSlice(ss []string) StringSliceKey {
	cp := append([]string(nil), ss...)
	b.st.stringSlices = append(b.st.stringSlices, cp)
	return StringSliceKey(len(b.st.stringSlices) - 1)
}

// AddSymbol stores a declared symbol and returns its key.
func (b *ModuleBuilder) AddSymbol(sym Symbol) SymbolKey {
	b.st.symbols = append(b.st.symbols, sym)
	return SymbolKey(len(b.st.symbols) - 1)
}

// AddFunction stores a lowered function body and returns its key. The
// key is also recorded in the builder's function list, which becomes
// Module.Funcs on Finish — every function reachable from any part of
// the module, in declaration order, regardless of which value or
// effect closes over it.
func (b *ModuleBuilder) AddFunction(f Function) FunctionKey {
	b.st.funcs = append(b.st.funcs, f)
	key := FunctionKey(len(b.st.funcs) - 1)
	b.fns = append(b.fns, key)
	return key
}

// Finish consumes the builder and produces a Module whose top-level
// effects are rootEffects.
func (b *ModuleBuilder) Finish(rootEffects EffectsKey) *Module {
	return &Module{
		RootEffects: rootEffects,
		Funcs:       b.fns,
		st:          b.st,
	}
}

// Module is a complete lowered program: a set of arenas plus the key
// naming the top-level effect sequence to run.
type Module struct {
	RootEffects EffectsKey
	Funcs       []FunctionKey
	st          storage
}

func (m *Module) Value(k ValueKey) Value            { return m.st.values[k] }
func (m *Module) Effects(k EffectsKey) []Effect      { return m.st.effectSlices[k] }
func (m *Module) String(k StringKey) string          { return m.st.strings[k] }
func (m *Module) StringSlice(k StringSliceKey) []string { return m.st.stringSlices[k] }
func (m *Module) Symbol(k SymbolKey) Symbol          { return m.st.symbols[k] }
func (m *Module) Function(k FunctionKey) Function    { return m.st.funcs[k] }
func (m *Module) ValueSlice(k ValueSliceKey) []ValueKey { return m.st.valueSlices[k] }
