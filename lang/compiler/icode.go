// Package compiler lowers an IR module (package ir) into a flat bytecode
// array plus a side table of nested function bodies, adapted from
// original_source's compiler::compile module (icodesource.rs, fragment.rs,
// compile.rs) onto this tree's own lang/ir shapes.
package compiler

import "github.com/lico-lang/lico/lang/token"

// LocalID is a compile-time index into the currently active frame's local
// table, resolved by funcCtx.resolve.
type LocalID uint16

// FunctionListID indexes into a Compiled's Functions side table.
type FunctionListID uint32

// Op tags the variant held by an ICode instruction. Named one-for-one
// after original_source's ICodeSource enum; Go folds the enum's payload
// fields into ICode's blank ones instead of per-variant payload structs.
type Op uint8

const (
	OpLoadInt Op = iota
	OpLoadFloat
	OpLoadString
	OpLoadBool
	OpLoadNil
	OpLoadLocal

	OpUnload

	OpStoreLocal
	OpStoreNewLocal

	OpMakeArray
	OpMakeTable

	OpDropLocal

	OpJump
	OpJumpIfTrue
	OpJumpIfFalse

	OpCall
	OpCallMethod

	OpSetItem
	OpGetItem
	OpSetMethod

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpUnm
	OpUnp
	OpNot
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpConcat
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpShiftL
	OpShiftR

	OpGetIter
	OpIterMoveNext
	OpIterCurrent

	OpBeginFuncSection
	OpFuncSetProperty
	OpFuncAddCapture
	OpEndFuncSection

	OpLeave

	// OpTombstone marks a placeholder slot reserved by Fragment for a jump
	// that has not yet been patched. A Tombstone must never survive into
	// a Finish()ed Fragment; Finish panics if one does.
	OpTombstone
)

var opNames = [...]string{
	OpLoadInt:          "load_int",
	OpLoadFloat:        "load_float",
	OpLoadString:       "load_string",
	OpLoadBool:         "load_bool",
	OpLoadNil:          "load_nil",
	OpLoadLocal:        "load_local",
	OpUnload:           "unload",
	OpStoreLocal:       "store_local",
	OpStoreNewLocal:    "store_new_local",
	OpMakeArray:        "make_array",
	OpMakeTable:        "make_table",
	OpDropLocal:        "drop_local",
	OpJump:             "jump",
	OpJumpIfTrue:       "jump_if_true",
	OpJumpIfFalse:      "jump_if_false",
	OpCall:             "call",
	OpCallMethod:       "call_method",
	OpSetItem:          "set_item",
	OpGetItem:          "get_item",
	OpSetMethod:        "set_method",
	OpAdd:              "add",
	OpSub:              "sub",
	OpMul:              "mul",
	OpDiv:              "div",
	OpMod:              "mod",
	OpUnm:              "unm",
	OpUnp:              "unp",
	OpNot:              "not",
	OpEq:               "eq",
	OpNotEq:            "not_eq",
	OpLess:             "less",
	OpLessEq:           "less_eq",
	OpGreater:          "greater",
	OpGreaterEq:        "greater_eq",
	OpConcat:           "concat",
	OpBitAnd:           "bit_and",
	OpBitOr:            "bit_or",
	OpBitXor:           "bit_xor",
	OpBitNot:           "bit_not",
	OpShiftL:           "shift_l",
	OpShiftR:           "shift_r",
	OpGetIter:          "get_iter",
	OpIterMoveNext:     "iter_move_next",
	OpIterCurrent:      "iter_current",
	OpBeginFuncSection: "begin_func_section",
	OpFuncSetProperty:  "func_set_property",
	OpFuncAddCapture:   "func_add_capture",
	OpEndFuncSection:   "end_func_section",
	OpLeave:            "leave",
	OpTombstone:        "tombstone",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "illegal op"
}

// ICode is one bytecode instruction. Like ir.Value and ir.Effect, this
// folds a Rust payload-carrying enum into a single tagged struct; fields
// irrelevant to a given Op are left zero. Per spec §3 the design target
// is a fixed, small per-instruction size rather than a variable-length
// encoding, so operands are stored inline instead of varint-packed.
type ICode struct {
	Op Op

	Int    int64   // LoadInt
	Float  float64 // LoadFloat
	Str    string  // LoadString, CallMethod (method name), SetMethod (method name)
	Bool   bool    // LoadBool
	Local  LocalID // LoadLocal, StoreLocal, FuncAddCapture
	Count  int     // MakeArray, MakeTable, DropLocal
	Offset int     // Jump, JumpIfTrue, JumpIfFalse (signed, relative)

	Argc      uint8        // Call, CallMethod
	ParamN    uint8        // FuncSetProperty
	FuncBody  FunctionListID // FuncSetProperty

	// Span is the source range blamed for a runtime exception raised by
	// this instruction (the operator token, the callee expression, the
	// key expression, ...). Zero-value TextRange means "no span available".
	Span token.TextRange
	// ArgSpans holds the per-argument ranges for Call/CallMethod, and the
	// per-key ranges for MakeTable, in the same order as the operands
	// they describe.
	ArgSpans []token.TextRange
}
