package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/lico-lang/lico/lang/compiler"
	"github.com/lico-lang/lico/lang/object"
)

// funcBuilder accumulates BeginFuncSection .. EndFuncSection, the
// compiler's function-value construction bracket (spec §4.4 step 6).
type funcBuilder struct {
	paramCount uint8
	body       *compiler.CodeBlock
	captures   []*object.Cell
}

// VM executes one compiled program. Grounded on the teacher's
// machine.Thread (Stdout/Stderr fields, a call stack of frames), adapted
// from nenuphar's tree-walking Call()/frame model to a flat-bytecode
// dispatch loop with an explicit iterator stack and func-builder stack.
type VM struct {
	Stdout io.Writer
	Stderr io.Writer

	heap     *object.Heap
	compiled *compiler.Compiled
	builtins map[string]object.HostFunc

	stack       Stack
	frames      []*frame
	leaveHooks  []leaveHook
	iterators   []iterator
	funcBuilders []*funcBuilder
}

// New returns a VM with a fresh heap, ready to Run one compiled program.
// Stdout/Stderr default to os.Stdout/os.Stderr; set them before calling
// Run to redirect print/println output (Run binds the builtin table
// against whatever Stdout holds at that point, not at New time).
func New() *VM {
	return &VM{heap: object.NewHeap(), Stdout: os.Stdout, Stderr: os.Stderr}
}

func (vm *VM) Heap() *object.Heap { return vm.heap }

// Run executes compiled's top-level code block to completion, returning
// the value of a top-level `return` statement, or Nil when execution
// reaches the end of the program, or the first unhandled runtime
// exception. The value of a final expression statement is discarded like
// that of any other expression statement; it is not returned.
func (vm *VM) Run(compiled *compiler.Compiled) (result object.Object, exc *Exception) {
	vm.compiled = compiled
	vm.builtins = Builtins(vm.Stdout)
	top := &frame{code: compiled.Top}
	for _, name := range compiled.BuiltinLocals {
		fn, ok := vm.builtins[name]
		if !ok {
			panic("vm: compiled program references unknown builtin " + name)
		}
		top.pushLocal(object.FromHost(fn))
	}
	vm.frames = []*frame{top}
	vm.leaveHooks = []leaveHook{{}}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Exception); ok {
				exc = e
				return
			}
			panic(r)
		}
	}()
	return vm.exec()
}

func (vm *VM) top() *frame { return vm.frames[len(vm.frames)-1] }

func (vm *VM) exec() (object.Object, *Exception) {
	for {
		f := vm.top()
		if f.pc >= len(f.code.Code) {
			// A well-formed CodeBlock always ends in Leave; reaching the
			// end without one is a compiler bug, not a user-facing error.
			panic(fmt.Sprintf("vm: fell off the end of a code block (pc=%d len=%d)", f.pc, len(f.code.Code)))
		}
		ic := f.code.Code[f.pc]

		switch ic.Op {
		case compiler.OpLoadInt:
			vm.stack.Push(object.Int(ic.Int))
		case compiler.OpLoadFloat:
			vm.stack.Push(object.Float(ic.Float))
		case compiler.OpLoadString:
			vm.stack.Push(object.String(ic.Str))
		case compiler.OpLoadBool:
			vm.stack.Push(object.Bool(ic.Bool))
		case compiler.OpLoadNil:
			vm.stack.Push(object.Nil())
		case compiler.OpLoadLocal:
			vm.stack.Push(f.locals[ic.Local].get())

		case compiler.OpUnload:
			object.Release(vm.heap, vm.stack.Pop())

		case compiler.OpStoreLocal:
			v := vm.stack.Pop()
			old := f.locals[ic.Local].get()
			object.Retain(vm.heap, v)
			object.Release(vm.heap, old)
			f.locals[ic.Local].set(v)
		case compiler.OpStoreNewLocal:
			v := vm.stack.Pop()
			object.Retain(vm.heap, v)
			f.pushLocal(v)

		case compiler.OpMakeArray:
			elems := vm.stack.PopN(ic.Count)
			vm.stack.Push(object.FromArray(object.NewArray(vm.heap, elems)))
		case compiler.OpMakeTable:
			if exc := vm.execMakeTable(f, ic); exc != nil {
				return object.Object{}, exc
			}

		case compiler.OpDropLocal:
			releaseFrameLocals(vm.heap, f.locals[len(f.locals)-ic.Count:])
			f.dropLocals(ic.Count)

		case compiler.OpJump:
			f.pc = f.pc + 1 + ic.Offset
			continue
		case compiler.OpJumpIfTrue:
			pos := f.pc
			if vm.stack.Pop().Truthy() {
				f.pc = pos + 1 + ic.Offset
				continue
			}
		case compiler.OpJumpIfFalse:
			pos := f.pc
			if !vm.stack.Pop().Truthy() {
				f.pc = pos + 1 + ic.Offset
				continue
			}

		case compiler.OpCall:
			if exc := vm.execCall(f, ic); exc != nil {
				return object.Object{}, exc
			}
			continue
		case compiler.OpCallMethod:
			if exc := vm.execCallMethod(f, ic); exc != nil {
				return object.Object{}, exc
			}
			continue

		case compiler.OpGetItem:
			if exc := vm.execGetItem(f); exc != nil {
				return object.Object{}, exc
			}
		case compiler.OpSetItem:
			if exc := vm.execSetItem(f); exc != nil {
				return object.Object{}, exc
			}
		case compiler.OpSetMethod:
			if exc := vm.execSetMethod(f, ic); exc != nil {
				return object.Object{}, exc
			}

		case compiler.OpAdd, compiler.OpSub, compiler.OpMul, compiler.OpDiv, compiler.OpMod:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			v, exc := binaryArith(f, arithSym(ic.Op), a, b)
			if exc != nil {
				return object.Object{}, exc
			}
			vm.stack.Push(v)
		case compiler.OpBitAnd, compiler.OpBitOr, compiler.OpBitXor, compiler.OpShiftL, compiler.OpShiftR:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			v, exc := bitwiseInt(f, bitwiseSym(ic.Op), a, b)
			if exc != nil {
				return object.Object{}, exc
			}
			vm.stack.Push(v)
		case compiler.OpEq, compiler.OpNotEq, compiler.OpLess, compiler.OpLessEq, compiler.OpGreater, compiler.OpGreaterEq:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			v, exc := compare(f, compareSym(ic.Op), a, b)
			if exc != nil {
				return object.Object{}, exc
			}
			vm.stack.Push(v)
		case compiler.OpConcat:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			v, exc := concat(f, a, b)
			if exc != nil {
				return object.Object{}, exc
			}
			vm.stack.Push(v)
		case compiler.OpUnm:
			a := vm.stack.Pop()
			v, exc := unaryMinus(f, a)
			if exc != nil {
				return object.Object{}, exc
			}
			vm.stack.Push(v)
		case compiler.OpUnp:
			a := vm.stack.Pop()
			if a.Kind != object.KindInt && a.Kind != object.KindFloat {
				return object.Object{}, raise(f, -1, fmt.Sprintf("unary + requires a number, got %s", a.TypeName()))
			}
			vm.stack.Push(a)
		case compiler.OpNot:
			vm.stack.Push(object.Bool(!vm.stack.Pop().Truthy()))
		case compiler.OpBitNot:
			a := vm.stack.Pop()
			if a.Kind != object.KindInt {
				return object.Object{}, raise(f, -1, fmt.Sprintf("bitwise not requires int, got %s", a.TypeName()))
			}
			vm.stack.Push(object.Int(^a.Int))

		case compiler.OpGetIter:
			it, exc := getIter(vm.heap, vm.stack.Pop())
			if exc != nil {
				return object.Object{}, exc
			}
			vm.iterators = append(vm.iterators, it)
		case compiler.OpIterMoveNext:
			top := vm.iterators[len(vm.iterators)-1]
			ok, exc := top.moveNext()
			if exc != nil {
				return object.Object{}, exc
			}
			if !ok {
				vm.iterators = vm.iterators[:len(vm.iterators)-1]
			}
			vm.stack.Push(object.Bool(ok))
		case compiler.OpIterCurrent:
			top := vm.iterators[len(vm.iterators)-1]
			vm.stack.Push(top.current())

		case compiler.OpBeginFuncSection:
			vm.funcBuilders = append(vm.funcBuilders, &funcBuilder{})
		case compiler.OpFuncSetProperty:
			b := vm.funcBuilders[len(vm.funcBuilders)-1]
			b.paramCount = ic.ParamN
			b.body = vm.compiled.Function(ic.FuncBody)
		case compiler.OpFuncAddCapture:
			b := vm.funcBuilders[len(vm.funcBuilders)-1]
			cell := f.locals[ic.Local].promote()
			b.captures = append(b.captures, cell)
		case compiler.OpEndFuncSection:
			n := len(vm.funcBuilders)
			b := vm.funcBuilders[n-1]
			vm.funcBuilders = vm.funcBuilders[:n-1]
			vm.stack.Push(object.FromFunction(object.NewFunction(b.body, b.captures)))

		case compiler.OpLeave:
			v := vm.stack.Pop()
			hook := vm.leaveHooks[len(vm.leaveHooks)-1]
			vm.leaveHooks = vm.leaveHooks[:len(vm.leaveHooks)-1]
			releaseFrameLocals(vm.heap, f.locals)
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				return v, nil
			}
			if hook.transform != nil {
				v = hook.transform(v)
			}
			vm.stack.Push(v)
			continue

		default:
			panic(fmt.Sprintf("vm: unhandled opcode %s", ic.Op))
		}
		f.pc++
	}
}

func releaseFrameLocals(heap *object.Heap, locals []localSlot) {
	for _, s := range locals {
		// A promoted (shared) slot's cell may still be referenced by a
		// live closure's environment; releasing its contents here would
		// under-count. Only unshared slots are this frame's sole owner.
		if s.cell == nil {
			object.Release(heap, s.val)
		}
	}
}

func arithSym(op compiler.Op) string {
	switch op {
	case compiler.OpAdd:
		return "+"
	case compiler.OpSub:
		return "-"
	case compiler.OpMul:
		return "*"
	case compiler.OpDiv:
		return "/"
	case compiler.OpMod:
		return "%"
	}
	return "?"
}

func bitwiseSym(op compiler.Op) string {
	switch op {
	case compiler.OpBitAnd:
		return "&"
	case compiler.OpBitOr:
		return "|"
	case compiler.OpBitXor:
		return "^"
	case compiler.OpShiftL:
		return "<<"
	case compiler.OpShiftR:
		return ">>"
	}
	return "?"
}

func compareSym(op compiler.Op) string {
	switch op {
	case compiler.OpEq:
		return "=="
	case compiler.OpNotEq:
		return "!="
	case compiler.OpLess:
		return "<"
	case compiler.OpLessEq:
		return "<="
	case compiler.OpGreater:
		return ">"
	case compiler.OpGreaterEq:
		return ">="
	}
	return "?"
}

func unaryMinus(f *frame, a object.Object) (object.Object, *Exception) {
	switch a.Kind {
	case object.KindInt:
		return object.Int(-a.Int), nil
	case object.KindFloat:
		return object.Float(-a.Float), nil
	default:
		return object.Object{}, raise(f, -1, fmt.Sprintf("unary - requires a number, got %s", a.TypeName()))
	}
}
