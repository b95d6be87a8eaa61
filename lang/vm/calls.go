package vm

import (
	"fmt"

	"github.com/lico-lang/lico/lang/compiler"
	"github.com/lico-lang/lico/lang/object"
)

// execCall implements plain `callee(args...)` (spec §4.5's Call
// convention): bind captured cells as shared locals, then arguments as
// value locals, in a fresh frame.
func (vm *VM) execCall(f *frame, ic compiler.ICode) *Exception {
	argc := int(ic.Argc)
	args := vm.stack.PopN(argc)
	callee := vm.stack.Pop()

	switch callee.Kind {
	case object.KindFunction:
		fn := callee.Func
		if fn.ParamCount() != argc {
			return raise(f, -1, fmt.Sprintf("function wants %d argument(s), got %d", fn.ParamCount(), argc))
		}
		vm.pushCallFrame(fn, args)
		f.pc++
		return nil
	case object.KindHostFunction:
		result, err := callee.Host(args)
		if err != nil {
			return raise(f, -1, err.Error())
		}
		vm.stack.Push(result)
		f.pc++
		return nil
	default:
		return raise(f, -1, fmt.Sprintf("value of type %s is not callable", callee.TypeName()))
	}
}

// pushCallFrame activates fn over args: its captured cells become this
// activation's leading shared locals, followed by one value local per
// argument (spec §4.5).
func (vm *VM) pushCallFrame(fn *object.Function, args []object.Object) {
	nf := &frame{code: fn.Code}
	for _, cell := range fn.Env {
		nf.pushShared(cell)
	}
	for _, a := range args {
		object.Retain(vm.heap, a)
		nf.pushLocal(a)
	}
	vm.frames = append(vm.frames, nf)
	vm.leaveHooks = append(vm.leaveHooks, leaveHook{})
}

// execCallMethod implements `recv->name(args...)`: a Table's own
// user-defined methods take precedence over the fixed built-in method
// table (spec §4.6); every other receiver kind only ever has built-ins.
func (vm *VM) execCallMethod(f *frame, ic compiler.ICode) *Exception {
	argc := int(ic.Argc)
	args := vm.stack.PopN(argc)
	recv := vm.stack.Pop()
	name := ic.Str

	if recv.Kind == object.KindTable {
		if m, ok := recv.Table.GetMethod(name); ok {
			return vm.dispatchTableMethod(f, m, recv, args)
		}
	}

	result, exc, handled := callBuiltinMethod(vm.heap, recv, name, args)
	if exc != nil {
		return exc
	}
	if !handled {
		return raise(f, -1, fmt.Sprintf("value of type %s has no method %q", recv.TypeName(), name))
	}
	vm.stack.Push(result)
	f.pc++
	return nil
}

func (vm *VM) dispatchTableMethod(f *frame, m object.Method, recv object.Object, args []object.Object) *Exception {
	if m.ImplicitSelf {
		args = append([]object.Object{recv}, args...)
	}
	if m.Fn != nil {
		if m.Fn.ParamCount() != len(args) {
			return raise(f, -1, fmt.Sprintf("method wants %d argument(s), got %d", m.Fn.ParamCount(), len(args)))
		}
		vm.pushCallFrame(m.Fn, args)
		f.pc++
		return nil
	}
	result, err := m.Host(args)
	if err != nil {
		return raise(f, -1, err.Error())
	}
	vm.stack.Push(result)
	f.pc++
	return nil
}

// execGetItem implements `container[key]` for Array (Int index, bounds
// checked) and Table (String key) receivers (spec §4.6).
func (vm *VM) execGetItem(f *frame) *Exception {
	key := vm.stack.Pop()
	recv := vm.stack.Pop()
	switch recv.Kind {
	case object.KindArray:
		if key.Kind != object.KindInt {
			return raise(f, -1, fmt.Sprintf("array index must be int, got %s", key.TypeName()))
		}
		v, ok := recv.Array.Get(int(key.Int))
		if !ok {
			return raise(f, -1, fmt.Sprintf("array index %d out of range (len %d)", key.Int, recv.Array.Len()))
		}
		vm.stack.Push(v)
	case object.KindTable:
		if key.Kind != object.KindString {
			return raise(f, -1, fmt.Sprintf("table key must be string, got %s", key.TypeName()))
		}
		v, ok := recv.Table.Get(key.Str)
		if !ok {
			vm.stack.Push(object.Nil())
			break
		}
		vm.stack.Push(v)
	default:
		return raise(f, -1, fmt.Sprintf("value of type %s is not indexable", recv.TypeName()))
	}
	f.pc++
	return nil
}

// execSetItem implements `container[key] = value`, and is also how the
// compiler lowers named-field assignment `t.name = value` (by pushing a
// LoadString(name) key ahead of the value).
func (vm *VM) execSetItem(f *frame) *Exception {
	value := vm.stack.Pop()
	key := vm.stack.Pop()
	recv := vm.stack.Pop()
	switch recv.Kind {
	case object.KindArray:
		if key.Kind != object.KindInt {
			return raise(f, -1, fmt.Sprintf("array index must be int, got %s", key.TypeName()))
		}
		if !recv.Array.Set(int(key.Int), value) {
			return raise(f, -1, fmt.Sprintf("array index %d out of range (len %d)", key.Int, recv.Array.Len()))
		}
	case object.KindTable:
		if key.Kind != object.KindString {
			return raise(f, -1, fmt.Sprintf("table key must be string, got %s", key.TypeName()))
		}
		recv.Table.Set(key.Str, value)
	default:
		return raise(f, -1, fmt.Sprintf("value of type %s is not indexable", recv.TypeName()))
	}
	f.pc++
	return nil
}

// execSetMethod installs a user-defined method, for `func t->name(self, ...) .. end`
// method-declaration sugar: the stack holds [target table, closure].
func (vm *VM) execSetMethod(f *frame, ic compiler.ICode) *Exception {
	fnVal := vm.stack.Pop()
	target := vm.stack.Pop()
	if target.Kind != object.KindTable {
		return raise(f, -1, fmt.Sprintf("cannot define a method on a %s", target.TypeName()))
	}
	if fnVal.Kind != object.KindFunction {
		return raise(f, -1, "method body did not compile to a function value")
	}
	target.Table.SetMethod(ic.Str, object.Method{Fn: fnVal.Func, ImplicitSelf: true})
	f.pc++
	return nil
}

// execMakeTable consumes 2*n stack values (key, value pairs in field
// order) built by the compiler: every field key, computed or not, is
// compiled down to a string-valued push ahead of its field's value, so
// the VM never needs to special-case identifier vs. computed keys — only
// to check, per field, that the key evaluated to a string (spec §4.6).
func (vm *VM) execMakeTable(f *frame, ic compiler.ICode) *Exception {
	n := ic.Count
	pairs := vm.stack.PopN(2 * n)
	t := object.NewTable(vm.heap)
	for i := 0; i < n; i++ {
		key, value := pairs[2*i], pairs[2*i+1]
		if key.Kind != object.KindString {
			exc := raise(f, i, fmt.Sprintf("table key must be a string, got %s", key.TypeName()))
			return exc
		}
		t.Set(key.Str, value)
	}
	vm.stack.Push(object.FromTable(t))
	f.pc++
	return nil
}
