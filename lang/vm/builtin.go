package vm

import (
	"fmt"
	"io"

	"github.com/lico-lang/lico/lang/object"
)

// PrintBuiltin and PrintlnBuiltin are the host-callable `print`/`println`
// functions spec §6 requires, each taking exactly one argument and
// returning Nil. The compiler only binds them into a program's top-level
// scope when free-variable analysis finds the program actually
// references the name (compiler.go's conditional builtin binding).
func PrintBuiltin(w io.Writer) object.HostFunc {
	return func(args []object.Object) (object.Object, error) {
		if len(args) != 1 {
			return object.Object{}, fmt.Errorf("print: want 1 argument, got %d", len(args))
		}
		fmt.Fprint(w, args[0].Display())
		return object.Nil(), nil
	}
}

func PrintlnBuiltin(w io.Writer) object.HostFunc {
	return func(args []object.Object) (object.Object, error) {
		if len(args) != 1 {
			return object.Object{}, fmt.Errorf("println: want 1 argument, got %d", len(args))
		}
		fmt.Fprintln(w, args[0].Display())
		return object.Nil(), nil
	}
}

// Builtins lists the host names the compiler may conditionally bind,
// keyed by name so both the compiler's free-variable scan and the VM's
// call-site binding agree on the same set.
func Builtins(stdout io.Writer) map[string]object.HostFunc {
	return map[string]object.HostFunc{
		"print":   PrintBuiltin(stdout),
		"println": PrintlnBuiltin(stdout),
	}
}

// callBuiltinMethod dispatches a `recv->name(args...)` method call for
// the fixed per-type method tables spec §4.6 requires (to_string, len,
// push, pop, ...). Table receivers consult their own user-defined method
// map first; everything else only ever has the built-in table.
func callBuiltinMethod(heap *object.Heap, recv object.Object, name string, args []object.Object) (object.Object, *Exception, bool) {
	switch recv.Kind {
	case object.KindArray:
		return arrayMethod(heap, recv.Array, name, args)
	case object.KindTable:
		return tableBuiltinMethod(recv.Table, name, args)
	case object.KindString:
		return stringMethod(recv.Str, name, args)
	case object.KindInt:
		return intMethod(recv.Int, name, args)
	case object.KindFloat:
		return floatMethod(recv.Float, name, args)
	default:
		return object.Object{}, nil, false
	}
}

func arrayMethod(heap *object.Heap, a *object.Array, name string, args []object.Object) (object.Object, *Exception, bool) {
	switch name {
	case "len":
		return object.Int(int64(a.Len())), nil, true
	case "push":
		if len(args) != 1 {
			return object.Object{}, &Exception{Message: "push: want 1 argument"}, true
		}
		a.Push(args[0])
		return object.Nil(), nil, true
	case "pop":
		v, ok := a.Pop()
		if !ok {
			return object.Object{}, &Exception{Message: "pop: array is empty"}, true
		}
		return v, nil, true
	case "to_string":
		return object.String(fmt.Sprintf("array(%p)", a)), nil, true
	default:
		return object.Object{}, nil, false
	}
}

func tableBuiltinMethod(t *object.Table, name string, args []object.Object) (object.Object, *Exception, bool) {
	switch name {
	case "len":
		return object.Int(int64(t.Len())), nil, true
	case "to_string":
		return object.String(fmt.Sprintf("table(%p)", t)), nil, true
	default:
		return object.Object{}, nil, false
	}
}

func stringMethod(s string, name string, args []object.Object) (object.Object, *Exception, bool) {
	switch name {
	case "len":
		return object.Int(int64(len(s))), nil, true
	case "to_string":
		return object.String(s), nil, true
	default:
		return object.Object{}, nil, false
	}
}

func intMethod(i int64, name string, args []object.Object) (object.Object, *Exception, bool) {
	switch name {
	case "to_string":
		return object.String(fmt.Sprintf("%d", i)), nil, true
	case "abs":
		if i < 0 {
			i = -i
		}
		return object.Int(i), nil, true
	default:
		return object.Object{}, nil, false
	}
}

func floatMethod(f float64, name string, args []object.Object) (object.Object, *Exception, bool) {
	switch name {
	case "to_string":
		return object.String(fmt.Sprintf("%g", f)), nil, true
	case "abs":
		if f < 0 {
			f = -f
		}
		return object.Float(f), nil, true
	default:
		return object.Object{}, nil, false
	}
}
