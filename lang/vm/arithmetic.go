package vm

import (
	"fmt"

	"github.com/lico-lang/lico/lang/object"
)

// binaryArith implements spec §4.5's arithmetic/comparison semantics:
// Int op Int wraps (Go's own +,-,* already wrap on int64 overflow, so no
// extra work is needed there); mixing Int and Float promotes to Float;
// Int / and % by zero raise an exception, Float / by zero does not (it
// yields IEEE Inf/NaN).
func binaryArith(f *frame, op string, a, b object.Object) (object.Object, *Exception) {
	if a.Kind == object.KindInt && b.Kind == object.KindInt {
		switch op {
		case "+":
			return object.Int(a.Int + b.Int), nil
		case "-":
			return object.Int(a.Int - b.Int), nil
		case "*":
			return object.Int(a.Int * b.Int), nil
		case "/":
			if b.Int == 0 {
				return object.Object{}, raise(f, -1, "integer divide by zero")
			}
			return object.Int(a.Int / b.Int), nil
		case "%":
			if b.Int == 0 {
				return object.Object{}, raise(f, -1, "integer divide by zero")
			}
			return object.Int(a.Int % b.Int), nil
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return object.Object{}, raise(f, -1, fmt.Sprintf("unsupported operand types for %s: %s and %s", op, a.TypeName(), b.TypeName()))
	}
	switch op {
	case "+":
		return object.Float(af + bf), nil
	case "-":
		return object.Float(af - bf), nil
	case "*":
		return object.Float(af * bf), nil
	case "/":
		return object.Float(af / bf), nil // IEEE handles div-by-zero (+-Inf/NaN) without an exception.
	case "%":
		return object.Float(mod(af, bf)), nil
	}
	panic("vm: unreachable arithmetic op " + op)
}

func mod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

func toFloat(o object.Object) (float64, bool) {
	switch o.Kind {
	case object.KindInt:
		return float64(o.Int), true
	case object.KindFloat:
		return o.Float, true
	default:
		return 0, false
	}
}

func bitwiseInt(f *frame, op string, a, b object.Object) (object.Object, *Exception) {
	if a.Kind != object.KindInt || b.Kind != object.KindInt {
		return object.Object{}, raise(f, -1, fmt.Sprintf("bitwise %s requires int operands, got %s and %s", op, a.TypeName(), b.TypeName()))
	}
	switch op {
	case "&":
		return object.Int(a.Int & b.Int), nil
	case "|":
		return object.Int(a.Int | b.Int), nil
	case "^":
		return object.Int(a.Int ^ b.Int), nil
	case "<<":
		return object.Int(a.Int << uint(b.Int)), nil
	case ">>":
		return object.Int(a.Int >> uint(b.Int)), nil
	}
	panic("vm: unreachable bitwise op " + op)
}

func compare(f *frame, op string, a, b object.Object) (object.Object, *Exception) {
	if op == "==" || op == "!=" {
		eq := object.Equal(a, b)
		if op == "!=" {
			eq = !eq
		}
		return object.Bool(eq), nil
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return object.Object{}, raise(f, -1, fmt.Sprintf("unsupported operand types for %s: %s and %s", op, a.TypeName(), b.TypeName()))
	}
	switch op {
	case "<":
		return object.Bool(af < bf), nil
	case "<=":
		return object.Bool(af <= bf), nil
	case ">":
		return object.Bool(af > bf), nil
	case ">=":
		return object.Bool(af >= bf), nil
	}
	panic("vm: unreachable comparison op " + op)
}

// concat implements `..`, the only permitted non-numeric binary operator
// (spec §4.5): both operands must be strings.
func concat(f *frame, a, b object.Object) (object.Object, *Exception) {
	if a.Kind != object.KindString || b.Kind != object.KindString {
		return object.Object{}, raise(f, -1, fmt.Sprintf("cannot concatenate %s and %s", a.TypeName(), b.TypeName()))
	}
	return object.String(a.Str + b.Str), nil
}
