package object

import "github.com/lico-lang/lico/lang/compiler"

// Cell is a shared, mutable slot backing a captured local: when a closure
// is created over a variable, the VM promotes that variable's stack slot
// from plain value storage to a *Cell, so every closure over it (and the
// enclosing frame, if still live) observes the same mutations — see spec
// §4.5's local-table "Value vs Shared" distinction and §9's closure note.
type Cell struct {
	Value Object
}

// Function is a closure: a shared reference to its compiled code plus the
// ordered list of cells it captured at creation time. Two Function values
// are equal iff they share the same executable AND the same environment
// cells (spec §3), which is exactly reference/pointer equality on both.
type Function struct {
	Code *compiler.CodeBlock
	Env  []*Cell
}

// NewFunction binds code to the given captured cells.
func NewFunction(code *compiler.CodeBlock, env []*Cell) *Function {
	return &Function{Code: code, Env: env}
}

func (f *Function) ParamCount() int { return int(f.Code.ParamCount) }

func (f *Function) sameIdentity(other *Function) bool {
	if f.Code != other.Code {
		return false
	}
	if len(f.Env) != len(other.Env) {
		return false
	}
	for i := range f.Env {
		if f.Env[i] != other.Env[i] {
			return false
		}
	}
	return true
}
