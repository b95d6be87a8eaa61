// Package object defines Lico's runtime value representation: the closed
// tagged-union Object type, the two reference-counted heap container
// kinds (Array, Table) with their trial-deletion cycle collector, and
// compiled/host function values. Grounded on original_source's
// foundation::object module and, for the heap container shape, on the
// teacher's lang/machine value types (machine/value.go, machine/map.go)
// generalized from Starlark-style Value/Mapping interfaces to Lico's
// single closed Object struct.
package object

import "fmt"

// Kind tags the variant held by an Object.
type Kind uint8

const (
	KindNil Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindArray
	KindTable
	KindFunction
	KindHostFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	case KindFunction:
		return "function"
	case KindHostFunction:
		return "host_function"
	default:
		return "invalid"
	}
}

// HostFunc is a Go-implemented builtin callable from Lico, e.g. print.
type HostFunc func(args []Object) (Object, error)

// Object is the single runtime value type every VM stack slot, local, and
// container element holds. Int/Float/Bool/Nil/String are held by value;
// Array/Table/Function are reference-counted heap handles; HostFunction
// is a plain Go function value. Spec's 16-byte size target is aspirational
// in Go (no union storage), so this struct is sized for clarity, not
// packed layout.
type Object struct {
	Kind Kind

	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Array  *Array
	Table  *Table
	Func   *Function
	Host   HostFunc
}

func Nil() Object                   { return Object{Kind: KindNil} }
func Int(i int64) Object            { return Object{Kind: KindInt, Int: i} }
func Float(f float64) Object        { return Object{Kind: KindFloat, Float: f} }
func Bool(b bool) Object            { return Object{Kind: KindBool, Bool: b} }
func String(s string) Object        { return Object{Kind: KindString, Str: s} }
func FromArray(a *Array) Object     { return Object{Kind: KindArray, Array: a} }
func FromTable(t *Table) Object     { return Object{Kind: KindTable, Table: t} }
func FromFunction(f *Function) Object { return Object{Kind: KindFunction, Func: f} }
func FromHost(f HostFunc) Object    { return Object{Kind: KindHostFunction, Host: f} }

func (o Object) IsNil() bool { return o.Kind == KindNil }

// Truthy implements Lico's truthiness rule: only nil and the boolean
// false are falsy; every other value (including 0, 0.0 and "") is truthy.
func (o Object) Truthy() bool {
	switch o.Kind {
	case KindNil:
		return false
	case KindBool:
		return o.Bool
	default:
		return true
	}
}

func (o Object) TypeName() string { return o.Kind.String() }

// Display renders a human-readable form, used by the print/println
// builtins and by error messages.
func (o Object) Display() string {
	switch o.Kind {
	case KindNil:
		return "nil"
	case KindInt:
		return fmt.Sprintf("%d", o.Int)
	case KindFloat:
		return fmt.Sprintf("%g", o.Float)
	case KindBool:
		if o.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return o.Str
	case KindArray:
		return fmt.Sprintf("array(%p)", o.Array)
	case KindTable:
		return fmt.Sprintf("table(%p)", o.Table)
	case KindFunction:
		return fmt.Sprintf("function(%p)", o.Func)
	case KindHostFunction:
		return "function(host)"
	default:
		return "<invalid>"
	}
}

// Equal implements structural equality, including the NaN-infects-equality
// and cycle-safe container rules from spec §4.6. visited deduplicates
// container pairs already being compared, so a self-referential or mutual
// cycle terminates instead of recursing forever.
func Equal(a, b Object) bool {
	return equalVisited(a, b, newVisitedSet())
}

func equalVisited(a, b Object, visited *visitedSet) bool {
	if a.Kind != b.Kind {
		// Int/Float compare equal across kinds nowhere in this language;
		// mixed-kind equality is simply false.
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		// NaN infects equality: NaN != NaN, even against itself.
		return a.Float == b.Float
	case KindBool:
		return a.Bool == b.Bool
	case KindString:
		return a.Str == b.Str
	case KindArray:
		return equalArrays(a.Array, b.Array, visited)
	case KindTable:
		return equalTables(a.Table, b.Table, visited)
	case KindFunction:
		return a.Func == b.Func || (a.Func != nil && b.Func != nil && a.Func.sameIdentity(b.Func))
	case KindHostFunction:
		return false // Go func values are not comparable; host functions are never equal to each other.
	default:
		return false
	}
}

type pairKey struct{ a, b uintptr }

// visitedSet tracks container pairs already under comparison, so cyclic
// containers terminate instead of recursing forever (spec §4.6).
type visitedSet struct{ seen map[pairKey]bool }

func newVisitedSet() *visitedSet { return &visitedSet{seen: make(map[pairKey]bool)} }

func (v *visitedSet) seenPair(a, b uintptr) bool {
	k := pairKey{a, b}
	if v.seen[k] {
		return true
	}
	v.seen[k] = true
	return false
}
