// Package vm executes compiled bytecode (package compiler) over the
// runtime object model (package object): a stack machine with lexically
// scoped locals, first-class closures, and method dispatch, grounded on
// the teacher's lang/machine package (thread.go's Thread/call-stack shape,
// frame.go's Frame) generalized from nenuphar's AST-walking interpreter to
// Lico's flat-bytecode dispatch loop.
package vm

import (
	"github.com/lico-lang/lico/lang/compiler"
	"github.com/lico-lang/lico/lang/object"
)

// localSlot holds one activation-local binding: either a plain value
// (read/write by copy) or, once captured by a closure, a shared *Cell
// that the capturing closures and this frame both mutate through — spec
// §4.5's "Value vs Shared" local-table distinction.
type localSlot struct {
	cell *object.Cell // non-nil once promoted by a closure capture
	val  object.Object
}

func (s *localSlot) get() object.Object {
	if s.cell != nil {
		return s.cell.Value
	}
	return s.val
}

func (s *localSlot) set(v object.Object) {
	if s.cell != nil {
		s.cell.Value = v
		return
	}
	s.val = v
}

// promote converts the slot to a shared cell (a no-op if already shared)
// and returns the cell, so a closure created over this local and the
// frame that owns it observe the same mutable storage from now on.
func (s *localSlot) promote() *object.Cell {
	if s.cell == nil {
		s.cell = &object.Cell{Value: s.val}
	}
	return s.cell
}

// frame is one activation record: the code block being executed, the
// program counter, and the growing/shrinking slice of locals a function
// body's StoreNewLocal/DropLocal instructions operate on.
type frame struct {
	code   *compiler.CodeBlock
	pc     int
	locals []localSlot
}

func (f *frame) pushLocal(v object.Object) LocalID {
	f.locals = append(f.locals, localSlot{val: v})
	return LocalID(len(f.locals) - 1)
}

func (f *frame) pushShared(cell *object.Cell) LocalID {
	f.locals = append(f.locals, localSlot{cell: cell})
	return LocalID(len(f.locals) - 1)
}

func (f *frame) dropLocals(n int) {
	f.locals = f.locals[:len(f.locals)-n]
}

// LocalID mirrors compiler.LocalID; kept as a distinct alias in this
// package so vm code doesn't need a compiler import just to name it.
type LocalID = compiler.LocalID

// leaveHook records one pending return site: the caller frame to resume
// (implicit: the frame below the one being left) and an optional
// transform applied to the returned value before it lands on the
// caller's stack — spec §9 flags this transformer hook as having "no
// visible producer" in the distilled source; LocoVM keeps the hook slot
// for a future deferred/post-call-transform feature but leaves it nil
// in every call path this core actually compiles.
type leaveHook struct {
	transform func(object.Object) object.Object
}

// Stack is the VM's single shared operand stack.
type Stack struct {
	values []object.Object
}

func (s *Stack) Push(v object.Object) { s.values = append(s.values, v) }

func (s *Stack) Pop() object.Object {
	n := len(s.values)
	v := s.values[n-1]
	s.values = s.values[:n-1]
	return v
}

func (s *Stack) PopN(n int) []object.Object {
	k := len(s.values)
	vs := append([]object.Object(nil), s.values[k-n:]...)
	s.values = s.values[:k-n]
	return vs
}

func (s *Stack) Peek() object.Object { return s.values[len(s.values)-1] }

func (s *Stack) Len() int { return len(s.values) }
