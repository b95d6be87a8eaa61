package compiler

import (
	"testing"

	"github.com/lico-lang/lico/lang/ir"
)

func lowerOrFail(t *testing.T, src string) *ir.Module {
	t.Helper()
	m, diags := ir.Lower(src)
	for _, d := range diags {
		t.Fatalf("unexpected lowering diagnostic: %s", d.Message)
	}
	return m
}

func lastOp(code []ICode) Op {
	return code[len(code)-1].Op
}

func TestCompileEmptyProgramEndsInLeave(t *testing.T) {
	m := lowerOrFail(t, "")
	c := Compile(m)
	if lastOp(c.Top.Code) != OpLeave {
		t.Fatalf("top-level code must end in Leave, got %s", lastOp(c.Top.Code))
	}
}

func TestCompileBindsPrintAsBuiltinLocal(t *testing.T) {
	m := lowerOrFail(t, `print("hi")`)
	c := Compile(m)
	if len(c.BuiltinLocals) != 1 || c.BuiltinLocals[0] != "print" {
		t.Fatalf("BuiltinLocals = %v, want [print]", c.BuiltinLocals)
	}
	foundLoadLocal := false
	for _, ic := range c.Top.Code {
		if ic.Op == OpLoadLocal && ic.Local == 0 {
			foundLoadLocal = true
		}
	}
	if !foundLoadLocal {
		t.Fatalf("expected a LoadLocal(0) referencing the bound print builtin")
	}
}

func TestCompileLocalDeclarationAndUse(t *testing.T) {
	m := lowerOrFail(t, `
var x = 1
var y = x + 2
`)
	c := Compile(m)
	var storeNew, add int
	for _, ic := range c.Top.Code {
		switch ic.Op {
		case OpStoreNewLocal:
			storeNew++
		case OpAdd:
			add++
		}
	}
	if storeNew != 2 {
		t.Fatalf("want 2 StoreNewLocal (x, y), got %d", storeNew)
	}
	if add != 1 {
		t.Fatalf("want 1 Add, got %d", add)
	}
}

func TestCompileIfElseProducesBalancedJumps(t *testing.T) {
	m := lowerOrFail(t, `
var x = 1
if x then
  x = 2
else
  x = 3
end
`)
	c := Compile(m)
	for _, ic := range c.Top.Code {
		if ic.Op == OpTombstone {
			t.Fatalf("compiled code still contains an unpatched Tombstone")
		}
	}
	var jif, jmp int
	for _, ic := range c.Top.Code {
		switch ic.Op {
		case OpJumpIfFalse:
			jif++
		case OpJump:
			jmp++
		}
	}
	if jif != 1 || jmp != 1 {
		t.Fatalf("want 1 JumpIfFalse + 1 Jump for if/else, got jif=%d jmp=%d", jif, jmp)
	}
}

func TestCompileWhileLoopWithBreakAndContinue(t *testing.T) {
	m := lowerOrFail(t, `
var i = 0
while i < 10 do
  i = i + 1
  if i == 5 then
    continue
  end
  if i == 8 then
    break
  end
end
`)
	c := Compile(m)
	for _, ic := range c.Top.Code {
		if ic.Op == OpTombstone {
			t.Fatalf("compiled code still contains an unpatched Tombstone")
		}
	}
}

func TestCompileForLoopOverArray(t *testing.T) {
	m := lowerOrFail(t, `
var total = 0
for v in [1, 2, 3] do
  total = total + v
end
`)
	c := Compile(m)
	var hasGetIter, hasMoveNext, hasCurrent bool
	for _, ic := range c.Top.Code {
		switch ic.Op {
		case OpGetIter:
			hasGetIter = true
		case OpIterMoveNext:
			hasMoveNext = true
		case OpIterCurrent:
			hasCurrent = true
		}
	}
	if !hasGetIter || !hasMoveNext || !hasCurrent {
		t.Fatalf("expected GetIter/IterMoveNext/IterCurrent in for-loop bytecode")
	}
}

func TestCompileClosureCapturesOuterLocal(t *testing.T) {
	m := lowerOrFail(t, `
var counter = 0
func bump()
  counter = counter + 1
end
bump()
`)
	c := Compile(m)
	if len(c.Functions) != 1 {
		t.Fatalf("want exactly 1 nested function compiled, got %d", len(c.Functions))
	}
	var hasCapture bool
	for _, ic := range c.Top.Code {
		if ic.Op == OpFuncAddCapture {
			hasCapture = true
		}
	}
	if !hasCapture {
		t.Fatalf("expected FuncAddCapture for the closed-over `counter` local")
	}
}

func TestCompileMethodCallLowersToCallMethod(t *testing.T) {
	m := lowerOrFail(t, `
var t = {}
t->push(1)
`)
	c := Compile(m)
	found := false
	for _, ic := range c.Top.Code {
		if ic.Op == OpCallMethod && ic.Str == "push" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CallMethod(push) instruction")
	}
}

func TestCompileMethodDeclarationEmitsSetMethod(t *testing.T) {
	m := lowerOrFail(t, `
var account = {}
func account->withdraw(self, amount)
  return amount
end
`)
	c := Compile(m)
	found := false
	for _, ic := range c.Top.Code {
		if ic.Op == OpSetMethod && ic.Str == "withdraw" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SetMethod(withdraw) instruction for `func account->withdraw(self, ...)`")
	}
}

func TestCompileTableConstructorPairsKeysAndValues(t *testing.T) {
	m := lowerOrFail(t, `var t = { a = 1, b = 2 }`)
	c := Compile(m)
	var makeTable *ICode
	for i := range c.Top.Code {
		if c.Top.Code[i].Op == OpMakeTable {
			makeTable = &c.Top.Code[i]
		}
	}
	if makeTable == nil {
		t.Fatalf("expected a MakeTable instruction")
	}
	if makeTable.Count != 2 {
		t.Fatalf("MakeTable count = %d, want 2", makeTable.Count)
	}
}
