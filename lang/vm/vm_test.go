package vm

import (
	"bytes"
	"testing"

	"github.com/lico-lang/lico/lang/compiler"
	"github.com/lico-lang/lico/lang/ir"
	"github.com/lico-lang/lico/lang/object"
)

func run(t *testing.T, src string) (string, object.Object, *Exception) {
	t.Helper()
	m, diags := ir.Lower(src)
	for _, d := range diags {
		t.Fatalf("unexpected lowering diagnostic: %s", d.Message)
	}
	compiled := compiler.Compile(m)
	var out bytes.Buffer
	machine := New()
	machine.Stdout = &out
	result, exc := machine.Run(compiled)
	return out.String(), result, exc
}

func TestRunPrintsArgument(t *testing.T) {
	out, _, exc := run(t, `print("hi")`)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if out != "hi" {
		t.Fatalf("stdout = %q, want %q", out, "hi")
	}
}

func TestRunClosureCapturesOuterLocalByReference(t *testing.T) {
	out, _, exc := run(t, `
var counter = 0
func bump()
  counter = counter + 1
end
bump()
bump()
bump()
println(counter)
`)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if out != "3\n" {
		t.Fatalf("stdout = %q, want %q", out, "3\n")
	}
}

func TestRunTableFieldMutationThroughCapture(t *testing.T) {
	out, _, exc := run(t, `
var t = { count = 0 }
func inc()
  t.count = t.count + 1
end
inc()
inc()
println(t.count)
`)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if out != "2\n" {
		t.Fatalf("stdout = %q, want %q", out, "2\n")
	}
}

func TestRunForLoopSum(t *testing.T) {
	out, _, exc := run(t, `
var total = 0
for v in [1, 2, 3, 4] do
  total = total + v
end
println(total)
`)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if out != "10\n" {
		t.Fatalf("stdout = %q, want %q", out, "10\n")
	}
}

func TestRunArrayPushGrowsInPlace(t *testing.T) {
	out, _, exc := run(t, `
var a = [1]
a->push(2)
a->push(3)
println(a->len())
`)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if out != "3\n" {
		t.Fatalf("stdout = %q, want %q", out, "3\n")
	}
}

func TestRunTableMethodDeclarationBindsImplicitSelf(t *testing.T) {
	out, _, exc := run(t, `
var account = { balance = 10 }
func account->withdraw(self, amount)
  self.balance = self.balance - amount
  return self.balance
end
println(account->withdraw(4))
`)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if out != "6\n" {
		t.Fatalf("stdout = %q, want %q", out, "6\n")
	}
}

func TestRunIntegerDivideByZeroRaisesExceptionWithSpan(t *testing.T) {
	_, _, exc := run(t, `
var x = 1 / 0
`)
	if exc == nil {
		t.Fatalf("expected a divide-by-zero exception")
	}
	if exc.Message != "integer divide by zero" {
		t.Fatalf("exception message = %q, want %q", exc.Message, "integer divide by zero")
	}
	if !exc.HasSpan {
		t.Fatalf("expected the exception to carry a source span")
	}
}
