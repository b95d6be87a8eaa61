package vm

import "github.com/lico-lang/lico/lang/token"

// Exception is a fixed-up runtime error: a message plus the source range
// it should be blamed on, if one is available. Spec §7 describes the raw
// form as a `(message, pc_index, extra)` triple that is fixed up lazily;
// since this core has no catch construct (an exception always aborts the
// run), fixup happens once, right where Run() discovers the error, rather
// than being deferred to a later "log read" — there is never a second
// reader.
type Exception struct {
	Message string
	Range   token.TextRange
	HasSpan bool
}

func (e *Exception) Error() string { return e.Message }

// raise builds an Exception for the instruction at f.pc, using its Span
// as the blamed range, or ArgSpans[extra] when extra is a valid index
// into the instruction's per-operand span list (e.g. which Call argument
// was the wrong type).
func raise(f *frame, extra int, message string) *Exception {
	exc := &Exception{Message: message}
	if f == nil || f.pc < 0 || f.pc >= len(f.code.Code) {
		return exc
	}
	ic := f.code.Code[f.pc]
	if extra >= 0 && extra < len(ic.ArgSpans) {
		exc.Range, exc.HasSpan = ic.ArgSpans[extra], true
	} else if ic.Span != (token.TextRange{}) {
		exc.Range, exc.HasSpan = ic.Span, true
	}
	return exc
}
