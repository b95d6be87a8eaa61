package token

import "fmt"

// TextRange is a half-open byte offset range [Start, End) into a source
// text. All positions in the lexer, CST and IR are expressed as TextRange
// rather than line/column; line/column is computed lazily, only when a
// diagnostic is actually formatted for a human (see LineIndex).
type TextRange struct {
	Start uint32
	End   uint32
}

// NewRange builds a TextRange, panicking if end < start: an inverted range
// is always a bug in the caller, never a representable value.
func NewRange(start, end uint32) TextRange {
	if end < start {
		panic(fmt.Sprintf("token: inverted range [%d, %d)", start, end))
	}
	return TextRange{Start: start, End: end}
}

// Len returns the number of bytes covered by r.
func (r TextRange) Len() uint32 { return r.End - r.Start }

// IsEmpty reports whether r covers zero bytes.
func (r TextRange) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether offset falls within r.
func (r TextRange) Contains(offset uint32) bool { return offset >= r.Start && offset < r.End }

// Cover returns the smallest range containing both r and other.
func (r TextRange) Cover(other TextRange) TextRange {
	start, end := r.Start, r.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return TextRange{Start: start, End: end}
}

// Shift returns r translated forward by delta bytes, used when splicing
// fragments of bytecode or tree nodes that were built relative to an
// offset of zero into a larger sequence.
func (r TextRange) Shift(delta uint32) TextRange {
	return TextRange{Start: r.Start + delta, End: r.End + delta}
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
