package compiler

// Fragment accumulates ICode for one in-progress span of bytecode (a
// statement, a branch arm, a loop body) along with two deferred-jump
// position sets, ported from original_source's compile::fragment module.
// A jump is first appended as an OpTombstone placeholder whose position is
// recorded in one of the two sets; PatchForwardJump/PatchBackwardJump
// later rewrite every placeholder into a real Jump/JumpIfTrue/JumpIfFalse
// with the offset now known. Finish panics if any placeholder was never
// patched, since an un-patched Tombstone reaching the VM is a compiler bug.
type Fragment struct {
	code            []ICode
	forwardJumpPos  []uint32
	backwardJumpPos []uint32
}

// NewFragment returns an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{}
}

// Len reports the number of instructions currently buffered.
func (f *Fragment) Len() int { return len(f.code) }

// Append adds one instruction and returns its position.
func (f *Fragment) Append(ic ICode) uint32 {
	pos := uint32(len(f.code))
	f.code = append(f.code, ic)
	return pos
}

// AppendMany appends a whole slice of already-built instructions (none of
// which may themselves carry pending jumps tracked elsewhere).
func (f *Fragment) AppendMany(ics ...ICode) {
	f.code = append(f.code, ics...)
}

// AppendForwardJump appends an OpTombstone placeholder for a jump whose
// destination is "the end of the enclosing fragment" (patched later by
// PatchForwardJump) and records its position in the forward set. op is
// not used: the opcode the placeholder becomes is the one passed to
// PatchForwardJump.
func (f *Fragment) AppendForwardJump(op Op) uint32 {
	pos := f.Append(ICode{Op: OpTombstone})
	f.forwardJumpPos = append(f.forwardJumpPos, pos)
	return pos
}

// AppendBackwardJump appends an OpTombstone placeholder for a jump whose
// destination is "the start of the enclosing fragment" (patched later by
// PatchBackwardJump) and records its position in the backward set.
func (f *Fragment) AppendBackwardJump(op Op) uint32 {
	pos := f.Append(ICode{Op: OpTombstone})
	f.backwardJumpPos = append(f.backwardJumpPos, pos)
	return pos
}

// PatchForwardJump rewrites every pending forward-jump placeholder into a
// Jump whose offset lands at the current end of the fragment (i.e. the
// instruction immediately following the last one appended so far), plus
// extra. extra lets a caller account for instructions that will be
// appended after this fragment is spliced into a larger one but before
// control reaches the jump's true landing spot.
func (f *Fragment) PatchForwardJump(op Op, extra int) {
	end := len(f.code)
	for _, pos := range f.forwardJumpPos {
		offset := end - int(pos) - 1 + extra
		f.code[pos] = ICode{Op: op, Offset: offset}
	}
	f.forwardJumpPos = f.forwardJumpPos[:0]
}

// PatchBackwardJump rewrites every pending backward-jump placeholder into
// a Jump whose offset lands at position (1 + extra) of the fragment: the
// VM applies a jump's offset as pc = takenAt + 1 + offset, so extra = -1
// targets the very first instruction of the fragment.
func (f *Fragment) PatchBackwardJump(op Op, extra int) {
	for _, pos := range f.backwardJumpPos {
		offset := -int(pos) + extra
		f.code[pos] = ICode{Op: op, Offset: offset}
	}
	f.backwardJumpPos = f.backwardJumpPos[:0]
}

// AppendFragment splices other onto the end of f. other's own pending
// jump positions are shifted by the splice offset (f's length before the
// splice) and merged into f's corresponding sets, so a jump recorded
// inside other before the splice still patches correctly against f's
// final extent afterward.
func (f *Fragment) AppendFragment(other *Fragment) {
	base := uint32(len(f.code))
	f.code = append(f.code, other.code...)
	for _, pos := range other.forwardJumpPos {
		f.forwardJumpPos = append(f.forwardJumpPos, pos+base)
	}
	for _, pos := range other.backwardJumpPos {
		f.backwardJumpPos = append(f.backwardJumpPos, pos+base)
	}
}

// Finish consumes the fragment and returns its instruction array. It
// panics if any jump placeholder was left unpatched, or if an OpTombstone
// otherwise survived — both are compiler bugs, not user-facing errors.
func (f *Fragment) Finish() []ICode {
	if len(f.forwardJumpPos) != 0 || len(f.backwardJumpPos) != 0 {
		panic("compiler: fragment finished with unpatched jump placeholders")
	}
	for _, ic := range f.code {
		if ic.Op == OpTombstone {
			panic("compiler: fragment finished with a live tombstone")
		}
	}
	return f.code
}
