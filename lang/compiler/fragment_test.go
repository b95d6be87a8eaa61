package compiler

import "testing"

// These mirror compile::fragment's own Rust unit tests one-for-one (same
// jump positions, same expected offsets) since fragment.go is a direct
// port of that module.

func TestFragmentPatchForwardJumpPositiveExtra(t *testing.T) {
	f := NewFragment()
	f.AppendForwardJump(OpJump)
	f.AppendForwardJump(OpJump)
	f.AppendForwardJump(OpJump)
	f.PatchForwardJump(OpJump, 3)

	want := []int{5, 4, 3}
	for i, w := range want {
		if f.code[i].Op != OpJump || f.code[i].Offset != w {
			t.Fatalf("code[%d] = %v, want Jump(%d)", i, f.code[i], w)
		}
	}
}

func TestFragmentPatchForwardJumpNegativeExtra(t *testing.T) {
	f := NewFragment()
	f.AppendForwardJump(OpJump)
	f.AppendForwardJump(OpJump)
	f.AppendForwardJump(OpJump)
	f.PatchForwardJump(OpJump, -2)

	want := []int{0, -1, -2}
	for i, w := range want {
		if f.code[i].Op != OpJump || f.code[i].Offset != w {
			t.Fatalf("code[%d] = %v, want Jump(%d)", i, f.code[i], w)
		}
	}
}

func TestFragmentPatchBackwardJumpNegativeExtra(t *testing.T) {
	f := NewFragment()
	f.AppendBackwardJump(OpJump)
	f.AppendBackwardJump(OpJump)
	f.AppendBackwardJump(OpJump)
	f.PatchBackwardJump(OpJump, -3)

	want := []int{-3, -4, -5}
	for i, w := range want {
		if f.code[i].Op != OpJump || f.code[i].Offset != w {
			t.Fatalf("code[%d] = %v, want Jump(%d)", i, f.code[i], w)
		}
	}
}

func TestFragmentPatchBackwardJumpPositiveExtra(t *testing.T) {
	f := NewFragment()
	f.AppendBackwardJump(OpJump)
	f.AppendBackwardJump(OpJump)
	f.AppendBackwardJump(OpJump)
	f.PatchBackwardJump(OpJump, 2)

	want := []int{2, 1, 0}
	for i, w := range want {
		if f.code[i].Op != OpJump || f.code[i].Offset != w {
			t.Fatalf("code[%d] = %v, want Jump(%d)", i, f.code[i], w)
		}
	}
}

func TestFragmentAppendFragmentShiftsPendingJumps(t *testing.T) {
	outer := NewFragment()
	outer.AppendMany(ICode{Op: OpLoadNil}, ICode{Op: OpLoadNil}, ICode{Op: OpLoadNil})
	outer.forwardJumpPos = []uint32{0}
	outer.backwardJumpPos = []uint32{2}

	inner := NewFragment()
	inner.AppendMany(ICode{Op: OpLoadNil}, ICode{Op: OpLoadNil}, ICode{Op: OpLoadNil})
	inner.forwardJumpPos = []uint32{2}
	inner.backwardJumpPos = []uint32{0}

	outer.AppendFragment(inner)

	if len(outer.code) != 6 {
		t.Fatalf("len(code) = %d, want 6", len(outer.code))
	}
	wantForward := []uint32{0, 5}
	wantBackward := []uint32{2, 3}
	if !equalU32(outer.forwardJumpPos, wantForward) {
		t.Fatalf("forwardJumpPos = %v, want %v", outer.forwardJumpPos, wantForward)
	}
	if !equalU32(outer.backwardJumpPos, wantBackward) {
		t.Fatalf("backwardJumpPos = %v, want %v", outer.backwardJumpPos, wantBackward)
	}
}

func equalU32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFragmentFinishPanicsOnUnpatchedJump(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Finish must panic when a jump placeholder was never patched")
		}
	}()
	f := NewFragment()
	f.AppendForwardJump(OpJump)
	f.Finish()
}
