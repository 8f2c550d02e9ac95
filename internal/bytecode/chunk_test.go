package bytecode_test

import (
	"math"
	"testing"

	"github.com/angelscript-go/asc/internal/bytecode"
)

func TestConstantPoolDedup(t *testing.T) {
	p := bytecode.NewConstantPool()
	a := p.AddInt(7)
	b := p.AddInt(7)
	if a != b {
		t.Errorf("expected repeated int constant to dedup, got %d and %d", a, b)
	}
	s1 := p.AddString("hi")
	s2 := p.AddString("hi")
	if s1 != s2 {
		t.Errorf("expected repeated string constant to dedup, got %d and %d", s1, s2)
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 distinct constants, got %d", p.Len())
	}
}

func TestConstantPoolFloatBitPattern(t *testing.T) {
	p := bytecode.NewConstantPool()
	posZero := p.AddFloat(0.0)
	negZero := p.AddFloat(math.Copysign(0, -1))
	if posZero == negZero {
		t.Error("expected +0.0 and -0.0 to occupy distinct constant slots")
	}

	nan1 := p.AddFloat(math.NaN())
	nan2 := p.AddFloat(math.NaN())
	if nan1 != nan2 {
		t.Error("expected two identical-bit-pattern NaNs to dedup to the same slot")
	}
}

func TestChunkEmitAndJumpPatch(t *testing.T) {
	pool := bytecode.NewConstantPool()
	ch := bytecode.NewChunk("test", pool)

	jump := ch.EmitJump(bytecode.OpJumpIfFalse, 1)
	ch.Emit(bytecode.OpPop, 1)
	ch.Emit(bytecode.OpPushOne, 2)
	if err := ch.PatchJump(jump); err != nil {
		t.Fatalf("PatchJump: %v", err)
	}

	dis := bytecode.Disassemble(ch)
	if len(dis) == 0 {
		t.Fatal("expected non-empty disassembly")
	}
}

func TestChunkEmitLoopBackward(t *testing.T) {
	pool := bytecode.NewConstantPool()
	ch := bytecode.NewChunk("loop", pool)

	start := len(ch.Code)
	ch.Emit(bytecode.OpPushOne, 1)
	ch.Emit(bytecode.OpPop, 1)
	if err := ch.EmitLoop(start, 1); err != nil {
		t.Fatalf("EmitLoop: %v", err)
	}

	dis := bytecode.Disassemble(ch)
	if dis == "" {
		t.Fatal("expected disassembly output")
	}
}

func TestRefTableInterning(t *testing.T) {
	r := bytecode.NewRefTable()
	i1 := r.GlobalIndex("ns::counter")
	i2 := r.GlobalIndex("ns::counter")
	if i1 != i2 {
		t.Errorf("expected repeated global name to reuse its index, got %d and %d", i1, i2)
	}
	i3 := r.GlobalIndex("ns::other")
	if i3 == i1 {
		t.Error("expected distinct global names to get distinct indices")
	}
	if got := r.Global(i1); got != "ns::counter" {
		t.Errorf("Global(%d) = %q, want ns::counter", i1, got)
	}
}
