package bytecode

import "testing"

func TestOperandWidths(t *testing.T) {
	cases := []struct {
		op    OpCode
		count int
	}{
		{OpPushNull, 0},
		{OpGetLocal, 1},
		{OpGetLocalWide, 1},
		{OpGetGlobal, 1},
		{OpCall, 2},
		{OpCallInterface, 3},
	}
	for _, c := range cases {
		if got := len(c.op.operandWidths()); got != c.count {
			t.Errorf("%s: expected %d operand(s), got %d", c.op, c.count, got)
		}
	}
}

func TestConvOpCodeRoundTrip(t *testing.T) {
	op, ok := convOpCode("int", "float")
	if !ok {
		t.Fatal("expected int->float to resolve to a conversion opcode")
	}
	if name := convOpCodeName(op); name != "CONVERT_int_TO_float" {
		t.Errorf("convOpCodeName(%v) = %q, want CONVERT_int_TO_float", op, name)
	}

	if _, ok := convOpCode("string", "int"); ok {
		t.Error("expected a non-primitive name to fail to resolve")
	}
}

func TestEncodeLen(t *testing.T) {
	if got := OpPushNull.Len(); got != 1 {
		t.Errorf("OpPushNull.Len() = %d, want 1", got)
	}
	if got := OpCall.Len(); got != 4 {
		t.Errorf("OpCall.Len() = %d, want 4 (1 opcode + u16 + u8)", got)
	}
}
