package overload

import (
	"testing"

	"github.com/angelscript-go/asc/internal/types"
)

type identityCtx struct{}

func (identityCtx) IsBaseOf(base, derived types.TypeHash) bool { return false }
func (identityCtx) Implements(class, iface types.TypeHash) bool { return false }
func (identityCtx) ConversionMethod(from types.TypeHash, to types.DataType, explicit bool) *types.FunctionDef {
	return nil
}
func (identityCtx) PrimitiveInfo(h types.TypeHash) (int, bool, bool, bool) {
	switch h {
	case 1: // int8
		return 8, false, true, true
	case 2: // int
		return 32, false, true, true
	case 3: // double
		return 64, true, false, true
	}
	return 0, false, false, false
}

func TestResolveExactMatchShortCircuits(t *testing.T) {
	fn := &types.FunctionDef{Name: "f", Params: []types.ParamEntry{{Type: types.DataType{Hash: 2}}}}
	got, err := Resolve([]Candidate{{Fn: fn, Ctx: identityCtx{}}}, []Arg{{Type: types.DataType{Hash: 2}}})
	if err != nil || got != fn {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestResolveArityWithDefaults(t *testing.T) {
	fn := &types.FunctionDef{Name: "f", Params: []types.ParamEntry{
		{Type: types.DataType{Hash: 2}},
		{Type: types.DataType{Hash: 2}, HasDefault: true},
	}}
	got, err := Resolve([]Candidate{{Fn: fn, Ctx: identityCtx{}}}, []Arg{{Type: types.DataType{Hash: 2}}})
	if err != nil || got != fn {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestResolveNamedArgument(t *testing.T) {
	fn := &types.FunctionDef{Name: "f", Params: []types.ParamEntry{
		{Name: "a", Type: types.DataType{Hash: 2}},
		{Name: "b", Type: types.DataType{Hash: 2}, HasDefault: true},
	}}
	got, err := Resolve([]Candidate{{Fn: fn, Ctx: identityCtx{}}}, []Arg{{Name: "a", Type: types.DataType{Hash: 2}}})
	if err != nil || got != fn {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestResolveNoMatch(t *testing.T) {
	fn := &types.FunctionDef{Name: "f", Params: []types.ParamEntry{{Type: types.DataType{Hash: 99}}}}
	_, err := Resolve([]Candidate{{Fn: fn, Ctx: identityCtx{}}}, []Arg{{Type: types.DataType{Hash: 2}}})
	if err == nil {
		t.Fatalf("expected no-match error")
	}
}

func TestResolveAmbiguousTie(t *testing.T) {
	a := &types.FunctionDef{Name: "a", Params: []types.ParamEntry{{Type: types.DataType{Hash: 2}}}}
	b := &types.FunctionDef{Name: "b", Params: []types.ParamEntry{{Type: types.DataType{Hash: 2}}}}
	_, err := Resolve([]Candidate{{Fn: a, Ctx: identityCtx{}}, {Fn: b, Ctx: identityCtx{}}}, []Arg{{Type: types.DataType{Hash: 1}}})
	if err == nil {
		t.Fatalf("expected ambiguous error (both widen int8->int equally)")
	}
}

type opSource struct {
	ops map[types.OperatorKind][]*types.FunctionDef
}

func (o opSource) Operators(receiver types.TypeHash, op types.OperatorKind) []*types.FunctionDef {
	return o.ops[op]
}

func TestResolveBinaryFallsBackToReverseForm(t *testing.T) {
	rev := &types.FunctionDef{Name: "opAdd_r", Operator: types.OpAddR, Params: []types.ParamEntry{{Type: types.DataType{Hash: 99}}}}
	src := opSource{ops: map[types.OperatorKind][]*types.FunctionDef{types.OpAddR: {rev}}}

	fn, reversed, err := ResolveBinary(src, identityCtx{}, types.OpAdd, types.DataType{Hash: 99}, types.DataType{Hash: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reversed || fn != rev {
		t.Fatalf("expected reverse-form match, got %v reversed=%v", fn, reversed)
	}
}

func TestResolveComparisonUsesOpCmp(t *testing.T) {
	cmp := &types.FunctionDef{Name: "opCmp", Operator: types.OpCmp, Params: []types.ParamEntry{{Type: types.DataType{Hash: 2}}}}
	src := opSource{ops: map[types.OperatorKind][]*types.FunctionDef{types.OpCmp: {cmp}}}

	fn, err := ResolveComparison(src, identityCtx{}, false, types.DataType{Hash: 99}, types.DataType{Hash: 2})
	if err != nil || fn != cmp {
		t.Fatalf("got %v, %v", fn, err)
	}
}
