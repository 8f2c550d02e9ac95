package convert

import (
	"testing"

	"github.com/angelscript-go/asc/internal/types"
)

type fakeCtx struct {
	bases      map[types.TypeHash]types.TypeHash
	interfaces map[types.TypeHash][]types.TypeHash
	prims      map[types.TypeHash][3]any // bits, float, signed
	methods    map[types.TypeHash]*types.FunctionDef
}

func (f *fakeCtx) IsBaseOf(base, derived types.TypeHash) bool {
	cur := derived
	for {
		b, ok := f.bases[cur]
		if !ok {
			return false
		}
		if b == base {
			return true
		}
		cur = b
	}
}

func (f *fakeCtx) Implements(class, iface types.TypeHash) bool {
	for _, i := range f.interfaces[class] {
		if i == iface {
			return true
		}
	}
	return false
}

func (f *fakeCtx) ConversionMethod(from types.TypeHash, to types.DataType, explicit bool) *types.FunctionDef {
	m := f.methods[from]
	if m != nil && !explicit && (m.Operator == types.OpConv || m.Operator == types.OpCast) {
		return nil
	}
	return m
}

func (f *fakeCtx) PrimitiveInfo(h types.TypeHash) (bits int, float, signed, ok bool) {
	v, present := f.prims[h]
	if !present {
		return 0, false, false, false
	}
	return v[0].(int), v[1].(bool), v[2].(bool), true
}

func TestConvertIdentity(t *testing.T) {
	dt := types.DataType{Hash: 42}
	c, ok := Convert(dt, dt, &fakeCtx{}, false)
	if !ok || c.Kind != KindIdentity {
		t.Fatalf("got %+v, %v", c, ok)
	}
}

func TestConvertNullToHandle(t *testing.T) {
	c, ok := Convert(types.DataType{}, types.DataType{Hash: 7, Handle: true}, &fakeCtx{}, false)
	if !ok || c.Kind != KindNullToHandle {
		t.Fatalf("got %+v, %v", c, ok)
	}
}

func TestConvertPrimitiveWidenInt(t *testing.T) {
	ctx := &fakeCtx{prims: map[types.TypeHash][3]any{
		1: {8, false, true},
		2: {32, false, true},
	}}
	c, ok := Convert(types.DataType{Hash: 1}, types.DataType{Hash: 2}, ctx, false)
	if !ok || c.Kind != KindPrimitiveWiden {
		t.Fatalf("got %+v, %v", c, ok)
	}
}

func TestConvertPrimitiveNarrowIsStillLegalButCostly(t *testing.T) {
	ctx := &fakeCtx{prims: map[types.TypeHash][3]any{
		1: {32, false, true},
		2: {8, false, true},
	}}
	c, ok := Convert(types.DataType{Hash: 1}, types.DataType{Hash: 2}, ctx, false)
	if !ok || c.Kind != KindPrimitiveNarrow {
		t.Fatalf("got %+v, %v", c, ok)
	}
	if c.Cost <= KindPrimitiveWiden.Cost() {
		t.Fatalf("narrowing should cost more than widening")
	}
}

func TestConvertDerivedToBase(t *testing.T) {
	ctx := &fakeCtx{bases: map[types.TypeHash]types.TypeHash{20: 10}}
	from := types.DataType{Hash: 20, Handle: true}
	to := types.DataType{Hash: 10, Handle: true}
	c, ok := Convert(from, to, ctx, false)
	if !ok || c.Kind != KindDerivedToBase {
		t.Fatalf("got %+v, %v", c, ok)
	}
}

func TestConvertClassToInterface(t *testing.T) {
	ctx := &fakeCtx{interfaces: map[types.TypeHash][]types.TypeHash{5: {99}}}
	from := types.DataType{Hash: 5, Handle: true}
	to := types.DataType{Hash: 99, Handle: true}
	c, ok := Convert(from, to, ctx, false)
	if !ok || c.Kind != KindClassToInterface {
		t.Fatalf("got %+v, %v", c, ok)
	}
}

func TestConvertExplicitOnlyRejectedImplicitly(t *testing.T) {
	ctx := &fakeCtx{methods: map[types.TypeHash]*types.FunctionDef{
		1: {Name: "opCast", Operator: types.OpCast},
	}}
	from := types.DataType{Hash: 1}
	to := types.DataType{Hash: 2}
	// Only an explicit opCast is registered: the fake, like the real
	// contexts, hides it from implicit lookups.
	if _, ok := Convert(from, to, ctx, false); ok {
		t.Fatalf("expected explicit-only conversion to be rejected implicitly")
	}
	_, ok := Convert(from, to, ctx, true)
	if !ok {
		t.Fatalf("expected explicit conversion to succeed")
	}
}

func TestConvertNoPathFails(t *testing.T) {
	_, ok := Convert(types.DataType{Hash: 1}, types.DataType{Hash: 2}, &fakeCtx{}, false)
	if ok {
		t.Fatalf("expected no conversion path")
	}
}
