package bytecode

import (
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/types"
)

// typeContext adapts a *registry.TypeRegistry to the convert.Context and
// candidate-building shape the emitter needs to re-derive which overload a
// call or operator expression resolved to. It is a deliberate duplicate of
// internal/semantic's unexported registryContext: that adapter is scoped
// to package semantic (so internal/convert and internal/overload don't
// import internal/registry and risk a cycle back through
// internal/semantic), and the emitter needs the identical view of the
// registry for the same reason, one layer further out.
type typeContext struct {
	reg *registry.TypeRegistry
}

func (c typeContext) classOf(h types.TypeHash) (*types.ClassType, bool) {
	entry, ok := c.reg.Lookup(h)
	if !ok {
		return nil, false
	}
	cls, ok := entry.(*types.ClassType)
	return cls, ok
}

func (c typeContext) IsBaseOf(base, derived types.TypeHash) bool {
	for h := derived; h != 0; {
		cls, ok := c.classOf(h)
		if !ok {
			return false
		}
		if cls.Base == base {
			return true
		}
		h = cls.Base
	}
	return false
}

func (c typeContext) Implements(class, iface types.TypeHash) bool {
	for h := class; h != 0; {
		cls, ok := c.classOf(h)
		if !ok {
			return false
		}
		for _, i := range cls.Interfaces {
			if i == iface || c.interfaceExtends(i, iface) {
				return true
			}
		}
		h = cls.Base
	}
	return false
}

func (c typeContext) interfaceExtends(iface, target types.TypeHash) bool {
	entry, ok := c.reg.Lookup(iface)
	if !ok {
		return false
	}
	it, ok := entry.(*types.InterfaceType)
	if !ok {
		return false
	}
	for _, b := range it.Bases {
		if b == target || c.interfaceExtends(b, target) {
			return true
		}
	}
	return false
}

func (c typeContext) ConversionMethod(from types.TypeHash, to types.DataType, explicit bool) *types.FunctionDef {
	cls, ok := c.classOf(from)
	if !ok {
		return nil
	}
	ops := []types.OperatorKind{types.OpImplConv, types.OpImplCast}
	if explicit {
		ops = []types.OperatorKind{types.OpConv, types.OpCast, types.OpImplConv, types.OpImplCast}
	}
	for _, op := range ops {
		for _, fn := range c.reg.Operators(cls.Hash, op) {
			if fn.Return.Equal(to) {
				return fn
			}
		}
	}
	for _, fn := range c.reg.Functions(cls.QualifiedName() + "::" + cls.Name) {
		if fn.Behavior == types.BehaviorConstructor && len(fn.Params) == 1 && fn.Params[0].Type.Equal(to) {
			return fn
		}
	}
	return nil
}

func (c typeContext) PrimitiveInfo(h types.TypeHash) (bits int, float, signed, ok bool) {
	entry, found := c.reg.Lookup(h)
	if !found {
		return 0, false, false, false
	}
	p, isPrim := entry.(*types.PrimitiveType)
	if !isPrim {
		return 0, false, false, false
	}
	return p.Bits, p.Float, p.Signed, true
}

func (c typeContext) Operators(receiver types.TypeHash, op types.OperatorKind) []*types.FunctionDef {
	return c.reg.Operators(receiver, op)
}

// primitiveName returns the registered name of the primitive h names, or
// "" if h isn't a primitive.
func (c typeContext) primitiveName(h types.TypeHash) string {
	entry, ok := c.reg.Lookup(h)
	if !ok {
		return ""
	}
	p, ok := entry.(*types.PrimitiveType)
	if !ok {
		return ""
	}
	return p.Name
}
