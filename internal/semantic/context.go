package semantic

import (
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/types"
)

// registryContext adapts a *registry.TypeRegistry to the narrow interfaces
// internal/convert and internal/overload each declare for themselves
// (convert.Context, overload.OperatorSource), so neither of those packages
// needs to import internal/registry and risk a cycle back through
// internal/semantic.
type registryContext struct {
	reg *registry.TypeRegistry
}

func (c registryContext) classOf(h types.TypeHash) (*types.ClassType, bool) {
	entry, ok := c.reg.Lookup(h)
	if !ok {
		return nil, false
	}
	cls, ok := entry.(*types.ClassType)
	return cls, ok
}

// IsBaseOf walks derived's base-class chain looking for base.
func (c registryContext) IsBaseOf(base, derived types.TypeHash) bool {
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

// Implements walks class's own interface list and base-class chain,
// following interface inheritance too (an interface extending another
// satisfies the base interface as well).
func (c registryContext) Implements(class, iface types.TypeHash) bool {
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

func (c registryContext) interfaceExtends(iface, target types.TypeHash) bool {
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

// ConversionMethod looks for a conversion operator registered on from's
// type that produces to, then (explicit==false, mirroring a
// constructor-conversion probe) a single-argument constructor on from's
// type accepting to's DataType as its sole parameter. convert.Convert
// calls this twice with from/to swapped, so this single implementation
// serves both "does from convert to to via its own opConv" and "does to
// have a constructor that accepts from" without either side needing to
// know which question it's answering.
func (c registryContext) ConversionMethod(from types.TypeHash, to types.DataType, explicit bool) *types.FunctionDef {
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

// PrimitiveInfo reports the bit width/float-ness/signedness of a primitive
// TypeHash, the shape convert.Convert needs to rank widen/narrow/reinterpret.
func (c registryContext) PrimitiveInfo(h types.TypeHash) (bits int, float, signed, ok bool) {
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

// Operators satisfies overload.OperatorSource directly off the registry.
func (c registryContext) Operators(receiver types.TypeHash, op types.OperatorKind) []*types.FunctionDef {
	return c.reg.Operators(receiver, op)
}
