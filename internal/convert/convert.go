// Package convert implements the conversion engine: given a source and
// target DataType, decide whether (and how) a value converts, at what
// cost, and whether the conversion may happen implicitly.
package convert

import "github.com/angelscript-go/asc/internal/types"

// Kind enumerates the conversion categories, ordered roughly cheapest to
// most expensive — callers that need a tie-break ordering rather than the
// numeric Cost can fall back to comparing Kind.
type Kind int

const (
	KindNone Kind = iota
	KindIdentity
	KindNullToHandle
	KindPrimitiveWiden
	KindPrimitiveNarrow
	KindPrimitiveReinterpret
	KindHandleToConst
	KindDerivedToBase
	KindClassToInterface
	KindValueToHandle
	KindConstructorConversion
	KindImplicitConversionMethod
	KindExplicitCastMethod
	KindImplicitCastMethod
)

// Cost is the numeric weight of a Kind, summed across a call's arguments
// during overload resolution. Lower wins; equal sums across two
// candidates is an ambiguity, not a tie-break by Kind.
var costs = map[Kind]int{
	KindNone:                     -1, // sentinel: not used as a real cost
	KindIdentity:                 0,
	KindNullToHandle:             1,
	KindHandleToConst:            1,
	KindPrimitiveWiden:           2,
	KindDerivedToBase:            2,
	KindClassToInterface:         2,
	KindPrimitiveReinterpret:     3,
	KindValueToHandle:            3,
	KindPrimitiveNarrow:          4,
	KindConstructorConversion:    5,
	KindImplicitConversionMethod: 5,
	KindImplicitCastMethod:       6,
	KindExplicitCastMethod:       100, // only ever used for an explicit cast<T>() site
}

func (k Kind) Cost() int { return costs[k] }

// Conversion is the result of evaluating one source->target conversion.
type Conversion struct {
	Kind        Kind
	Cost        int
	IsImplicit  bool
	Method      *types.FunctionDef // set for *ConversionMethod / *CastMethod kinds
}

// Context supplies the registry lookups the conversion engine needs beyond
// the two DataTypes themselves: class hierarchy walks and
// interface-implementation checks.
type Context interface {
	// IsBaseOf reports whether base is (transitively) a base class of derived.
	IsBaseOf(base, derived types.TypeHash) bool
	// Implements reports whether class implements iface (directly or
	// transitively, including base classes' interfaces).
	Implements(class, iface types.TypeHash) bool
	// ConversionMethod looks up an opConv/opImplConv/opCast/opImplCast
	// method on from's type that targets to, if one is registered.
	ConversionMethod(from types.TypeHash, to types.DataType, explicit bool) *types.FunctionDef
	// PrimitiveInfo reports whether h names a primitive type, and if so
	// its bit width, whether it's floating-point and whether it's signed
	// (for widen/narrow ranking).
	PrimitiveInfo(h types.TypeHash) (bits int, float, signed, ok bool)
}

// Convert decides how (if at all) a value of type from converts to type
// to. allowExplicit permits explicit-only conversions (cast<T>() sites);
// it is false for ordinary argument-passing/assignment contexts.
func Convert(from, to types.DataType, ctx Context, allowExplicit bool) (Conversion, bool) {
	if from.Equal(to) {
		return Conversion{Kind: KindIdentity, Cost: KindIdentity.Cost(), IsImplicit: true}, true
	}

	// null -> any handle type.
	if from.Hash == 0 && !from.Handle && to.Handle {
		return Conversion{Kind: KindNullToHandle, Cost: KindNullToHandle.Cost(), IsImplicit: true}, true
	}

	// T@ -> const T@ (handle to the same pointee, but now const).
	if from.Handle && to.Handle && from.Hash == to.Hash && !from.Const && to.Const {
		return Conversion{Kind: KindHandleToConst, Cost: KindHandleToConst.Cost(), IsImplicit: true}, true
	}

	// Primitive numeric conversions.
	if fb, ffloat, fsigned, fok := ctx.PrimitiveInfo(from.Hash); fok {
		if tb, tfloat, tsigned, tok := ctx.PrimitiveInfo(to.Hash); tok {
			return convertPrimitive(fb, ffloat, fsigned, tb, tfloat, tsigned)
		}
	}

	// Derived class -> base class (by value or by handle, same handle-ness).
	if from.Handle == to.Handle && ctx.IsBaseOf(to.Hash, from.Hash) {
		return Conversion{Kind: KindDerivedToBase, Cost: KindDerivedToBase.Cost(), IsImplicit: true}, true
	}

	// Class -> interface it implements, by handle.
	if from.Handle && to.Handle && ctx.Implements(from.Hash, to.Hash) {
		return Conversion{Kind: KindClassToInterface, Cost: KindClassToInterface.Cost(), IsImplicit: true}, true
	}

	// Value -> handle of the same (reference-counted) type.
	if !from.Handle && to.Handle && from.Hash == to.Hash {
		return Conversion{Kind: KindValueToHandle, Cost: KindValueToHandle.Cost(), IsImplicit: true}, true
	}

	// A registered implicit opImplConv/opImplCast method on from's type.
	if m := ctx.ConversionMethod(from.Hash, to, false); m != nil {
		kind := KindImplicitConversionMethod
		if m.Operator == types.OpImplCast {
			kind = KindImplicitCastMethod
		}
		return Conversion{Kind: kind, Cost: kind.Cost(), IsImplicit: true, Method: m}, true
	}

	// A single-argument constructor on to's type accepting from.
	if m := ctx.ConversionMethod(to.Hash, from, false); m != nil && m.Behavior == types.BehaviorConstructor {
		return Conversion{Kind: KindConstructorConversion, Cost: KindConstructorConversion.Cost(), IsImplicit: true, Method: m}, true
	}

	if !allowExplicit {
		return Conversion{}, false
	}

	if m := ctx.ConversionMethod(from.Hash, to, true); m != nil {
		return Conversion{Kind: KindExplicitCastMethod, Cost: KindExplicitCastMethod.Cost(), IsImplicit: false, Method: m}, true
	}

	return Conversion{}, false
}

func convertPrimitive(fb int, ffloat, fsigned bool, tb int, tfloat, tsigned bool) (Conversion, bool) {
	switch {
	case !ffloat && !tfloat:
		if tb >= fb && (fsigned == tsigned || tb > fb) {
			return Conversion{Kind: KindPrimitiveWiden, Cost: KindPrimitiveWiden.Cost(), IsImplicit: true}, true
		}
		if fsigned != tsigned && tb == fb {
			return Conversion{Kind: KindPrimitiveReinterpret, Cost: KindPrimitiveReinterpret.Cost(), IsImplicit: true}, true
		}
		return Conversion{Kind: KindPrimitiveNarrow, Cost: KindPrimitiveNarrow.Cost(), IsImplicit: true}, true
	case ffloat && tfloat:
		if tb >= fb {
			return Conversion{Kind: KindPrimitiveWiden, Cost: KindPrimitiveWiden.Cost(), IsImplicit: true}, true
		}
		return Conversion{Kind: KindPrimitiveNarrow, Cost: KindPrimitiveNarrow.Cost(), IsImplicit: true}, true
	case !ffloat && tfloat:
		return Conversion{Kind: KindPrimitiveWiden, Cost: KindPrimitiveWiden.Cost(), IsImplicit: true}, true
	default: // float -> integer is always narrowing
		return Conversion{Kind: KindPrimitiveNarrow, Cost: KindPrimitiveNarrow.Cost(), IsImplicit: true}, true
	}
}
