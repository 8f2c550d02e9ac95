package overload

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/convert"
	"github.com/angelscript-go/asc/internal/types"
)

// OperatorSource looks up the operator overloads registered for a type, so
// ResolveBinary/ResolveUnary don't need to depend on internal/registry
// directly (avoiding an import cycle, since registry doesn't need to know
// about overload resolution).
type OperatorSource interface {
	Operators(receiver types.TypeHash, op types.OperatorKind) []*types.FunctionDef
}

// ResolveBinary dispatches a binary operator: try op on left's type first
// (lhs.opAdd(rhs)), then — if op has a reverse form and left declared
// none — try op.Reverse() on right's type (rhs.opAdd_r(lhs)), matching
// `lhs + rhs` resolving through whichever operand declares the overload.
func ResolveBinary(src OperatorSource, ctx convert.Context, op types.OperatorKind, left, right types.DataType) (*types.FunctionDef, bool, error) {
	if fn, err := resolveOnReceiver(src, ctx, op, left, []Arg{{Type: right}}); fn != nil || err != nil {
		return fn, false, err
	}

	if rev := op.Reverse(); rev != types.OperatorNone {
		if fn, err := resolveOnReceiver(src, ctx, rev, right, []Arg{{Type: left}}); fn != nil || err != nil {
			return fn, true, err
		}
	}

	return nil, false, fmt.Errorf("no matching operator overload")
}

// ResolveUnary dispatches a unary operator against operand's type.
func ResolveUnary(src OperatorSource, ctx convert.Context, op types.OperatorKind, operand types.DataType) (*types.FunctionDef, error) {
	fn, err := resolveOnReceiver(src, ctx, op, operand, nil)
	if fn == nil && err == nil {
		return nil, fmt.Errorf("no matching operator overload")
	}
	return fn, err
}

// ResolveComparison dispatches `<`, `<=`, `>`, `>=` through opCmp (returns
// an int whose sign the caller compares against zero) and `==`/`!=`
// through opEquals (returns bool directly). Both take the right-hand
// operand as their sole argument, with no reverse form — AngelScript
// requires the left operand's type to declare the comparison operator.
func ResolveComparison(src OperatorSource, ctx convert.Context, useEquals bool, left, right types.DataType) (*types.FunctionDef, error) {
	op := types.OpCmp
	if useEquals {
		op = types.OpEquals
	}
	fn, err := resolveOnReceiver(src, ctx, op, left, []Arg{{Type: right}})
	if fn == nil && err == nil {
		return nil, fmt.Errorf("no matching operator overload")
	}
	return fn, err
}

func resolveOnReceiver(src OperatorSource, ctx convert.Context, op types.OperatorKind, receiver types.DataType, args []Arg) (*types.FunctionDef, error) {
	fns := src.Operators(receiver.Hash, op)
	if len(fns) == 0 {
		return nil, nil
	}
	candidates := make([]Candidate, len(fns))
	for i, fn := range fns {
		candidates[i] = Candidate{Fn: fn, Ctx: ctx}
	}
	fn, err := Resolve(candidates, args)
	if err != nil {
		return nil, err
	}
	return fn, nil
}
