package bytecode

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/types"
)

// resolveType is a deliberate duplicate of internal/semantic's unexported
// resolveType (see typeContext's doc comment for why these small registry
// adapters live in both packages rather than being exported): the emitter
// needs a variable declaration's concrete DataType to allocate its local
// slot and decide whether it needs a Release on scope exit, and
// semantic.Analyze's side table only records expression types, not
// declared-variable types.
func resolveType(reg *registry.TypeRegistry, arenas *ast.Arenas, texpr ast.TypeExprID, scope resolve.Scope) (types.DataType, error) {
	node := arenas.TypeExpr(texpr)
	switch t := node.(type) {
	case *ast.NamedType:
		return resolveNamedType(reg, arenas, t, scope)

	case *ast.HandleType:
		inner, err := resolveType(reg, arenas, t.Inner, scope)
		if err != nil {
			return types.DataType{}, err
		}
		inner.Handle = true
		inner.HandleConst = t.HandleConst
		return inner, nil

	case *ast.ConstType:
		inner, err := resolveType(reg, arenas, t.Inner, scope)
		if err != nil {
			return types.DataType{}, err
		}
		inner.Const = true
		return inner, nil

	case *ast.ArrayType:
		elem, err := resolveType(reg, arenas, t.Elem, scope)
		if err != nil {
			return types.DataType{}, err
		}
		generic, ok := reg.LookupQualified("array")
		if !ok {
			return types.DataType{}, fmt.Errorf("array template type is not registered")
		}
		return types.DataType{Hash: types.HashTemplateInstantiation(generic.TypeHash(), []types.TypeHash{elem.Hash})}, nil

	case *ast.RefTypeExpr:
		inner, err := resolveType(reg, arenas, t.Inner, scope)
		if err != nil {
			return types.DataType{}, err
		}
		switch t.Direction {
		case ast.RefIn:
			inner.Ref = types.RefModIn
		case ast.RefOut:
			inner.Ref = types.RefModOut
		default:
			inner.Ref = types.RefModInOut
		}
		return inner, nil

	case *ast.AutoType:
		return types.DataType{}, fmt.Errorf("auto requires an initializer to infer from")
	}

	return types.DataType{}, fmt.Errorf("unsupported type expression %T", node)
}

func resolveNamedType(reg *registry.TypeRegistry, arenas *ast.Arenas, t *ast.NamedType, scope resolve.Scope) (types.DataType, error) {
	if len(t.TypeArgs) == 0 {
		if entry, ok := reg.LookupQualified(t.Name); ok && len(t.Scope) == 0 {
			return types.DataType{Hash: entry.TypeHash()}, nil
		}
	}

	segs := append(append([]string{}, t.Scope...), t.Name)
	qualified, err := resolve.Lookup(segs, scope, func(name string) bool {
		_, ok := reg.LookupQualified(name)
		return ok
	})
	if err != nil {
		return types.DataType{}, err
	}
	entry, _ := reg.LookupQualified(qualified)
	generic := entry.TypeHash()

	if len(t.TypeArgs) == 0 {
		return types.DataType{Hash: generic}, nil
	}

	argHashes := make([]types.TypeHash, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		dt, err := resolveType(reg, arenas, a, scope)
		if err != nil {
			return types.DataType{}, err
		}
		argHashes[i] = dt.Hash
	}
	return types.DataType{Hash: types.HashTemplateInstantiation(generic, argHashes)}, nil
}
