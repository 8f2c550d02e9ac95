package semantic

import (
	"fmt"
	"strings"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/types"
)

// ResolveType is the exported form of resolveType, for callers outside
// this package that already hold a parsed TypeExprID and a registry to
// resolve it against — internal/ffi's property and funcdef registration
// reuse this instead of re-implementing named-type/handle/const/array/ref
// resolution a second time.
func ResolveType(reg *registry.TypeRegistry, arenas *ast.Arenas, texpr ast.TypeExprID, scope resolve.Scope) (types.DataType, error) {
	return resolveType(reg, arenas, texpr, scope)
}

// resolveType evaluates a syntactic TypeExpr into a concrete DataType
// against reg, using scope for the namespace-qualified name lookup order a
// bare or scoped NamedType goes through. It returns an error (rather than
// deferring) when a name cannot be found; callers during the declaration
// pass report that error as a diagnostic, since every nominal name of the
// compilation was already declared by the Declarer's first pass.
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

// typeExprName renders a best-effort display name for a type expression.
// It is not exact and is never used for lookup; nothing in this package
// calls it apart from its own recursion.
func typeExprName(arenas *ast.Arenas, texpr ast.TypeExprID) string {
	switch t := arenas.TypeExpr(texpr).(type) {
	case *ast.NamedType:
		parts := append(append([]string{}, t.Scope...), t.Name)
		return strings.Join(parts, "::")
	case *ast.HandleType:
		return typeExprName(arenas, t.Inner) + "@"
	case *ast.ConstType:
		return "const " + typeExprName(arenas, t.Inner)
	case *ast.ArrayType:
		return typeExprName(arenas, t.Elem) + "[]"
	case *ast.RefTypeExpr:
		return typeExprName(arenas, t.Inner) + "&"
	case *ast.AutoType:
		return "auto"
	default:
		return "?"
	}
}
