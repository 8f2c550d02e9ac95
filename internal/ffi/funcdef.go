package ffi

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/semantic"
	"github.com/angelscript-go/asc/internal/types"
)

// RegisterFuncdef registers a global function-pointer type named name
// with the given signature (parameter types + return type; the name in
// decl itself is discarded — a funcdef's identity is name, not its
// placeholder signature name).
func (r *Registrar) RegisterFuncdef(name, decl string) (types.TypeHash, error) {
	return r.registerFuncdef(name, "", decl)
}

// RegisterNestedFuncdef registers a funcdef scoped under parent (a
// previously registered class or interface), the way AngelScript allows a
// funcdef declared inside a class body to be referenced as
// `Outer::Inner`.
func (r *Registrar) RegisterNestedFuncdef(parent types.TypeHash, name, decl string) (types.TypeHash, error) {
	entry, ok := r.reg.Lookup(parent)
	if !ok {
		return 0, fmt.Errorf("ffi: funcdef %s: unknown parent type %s", name, parent)
	}
	return r.registerFuncdef(name, entry.QualifiedName(), decl)
}

func (r *Registrar) registerFuncdef(name, namespace, decl string) (types.TypeHash, error) {
	qn := qualifyName(namespace, name)
	if _, ok := r.reg.LookupQualified(qn); ok {
		return 0, fmt.Errorf("ffi: funcdef %q already registered", qn)
	}

	fd, errs := parser.ParseFunctionDecl(decl, r.arenas)
	if len(errs) > 0 {
		return 0, fmt.Errorf("ffi: funcdef %s: invalid signature %q: %w", name, decl, errs[0])
	}
	scope := resolve.Scope{}
	var ret types.DataType
	if fd.ReturnType != 0 {
		dt, err := semantic.ResolveType(r.reg, r.arenas, fd.ReturnType, scope)
		if err != nil {
			return 0, fmt.Errorf("ffi: funcdef %s: %w", name, err)
		}
		ret = dt
	}
	params, err := r.resolveParams(fd.Params, scope)
	if err != nil {
		return 0, fmt.Errorf("ffi: funcdef %s: %w", name, err)
	}

	hash := types.HashNominal(types.KindFuncdef, qn)
	ft := &types.FuncdefType{
		Hash: hash, Name: name, Namespace: namespace,
		Signature: types.FunctionDef{Name: fd.Name, Return: ret, Params: params, Const: fd.Modifiers.Const},
	}
	if err := r.reg.Register(ft); err != nil {
		return 0, err
	}
	return hash, nil
}
