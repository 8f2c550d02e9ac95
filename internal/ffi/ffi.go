// Package ffi is the registration-side surface a host application uses to
// expose native (Go) types, functions, properties, interfaces, enums, and
// funcdefs to script code, without reaching into the virtual machine or
// the native call bridge that later marshals arguments — both are treated
// as external collaborators here. Every declaration is accepted the same
// way a script declares it: as a signature string, parsed through the
// same internal/parser entry points a compiled script uses
// (ParseTypeExpr/ParseFunctionDecl), then resolved against the shared
// registry.TypeRegistry so native and script-defined types share one
// identity scheme (content-hashed TypeHash).
package ffi

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/semantic"
	"github.com/angelscript-go/asc/internal/types"
)

// Registrar accumulates native registrations into reg. A host application
// creates one Registrar per registry (normally the same registry a
// subsequent compilation's Analyzer will use), calls its Register*
// methods in any order a real engine would allow, then hands the
// populated registry to the compiler.
//
// Registrar keeps its own scratch ast.Arenas: declaration strings are
// parsed into throwaway AST nodes only long enough to resolve a
// types.DataType/types.FunctionDef from them, and are never retained
// after registration completes.
type Registrar struct {
	reg    *registry.TypeRegistry
	arenas *ast.Arenas

	// natives records the host-supplied native value (a Go func, closure,
	// or other opaque handle) alongside each registered FunctionDef. The
	// native call bridge that would actually invoke these is out of
	// scope; this table exists so a host can look its own function back
	// up by FunctionDef once that bridge exists.
	natives map[*types.FunctionDef]any

	// accessors mirrors natives for global properties: the host value
	// backing a registered property, keyed by its qualified name.
	accessors map[string]any
	access    map[string]PropertyAccess
}

// NewRegistrar creates a Registrar over reg.
func NewRegistrar(reg *registry.TypeRegistry) *Registrar {
	return &Registrar{
		reg:       reg,
		arenas:    ast.NewArenas(),
		natives:   make(map[*types.FunctionDef]any),
		accessors: make(map[string]any),
		access:    make(map[string]PropertyAccess),
	}
}

// Registry exposes the underlying TypeRegistry, e.g. so a caller can look
// up a just-registered type by qualified name.
func (r *Registrar) Registry() *registry.TypeRegistry { return r.reg }

// Native returns the host value registered alongside def, if any.
func (r *Registrar) Native(def *types.FunctionDef) (any, bool) {
	v, ok := r.natives[def]
	return v, ok
}

func qualifyName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "::" + name
}

// RegisterType registers a native type under name (optionally namespaced),
// with the given reference-kind legality class, and returns its TypeHash.
// The type starts with no behaviors; RegisterFactory/RegisterConstructor/
// RegisterDestructor/RegisterMethod fill those in, and Finalize checks the
// result against ref's legality requirements once registration is done.
func (r *Registrar) RegisterType(namespace, name string, ref types.ReferenceKind) (types.TypeHash, error) {
	qn := qualifyName(namespace, name)
	if _, ok := r.reg.LookupQualified(qn); ok {
		return 0, fmt.Errorf("ffi: type %q already registered", qn)
	}
	hash := types.HashNominal(types.KindClass, qn)
	cls := &types.ClassType{
		Hash:      hash,
		Name:      name,
		Namespace: namespace,
		Ref:       ref,
		Table:     types.NewITable(),
	}
	if err := r.reg.Register(cls); err != nil {
		return 0, err
	}
	return hash, nil
}

// Finalize validates receiver's registered behaviors against its
// reference kind, the same check the declaration pass runs on a
// script-defined class once its body is fully declared.
func (r *Registrar) Finalize(receiver types.TypeHash) error {
	cls, err := r.classOf(receiver)
	if err != nil {
		return err
	}
	if reason := cls.Behaviors.Validate(cls.Ref); reason != "" {
		return fmt.Errorf("ffi: type %s: %s", cls.QualifiedName(), reason)
	}
	return nil
}

func (r *Registrar) classOf(h types.TypeHash) (*types.ClassType, error) {
	entry, ok := r.reg.Lookup(h)
	if !ok {
		return nil, fmt.Errorf("ffi: unknown type %s", h)
	}
	cls, ok := entry.(*types.ClassType)
	if !ok {
		return nil, fmt.Errorf("ffi: %s is not a registered object type", entry.QualifiedName())
	}
	return cls, nil
}

// registerSignature parses decl as a function signature (shared with
// script parsing via parser.ParseFunctionDecl), resolves its parameter/
// return types against the registry,
// and returns the resulting FunctionDef with native recorded against it.
// It does not yet attach the def to any class/behavior/operator table;
// callers (RegisterMethod, RegisterBehavior, ...) do that.
func (r *Registrar) registerSignature(receiver types.TypeHash, decl string, native any) (*types.FunctionDef, error) {
	fd, errs := parser.ParseFunctionDecl(decl, r.arenas)
	if len(errs) > 0 {
		return nil, fmt.Errorf("ffi: invalid declaration %q: %w", decl, errs[0])
	}
	scope := resolve.Scope{}

	var ret types.DataType
	if fd.ReturnType != 0 {
		dt, err := semantic.ResolveType(r.reg, r.arenas, fd.ReturnType, scope)
		if err != nil {
			return nil, fmt.Errorf("ffi: %q: return type: %w", decl, err)
		}
		ret = dt
	}

	params, err := r.resolveParams(fd.Params, scope)
	if err != nil {
		return nil, fmt.Errorf("ffi: %q: %w", decl, err)
	}

	def := &types.FunctionDef{
		Name:     fd.Name,
		Receiver: receiver,
		Return:   ret,
		Params:   params,
		Const:    fd.Modifiers.Const,
		Operator: types.LookupOperator(fd.Name),
	}
	if native != nil {
		r.natives[def] = native
	}
	return def, nil
}

func (r *Registrar) resolveParams(params []ast.Param, scope resolve.Scope) ([]types.ParamEntry, error) {
	out := make([]types.ParamEntry, 0, len(params))
	for _, p := range params {
		dt, err := semantic.ResolveType(r.reg, r.arenas, p.Type, scope)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		out = append(out, types.ParamEntry{Name: p.Name, Type: dt, HasDefault: p.Default != 0})
	}
	return out, nil
}
