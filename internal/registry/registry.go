// Package registry is the central TypeRegistry: every primitive, class,
// interface, enum, funcdef, global variable, and function known to a
// compilation, indexed by TypeHash and by qualified name.
//
// Registration happens in two phases (see unresolved.go): a declaration
// phase that walks every item and creates a TypeEntry (possibly still
// carrying UnresolvedType placeholders for fields/params/bases whose type
// hasn't been seen yet), and a resolution phase that walks the registry
// again substituting every placeholder for the real TypeHash now that the
// whole compilation unit's names are known. This lets a class reference a
// type declared later in the same file, or a later file in the same
// compilation.
package registry

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/types"
)

// TypeRegistry is the shared symbol table for one compilation.
type TypeRegistry struct {
	byHash          map[types.TypeHash]types.TypeEntry
	byQualifiedName map[string]types.TypeHash
	functions       map[string][]*types.FunctionDef // free functions, by qualified name
	globals         map[string]types.DataType
	operators       map[operatorKey][]*types.FunctionDef
	unresolved      []*unresolvedSite
}

type operatorKey struct {
	receiver types.TypeHash
	op       types.OperatorKind
}

// New creates an empty registry with the built-in primitives
// pre-registered.
func New() *TypeRegistry {
	r := &TypeRegistry{
		byHash:          make(map[types.TypeHash]types.TypeEntry),
		byQualifiedName: make(map[string]types.TypeHash),
		functions:       make(map[string][]*types.FunctionDef),
		globals:         make(map[string]types.DataType),
		operators:       make(map[operatorKey][]*types.FunctionDef),
	}
	r.registerPrimitives()
	return r
}

func (r *TypeRegistry) registerPrimitives() {
	prims := []*types.PrimitiveType{
		{Name: "void"},
		{Name: "bool", Bits: 1},
		{Name: "int8", Bits: 8, Signed: true},
		{Name: "int16", Bits: 16, Signed: true},
		{Name: "int", Bits: 32, Signed: true},
		{Name: "int64", Bits: 64, Signed: true},
		{Name: "uint8", Bits: 8},
		{Name: "uint16", Bits: 16},
		{Name: "uint", Bits: 32},
		{Name: "uint64", Bits: 64},
		{Name: "float", Bits: 32, Float: true},
		{Name: "double", Bits: 64, Float: true},
	}
	for _, p := range prims {
		p.Hash = types.HashPrimitive(p.Name)
		r.byHash[p.Hash] = p
		r.byQualifiedName[p.Name] = p.Hash
	}
	// int32/uint32 aliasing: AngelScript spells the 32-bit integers both
	// "int"/"int32" and "uint"/"uint32".
	r.byQualifiedName["int32"] = r.byQualifiedName["int"]
	r.byQualifiedName["uint32"] = r.byQualifiedName["uint"]
}

// Lookup finds a TypeEntry by its TypeHash.
func (r *TypeRegistry) Lookup(h types.TypeHash) (types.TypeEntry, bool) {
	e, ok := r.byHash[h]
	return e, ok
}

// LookupQualified finds a TypeEntry by its exact qualified name
// (`Namespace::Name`, or a bare name for the global namespace).
func (r *TypeRegistry) LookupQualified(name string) (types.TypeEntry, bool) {
	h, ok := r.byQualifiedName[name]
	if !ok {
		return nil, false
	}
	return r.Lookup(h)
}

// Register adds a fully-formed TypeEntry under its own hash and qualified
// name. Register returns an error if the qualified name is already taken
// by a different hash (duplicate declaration).
func (r *TypeRegistry) Register(e types.TypeEntry) error {
	name := e.QualifiedName()
	if existing, ok := r.byQualifiedName[name]; ok && existing != e.TypeHash() {
		return fmt.Errorf("duplicate declaration of %q", name)
	}
	r.byHash[e.TypeHash()] = e
	r.byQualifiedName[name] = e.TypeHash()
	return nil
}

// RegisterFunction adds a free function overload under its qualified name.
func (r *TypeRegistry) RegisterFunction(qualifiedName string, fn *types.FunctionDef) {
	r.functions[qualifiedName] = append(r.functions[qualifiedName], fn)
}

// Functions returns every overload registered under a qualified name.
func (r *TypeRegistry) Functions(qualifiedName string) []*types.FunctionDef {
	return r.functions[qualifiedName]
}

// RegisterGlobal adds a global variable's type under its qualified name.
func (r *TypeRegistry) RegisterGlobal(qualifiedName string, dt types.DataType) error {
	if _, ok := r.globals[qualifiedName]; ok {
		return fmt.Errorf("duplicate global declaration of %q", qualifiedName)
	}
	r.globals[qualifiedName] = dt
	return nil
}

// Global looks up a global variable's type by qualified name.
func (r *TypeRegistry) Global(qualifiedName string) (types.DataType, bool) {
	dt, ok := r.globals[qualifiedName]
	return dt, ok
}

// RegisterOperator adds an operator overload for receiver's type.
func (r *TypeRegistry) RegisterOperator(receiver types.TypeHash, op types.OperatorKind, fn *types.FunctionDef) {
	key := operatorKey{receiver, op}
	r.operators[key] = append(r.operators[key], fn)
}

// Operators returns every overload of op registered on receiver's type.
func (r *TypeRegistry) Operators(receiver types.TypeHash, op types.OperatorKind) []*types.FunctionDef {
	return r.operators[operatorKey{receiver, op}]
}

// AllTypes returns every registered TypeEntry, for introspection/dumping.
func (r *TypeRegistry) AllTypes() []types.TypeEntry {
	out := make([]types.TypeEntry, 0, len(r.byHash))
	for _, e := range r.byHash {
		out = append(out, e)
	}
	return out
}
