package ffi

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/semantic"
	"github.com/angelscript-go/asc/internal/types"
)

// InterfaceBuilder accumulates an interface's base interfaces and abstract
// method signatures before registering it as a single TypeEntry. Built
// fluently:
//
//	hash, err := r.RegisterInterface("Drawable").Method("void Draw() const").Build()
type InterfaceBuilder struct {
	r         *Registrar
	namespace string
	name      string
	bases     []types.TypeHash
	decls     []string
}

// RegisterInterface starts building an interface named name in the global
// namespace; chain Namespace to nest it.
func (r *Registrar) RegisterInterface(name string) *InterfaceBuilder {
	return &InterfaceBuilder{r: r, name: name}
}

// Namespace sets the namespace the interface is declared under.
func (b *InterfaceBuilder) Namespace(ns string) *InterfaceBuilder {
	b.namespace = ns
	return b
}

// Extends adds base as an interface this one extends; base's own methods
// are not copied here (Build leaves multi-interface method-set flattening,
// the same as a script-declared interface, to ITable construction at
// class-registration time).
func (b *InterfaceBuilder) Extends(base types.TypeHash) *InterfaceBuilder {
	b.bases = append(b.bases, base)
	return b
}

// Method adds one abstract method's signature (no body, no native value —
// an interface only declares the contract).
func (b *InterfaceBuilder) Method(decl string) *InterfaceBuilder {
	b.decls = append(b.decls, decl)
	return b
}

// Build registers the accumulated interface and returns its TypeHash.
func (b *InterfaceBuilder) Build() (types.TypeHash, error) {
	qn := qualifyName(b.namespace, b.name)
	if _, ok := b.r.reg.LookupQualified(qn); ok {
		return 0, fmt.Errorf("ffi: interface %q already registered", qn)
	}
	hash := types.HashNominal(types.KindInterface, qn)

	iface := &types.InterfaceType{Hash: hash, Name: b.name, Namespace: b.namespace, Bases: b.bases}
	scope := resolve.Scope{}
	for _, decl := range b.decls {
		fd, errs := parser.ParseFunctionDecl(decl, b.r.arenas)
		if len(errs) > 0 {
			return 0, fmt.Errorf("ffi: interface %s: invalid method %q: %w", b.name, decl, errs[0])
		}
		var ret types.DataType
		if fd.ReturnType != 0 {
			dt, err := semantic.ResolveType(b.r.reg, b.r.arenas, fd.ReturnType, scope)
			if err != nil {
				return 0, fmt.Errorf("ffi: interface %s: %w", b.name, err)
			}
			ret = dt
		}
		params, err := b.r.resolveParams(fd.Params, scope)
		if err != nil {
			return 0, fmt.Errorf("ffi: interface %s: %w", b.name, err)
		}
		iface.Methods = append(iface.Methods, types.FunctionDef{
			Name: fd.Name, Receiver: hash, Return: ret, Params: params, Const: fd.Modifiers.Const,
		})
	}

	if err := b.r.reg.Register(iface); err != nil {
		return 0, err
	}
	return hash, nil
}
