// Package semantic resolves a parsed Module against a type registry: it
// declares every nominal type and function, resolves field/parameter/
// return types, checks every function body, and verifies every non-void
// function returns on every path. Nodes never carry their own computed
// type; the result is always looked up by a node's arena.ID in Result.Exprs.
package semantic

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/types"
)

// Result is everything the analyzer produced for one compilation: the
// ExprInfo side table (keyed by arena.ID, covering every expression of
// every analyzed module) and the registry it populated.
type Result struct {
	Registry *registry.TypeRegistry
	Exprs    map[ast.ExprID]ExprInfo
}

// Analyzer runs the full declare-then-check pipeline over one or more
// parsed modules sharing a registry.
type Analyzer struct {
	reg   *registry.TypeRegistry
	exprs map[ast.ExprID]ExprInfo
}

// NewAnalyzer creates an Analyzer with a fresh registry, pre-registering
// the handful of builtin reference types script code can assume exist
// without an explicit application binding: the `string` value type and the
// `array<T>` template, mirroring how a hosted engine normally registers
// its standard add-ons before any script is compiled.
func NewAnalyzer() *Analyzer {
	reg := registry.New()
	registerBuiltins(reg)
	return &Analyzer{reg: reg, exprs: make(map[ast.ExprID]ExprInfo)}
}

// NewAnalyzerWithRegistry creates an Analyzer over reg — typically one
// internal/ffi has already populated with a host application's native
// registrations — instead of a bare registry.New(). A nil reg behaves
// exactly like NewAnalyzer. The builtin string/array bootstrap only fills
// in names reg doesn't already have, so a host that registered its own
// "string" type is never overridden.
func NewAnalyzerWithRegistry(reg *registry.TypeRegistry) *Analyzer {
	if reg == nil {
		return NewAnalyzer()
	}
	registerBuiltins(reg)
	return &Analyzer{reg: reg, exprs: make(map[ast.ExprID]ExprInfo)}
}

func registerBuiltins(reg *registry.TypeRegistry) {
	if _, ok := reg.LookupQualified("string"); !ok {
		reg.Register(&types.ClassType{
			Hash: types.HashNominal(types.KindClass, "string"),
			Name: "string",
			Ref:  types.RefKindValue,
		})
	}
	if _, ok := reg.LookupQualified("array"); !ok {
		reg.Register(&types.ClassType{
			Hash: types.HashNominal(types.KindClass, "array"),
			Name: "array",
			Ref:  types.RefKindStandard,
		})
	}
}

// Registry exposes the shared TypeRegistry, e.g. for a bytecode emitter
// that needs to look up a compiled function's signature.
func (a *Analyzer) Registry() *registry.TypeRegistry { return a.reg }

// Analyze runs the declaration pass, the detail-resolution pass, and
// function-body checking over every module in mods (all modules of one
// compilation share the same registry, so a type in one file may be
// referenced from another). It returns a Result plus the accumulated
// diagnostics; callers decide whether sink.HasErrors() should fail the
// build.
func (a *Analyzer) Analyze(mods []*ast.Module) (*Result, *diag.Sink) {
	sink := diag.NewSink()

	declarers := make([]*Declarer, len(mods))
	for i, mod := range mods {
		declarers[i] = NewDeclarer(a.reg, mod.Arenas, sink)
		declarers[i].DeclareNames(mod)
	}
	for i, mod := range mods {
		declarers[i].DeclareDetails(mod)
	}

	for _, mod := range mods {
		a.checkModule(mod, sink)
	}

	return &Result{Registry: a.reg, Exprs: a.exprs}, sink
}

func (a *Analyzer) checkModule(mod *ast.Module, sink *diag.Sink) {
	a.checkItems(mod.Arenas, mod.Items, nil, sink)
}

func (a *Analyzer) checkItems(arenas *ast.Arenas, items []ast.ItemID, ns []string, sink *diag.Sink) {
	for _, id := range items {
		switch it := arenas.Item(id).(type) {
		case *ast.NamespaceDecl:
			a.checkItems(arenas, it.Items, joinNamespace(ns, it.Name), sink)

		case *ast.FuncDecl:
			checker := NewChecker(a.reg, arenas, sink, a.exprs)
			checker.CheckFunction(it, ns, 0, false)

		case *ast.ClassDecl:
			qn := qualifiedOf(ns, it.Name)
			entry, ok := a.reg.LookupQualified(qn)
			if !ok {
				continue
			}
			cls, ok := entry.(*types.ClassType)
			if !ok {
				continue
			}
			for _, mid := range it.Methods {
				m := arenas.Item(mid).(*ast.FuncDecl)
				checker := NewChecker(a.reg, arenas, sink, a.exprs)
				checker.CheckFunction(m, ns, cls.Hash, m.Modifiers.Const)
			}
			for _, pid := range it.Props {
				p := arenas.Item(pid).(*ast.PropertyDecl)
				if p.Get != nil {
					checker := NewChecker(a.reg, arenas, sink, a.exprs)
					checker.CheckFunction(&ast.FuncDecl{Name: "get_" + p.Name, ReturnType: p.Type, Body: p.Get.Body, Sp: p.Sp}, ns, cls.Hash, true)
				}
				if p.Set != nil {
					checker := NewChecker(a.reg, arenas, sink, a.exprs)
					checker.CheckFunction(&ast.FuncDecl{Name: "set_" + p.Name, Params: p.Set.Params, Body: p.Set.Body, Sp: p.Sp}, ns, cls.Hash, false)
				}
			}
		}
	}
}
