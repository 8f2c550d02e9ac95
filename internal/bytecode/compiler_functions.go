package bytecode

import (
	"strings"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/semantic"
	"github.com/angelscript-go/asc/internal/types"
)

// CompileModule lowers every function, method, and property accessor body
// in mod, plus a synthetic global-initializer chunk, into a *Module. It
// walks namespaces and classes the same way semantic.Analyzer's checking
// pass does, so a FuncDecl here resolves against the same registry entry
// the prior Analyze call already checked it against — exprs must be the
// ExprInfo side table that pass produced.
func CompileModule(reg *registry.TypeRegistry, arenas *ast.Arenas, mod *ast.Module, exprs map[ast.ExprID]semantic.ExprInfo, sink *diag.Sink) *Module {
	out := NewModule()
	compileItems(reg, arenas, mod.Items, nil, exprs, sink, out)
	out.Init = compileGlobalInit(reg, arenas, mod.Items, exprs, sink, out)
	return out
}

// joinNamespace and qualifiedOf are deliberate duplicates of
// internal/semantic's unexported helpers of the same name: the emitter
// needs to recompute the identical qualified names the declarer used to
// register functions/globals, and those helpers are scoped to package
// semantic.
func joinNamespace(outer []string, name string) []string {
	segs := strings.Split(name, "::")
	return append(append([]string{}, outer...), segs...)
}

func qualifiedOf(ns []string, name string) string {
	if len(ns) == 0 {
		return name
	}
	return strings.Join(ns, "::") + "::" + name
}

func compileItems(reg *registry.TypeRegistry, arenas *ast.Arenas, items []ast.ItemID, ns []string, exprs map[ast.ExprID]semantic.ExprInfo, sink *diag.Sink, out *Module) {
	for _, id := range items {
		switch it := arenas.Item(id).(type) {
		case *ast.NamespaceDecl:
			compileItems(reg, arenas, it.Items, joinNamespace(ns, it.Name), exprs, sink, out)

		case *ast.FuncDecl:
			if it.Body == 0 {
				continue
			}
			scope := resolve.Scope{Namespace: ns}
			fn := findFunction(reg, arenas, qualifiedOf(ns, it.Name), it, 0, scope)
			if fn == nil {
				continue
			}
			compileFunction(reg, arenas, it, ns, 0, false, fn, exprs, sink, out)

		case *ast.ClassDecl:
			qn := qualifiedOf(ns, it.Name)
			entry, ok := reg.LookupQualified(qn)
			if !ok {
				continue
			}
			cls, ok := entry.(*types.ClassType)
			if !ok {
				continue
			}
			compileClass(reg, arenas, it, cls, ns, exprs, sink, out)
		}
	}
}

func compileClass(reg *registry.TypeRegistry, arenas *ast.Arenas, it *ast.ClassDecl, cls *types.ClassType, ns []string, exprs map[ast.ExprID]semantic.ExprInfo, sink *diag.Sink, out *Module) {
	qn := qualifiedOf(ns, it.Name)
	scope := resolve.Scope{Namespace: ns}

	for _, mid := range it.Methods {
		m := arenas.Item(mid).(*ast.FuncDecl)
		if m.Body == 0 {
			continue
		}
		fn := findFunction(reg, arenas, qn+"::"+m.Name, m, cls.Hash, scope)
		if fn == nil {
			continue
		}
		compileFunction(reg, arenas, m, ns, cls.Hash, m.Modifiers.Const, fn, exprs, sink, out)
	}

	for _, pid := range it.Props {
		p := arenas.Item(pid).(*ast.PropertyDecl)
		if p.Get != nil && p.Get.Body != 0 {
			if fns := reg.Functions(qn + "::get_" + p.Name); len(fns) > 0 {
				decl := &ast.FuncDecl{Name: "get_" + p.Name, ReturnType: p.Type, Body: p.Get.Body, Sp: p.Sp}
				compileFunction(reg, arenas, decl, ns, cls.Hash, true, fns[0], exprs, sink, out)
			}
		}
		if p.Set != nil && p.Set.Body != 0 {
			if fns := reg.Functions(qn + "::set_" + p.Name); len(fns) > 0 {
				decl := &ast.FuncDecl{Name: "set_" + p.Name, Params: p.Set.Params, Body: p.Set.Body, Sp: p.Sp}
				compileFunction(reg, arenas, decl, ns, cls.Hash, false, fns[0], exprs, sink, out)
			}
		}
	}
}

// findFunction picks the *types.FunctionDef among qualifiedName's
// registered overloads that decl itself declared. The registry has no
// back-reference from an ast.FuncDecl to the FunctionDef the declarer
// built for it, so with more than one overload sharing a name, the
// candidate is found by matching decl's own resolved parameter types
// exactly (no conversions — this is re-deriving which signature decl is,
// not resolving a call site).
func findFunction(reg *registry.TypeRegistry, arenas *ast.Arenas, qualifiedName string, decl *ast.FuncDecl, receiver types.TypeHash, scope resolve.Scope) *types.FunctionDef {
	candidates := reg.Functions(qualifiedName)
	if len(candidates) <= 1 {
		if len(candidates) == 1 {
			return candidates[0]
		}
		return nil
	}

	paramTypes := make([]types.DataType, len(decl.Params))
	for i, p := range decl.Params {
		dt, err := resolveType(reg, arenas, p.Type, scope)
		if err != nil {
			return nil
		}
		paramTypes[i] = dt
	}

	for _, fn := range candidates {
		if fn.Receiver != receiver || fn.Const != decl.Modifiers.Const || len(fn.Params) != len(paramTypes) {
			continue
		}
		match := true
		for i, pt := range paramTypes {
			if !fn.Params[i].Type.Equal(pt) {
				match = false
				break
			}
		}
		if match {
			return fn
		}
	}
	return candidates[0]
}

// compileFunction lowers decl's body into a Chunk registered in mod.
// Locals are declared in the same order Checker.CheckFunction seeds its
// Scope: this first (methods only), then parameters left to right, so a
// name resolves to the same slot index the semantic pass already
// validated it against.
func compileFunction(reg *registry.TypeRegistry, arenas *ast.Arenas, decl *ast.FuncDecl, ns []string, receiver types.TypeHash, thisConst bool, sig *types.FunctionDef, exprs map[ast.ExprID]semantic.ExprInfo, sink *diag.Sink, mod *Module) *Chunk {
	c := NewCompiler(reg, arenas, exprs, sink, mod)
	c.nsScope = resolve.Scope{Namespace: ns}
	c.thisHash = receiver
	c.thisSet = receiver != 0
	c.thisConst = thisConst
	c.returnType = sig.Return

	name := decl.Name
	if c.thisSet {
		if cls, ok := c.classOf(receiver); ok {
			name = cls.Name + "::" + decl.Name
		}
	}
	c.chunk = NewChunk(name, mod.Constants)

	if c.thisSet {
		c.declareLocal("this", types.DataType{Hash: receiver, Handle: true, HandleConst: thisConst})
	}
	for _, p := range decl.Params {
		dt, err := resolveType(reg, arenas, p.Type, c.nsScope)
		if err != nil {
			dt = types.DataType{}
		}
		c.declareLocal(p.Name, dt)
	}

	c.compileStmt(decl.Body)

	// A prior semantic.Checker.CheckFunction pass already rejected any
	// non-void function with a path that falls off the end without
	// returning, so this is only ever reached by a void function (or an
	// unreachable tail after an explicit return/all-paths-return body);
	// either way a trailing RETURN_VOID keeps the chunk well-formed.
	c.chunk.Emit(OpReturnVoid, decl.Sp.Line)

	mod.Functions[sig] = c.chunk
	return c.chunk
}

// compileGlobalInit builds the module-wide chunk that evaluates every
// global variable's initializer and stores it, in declaration order, the
// way a hosted engine runs a module's global-init step once before any
// script function can observe a global's value.
func compileGlobalInit(reg *registry.TypeRegistry, arenas *ast.Arenas, items []ast.ItemID, exprs map[ast.ExprID]semantic.ExprInfo, sink *diag.Sink, mod *Module) *Chunk {
	c := NewCompiler(reg, arenas, exprs, sink, mod)
	c.chunk = NewChunk("$init", mod.Constants)
	compileGlobalInitItems(c, items, nil)
	c.chunk.Emit(OpReturnVoid, 0)
	return c.chunk
}

func compileGlobalInitItems(c *Compiler, items []ast.ItemID, ns []string) {
	for _, id := range items {
		switch it := c.arenas.Item(id).(type) {
		case *ast.NamespaceDecl:
			compileGlobalInitItems(c, it.Items, joinNamespace(ns, it.Name))

		case *ast.GlobalVarDecl:
			c.nsScope = resolve.Scope{Namespace: ns}
			line := it.Sp.Line
			for _, d := range it.Declarators {
				if d.Init != 0 {
					c.compileExpr(d.Init)
				} else {
					c.chunk.Emit(OpPushNull, line)
				}
				idx := c.mod.Refs.GlobalIndex(qualifiedOf(ns, d.Name))
				c.chunk.Emit(OpSetGlobal, line, uint32(idx))
				c.chunk.Emit(OpPop, line)
			}
		}
	}
}
