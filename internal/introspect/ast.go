// Package introspect renders compiler-internal structures — a parsed
// Module, a compiled bytecode.Module — as JSON for CLI tooling (`parse
// --json`, `disasm --json`) and golden-file comparisons, assembling a
// document incrementally with sjson rather than hand-rolling string
// concatenation.
package introspect

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/angelscript-go/asc/internal/ast"
)

// DumpModule renders mod's top-level items as an indented JSON document:
// one entry per item, naming its kind and the identifying details a reader
// skimming `asc parse --json` output would want (name, parameters, base
// list) without walking into statement/expression bodies.
func DumpModule(mod *ast.Module) string {
	doc := "{}"
	doc, _ = sjson.Set(doc, "path", mod.Path)
	doc, _ = sjson.Set(doc, "items", []any{})

	for i, id := range mod.Items {
		item := mod.Arenas.Item(id)
		entry := dumpItem(mod.Arenas, item)
		path := fmt.Sprintf("items.%d", i)
		for k, v := range entry {
			doc, _ = sjson.Set(doc, path+"."+k, v)
		}
	}

	return string(pretty.Pretty([]byte(doc)))
}

func dumpItem(arenas *ast.Arenas, item ast.Item) map[string]any {
	switch it := item.(type) {
	case *ast.FuncDecl:
		params := make([]string, len(it.Params))
		for i, p := range it.Params {
			params[i] = p.Name
		}
		return map[string]any{
			"kind":   "func",
			"name":   it.Name,
			"params": params,
			"const":  it.Modifiers.Const,
		}
	case *ast.ClassDecl:
		return map[string]any{
			"kind":    "class",
			"name":    it.Name,
			"bases":   it.Bases,
			"methods": len(it.Methods),
			"fields":  len(it.Fields),
		}
	case *ast.InterfaceDecl:
		names := make([]string, len(it.Methods))
		for i, m := range it.Methods {
			names[i] = m.Name
		}
		return map[string]any{
			"kind":    "interface",
			"name":    it.Name,
			"bases":   it.Bases,
			"methods": names,
		}
	case *ast.EnumDecl:
		names := make([]string, len(it.Members))
		for i, m := range it.Members {
			names[i] = m.Name
		}
		return map[string]any{
			"kind":    "enum",
			"name":    it.Name,
			"members": names,
		}
	case *ast.FuncdefDecl:
		return map[string]any{
			"kind": "funcdef",
			"name": it.Name,
		}
	case *ast.NamespaceDecl:
		kinds := make([]string, len(it.Items))
		for i, cid := range it.Items {
			kinds[i] = fmt.Sprint(dumpItem(arenas, arenas.Item(cid))["kind"])
		}
		return map[string]any{
			"kind":     "namespace",
			"name":     it.Name,
			"contains": kinds,
		}
	case *ast.GlobalVarDecl:
		names := make([]string, len(it.Declarators))
		for i, d := range it.Declarators {
			names[i] = d.Name
		}
		return map[string]any{
			"kind": "global_var",
			"names": names,
		}
	case *ast.ImportDecl:
		return map[string]any{
			"kind":   "import",
			"name":   it.Name,
			"module": it.FromModule,
		}
	case *ast.TypedefDecl:
		return map[string]any{
			"kind": "typedef",
			"name": it.Name,
		}
	default:
		return map[string]any{"kind": "unknown"}
	}
}
