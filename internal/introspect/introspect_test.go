package introspect_test

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/bytecode"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/introspect"
	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/semantic"
)

func TestDumpModuleListsTopLevelItems(t *testing.T) {
	sink := diag.NewSink()
	p := parser.New(`
		int add(int a, int b) {
			return a + b;
		}
		enum Color { Red, Green, Blue }
	`, sink)
	mod := p.Parse("test.as")
	if sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", sink.All())
	}

	dump := introspect.DumpModule(mod)

	if !strings.Contains(dump, `"name": "add"`) {
		t.Errorf("expected dump to name the add function, got:\n%s", dump)
	}
	kinds := gjson.Get(dump, "items.#.kind").Array()
	if len(kinds) != 2 || kinds[0].String() != "func" || kinds[1].String() != "enum" {
		t.Errorf("items.#.kind = %v, want [func enum]", kinds)
	}
}

func TestDumpBytecodeListsFunctionsAndDisassembly(t *testing.T) {
	sink := diag.NewSink()
	p := parser.New(`
		int square(int x) {
			return x * x;
		}
	`, sink)
	mod := p.Parse("test.as")
	if sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", sink.All())
	}

	reg := registry.New()
	a := semantic.NewAnalyzerWithRegistry(reg)
	sres, checkSink := a.Analyze([]*ast.Module{mod})
	if checkSink.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", checkSink.All())
	}

	bcSink := diag.NewSink()
	bcMod := bytecode.CompileModule(sres.Registry, mod.Arenas, mod, sres.Exprs, bcSink)
	if bcSink.HasErrors() {
		t.Fatalf("unexpected bytecode errors: %v", bcSink.All())
	}

	dump := introspect.DumpBytecode(bcMod)
	names := introspect.FunctionNames(dump)
	found := false
	for _, n := range names {
		if n == "square" {
			found = true
		}
	}
	if !found {
		t.Errorf("FunctionNames() = %v, want to contain square", names)
	}
	if !strings.Contains(dump, "MUL") {
		t.Errorf("expected a MUL instruction in the disassembly, got:\n%s", dump)
	}
}
