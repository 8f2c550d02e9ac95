package angelscript_test

import (
	"strings"
	"testing"

	"github.com/angelscript-go/asc/internal/bytecode"
	"github.com/angelscript-go/asc/internal/types"
	"github.com/angelscript-go/asc/pkg/angelscript"
)

func TestCompileEndToEnd(t *testing.T) {
	result, err := angelscript.Compile(`
		int add(int a, int b) {
			return a + b;
		}
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.Bytecode == nil {
		t.Fatal("expected a compiled bytecode.Module")
	}
	var found *bytecode.Chunk
	for _, ch := range result.Bytecode.Functions {
		if ch.Name == "add" {
			found = ch
		}
	}
	if found == nil {
		t.Fatal("expected a compiled chunk named add")
	}
	if !strings.Contains(bytecode.Disassemble(found), "ADD") {
		t.Error("expected an ADD instruction in the disassembly")
	}
}

func TestCompileReportsParseErrors(t *testing.T) {
	result, err := angelscript.Compile(`int broken( {`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if result == nil || !result.Diagnostics.HasErrors() {
		t.Fatal("expected diagnostics to carry the parse error")
	}
	if result.Bytecode != nil {
		t.Error("expected no bytecode for a module with parse errors")
	}
}

func TestCompileReportsTypeErrors(t *testing.T) {
	result, err := angelscript.Compile(`
		int broken() {
			return "not an int";
		}
	`)
	if err == nil {
		t.Fatal("expected a type error")
	}
	if !result.Diagnostics.HasErrors() {
		t.Fatal("expected diagnostics to carry the type error")
	}
}

func TestEngineCompilesAgainstRegisteredType(t *testing.T) {
	e := angelscript.NewEngine()
	hash, err := e.RegisterType("", "Vector2", types.RefKindValue)
	if err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	if err := e.RegisterConstructor(hash, "void f(float, float)", nil); err != nil {
		t.Fatalf("RegisterConstructor: %v", err)
	}
	if err := e.Finalize(hash); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	result, err := e.Compile(`
		void run() {
			Vector2 v;
		}
	`)
	if err != nil {
		t.Fatalf("Compile against a registered native type: %v\n%+v", err, result.Diagnostics.All())
	}
}

func TestCompileStrictStillCompilesValidSource(t *testing.T) {
	result, err := angelscript.CompileStrict(`
		int square(int x) {
			return x * x;
		}
	`)
	if err != nil {
		t.Fatalf("CompileStrict: %v", err)
	}
	if result.Bytecode == nil {
		t.Fatal("expected CompileStrict to still emit bytecode for valid source")
	}
}
