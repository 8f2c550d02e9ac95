package bytecode_test

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/bytecode"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/semantic"
)

func compileSource(t *testing.T, src string) (*bytecode.Module, *ast.Module, *semantic.Result) {
	t.Helper()
	sink := diag.NewSink()
	p := parser.New(src, sink)
	mod := p.Parse("test.as")
	if sink.HasErrors() {
		t.Fatalf("parse errors: %v", sink.All())
	}

	a := semantic.NewAnalyzer()
	result, checkSink := a.Analyze([]*ast.Module{mod})
	if checkSink.HasErrors() {
		t.Fatalf("semantic errors: %v", checkSink.All())
	}

	out := bytecode.CompileModule(result.Registry, mod.Arenas, mod, result.Exprs, diag.NewSink())
	return out, mod, result
}

func findChunk(t *testing.T, mod *bytecode.Module, name string) *bytecode.Chunk {
	t.Helper()
	for _, ch := range mod.Functions {
		if ch.Name == name {
			return ch
		}
	}
	t.Fatalf("no compiled chunk named %q", name)
	return nil
}

func TestCompileArithmeticFunction(t *testing.T) {
	mod, _, _ := compileSource(t, `
		int add(int a, int b) {
			return a + b;
		}
	`)
	ch := findChunk(t, mod, "add")
	dis := bytecode.Disassemble(ch)
	if !strings.Contains(dis, "ADD") {
		t.Errorf("expected an ADD instruction, got:\n%s", dis)
	}
	if !strings.Contains(dis, "RETURN") {
		t.Errorf("expected a RETURN instruction, got:\n%s", dis)
	}
}

func TestCompileIfElse(t *testing.T) {
	mod, _, _ := compileSource(t, `
		int pick(bool flag) {
			if (flag) {
				return 1;
			} else {
				return 2;
			}
		}
	`)
	ch := findChunk(t, mod, "pick")
	dis := bytecode.Disassemble(ch)
	if !strings.Contains(dis, "JUMP_IF_FALSE") {
		t.Errorf("expected a conditional jump, got:\n%s", dis)
	}
	if strings.Count(dis, "POP") < 2 {
		t.Errorf("expected both branches to discard the peeked condition, got:\n%s", dis)
	}
}

func TestCompileWhileLoopBreakContinue(t *testing.T) {
	mod, _, _ := compileSource(t, `
		void run() {
			int i = 0;
			while (i < 10) {
				if (i == 5) {
					break;
				}
				i = i + 1;
				continue;
			}
		}
	`)
	ch := findChunk(t, mod, "run")
	dis := bytecode.Disassemble(ch)
	if !strings.Contains(dis, "LOOP") {
		t.Errorf("expected a backward LOOP instruction, got:\n%s", dis)
	}
	// Every JUMP emitted for break/continue must have been patched away
	// from its 0xFFFF placeholder; a leftover placeholder decodes as a
	// wildly out-of-range operand.
	if strings.Contains(dis, "65535") {
		t.Errorf("found an unpatched jump placeholder:\n%s", dis)
	}
}

func TestCompileForLoop(t *testing.T) {
	mod, _, _ := compileSource(t, `
		int sum() {
			int total = 0;
			for (int i = 0; i < 10; i = i + 1) {
				total = total + i;
			}
			return total;
		}
	`)
	ch := findChunk(t, mod, "sum")
	dis := bytecode.Disassemble(ch)
	if !strings.Contains(dis, "LOOP") {
		t.Errorf("expected a backward LOOP instruction, got:\n%s", dis)
	}
}

func TestCompileSwitchFallthroughAndBreak(t *testing.T) {
	mod, _, _ := compileSource(t, `
		int classify(int x) {
			int result = 0;
			switch (x) {
				case 1:
					result = 10;
					break;
				case 2:
				case 3:
					result = 20;
					break;
				default:
					result = 30;
					break;
			}
			return result;
		}
	`)
	ch := findChunk(t, mod, "classify")
	dis := bytecode.Disassemble(ch)
	if strings.Contains(dis, "65535") {
		t.Errorf("found an unpatched jump placeholder:\n%s", dis)
	}
	if !strings.Contains(dis, "EQ") {
		t.Errorf("expected case comparisons to use EQ, got:\n%s", dis)
	}
}

func TestCompileMethodThisSlot(t *testing.T) {
	mod, _, _ := compileSource(t, `
		class Counter {
			int value;
			int get() const {
				return value;
			}
			void bump() {
				value = value + 1;
			}
		}
	`)
	get := findChunk(t, mod, "Counter::get")
	if get.LocalCount < 1 {
		t.Errorf("expected this to occupy local slot 0, got LocalCount=%d", get.LocalCount)
	}
	dis := bytecode.Disassemble(findChunk(t, mod, "Counter::bump"))
	if !strings.Contains(dis, "GET_FIELD") || !strings.Contains(dis, "SET_FIELD") {
		t.Errorf("expected field access in bump, got:\n%s", dis)
	}
}

func TestCompileGlobalInit(t *testing.T) {
	mod, _, _ := compileSource(t, `
		int counter = 42;
	`)
	if mod.Init == nil {
		t.Fatal("expected a synthetic global-init chunk")
	}
	dis := bytecode.Disassemble(mod.Init)
	if !strings.Contains(dis, "SET_GLOBAL") {
		t.Errorf("expected SET_GLOBAL in the init chunk, got:\n%s", dis)
	}
}

func TestCompileVoidFunctionGetsImplicitReturn(t *testing.T) {
	mod, _, _ := compileSource(t, `
		void noop() {
		}
	`)
	ch := findChunk(t, mod, "noop")
	if len(ch.Code) == 0 {
		t.Fatal("expected at least the implicit RETURN_VOID")
	}
	dis := bytecode.Disassemble(ch)
	if !strings.Contains(dis, "RETURN_VOID") {
		t.Errorf("expected an implicit RETURN_VOID, got:\n%s", dis)
	}
}

// TestCompileSwitchDisassemblySnapshot pins the full disassembly listing
// of a function mixing a switch, a loop, and a fallthrough case — too
// large a textual shape to usefully assert with individual substring
// checks, so it's pinned as a snapshot instead.
func TestCompileSwitchDisassemblySnapshot(t *testing.T) {
	mod, _, _ := compileSource(t, `
		int classify(int x) {
			int result = 0;
			switch (x) {
				case 1:
				case 2:
					result = 1;
					break;
				case 3:
					result = 2;
					break;
				default:
					result = -1;
			}
			return result;
		}
	`)
	ch := findChunk(t, mod, "classify")
	snaps.MatchSnapshot(t, bytecode.Disassemble(ch))
}
