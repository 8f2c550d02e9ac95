package semantic_test

import (
	"testing"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/semantic"
)

func analyzeSource(t *testing.T, src string) (*semantic.Result, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	p := parser.New(src, sink)
	mod := p.Parse("test.as")
	if sink.HasErrors() {
		t.Fatalf("parse errors: %v", sink.All())
	}
	a := semantic.NewAnalyzer()
	return a.Analyze([]*ast.Module{mod})
}

func TestAnalyzeSimpleFunction(t *testing.T) {
	_, sink := analyzeSource(t, `
		int add(int a, int b) {
			return a + b;
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
}

func TestAnalyzeMissingReturnPath(t *testing.T) {
	_, sink := analyzeSource(t, `
		int maybe(bool flag) {
			if (flag) {
				return 1;
			}
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a not-all-paths-return error")
	}
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	_, sink := analyzeSource(t, `
		void f() {
			x = 1;
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected an unresolved-name error")
	}
}

func TestAnalyzeClassFieldAndMethod(t *testing.T) {
	_, sink := analyzeSource(t, `
		class Point {
			int x;
			int y;
			int sum() const {
				return x + y;
			}
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
}

func TestAnalyzeConstMethodCannotAssignField(t *testing.T) {
	_, sink := analyzeSource(t, `
		class Counter {
			int value;
			void bump() const {
				value = value + 1;
			}
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a cannot-modify-const error")
	}
}

func TestAnalyzeGlobalVarAndWhileLoop(t *testing.T) {
	result, sink := analyzeSource(t, `
		int counter = 0;
		void tick() {
			while (counter < 10) {
				counter = counter + 1;
			}
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	if _, ok := result.Registry.Global("counter"); !ok {
		t.Fatalf("expected global 'counter' to be registered")
	}
}

func TestAnalyzeBreakOutsideLoop(t *testing.T) {
	_, sink := analyzeSource(t, `
		void f() {
			break;
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a break-outside-loop error")
	}
}
