package parser

import (
	"testing"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
)

func parseModule(t *testing.T, src string) (*ast.Module, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	p := New(src, sink)
	mod := p.Parse("test.as")
	return mod, sink
}

func TestParseGlobalVarDecl(t *testing.T) {
	mod, sink := parseModule(t, `int x = 5;`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	if len(mod.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(mod.Items))
	}
	decl, ok := mod.Arenas.Item(mod.Items[0]).(*ast.GlobalVarDecl)
	if !ok {
		t.Fatalf("expected GlobalVarDecl, got %T", mod.Arenas.Item(mod.Items[0]))
	}
	if len(decl.Declarators) != 1 || decl.Declarators[0].Name != "x" {
		t.Fatalf("unexpected declarators: %+v", decl.Declarators)
	}
}

func TestParseFreeFunction(t *testing.T) {
	mod, sink := parseModule(t, `int add(int a, int b) { return a + b; }`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	fn, ok := mod.Arenas.Item(mod.Items[0]).(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl, got %T", mod.Arenas.Item(mod.Items[0]))
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected func decl: %+v", fn)
	}
	body, ok := mod.Arenas.Stmt(fn.Body).(*ast.BlockStmt)
	if !ok || len(body.Stmts) != 1 {
		t.Fatalf("expected 1-statement body, got %+v", body)
	}
	ret, ok := mod.Arenas.Stmt(body.Stmts[0]).(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", mod.Arenas.Stmt(body.Stmts[0]))
	}
	bin, ok := mod.Arenas.Expr(ret.Value).(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected OpAdd binary expr, got %+v", bin)
	}
}

func TestParseClassWithConstructorAndField(t *testing.T) {
	src := `
class Foo
{
	Foo() { count = 0; }
	private int count;
}`
	mod, sink := parseModule(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	cls, ok := mod.Arenas.Item(mod.Items[0]).(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected ClassDecl, got %T", mod.Arenas.Item(mod.Items[0]))
	}
	if len(cls.Methods) != 1 || len(cls.Fields) != 1 {
		t.Fatalf("expected 1 method and 1 field, got methods=%d fields=%d", len(cls.Methods), len(cls.Fields))
	}
	ctor, ok := mod.Arenas.Item(cls.Methods[0]).(*ast.FuncDecl)
	if !ok || ctor.Name != "Foo" {
		t.Fatalf("expected constructor named Foo, got %+v", ctor)
	}
	field, ok := mod.Arenas.Item(cls.Fields[0]).(*ast.FieldDecl)
	if !ok || field.Name != "count" || !field.Private {
		t.Fatalf("unexpected field: %+v", field)
	}
}

func TestParseHandleTypeAndArray(t *testing.T) {
	mod, sink := parseModule(t, `array<Foo@>@ items;`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	decl := mod.Arenas.Item(mod.Items[0]).(*ast.GlobalVarDecl)
	outer, ok := mod.Arenas.TypeExpr(decl.Type).(*ast.HandleType)
	if !ok {
		t.Fatalf("expected outer HandleType, got %T", mod.Arenas.TypeExpr(decl.Type))
	}
	named, ok := mod.Arenas.TypeExpr(outer.Inner).(*ast.NamedType)
	if !ok || named.Name != "array" || len(named.TypeArgs) != 1 {
		t.Fatalf("unexpected named type: %+v", named)
	}
}

func TestParseIfWhileFor(t *testing.T) {
	src := `
void run()
{
	if (x > 0) { x--; } else { x++; }
	while (x < 10) { x = x + 1; }
	for (int i = 0; i < 10; i++) { }
}`
	mod, sink := parseModule(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	fn := mod.Arenas.Item(mod.Items[0]).(*ast.FuncDecl)
	body := mod.Arenas.Stmt(fn.Body).(*ast.BlockStmt)
	if len(body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body.Stmts))
	}
	if _, ok := mod.Arenas.Stmt(body.Stmts[0]).(*ast.IfStmt); !ok {
		t.Fatalf("expected IfStmt")
	}
	if _, ok := mod.Arenas.Stmt(body.Stmts[1]).(*ast.WhileStmt); !ok {
		t.Fatalf("expected WhileStmt")
	}
	if _, ok := mod.Arenas.Stmt(body.Stmts[2]).(*ast.ForStmt); !ok {
		t.Fatalf("expected ForStmt")
	}
}

func TestParseEnum(t *testing.T) {
	mod, sink := parseModule(t, `enum Color { Red, Green, Blue = 10 }`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	decl := mod.Arenas.Item(mod.Items[0]).(*ast.EnumDecl)
	if decl.Name != "Color" || len(decl.Members) != 3 {
		t.Fatalf("unexpected enum: %+v", decl)
	}
	if decl.Members[2].Name != "Blue" || decl.Members[2].Value.IsZero() {
		t.Fatalf("expected Blue to carry an explicit value")
	}
}

func TestParseInterface(t *testing.T) {
	mod, sink := parseModule(t, `
interface IShape
{
	float area() const;
}`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	decl := mod.Arenas.Item(mod.Items[0]).(*ast.InterfaceDecl)
	if decl.Name != "IShape" || len(decl.Methods) != 1 || decl.Methods[0].Name != "area" {
		t.Fatalf("unexpected interface: %+v", decl)
	}
}

func TestParseTernaryAndCast(t *testing.T) {
	mod, sink := parseModule(t, `int x = cond ? cast<int>(y) : 0;`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	decl := mod.Arenas.Item(mod.Items[0]).(*ast.GlobalVarDecl)
	ternary, ok := mod.Arenas.Expr(decl.Declarators[0].Init).(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("expected TernaryExpr, got %T", mod.Arenas.Expr(decl.Declarators[0].Init))
	}
	if _, ok := mod.Arenas.Expr(ternary.Then).(*ast.CastExpr); !ok {
		t.Fatalf("expected CastExpr in then-branch")
	}
}

func TestParseErrorRecoveryContinuesToNextItem(t *testing.T) {
	src := `
int a = ;
int b = 2;`
	mod, sink := parseModule(t, src)
	if !sink.HasErrors() {
		t.Fatalf("expected a parse error for the malformed declaration")
	}
	if len(mod.Items) != 2 {
		t.Fatalf("expected recovery to still yield later items: want 2 items, got %d", len(mod.Items))
	}
}

func TestParseForeach(t *testing.T) {
	mod, sink := parseModule(t, `
void run()
{
	foreach (int v : items) { }
}`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
	fn := mod.Arenas.Item(mod.Items[0]).(*ast.FuncDecl)
	body := mod.Arenas.Stmt(fn.Body).(*ast.BlockStmt)
	fe, ok := mod.Arenas.Stmt(body.Stmts[0]).(*ast.ForeachStmt)
	if !ok || len(fe.Bindings) != 1 || fe.Bindings[0].Name != "v" {
		t.Fatalf("unexpected foreach: %+v", fe)
	}
}
