package ast

import (
	"testing"

	"github.com/angelscript-go/asc/internal/diag"
)

func TestArenasRoundTripExpr(t *testing.T) {
	a := NewArenas()
	id := a.Exprs.Alloc(&Literal{Kind: LitInt, Text: "42", Sp: diag.Span{Line: 1, Column: 1}})

	got := a.Expr(id)
	lit, ok := got.(*Literal)
	if !ok {
		t.Fatalf("expected *Literal, got %T", got)
	}
	if lit.Text != "42" {
		t.Fatalf("got %q", lit.Text)
	}
}

func TestModuleHoldsTopLevelItems(t *testing.T) {
	a := NewArenas()
	fn := a.Items.Alloc(&FuncDecl{Name: "main", Sp: diag.Span{Line: 1, Column: 1}})
	mod := &Module{Path: "test.as", Items: []ItemID{fn}, Arenas: a}

	if len(mod.Items) != 1 {
		t.Fatalf("expected 1 item")
	}
	item := mod.Arenas.Item(mod.Items[0])
	fd, ok := item.(*FuncDecl)
	if !ok || fd.Name != "main" {
		t.Fatalf("got %+v", item)
	}
}

func TestTypeExprVariants(t *testing.T) {
	a := NewArenas()
	inner := a.TypeExprs.Alloc(&NamedType{Name: "Foo", Sp: diag.Span{Line: 1, Column: 1}})
	handle := a.TypeExprs.Alloc(&HandleType{Inner: inner, Sp: diag.Span{Line: 1, Column: 4}})

	h, ok := a.TypeExpr(handle).(*HandleType)
	if !ok {
		t.Fatalf("expected *HandleType")
	}
	named, ok := a.TypeExpr(h.Inner).(*NamedType)
	if !ok || named.Name != "Foo" {
		t.Fatalf("got %+v", named)
	}
}
