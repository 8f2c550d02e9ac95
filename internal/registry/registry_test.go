package registry

import (
	"errors"
	"testing"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/types"
)

func TestPrimitivesPreregistered(t *testing.T) {
	r := New()
	entry, ok := r.LookupQualified("int")
	if !ok {
		t.Fatalf("expected int to be pre-registered")
	}
	if entry.Kind() != types.KindPrimitive {
		t.Fatalf("expected primitive kind")
	}
	if _, ok := r.LookupQualified("int32"); !ok {
		t.Fatalf("expected int32 alias to resolve")
	}
}

func TestRegisterDuplicateNameFails(t *testing.T) {
	r := New()
	cls := &types.ClassType{Hash: types.HashNominal(types.KindClass, "Foo"), Name: "Foo"}
	if err := r.Register(cls); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := &types.ClassType{Hash: types.HashNominal(types.KindClass, "Foo") + 1, Name: "Foo"}
	if err := r.Register(other); err == nil {
		t.Fatalf("expected duplicate declaration error")
	}
}

func TestDeferredResolutionFixpoint(t *testing.T) {
	r := New()
	a := ast.NewArenas()
	fooExpr := a.TypeExprs.Alloc(&ast.NamedType{Name: "Foo"})
	barExpr := a.TypeExprs.Alloc(&ast.NamedType{Name: "Bar"})

	var fooResolved, barResolved types.DataType
	r.Defer(barExpr, func(dt types.DataType) { barResolved = dt })
	r.Defer(fooExpr, func(dt types.DataType) { fooResolved = dt })

	fooHash := types.HashNominal(types.KindClass, "Foo")
	barHash := types.HashNominal(types.KindClass, "Bar")

	// Simulate Bar depending on Foo being resolved first: Bar only
	// resolves once Foo has already been patched in, forcing a
	// second sweep.
	resolveFn := func(id ast.TypeExprID) (types.DataType, error) {
		nt := a.TypeExpr(id).(*ast.NamedType)
		switch nt.Name {
		case "Foo":
			return types.DataType{Hash: fooHash}, nil
		case "Bar":
			if fooResolved.Hash == 0 {
				return types.DataType{}, errors.New("Foo not yet resolved")
			}
			return types.DataType{Hash: barHash}, nil
		}
		return types.DataType{}, errors.New("unknown")
	}

	errs := r.Resolve(resolveFn)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if fooResolved.Hash != fooHash || barResolved.Hash != barHash {
		t.Fatalf("expected both resolved: foo=%v bar=%v", fooResolved, barResolved)
	}
}

func TestResolveReportsGenuinelyUnresolved(t *testing.T) {
	r := New()
	a := ast.NewArenas()
	missingExpr := a.TypeExprs.Alloc(&ast.NamedType{Name: "Ghost"})
	r.Defer(missingExpr, func(types.DataType) {})

	errs := r.Resolve(func(ast.TypeExprID) (types.DataType, error) {
		return types.DataType{}, errors.New("unresolved name 'Ghost'")
	})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestOperatorsRegisteredPerReceiver(t *testing.T) {
	r := New()
	intHash := types.HashPrimitive("int")
	fn := &types.FunctionDef{Name: "opAdd", Receiver: intHash}
	r.RegisterOperator(intHash, types.OpAdd, fn)

	got := r.Operators(intHash, types.OpAdd)
	if len(got) != 1 || got[0] != fn {
		t.Fatalf("got %v", got)
	}
}
