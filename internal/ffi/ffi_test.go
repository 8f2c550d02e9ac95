package ffi_test

import (
	"testing"

	"github.com/angelscript-go/asc/internal/ffi"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/types"
)

func TestRegisterTypeAndFactory(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	hash, err := r.RegisterType("", "Vector2", types.RefKindStandard)
	if err != nil {
		t.Fatalf("RegisterType: %v", err)
	}

	if err := r.RegisterFactory(hash, "Vector2@ f()", nil); err != nil {
		t.Fatalf("RegisterFactory: %v", err)
	}
	if err := r.RegisterAddRef(hash, "void f()", nil); err != nil {
		t.Fatalf("RegisterAddRef: %v", err)
	}
	if err := r.RegisterRelease(hash, "void f()", nil); err != nil {
		t.Fatalf("RegisterRelease: %v", err)
	}
	if err := r.Finalize(hash); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	entry, ok := reg.Lookup(hash)
	if !ok {
		t.Fatal("expected Vector2 to be registered")
	}
	if entry.QualifiedName() != "Vector2" {
		t.Errorf("QualifiedName() = %q, want Vector2", entry.QualifiedName())
	}
}

func TestFinalizeRejectsMissingBehaviors(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	hash, err := r.RegisterType("", "Incomplete", types.RefKindStandard)
	if err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	if err := r.Finalize(hash); err == nil {
		t.Fatal("expected Finalize to reject a standard-reference type with no AddRef/Release/factory")
	}
}

func TestRegisterMethodClassifiesOperator(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	hash, err := r.RegisterType("", "Vector2", types.RefKindValue)
	if err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	if err := r.RegisterMethod(hash, "Vector2 opAdd(const Vector2 &in) const", nil); err != nil {
		t.Fatalf("RegisterMethod: %v", err)
	}

	ops := reg.Operators(hash, types.OpAdd)
	if len(ops) != 1 {
		t.Fatalf("expected one opAdd overload registered, got %d", len(ops))
	}
	if len(ops[0].Params) != 1 {
		t.Errorf("expected one parameter, got %d", len(ops[0].Params))
	}
}

func TestRegisterGlobalProperty(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	if err := r.RegisterGlobalProperty("PI", "double", ffi.PropertyConstant, 3.14159); err != nil {
		t.Fatalf("RegisterGlobalProperty: %v", err)
	}
	dt, ok := reg.Global("PI")
	if !ok {
		t.Fatal("expected PI to be registered as a global")
	}
	if !dt.Const {
		t.Error("expected a PropertyConstant property's DataType to be const")
	}
	access, ok := r.PropertyAccessOf("PI")
	if !ok || access != ffi.PropertyConstant {
		t.Errorf("PropertyAccessOf(PI) = %v, %v; want PropertyConstant, true", access, ok)
	}
}

func TestRegisterEnum(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	hash, err := r.RegisterEnum("Color").Value("Red", 0).Auto("Green").Auto("Blue").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	entry, ok := reg.Lookup(hash)
	if !ok {
		t.Fatal("expected Color to be registered")
	}
	enum, ok := entry.(*types.EnumType)
	if !ok {
		t.Fatalf("expected *types.EnumType, got %T", entry)
	}
	if len(enum.Members) != 3 || enum.Members[2].Value != 2 {
		t.Errorf("expected 3 auto-numbered members ending at 2, got %+v", enum.Members)
	}
}

func TestRegisterInterface(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	hash, err := r.RegisterInterface("Drawable").Method("void Draw() const").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	entry, ok := reg.Lookup(hash)
	if !ok {
		t.Fatal("expected Drawable to be registered")
	}
	iface, ok := entry.(*types.InterfaceType)
	if !ok {
		t.Fatalf("expected *types.InterfaceType, got %T", entry)
	}
	if len(iface.Methods) != 1 || iface.Methods[0].Name != "Draw" {
		t.Errorf("expected one Draw method, got %+v", iface.Methods)
	}
}

func TestRegisterFuncdef(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	hash, err := r.RegisterFuncdef("Callback", "void f(int)")
	if err != nil {
		t.Fatalf("RegisterFuncdef: %v", err)
	}
	entry, ok := reg.Lookup(hash)
	if !ok {
		t.Fatal("expected Callback to be registered")
	}
	fdef, ok := entry.(*types.FuncdefType)
	if !ok {
		t.Fatalf("expected *types.FuncdefType, got %T", entry)
	}
	if len(fdef.Signature.Params) != 1 {
		t.Errorf("expected one parameter, got %d", len(fdef.Signature.Params))
	}
}

func TestRegisterGlobalFunction(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	if err := r.RegisterGlobalFunction("", "int Abs(int)", nil); err != nil {
		t.Fatalf("RegisterGlobalFunction: %v", err)
	}
	fns := reg.Functions("Abs")
	if len(fns) != 1 {
		t.Fatalf("expected one Abs overload, got %d", len(fns))
	}
}

func TestRegisterMethodOnUnknownTypeFails(t *testing.T) {
	reg := registry.New()
	r := ffi.NewRegistrar(reg)

	if err := r.RegisterMethod(types.TypeHash(12345), "void f()", nil); err == nil {
		t.Fatal("expected RegisterMethod against an unregistered receiver to fail")
	}
}
