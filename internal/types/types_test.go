package types

import "testing"

func TestHashPrimitiveStable(t *testing.T) {
	a := HashPrimitive("int")
	b := HashPrimitive("int")
	if a != b {
		t.Fatalf("expected stable hash, got %v != %v", a, b)
	}
	if a == HashPrimitive("float") {
		t.Fatalf("different primitives must hash differently")
	}
}

func TestHashNominalDistinguishesKind(t *testing.T) {
	class := HashNominal(KindClass, "Foo")
	iface := HashNominal(KindInterface, "Foo")
	if class == iface {
		t.Fatalf("class and interface named Foo must not collide")
	}
}

func TestHashTemplateInstantiationDistinguishesArgs(t *testing.T) {
	arr := HashPrimitive("array")
	intHash := HashPrimitive("int")
	strHash := HashPrimitive("string")

	arrInt := HashTemplateInstantiation(arr, []TypeHash{intHash})
	arrStr := HashTemplateInstantiation(arr, []TypeHash{strHash})
	arrIntAgain := HashTemplateInstantiation(arr, []TypeHash{intHash})

	if arrInt == arrStr {
		t.Fatalf("array<int> and array<string> must not collide")
	}
	if arrInt != arrIntAgain {
		t.Fatalf("repeated instantiation of array<int> must share a hash")
	}
}

func TestReferenceKindLegality(t *testing.T) {
	if !RefKindStandard.AllowsHandle() {
		t.Fatalf("standard ref types must allow handles")
	}
	if RefKindStandard.AllowsValue() {
		t.Fatalf("standard ref types must not allow value semantics")
	}
	if !RefKindValue.AllowsValue() {
		t.Fatalf("value types must allow value semantics")
	}
	if !RefKindStandard.RequiresAddRefRelease() {
		t.Fatalf("standard ref types require AddRef/Release")
	}
}

func TestTypeBehaviorsValidateStandard(t *testing.T) {
	var b TypeBehaviors
	if reason := b.Validate(RefKindStandard); reason == "" {
		t.Fatalf("expected a validation failure for missing AddRef/Release")
	}
	b.AddRef = &FunctionDef{Name: "AddRef"}
	b.Release = &FunctionDef{Name: "Release"}
	b.Factories = []*FunctionDef{{Name: "Foo", Behavior: BehaviorFactory}}
	if reason := b.Validate(RefKindStandard); reason != "" {
		t.Fatalf("expected valid, got %q", reason)
	}
}

func TestLookupOperatorClassifiesOverloadNames(t *testing.T) {
	if LookupOperator("opAdd") != OpAdd {
		t.Fatalf("expected OpAdd")
	}
	if LookupOperator("doStuff") != OperatorNone {
		t.Fatalf("expected OperatorNone for an ordinary method")
	}
	if OpAdd.Reverse() != OpAddR {
		t.Fatalf("expected opAdd's reverse to be opAdd_r")
	}
}

func TestITableBuildSlotsReportsMissing(t *testing.T) {
	iface := &InterfaceType{
		Name: "Comparable",
		Methods: []FunctionDef{
			{Name: "compareTo"},
			{Name: "equals"},
		},
	}
	impls := map[string]*FunctionDef{
		"compareTo": {Name: "compareTo"},
	}
	slots, missing := BuildSlots(iface, impls)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if len(missing) != 1 || missing[0] != "equals" {
		t.Fatalf("expected missing [equals], got %v", missing)
	}

	table := NewITable()
	table.Bind(iface.TypeHash(), slots)
	if !table.Implements(iface.TypeHash()) {
		t.Fatalf("expected Implements true")
	}
	if table.Slot(iface.TypeHash(), 0).Name != "compareTo" {
		t.Fatalf("expected slot 0 to be compareTo")
	}
	if table.Slot(iface.TypeHash(), 1) != nil {
		t.Fatalf("expected slot 1 (equals) to be nil (missing impl)")
	}
}
