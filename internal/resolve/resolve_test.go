package resolve

import "testing"

func exists(set map[string]bool) func(string) bool {
	return func(name string) bool { return set[name] }
}

func TestLookupExactQualifiedMatch(t *testing.T) {
	set := map[string]bool{"A::B::Foo": true}
	got, err := Lookup([]string{"A", "B", "Foo"}, Scope{}, exists(set))
	if err != nil || got != "A::B::Foo" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLookupNamespaceWalk(t *testing.T) {
	set := map[string]bool{"A::B::Foo": true}
	got, err := Lookup([]string{"Foo"}, Scope{Namespace: []string{"A", "B"}}, exists(set))
	if err != nil || got != "A::B::Foo" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLookupImportsInOrder(t *testing.T) {
	set := map[string]bool{"Lib::Foo": true}
	got, err := Lookup([]string{"Foo"}, Scope{Imports: []string{"Lib", "Other"}}, exists(set))
	if err != nil || got != "Lib::Foo" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLookupGlobalFallback(t *testing.T) {
	set := map[string]bool{"Foo": true}
	got, err := Lookup([]string{"Foo"}, Scope{Namespace: []string{"A"}}, exists(set))
	if err != nil || got != "Foo" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLookupAmbiguousNamespaceWalk(t *testing.T) {
	set := map[string]bool{"A::Foo": true, "A::B::Foo": true}
	_, err := Lookup([]string{"Foo"}, Scope{Namespace: []string{"A", "B"}}, exists(set))
	if err == nil {
		t.Fatalf("expected ambiguity error")
	}
}

func TestLookupGlobalScopeOverride(t *testing.T) {
	set := map[string]bool{"Foo": true, "A::Foo": true}
	got, err := Lookup([]string{"", "Foo"}, Scope{Namespace: []string{"A"}}, exists(set))
	if err != nil || got != "Foo" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestLookupNotFound(t *testing.T) {
	_, err := Lookup([]string{"Ghost"}, Scope{}, exists(map[string]bool{}))
	if err == nil {
		t.Fatalf("expected not-found error")
	}
}
