package semantic

import "github.com/angelscript-go/asc/internal/types"

// Symbol is one name bound in a Scope: a local variable or a parameter.
// Globals are not bound as Symbols; the Checker looks them up in the
// registry when no Scope binds a name.
type Symbol struct {
	Name  string
	Type  types.DataType
	Const bool
}

// Scope is one link in the lexical scope chain active while checking a
// function body: a block statement or a parameter list pushes a new Scope
// chained to its enclosing one; leaving the block discards it.
type Scope struct {
	symbols map[string]*Symbol
	outer   *Scope
}

// NewScope creates a scope enclosed by outer (nil for the outermost scope
// of a function body, whose outer lookup falls through to the registry's
// globals instead).
func NewScope(outer *Scope) *Scope {
	return &Scope{symbols: make(map[string]*Symbol), outer: outer}
}

// Define binds name in this scope. Define reports false without binding
// when name is already defined in this exact scope (shadowing an outer
// scope's binding is legal; redeclaring within the same block is not).
func (s *Scope) Define(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	s.symbols[sym.Name] = sym
	return true
}

// Lookup searches this scope and every enclosing scope, innermost first.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
