package ffi

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/types"
)

// EnumBuilder accumulates an enum's ordered (name, value) members before
// registering it as a single TypeEntry. Built fluently:
//
//	hash, err := r.RegisterEnum("Color").Value("Red", 0).Value("Green", 1).Build()
type EnumBuilder struct {
	r         *Registrar
	namespace string
	name      string
	members   []types.EnumMemberEntry
	seen      map[string]bool
	next      int64
}

// RegisterEnum starts building an enum named name in the global namespace;
// chain Namespace to nest it.
func (r *Registrar) RegisterEnum(name string) *EnumBuilder {
	return &EnumBuilder{r: r, name: name, seen: make(map[string]bool)}
}

// Namespace sets the namespace the enum is declared under.
func (b *EnumBuilder) Namespace(ns string) *EnumBuilder {
	b.namespace = ns
	return b
}

// Value appends a member with an explicit value. Subsequent Auto calls
// continue numbering from value+1.
func (b *EnumBuilder) Value(name string, value int64) *EnumBuilder {
	if !b.seen[name] {
		b.seen[name] = true
		b.members = append(b.members, types.EnumMemberEntry{Name: name, Value: value})
	}
	b.next = value + 1
	return b
}

// Auto appends a member whose value is one more than the previously added
// member's (0 for the first), mirroring AngelScript's implicit enum
// numbering when a declared member has no explicit `= value`.
func (b *EnumBuilder) Auto(name string) *EnumBuilder {
	return b.Value(name, b.next)
}

// Build registers the accumulated enum and returns its TypeHash.
func (b *EnumBuilder) Build() (types.TypeHash, error) {
	qn := qualifyName(b.namespace, b.name)
	if _, ok := b.r.reg.LookupQualified(qn); ok {
		return 0, fmt.Errorf("ffi: enum %q already registered", qn)
	}
	hash := types.HashNominal(types.KindEnum, qn)
	et := &types.EnumType{Hash: hash, Name: b.name, Namespace: b.namespace, Members: b.members}
	if err := b.r.reg.Register(et); err != nil {
		return 0, err
	}
	return hash, nil
}
