package ffi

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/semantic"
)

// PropertyAccess discriminates how a registered global property is
// backed: constant, mutable-shared, or script-backed.
type PropertyAccess int

const (
	// PropertyConstant is a read-only value fixed at registration time
	// (the registered type is implicitly const).
	PropertyConstant PropertyAccess = iota
	// PropertyMutableShared is a single mutable value shared by every
	// script that reads or writes it.
	PropertyMutableShared
	// PropertyScriptBacked is backed by a host accessor function invoked
	// on every read/write rather than a fixed storage location.
	PropertyScriptBacked
)

func (a PropertyAccess) String() string {
	switch a {
	case PropertyConstant:
		return "constant"
	case PropertyMutableShared:
		return "mutable-shared"
	case PropertyScriptBacked:
		return "script-backed"
	default:
		return "unknown"
	}
}

// RegisterGlobalProperty registers a global property visible to script
// code under name, with declared type declType (parsed the same way a
// type expression anywhere else in source is), access discriminating how
// it is backed, and accessor the host-side value (a pointer for
// PropertyMutableShared, a constant value for PropertyConstant, or a
// getter/setter pair for PropertyScriptBacked — opaque here since the
// native call bridge that reads it back is out of scope).
func (r *Registrar) RegisterGlobalProperty(name, declType string, access PropertyAccess, accessor any) error {
	texpr, errs := parser.ParseTypeExpr(declType, r.arenas)
	if len(errs) > 0 {
		return fmt.Errorf("ffi: property %s: invalid type %q: %w", name, declType, errs[0])
	}
	dt, err := semantic.ResolveType(r.reg, r.arenas, texpr, resolve.Scope{})
	if err != nil {
		return fmt.Errorf("ffi: property %s: %w", name, err)
	}
	if access == PropertyConstant {
		dt.Const = true
	}
	if err := r.reg.RegisterGlobal(name, dt); err != nil {
		return fmt.Errorf("ffi: %w", err)
	}
	r.access[name] = access
	if accessor != nil {
		r.accessors[name] = accessor
	}
	return nil
}

// PropertyAccessOf reports how a previously registered global property is
// backed.
func (r *Registrar) PropertyAccessOf(name string) (PropertyAccess, bool) {
	a, ok := r.access[name]
	return a, ok
}
