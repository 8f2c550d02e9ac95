package registry

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/types"
)

// UnresolvedType stands in for a type name the declaration pass couldn't
// yet resolve to a TypeHash — either because it names a type declared
// later in the same compilation unit, or because it's qualified against a
// namespace import that hasn't been processed yet.
type UnresolvedType struct {
	Expr ast.TypeExprID
	Name string // best-effort display name for diagnostics
}

// unresolvedSite is one registry location still holding an UnresolvedType:
// resolving it means computing the real DataType from Expr and writing it
// back via Patch.
type unresolvedSite struct {
	expr  ast.TypeExprID
	patch func(types.DataType)
}

// Defer records a placeholder site to be filled in during Resolve, for a
// caller that cannot resolve a type expression yet. internal/semantic's
// declaration pass does not call it; it resolves or reports immediately.
func (r *TypeRegistry) Defer(expr ast.TypeExprID, patch func(types.DataType)) {
	r.unresolved = append(r.unresolved, &unresolvedSite{expr: expr, patch: patch})
}

// PendingCount reports how many deferred sites remain unresolved. Resolve
// does not use it; Resolve detects its fixpoint by whether a sweep patched
// any site.
func (r *TypeRegistry) PendingCount() int { return len(r.unresolved) }

// Resolve attempts to resolve every deferred site using resolveFn (the
// caller's type-expression evaluator, typically internal/resolve's type
// resolver bound to a particular namespace/import context per site).
// Resolve sweeps repeatedly until a pass makes no progress, then reports
// every site still unresolved.
func (r *TypeRegistry) Resolve(resolveFn func(ast.TypeExprID) (types.DataType, error)) []error {
	var errs []error
	for {
		remaining := r.unresolved[:0:0]
		progressed := false
		for _, site := range r.unresolved {
			dt, err := resolveFn(site.expr)
			if err != nil {
				remaining = append(remaining, site)
				continue
			}
			site.patch(dt)
			progressed = true
		}
		r.unresolved = remaining
		if len(r.unresolved) == 0 || !progressed {
			break
		}
	}
	for _, site := range r.unresolved {
		_, err := resolveFn(site.expr)
		errs = append(errs, fmt.Errorf("unresolved type: %w", err))
	}
	return errs
}
