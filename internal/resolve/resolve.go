// Package resolve implements AngelScript's qualified-name resolution
// order: an exact qualified match first, then a walk outward through
// enclosing namespaces, then each import in declaration order, then the
// global namespace. Ambiguity across candidates found at the same step is
// always an error — resolve never silently picks one.
package resolve

import (
	"fmt"
	"strings"
)

// Scope describes the lookup context a name is resolved from: the
// namespace path it's written in (innermost first) and the modules it
// imports, in declaration order.
type Scope struct {
	Namespace []string // e.g. ["A", "B"] for code inside namespace A::B
	Imports   []string // imported module/namespace names, declaration order
}

// Lookup resolves name (already split on "::", with an empty leading
// segment meaning a leading "::" global-scope override) against scope,
// calling exists to test whether a candidate qualified name is registered.
// Lookup returns the single resolved qualified name, or an error
// describing either "not found" or "ambiguous between X and Y".
func Lookup(name []string, scope Scope, exists func(qualified string) bool) (string, error) {
	if len(name) > 0 && name[0] == "" {
		// Leading "::" forces global-scope lookup, skipping namespace walk
		// and imports entirely.
		qualified := strings.Join(name[1:], "::")
		if exists(qualified) {
			return qualified, nil
		}
		return "", fmt.Errorf("unresolved name '%s'", strings.Join(name, "::"))
	}

	plain := strings.Join(name, "::")

	// 1. Exact qualified match against the name exactly as written.
	if exists(plain) {
		return plain, nil
	}

	// 2. Walk outward through enclosing namespaces, innermost first.
	var candidates []string
	for i := len(scope.Namespace); i > 0; i-- {
		prefix := strings.Join(scope.Namespace[:i], "::")
		candidate := prefix + "::" + plain
		if exists(candidate) {
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) > 1 {
		return "", ambiguous(name, candidates)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	// 3. Each import, in declaration order — first match wins, but if more
	// than one import independently resolves the name, that's ambiguous.
	candidates = candidates[:0]
	for _, imp := range scope.Imports {
		candidate := imp + "::" + plain
		if exists(candidate) {
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) > 1 {
		return "", ambiguous(name, candidates)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	// 4. Global namespace.
	if exists(plain) {
		return plain, nil
	}

	return "", fmt.Errorf("unresolved name '%s'", strings.Join(name, "::"))
}

func ambiguous(name []string, candidates []string) error {
	return fmt.Errorf("ambiguous name '%s': matches %s", strings.Join(name, "::"), strings.Join(candidates, ", "))
}
