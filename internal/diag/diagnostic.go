package diag

import "fmt"

// Diagnostic is a single compiler-reported problem: a kind, a human message,
// the span it originates from, and optional secondary spans (e.g. "previous
// declaration was here" for duplicate-declaration errors).
type Diagnostic struct {
	Kind      Kind
	Severity  Severity
	Message   string
	Span      Span
	Secondary []Diagnostic
	File      string
}

// New builds an error-severity Diagnostic.
func New(kind Kind, span Span, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Span: span}
}

// Notef attaches a secondary "note" diagnostic to d and returns the updated
// value (Diagnostic is a value type; callers reassign).
func (d Diagnostic) Notef(span Span, format string, args ...any) Diagnostic {
	d.Secondary = append(d.Secondary, Diagnostic{
		Kind:     d.Kind,
		Severity: SeverityNote,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
	return d
}
