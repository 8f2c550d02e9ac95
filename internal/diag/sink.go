package diag

// Sink collects diagnostics across an entire compilation run. Every stage of
// the pipeline (lexer, parser, registry, resolver, semantic analyzer,
// emitter) is handed the same Sink so a single run can report a batch of
// independent problems instead of halting at the first one.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink creates an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a diagnostic.
func (s *Sink) Add(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// Errorf is a convenience wrapper around Add(New(...)).
func (s *Sink) Errorf(kind Kind, span Span, format string, args ...any) {
	s.Add(New(kind, span, format, args...))
}

// All returns every diagnostic recorded so far, in report order.
func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics recorded.
func (s *Sink) Len() int {
	return len(s.diagnostics)
}

// Merge appends another sink's diagnostics onto s, preserving order.
func (s *Sink) Merge(other *Sink) {
	if other == nil {
		return
	}
	s.diagnostics = append(s.diagnostics, other.diagnostics...)
}
