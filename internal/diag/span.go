// Package diag provides span tracking and Rustc-style diagnostic rendering
// shared by every stage of the compilation pipeline.
package diag

import "fmt"

// Span records the location of a token, AST node, or diagnostic in source
// text: a starting line/column (1-based, counted in runes) and a byte
// length. Every lexed token, every AST node, and every diagnostic carries one
// so the renderer can always reproduce the offending source line.
type Span struct {
	Line   int
	Column int
	Offset int // byte offset of the first byte of the span
	Len    int // byte length of the span
}

// Zero reports whether the span was never set (the default value).
func (s Span) Zero() bool {
	return s.Line == 0 && s.Column == 0 && s.Len == 0
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Join returns the smallest span covering both a and b, assuming they come
// from the same source and a starts no later than b.
func Join(a, b Span) Span {
	if a.Zero() {
		return b
	}
	if b.Zero() {
		return a
	}
	end := b.Offset + b.Len
	return Span{
		Line:   a.Line,
		Column: a.Column,
		Offset: a.Offset,
		Len:    end - a.Offset,
	}
}
