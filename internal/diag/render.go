package diag

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Render formats a single diagnostic Rustc-style:
//
//	error: message
//	 --> file:line:col
//	  |
//	4 | source line text
//	  |      ^^^^
//
// source is the full text the diagnostic's span was computed against; file
// is used only for the "-->" header (pass "" for anonymous/eval input).
func Render(d Diagnostic, source, file string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s\n", d.Severity, d.Message)
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(&b, " --> %s:%d:%d\n", file, d.Span.Line, d.Span.Column)

	line := sourceLine(source, d.Span.Line)
	gutter := fmt.Sprintf("%d", d.Span.Line)
	pad := strings.Repeat(" ", len(gutter))

	fmt.Fprintf(&b, "%s |\n", pad)
	fmt.Fprintf(&b, "%s | %s\n", gutter, line)
	fmt.Fprintf(&b, "%s | %s%s\n", pad, strings.Repeat(" ", caretOffset(line, d.Span.Column)), caret(line, d.Span))

	for _, note := range d.Secondary {
		fmt.Fprintf(&b, "%s = note: %s (%s)\n", pad, note.Message, note.Span)
	}

	return b.String()
}

// RenderAll renders every diagnostic in s, separated by a blank line, with a
// leading "compilation failed with N error(s)" summary when there is more
// than one.
func RenderAll(s *Sink, source, file string) string {
	ds := s.All()
	if len(ds) == 0 {
		return ""
	}
	var b strings.Builder
	if len(ds) > 1 {
		fmt.Fprintf(&b, "compilation failed with %d error(s)\n\n", len(ds))
	}
	for i, d := range ds {
		b.WriteString(Render(d, source, file))
		if i < len(ds)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// caretOffset computes how many visual columns precede the span's start,
// accounting for East-Asian wide runes so the caret lines up under CJK or
// fullwidth source text, not just under the Nth rune.
func caretOffset(line string, column int) int {
	if column <= 1 {
		return 0
	}
	runes := []rune(line)
	n := column - 1
	if n > len(runes) {
		n = len(runes)
	}
	offset := 0
	for _, r := range runes[:n] {
		offset += runeWidth(r)
	}
	return offset
}

// caret draws a run of '^' sized to the span, in visual columns.
func caret(line string, span Span) string {
	runes := []rune(line)
	start := span.Column - 1
	if start < 0 {
		start = 0
	}
	count := runeCountForByteLen(line, span)
	if count < 1 {
		count = 1
	}
	w := 0
	end := start + count
	if end > len(runes) {
		end = len(runes)
	}
	for _, r := range runes[start:end] {
		w += runeWidth(r)
	}
	if w < 1 {
		w = 1
	}
	return strings.Repeat("^", w)
}

// runeCountForByteLen approximates how many runes a byte-length span covers
// within line, for spans whose Len was recorded in bytes by the lexer.
func runeCountForByteLen(line string, span Span) int {
	if span.Len <= 0 {
		return 1
	}
	// Best-effort: count runes in the first span.Len bytes of the
	// remainder of the line starting at the span's column. This is a
	// display approximation, not a byte-exact slice, since Column is
	// already rune-based per the lexer's contract.
	count := 0
	consumed := 0
	runes := []rune(line)
	start := span.Column - 1
	if start < 0 || start > len(runes) {
		return 1
	}
	for _, r := range runes[start:] {
		if consumed >= span.Len {
			break
		}
		consumed += len([]byte(string(r)))
		count++
	}
	if count == 0 {
		count = 1
	}
	return count
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
