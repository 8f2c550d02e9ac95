package diag

import (
	"strings"
	"testing"
)

func TestRenderIncludesHeaderAndCaret(t *testing.T) {
	source := "int x = 1 +;\n"
	d := New(KindUnexpectedToken, Span{Line: 1, Column: 12, Len: 1}, "unexpected token ';'")

	out := Render(d, source, "script.as")

	if !strings.Contains(out, "--> script.as:1:12") {
		t.Fatalf("missing location header: %q", out)
	}
	if !strings.Contains(out, "int x = 1 +;") {
		t.Fatalf("missing source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret: %q", out)
	}
}

func TestSinkHasErrors(t *testing.T) {
	s := NewSink()
	if s.HasErrors() {
		t.Fatalf("empty sink should report no errors")
	}
	s.Errorf(KindTypeMismatch, Span{Line: 1, Column: 1}, "mismatch")
	if !s.HasErrors() {
		t.Fatalf("sink with an Error diagnostic should report HasErrors")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", s.Len())
	}
}

func TestRenderAllSummarizesMultiple(t *testing.T) {
	s := NewSink()
	s.Errorf(KindUnresolvedName, Span{Line: 1, Column: 1}, "unresolved name 'Foo'")
	s.Errorf(KindTypeMismatch, Span{Line: 2, Column: 3}, "type mismatch")

	out := RenderAll(s, "Foo x;\nint y = \"s\";\n", "")
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("expected summary line, got %q", out)
	}
}

func TestCaretWidthAccountsForWideRunes(t *testing.T) {
	line := "中x"
	off := caretOffset(line, 2) // column 2 = start of 'x', preceded by one wide rune
	if off != 2 {
		t.Fatalf("expected wide-rune offset 2, got %d", off)
	}
}
