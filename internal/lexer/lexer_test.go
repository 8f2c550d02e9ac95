package lexer

import "testing"

func kinds(src string) []Kind {
	l := New(src)
	var out []Kind
	for {
		tok := l.NextToken()
		out = append(out, tok.Kind)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	got := kinds("class Foo { void bar() {} }")
	want := []Kind{CLASS, IDENT, LBRACE, VOID, IDENT, LPAREN, RPAREN, LBRACE, RBRACE, RBRACE, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerNumberKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"123", INT_LIT},
		{"0x1F", INT_LIT},
		{"0b101", INT_LIT},
		{"0o17", INT_LIT},
		{"3.14", DOUBLE_LIT},
		{"3.14f", FLOAT_LIT},
		{"1e10", DOUBLE_LIT},
		{"2f", FLOAT_LIT},
	}
	for _, c := range cases {
		l := New(c.src)
		tok := l.NextToken()
		if tok.Kind != c.kind {
			t.Errorf("%q: got %v, want %v", c.src, tok.Kind, c.kind)
		}
		if tok.Literal != c.src {
			t.Errorf("%q: literal got %q", c.src, tok.Literal)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := New(`"a\nb\t\"c"`)
	tok := l.NextToken()
	if tok.Kind != STRING_LIT {
		t.Fatalf("got %v", tok.Kind)
	}
	if tok.Raw != "a\nb\t\"c" {
		t.Fatalf("got %q", tok.Raw)
	}
}

func TestLexerHeredoc(t *testing.T) {
	l := New(`"""raw \n text"""`)
	tok := l.NextToken()
	if tok.Kind != HEREDOC_LIT {
		t.Fatalf("got %v", tok.Kind)
	}
	if tok.Raw != `raw \n text` {
		t.Fatalf("got %q", tok.Raw)
	}
}

func TestLexerUnterminatedStringReportsError(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestLexerCompoundOperators(t *testing.T) {
	got := kinds("a += b ** c >>>= d @= e")
	want := []Kind{IDENT, PLUS_ASSIGN, IDENT, POW, IDENT, USHR_ASSIGN, IDENT, HANDLE_ASSIGN, IDENT, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerHandleSigilAndScopeResolution(t *testing.T) {
	got := kinds("Foo@ h = Bar::Baz::create();")
	want := []Kind{IDENT, AT, IDENT, ASSIGN, IDENT, DOUBLE_COLON, IDENT, DOUBLE_COLON, IDENT, LPAREN, RPAREN, SEMICOLON, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerSkipsLineAndBlockComments(t *testing.T) {
	got := kinds("int x; // comment\n/* block */ int y;")
	want := []Kind{INTK, IDENT, SEMICOLON, INTK, IDENT, SEMICOLON, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexerUnterminatedBlockCommentReportsErrorAtOpening(t *testing.T) {
	l := New("/* never closed")
	l.NextToken()
	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Span.Column != 1 {
		t.Fatalf("expected error at opening column 1, got %d", errs[0].Span.Column)
	}
}

func TestLexerPreserveComments(t *testing.T) {
	l := New("// hi\nx", WithPreserveComments(true))
	tok := l.NextToken()
	if tok.Kind != COMMENT {
		t.Fatalf("got %v", tok.Kind)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	first := l.Peek(0)
	if first.Kind != IDENT || first.Literal != "a" {
		t.Fatalf("unexpected peek: %+v", first)
	}
	second := l.Peek(1)
	if second.Literal != "b" {
		t.Fatalf("unexpected peek(1): %+v", second)
	}
	consumed := l.NextToken()
	if consumed.Literal != "a" {
		t.Fatalf("NextToken should still return 'a', got %+v", consumed)
	}
}

func TestLexerIllegalCharacterResynchronizes(t *testing.T) {
	l := New("a $ b")
	first := l.NextToken()
	if first.Literal != "a" {
		t.Fatalf("got %+v", first)
	}
	illegal := l.NextToken()
	if illegal.Kind != ILLEGAL {
		t.Fatalf("got %v", illegal.Kind)
	}
	next := l.NextToken()
	if next.Literal != "b" {
		t.Fatalf("expected resync to 'b', got %+v", next)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestLexerBOMIsStripped(t *testing.T) {
	l := New("﻿int x;")
	tok := l.NextToken()
	if tok.Kind != INTK {
		t.Fatalf("got %v", tok.Kind)
	}
}

func TestLexerUnicodeIdentifier(t *testing.T) {
	l := New("int café;")
	l.NextToken() // int
	tok := l.NextToken()
	if tok.Kind != IDENT || tok.Literal != "café" {
		t.Fatalf("got %+v", tok)
	}
}
