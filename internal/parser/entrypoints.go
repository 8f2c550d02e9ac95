package parser

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/lexer"
)

// newSubParser builds a Parser over src sharing arenas, for callers that
// need to parse a single fragment (a type expression, a function
// signature) in isolation rather than a whole compilation unit.
func newSubParser(src string, arenas *ast.Arenas) *Parser {
	p := &Parser{l: lexer.New(src), arenas: arenas, sink: diag.NewSink()}
	p.advance()
	p.advance()
	for _, e := range p.l.Errors() {
		p.sink.Add(e)
	}
	return p
}

func diagsToErrors(sink *diag.Sink) []error {
	ds := sink.All()
	if len(ds) == 0 {
		return nil
	}
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = fmt.Errorf("%s: %s", d.Kind, d.Message)
	}
	return errs
}

// ParseTypeExpr parses a single type expression (e.g. "int[]@",
// "const MyClass@", "array<string>") in isolation, allocating its nodes
// into arenas. It is the entry point host-application FFI registration
// uses to turn a declared property/return/parameter type string into an
// ast.TypeExprID without parsing a whole compilation unit, the way
// internal/ffi's RegisterGlobalProperty does.
func ParseTypeExpr(src string, arenas *ast.Arenas) (ast.TypeExprID, []error) {
	p := newSubParser(src, arenas)
	texpr := p.parseTypeExpr()
	if !p.at(lexer.EOF) {
		p.errorf(diag.KindUnexpectedToken, p.cur.Span, "unexpected trailing token %s after type expression", p.cur.Kind)
	}
	return texpr, diagsToErrors(p.sink)
}

// ParseFunctionDecl parses a single function signature ("ReturnType
// Name(params) [const]"), with no body, allocating its nodes into arenas.
// This is the shared entry point spec'd FFI registration reuses: a native
// method/factory/behavior/operator is declared as a signature string
// exactly like a script function, parsed once here, and resolved against
// the registry the same way a parsed script function's signature is.
func ParseFunctionDecl(src string, arenas *ast.Arenas) (*ast.FuncDecl, []error) {
	p := newSubParser(src, arenas)
	sp := p.cur.Span
	retType := p.parseTypeExpr()
	name, _ := p.expect(lexer.IDENT)
	id := p.parseFuncDeclFrom(sp, retType, name.Literal, ast.FuncModifiers{})
	if !p.at(lexer.EOF) {
		p.errorf(diag.KindUnexpectedToken, p.cur.Span, "unexpected trailing token %s after function declaration", p.cur.Kind)
	}
	fd, _ := p.arenas.Item(id).(*ast.FuncDecl)
	return fd, diagsToErrors(p.sink)
}
