package parser

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/lexer"
)

func (p *Parser) allocType(t ast.TypeExpr) ast.TypeExprID { return p.arenas.TypeExprs.Alloc(t) }

// atTypeStart recognizes the token kinds that can begin a type expression,
// used by callers that need to look ahead to decide between a declaration
// and an expression statement.
func (p *Parser) atTypeStart() bool {
	switch p.cur.Kind {
	case lexer.IDENT, lexer.DOUBLE_COLON, lexer.CONST, lexer.AUTO,
		lexer.VOID, lexer.BOOL, lexer.INT8, lexer.INT16, lexer.INT32, lexer.INT64, lexer.INTK,
		lexer.UINT8, lexer.UINT16, lexer.UINT32, lexer.UINT64, lexer.UINTK,
		lexer.FLOATK, lexer.DOUBLEK:
		return true
	}
	return false
}

// parseTypeExpr parses a full type expression: an optional leading `const`,
// a base name (primitive keyword, identifier, or scope-qualified name with
// optional `<TypeArgs>`), then any number of trailing `@`/`@const`/`[]`
// suffixes, applied left to right as AngelScript reads them (`T@[]` is an
// array of handles, `T[]@` is a handle to an array).
func (p *Parser) parseTypeExpr() ast.TypeExprID {
	sp := p.cur.Span

	if p.at(lexer.AUTO) {
		p.advance()
		return p.allocType(&ast.AutoType{Sp: sp})
	}

	isConst := p.accept(lexer.CONST)

	base := p.parseBaseType()
	if isConst {
		base = p.allocType(&ast.ConstType{Inner: base, Sp: sp})
	}

	for {
		switch p.cur.Kind {
		case lexer.AT:
			atSp := p.cur.Span
			p.advance()
			handleConst := p.accept(lexer.CONST)
			base = p.allocType(&ast.HandleType{Inner: base, HandleConst: handleConst, Sp: atSp})
		case lexer.LBRACKET:
			brSp := p.cur.Span
			p.advance()
			p.expect(lexer.RBRACKET)
			base = p.allocType(&ast.ArrayType{Elem: base, Sp: brSp})
		default:
			return base
		}
	}
}

func (p *Parser) parseBaseType() ast.TypeExprID {
	sp := p.cur.Span

	switch p.cur.Kind {
	case lexer.VOID, lexer.BOOL, lexer.INT8, lexer.INT16, lexer.INT32, lexer.INT64, lexer.INTK,
		lexer.UINT8, lexer.UINT16, lexer.UINT32, lexer.UINT64, lexer.UINTK,
		lexer.FLOATK, lexer.DOUBLEK:
		name := p.cur.Kind.String()
		p.advance()
		return p.allocType(&ast.NamedType{Name: name, Sp: sp})
	}

	var scope []string
	if p.at(lexer.DOUBLE_COLON) {
		scope = append(scope, "")
		p.advance()
	}
	for {
		name, _ := p.expect(lexer.IDENT)
		if p.at(lexer.DOUBLE_COLON) {
			scope = append(scope, name.Literal)
			p.advance()
			continue
		}
		var typeArgs []ast.TypeExprID
		if p.at(lexer.LT) {
			typeArgs = p.parseTypeArgs()
		}
		return p.allocType(&ast.NamedType{Scope: scope, Name: name.Literal, TypeArgs: typeArgs, Sp: sp})
	}
}

func (p *Parser) parseTypeArgs() []ast.TypeExprID {
	p.advance() // consume '<'
	var args []ast.TypeExprID
	for !p.at(lexer.GT) && !p.at(lexer.EOF) {
		args = append(args, p.parseTypeExpr())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.GT)
	return args
}

// parseParamType parses a parameter's type, including the trailing
// `&in`/`&out`/`&inout`/bare `&` reference modifier AngelScript allows only
// in parameter position.
func (p *Parser) parseParamType() ast.TypeExprID {
	base := p.parseTypeExpr()
	if !p.at(lexer.AMP) {
		return base
	}
	sp := p.cur.Span
	p.advance()
	dir := ast.RefInOut
	switch p.cur.Kind {
	case lexer.IN:
		dir = ast.RefIn
		p.advance()
	case lexer.OUT:
		dir = ast.RefOut
		p.advance()
	case lexer.INOUT:
		dir = ast.RefInOut
		p.advance()
	}
	return p.allocType(&ast.RefTypeExpr{Inner: base, Direction: dir, Sp: sp})
}
