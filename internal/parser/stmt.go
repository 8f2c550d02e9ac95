package parser

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/lexer"
)

func (p *Parser) allocStmt(s ast.Stmt) ast.StmtID { return p.arenas.Stmts.Alloc(s) }

func (p *Parser) parseStmt() ast.StmtID {
	switch p.cur.Kind {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.DO:
		return p.parseDoWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.FOREACH:
		return p.parseForeach()
	case lexer.SWITCH:
		return p.parseSwitch()
	case lexer.BREAK:
		sp := p.cur.Span
		p.advance()
		p.accept(lexer.SEMICOLON)
		return p.allocStmt(&ast.BreakStmt{Sp: sp})
	case lexer.CONTINUE:
		sp := p.cur.Span
		p.advance()
		p.accept(lexer.SEMICOLON)
		return p.allocStmt(&ast.ContinueStmt{Sp: sp})
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.TRY:
		return p.parseTryCatch()
	default:
		if p.atTypeStart() && p.looksLikeVarDecl() {
			return p.parseVarDeclStmt()
		}
		return p.parseExprStmt()
	}
}

// looksLikeVarDecl disambiguates `Foo bar;` (declaration) from `Foo(bar);`
// or `Foo.bar;` (expression): a type expression immediately followed by an
// identifier starts a declaration, since no expression grammar produces
// "type-looking-thing identifier" otherwise.
func (p *Parser) looksLikeVarDecl() bool {
	switch p.cur.Kind {
	case lexer.VOID, lexer.BOOL, lexer.INT8, lexer.INT16, lexer.INT32, lexer.INT64, lexer.INTK,
		lexer.UINT8, lexer.UINT16, lexer.UINT32, lexer.UINT64, lexer.UINTK,
		lexer.FLOATK, lexer.DOUBLEK, lexer.CONST, lexer.AUTO:
		return true
	case lexer.IDENT:
		return p.atNext(lexer.IDENT) || p.atNext(lexer.AT) || p.atNext(lexer.LBRACKET) || p.atNext(lexer.DOUBLE_COLON)
	}
	return false
}

func (p *Parser) parseBlock() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume '{'
	var stmts []ast.StmtID
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.RBRACE)
	return p.allocStmt(&ast.BlockStmt{Stmts: stmts, Sp: sp})
}

func (p *Parser) parseVarDeclStmt() ast.StmtID {
	sp := p.cur.Span
	typ := p.parseTypeExpr()
	var decls []ast.VarDeclarator
	for {
		name, _ := p.expect(lexer.IDENT)
		var init ast.ExprID
		if p.accept(lexer.ASSIGN) {
			if p.at(lexer.LBRACE) {
				init = p.parseListInit(typ)
			} else {
				init = p.parseExpr(ASSIGN)
			}
		} else if p.at(lexer.LPAREN) {
			init = p.parseCall(p.allocExpr(&ast.Identifier{Name: name.Literal, Sp: name.Span}))
		}
		decls = append(decls, ast.VarDeclarator{Name: name.Literal, Init: init})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		p.synchronizeStatement()
	}
	return p.allocStmt(&ast.VarDeclStmt{Type: typ, Declarators: decls, Sp: sp})
}

func (p *Parser) parseExprStmt() ast.StmtID {
	sp := p.cur.Span
	if p.at(lexer.SEMICOLON) {
		p.advance()
		return p.allocStmt(&ast.ExprStmt{Sp: sp})
	}
	expr := p.parseExpr(LOWEST)
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		p.synchronizeStatement()
	}
	return p.allocStmt(&ast.ExprStmt{Expr: expr, Sp: sp})
}

func (p *Parser) parseIf() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	then := p.parseStmt()
	var els ast.StmtID
	if p.accept(lexer.ELSE) {
		els = p.parseStmt()
	}
	return p.allocStmt(&ast.IfStmt{Cond: cond, Then: then, Else: els, Sp: sp})
}

func (p *Parser) parseWhile() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'while'
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseStmt()
	return p.allocStmt(&ast.WhileStmt{Cond: cond, Body: body, Sp: sp})
}

func (p *Parser) parseDoWhile() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'do'
	body := p.parseStmt()
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	p.accept(lexer.SEMICOLON)
	return p.allocStmt(&ast.DoWhileStmt{Body: body, Cond: cond, Sp: sp})
}

func (p *Parser) parseFor() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'for'
	p.expect(lexer.LPAREN)

	var init ast.StmtID
	if p.at(lexer.SEMICOLON) {
		p.advance()
	} else if p.atTypeStart() && p.looksLikeVarDecl() {
		init = p.parseVarDeclStmt()
	} else {
		init = p.parseExprStmt()
	}

	var cond ast.ExprID
	if !p.at(lexer.SEMICOLON) {
		cond = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMICOLON)

	var post []ast.ExprID
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		post = append(post, p.parseExpr(LOWEST))
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)

	body := p.parseStmt()
	return p.allocStmt(&ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body, Sp: sp})
}

func (p *Parser) parseForeach() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'foreach'
	p.expect(lexer.LPAREN)

	var bindings []ast.ForeachBinding
	for {
		typ := p.parseTypeExpr()
		name, _ := p.expect(lexer.IDENT)
		bindings = append(bindings, ast.ForeachBinding{Type: typ, Name: name.Literal})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.COLON)
	rng := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseStmt()
	return p.allocStmt(&ast.ForeachStmt{Bindings: bindings, Range: rng, Body: body, Sp: sp})
}

func (p *Parser) parseSwitch() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'switch'
	p.expect(lexer.LPAREN)
	subject := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	var cases []ast.CaseClause
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		var exprs []ast.ExprID
		if p.accept(lexer.CASE) {
			exprs = append(exprs, p.parseExpr(LOWEST))
		} else {
			p.expect(lexer.DEFAULT)
		}
		p.expect(lexer.COLON)
		var body []ast.StmtID
		for !p.at(lexer.CASE) && !p.at(lexer.DEFAULT) && !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, ast.CaseClause{Exprs: exprs, Body: body})
	}
	p.expect(lexer.RBRACE)
	return p.allocStmt(&ast.SwitchStmt{Subject: subject, Cases: cases, Sp: sp})
}

func (p *Parser) parseReturn() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'return'
	var value ast.ExprID
	if !p.at(lexer.SEMICOLON) {
		value = p.parseExpr(LOWEST)
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		p.synchronizeStatement()
	}
	return p.allocStmt(&ast.ReturnStmt{Value: value, Sp: sp})
}

func (p *Parser) parseTryCatch() ast.StmtID {
	sp := p.cur.Span
	p.advance() // consume 'try'
	tryBlock := p.parseBlock()
	p.expect(lexer.CATCH)
	catchBlock := p.parseBlock()
	return p.allocStmt(&ast.TryCatchStmt{Try: tryBlock, Catch: catchBlock, Sp: sp})
}
