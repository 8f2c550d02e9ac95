package parser

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/lexer"
)

func (p *Parser) allocItem(it ast.Item) ast.ItemID { return p.arenas.Items.Alloc(it) }

// parseItem parses one top-level or namespace-level declaration. It reports
// false when it produced no item (a stray ';', an `external` forward
// declaration, or a token that starts nothing recognizable); Parse's loop
// forces progress when no token was consumed, instead of looping forever.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.cur.Kind {
	case lexer.SEMICOLON:
		p.advance()
		return 0, false
	case lexer.CLASS:
		return p.parseClass(false), true
	case lexer.SHARED:
		return p.parseSharedItem(), true
	case lexer.FINAL:
		p.advance()
		return p.parseClass(true), true
	case lexer.INTERFACE:
		return p.parseInterface(), true
	case lexer.ENUM:
		return p.parseEnum(), true
	case lexer.FUNCDEF:
		return p.parseFuncdef(), true
	case lexer.NAMESPACE:
		return p.parseNamespace(), true
	case lexer.IMPORT:
		return p.parseImport(), true
	case lexer.TYPEDEF:
		return p.parseTypedef(), true
	case lexer.MIXIN:
		p.advance()
		return p.parseClassWithMixin(), true
	case lexer.EXTERNAL:
		// `external shared class Foo;` forward declaration: consumed and
		// discarded, since a front end processing one module at a time has
		// nothing further to attach it to.
		p.advance()
		p.accept(lexer.SHARED)
		p.accept(lexer.CLASS)
		p.expect(lexer.IDENT)
		p.accept(lexer.SEMICOLON)
		return 0, false
	}

	if p.atTypeStart() {
		return p.parseGlobalVarOrFunc(), true
	}

	p.errorf(diag.KindUnexpectedToken, p.cur.Span, "unexpected token %s at item scope", p.cur.Kind)
	return 0, false
}

func (p *Parser) parseSharedItem() ast.ItemID {
	p.advance() // consume 'shared'
	final := p.accept(lexer.FINAL)
	id := p.parseClass(final)
	if cls, ok := p.arenas.Item(id).(*ast.ClassDecl); ok {
		cls.Shared = true
	}
	return id
}

// parseGlobalVarOrFunc disambiguates `Type name;`/`Type name = expr;`
// (global variable, possibly a list) from `Type name(params) { ... }`
// (free function) by parsing the type and name, then looking at what
// follows.
func (p *Parser) parseGlobalVarOrFunc() ast.ItemID {
	sp := p.cur.Span
	isConst := p.at(lexer.CONST)
	typ := p.parseTypeExpr()
	name, _ := p.expect(lexer.IDENT)

	if p.at(lexer.LPAREN) {
		return p.parseFuncDeclFrom(sp, typ, name.Literal, ast.FuncModifiers{})
	}

	var decls []ast.VarDeclarator
	for {
		var init ast.ExprID
		if p.accept(lexer.ASSIGN) {
			if p.at(lexer.LBRACE) {
				init = p.parseListInit(typ)
			} else {
				init = p.parseExpr(ASSIGN)
			}
		}
		decls = append(decls, ast.VarDeclarator{Name: name.Literal, Init: init})
		if !p.accept(lexer.COMMA) {
			break
		}
		name, _ = p.expect(lexer.IDENT)
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		p.synchronizeStatement()
	}
	return p.allocItem(&ast.GlobalVarDecl{Type: typ, Declarators: decls, Const: isConst, Sp: sp})
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		typ := p.parseParamType()
		var name string
		if p.at(lexer.IDENT) {
			tok := p.cur
			p.advance()
			name = tok.Literal
		}
		var def ast.ExprID
		if p.accept(lexer.ASSIGN) {
			def = p.parseExpr(ASSIGN)
		}
		params = append(params, ast.Param{Type: typ, Name: name, Default: def})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	if _, ok := p.expect(lexer.RPAREN); !ok {
		p.synchronizeDeclList(lexer.RPAREN)
		p.accept(lexer.RPAREN)
	}
	return params
}

func (p *Parser) parseFuncDeclFrom(sp diag.Span, retType ast.TypeExprID, name string, mods ast.FuncModifiers) ast.ItemID {
	params := p.parseParams()
	mods = p.parseTrailingFuncModifiers(mods)

	var body ast.StmtID
	if p.at(lexer.LBRACE) {
		body = p.parseBlock()
	} else {
		p.accept(lexer.SEMICOLON)
	}
	return p.allocItem(&ast.FuncDecl{Name: name, ReturnType: retType, Params: params, Body: body, Modifiers: mods, Sp: sp})
}

func (p *Parser) parseTrailingFuncModifiers(mods ast.FuncModifiers) ast.FuncModifiers {
	for {
		switch p.cur.Kind {
		case lexer.CONST:
			mods.Const = true
			p.advance()
		case lexer.FINAL:
			mods.Final = true
			p.advance()
		case lexer.OVERRIDE:
			mods.Override = true
			p.advance()
		default:
			return mods
		}
	}
}

func (p *Parser) parseClass(final bool) ast.ItemID {
	return p.parseClassBody(final, false)
}

func (p *Parser) parseClassWithMixin() ast.ItemID {
	return p.parseClassBody(false, true)
}

func (p *Parser) parseClassBody(final, mixin bool) ast.ItemID {
	sp := p.cur.Span
	p.advance() // consume 'class'
	name, _ := p.expect(lexer.IDENT)

	var bases []string
	if p.accept(lexer.COLON) {
		for {
			b, _ := p.expect(lexer.IDENT)
			bases = append(bases, b.Literal)
			if !p.accept(lexer.COMMA) {
				break
			}
		}
	}

	decl := &ast.ClassDecl{Name: name.Literal, Bases: bases, Final: final, Mixin: mixin, Sp: sp}

	p.expect(lexer.LBRACE)
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		p.parseClassMember(decl)
	}
	p.expect(lexer.RBRACE)

	return p.allocItem(decl)
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	sp := p.cur.Span
	private := p.accept(lexer.PRIVATE)
	protected := false
	if !private {
		protected = p.accept(lexer.PROTECTED)
	}

	if p.at(lexer.FUNCDEF) {
		decl.Methods = append(decl.Methods, p.parseFuncdef())
		return
	}

	mods := ast.FuncModifiers{Private: private, Protected: protected}
	mods.Shared = p.accept(lexer.SHARED)
	explicit := p.accept(lexer.EXPLICIT)
	mods.Explicit = explicit

	if p.accept(lexer.PROPERTY) {
		decl.Props = append(decl.Props, p.parsePropertyDecl(sp))
		return
	}

	// A constructor/destructor: IDENT matching the class name, or '~' then
	// IDENT, directly followed by '('. AngelScript has no dedicated
	// keyword for either; they're recognized structurally.
	if p.at(lexer.TILDE) {
		p.advance()
		name, _ := p.expect(lexer.IDENT)
		decl.Methods = append(decl.Methods, p.parseFuncDeclFrom(sp, 0, "~"+name.Literal, mods))
		return
	}

	if p.at(lexer.IDENT) && p.cur.Literal == decl.Name && p.atNext(lexer.LPAREN) {
		name := p.cur
		p.advance()
		decl.Methods = append(decl.Methods, p.parseFuncDeclFrom(sp, 0, name.Literal, mods))
		return
	}

	typ := p.parseTypeExpr()
	name, _ := p.expect(lexer.IDENT)

	if p.at(lexer.LPAREN) {
		decl.Methods = append(decl.Methods, p.parseFuncDeclFrom(sp, typ, name.Literal, mods))
		return
	}

	// Field, possibly a comma-separated list.
	for {
		if _, ok := p.expect(lexer.SEMICOLON); ok {
			decl.Fields = append(decl.Fields, p.allocItem(&ast.FieldDecl{Type: typ, Name: name.Literal, Private: private, Protected: protected, Sp: sp}))
			return
		}
		decl.Fields = append(decl.Fields, p.allocItem(&ast.FieldDecl{Type: typ, Name: name.Literal, Private: private, Protected: protected, Sp: sp}))
		if !p.accept(lexer.COMMA) {
			p.synchronizeStatement()
			return
		}
		name, _ = p.expect(lexer.IDENT)
	}
}

func (p *Parser) parsePropertyDecl(sp diag.Span) ast.ItemID {
	typ := p.parseTypeExpr()
	name, _ := p.expect(lexer.IDENT)
	decl := &ast.PropertyDecl{Type: typ, Name: name.Literal, Sp: sp}

	p.expect(lexer.LBRACE)
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		switch {
		case p.accept(lexer.GET):
			body := p.parseBlock()
			decl.Get = &ast.PropertyAccessor{Body: body}
		case p.accept(lexer.SET):
			params := []ast.Param{{Type: typ, Name: "value"}}
			body := p.parseBlock()
			decl.Set = &ast.PropertyAccessor{Body: body, Params: params}
		default:
			p.errorf(diag.KindUnexpectedToken, p.cur.Span, "expected 'get' or 'set', found %s", p.cur.Kind)
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return p.allocItem(decl)
}

func (p *Parser) parseInterface() ast.ItemID {
	sp := p.cur.Span
	p.advance() // consume 'interface'
	name, _ := p.expect(lexer.IDENT)

	var bases []string
	if p.accept(lexer.COLON) {
		for {
			b, _ := p.expect(lexer.IDENT)
			bases = append(bases, b.Literal)
			if !p.accept(lexer.COMMA) {
				break
			}
		}
	}

	decl := &ast.InterfaceDecl{Name: name.Literal, Bases: bases, Sp: sp}
	p.expect(lexer.LBRACE)
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		msp := p.cur.Span
		retType := p.parseTypeExpr()
		mname, _ := p.expect(lexer.IDENT)
		params := p.parseParams()
		p.accept(lexer.CONST)
		p.accept(lexer.SEMICOLON)
		decl.Methods = append(decl.Methods, ast.InterfaceMethod{Name: mname.Literal, ReturnType: retType, Params: params, Sp: msp})
	}
	p.expect(lexer.RBRACE)
	return p.allocItem(decl)
}

func (p *Parser) parseEnum() ast.ItemID {
	sp := p.cur.Span
	p.advance() // consume 'enum'
	name, _ := p.expect(lexer.IDENT)
	decl := &ast.EnumDecl{Name: name.Literal, Sp: sp}

	p.expect(lexer.LBRACE)
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		mname, _ := p.expect(lexer.IDENT)
		var value ast.ExprID
		if p.accept(lexer.ASSIGN) {
			value = p.parseExpr(ASSIGN)
		}
		decl.Members = append(decl.Members, ast.EnumMember{Name: mname.Literal, Value: value})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return p.allocItem(decl)
}

func (p *Parser) parseFuncdef() ast.ItemID {
	sp := p.cur.Span
	p.advance() // consume 'funcdef'
	retType := p.parseTypeExpr()
	name, _ := p.expect(lexer.IDENT)
	params := p.parseParams()
	p.accept(lexer.SEMICOLON)
	return p.allocItem(&ast.FuncdefDecl{Name: name.Literal, ReturnType: retType, Params: params, Sp: sp})
}

func (p *Parser) parseNamespace() ast.ItemID {
	sp := p.cur.Span
	p.advance() // consume 'namespace'
	first, _ := p.expect(lexer.IDENT)
	qualified := first.Literal
	for p.accept(lexer.DOUBLE_COLON) {
		next, _ := p.expect(lexer.IDENT)
		qualified += "::" + next.Literal
	}

	decl := &ast.NamespaceDecl{Name: qualified, Sp: sp}
	p.expect(lexer.LBRACE)
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		before := p.cur
		if id, ok := p.parseItem(); ok {
			decl.Items = append(decl.Items, id)
		}
		if p.cur == before {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return p.allocItem(decl)
}

func (p *Parser) parseImport() ast.ItemID {
	sp := p.cur.Span
	p.advance() // consume 'import'
	retType := p.parseTypeExpr()
	name, _ := p.expect(lexer.IDENT)
	params := p.parseParams()
	p.expect(lexer.FROM)
	module, _ := p.expect(lexer.STRING_LIT)
	p.accept(lexer.SEMICOLON)
	return p.allocItem(&ast.ImportDecl{ReturnType: retType, Name: name.Literal, Params: params, FromModule: module.Raw, Sp: sp})
}

func (p *Parser) parseTypedef() ast.ItemID {
	sp := p.cur.Span
	p.advance() // consume 'typedef'
	target := p.parseTypeExpr()
	name, _ := p.expect(lexer.IDENT)
	p.accept(lexer.SEMICOLON)
	return p.allocItem(&ast.TypedefDecl{Target: target, Name: name.Literal, Sp: sp})
}
