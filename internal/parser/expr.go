package parser

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/lexer"
)

func (p *Parser) allocExpr(e ast.Expr) ast.ExprID { return p.arenas.Exprs.Alloc(e) }

// parseExpr parses an expression with operator-precedence climbing down
// to minPrec.
func (p *Parser) parseExpr(minPrec int) ast.ExprID {
	left := p.parsePrefix()

	for minPrec < p.peekPrecedence() && !p.at(lexer.SEMICOLON) {
		switch p.cur.Kind {
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.LBRACKET:
			left = p.parseIndex(left)
		case lexer.DOT:
			left = p.parseMember(left)
		case lexer.QUESTION:
			left = p.parseTernary(left)
		case lexer.INC, lexer.DEC:
			left = p.parsePostfix(left)
		case lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN,
			lexer.SLASH_ASSIGN, lexer.PERCENT_ASSIGN, lexer.POW_ASSIGN, lexer.AMP_ASSIGN,
			lexer.PIPE_ASSIGN, lexer.CARET_ASSIGN, lexer.SHL_ASSIGN, lexer.SHR_ASSIGN,
			lexer.USHR_ASSIGN, lexer.HANDLE_ASSIGN:
			left = p.parseAssign(left)
		default:
			left = p.parseBinary(left)
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.ExprID {
	tok := p.cur
	switch tok.Kind {
	case lexer.INT_LIT:
		p.advance()
		return p.allocExpr(&ast.Literal{Kind: ast.LitInt, Text: tok.Literal, Sp: tok.Span})
	case lexer.FLOAT_LIT:
		p.advance()
		return p.allocExpr(&ast.Literal{Kind: ast.LitFloat, Text: tok.Literal, Sp: tok.Span})
	case lexer.DOUBLE_LIT:
		p.advance()
		return p.allocExpr(&ast.Literal{Kind: ast.LitDouble, Text: tok.Literal, Sp: tok.Span})
	case lexer.STRING_LIT:
		p.advance()
		return p.allocExpr(&ast.Literal{Kind: ast.LitString, Raw: tok.Raw, Text: tok.Literal, Sp: tok.Span})
	case lexer.HEREDOC_LIT:
		p.advance()
		return p.allocExpr(&ast.Literal{Kind: ast.LitHeredoc, Raw: stripHeredocIndent(tok.Raw), Text: tok.Literal, Sp: tok.Span})
	case lexer.BOOL_LIT:
		p.advance()
		return p.allocExpr(&ast.Literal{Kind: ast.LitBool, Bool: tok.Literal == "true", Text: tok.Literal, Sp: tok.Span})
	case lexer.NULL_LIT:
		p.advance()
		return p.allocExpr(&ast.Literal{Kind: ast.LitNull, Text: tok.Literal, Sp: tok.Span})
	case lexer.THIS:
		p.advance()
		return p.allocExpr(&ast.ThisExpr{Sp: tok.Span})
	case lexer.SUPER:
		p.advance()
		return p.allocExpr(&ast.SuperExpr{Sp: tok.Span})
	case lexer.IDENT:
		return p.parseIdentOrConstructOrScope()
	case lexer.DOUBLE_COLON:
		return p.parseScope()
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr(LOWEST)
		p.expect(lexer.RPAREN)
		return inner
	case lexer.LBRACE:
		return p.parseListInit(0)
	case lexer.CAST:
		return p.parseCast()
	case lexer.MINUS:
		p.advance()
		operand := p.parseExpr(PREFIX)
		return p.allocExpr(&ast.UnaryExpr{Op: ast.OpNeg, Operand: operand, Sp: tok.Span})
	case lexer.BANG, lexer.NOT:
		p.advance()
		operand := p.parseExpr(PREFIX)
		return p.allocExpr(&ast.UnaryExpr{Op: ast.OpNot, Operand: operand, Sp: tok.Span})
	case lexer.TILDE:
		p.advance()
		operand := p.parseExpr(PREFIX)
		return p.allocExpr(&ast.UnaryExpr{Op: ast.OpBitNot, Operand: operand, Sp: tok.Span})
	case lexer.INC:
		p.advance()
		operand := p.parseExpr(PREFIX)
		return p.allocExpr(&ast.UnaryExpr{Op: ast.OpPreInc, Operand: operand, Sp: tok.Span})
	case lexer.DEC:
		p.advance()
		operand := p.parseExpr(PREFIX)
		return p.allocExpr(&ast.UnaryExpr{Op: ast.OpPreDec, Operand: operand, Sp: tok.Span})
	case lexer.AT:
		p.advance()
		operand := p.parseExpr(PREFIX)
		return p.allocExpr(&ast.UnaryExpr{Op: ast.OpHandleOf, Operand: operand, Sp: tok.Span})
	}

	p.errorf(diag.KindUnexpectedToken, tok.Span, "unexpected token %s in expression", tok.Kind)
	if !p.at(lexer.SEMICOLON) {
		p.advance()
	}
	return p.allocExpr(&ast.Literal{Kind: ast.LitNull, Sp: tok.Span})
}

// stripHeredocIndent removes the common leading-whitespace prefix of a
// heredoc's non-blank lines after the first (the first line, which follows
// the opening quotes, is kept as is), AngelScript's rule for letting a heredoc be
// indented to match surrounding code without that indentation leaking
// into the string value.
func stripHeredocIndent(raw string) string {
	lines := splitLines(raw)
	if len(lines) <= 1 {
		return raw
	}
	minIndent := -1
	for _, line := range lines[1:] {
		if isBlank(line) {
			continue
		}
		n := leadingSpaces(line)
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent <= 0 {
		return raw
	}
	out := lines[0]
	for _, line := range lines[1:] {
		if len(line) >= minIndent {
			line = line[minIndent:]
		}
		out += "\n" + line
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func isBlank(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

func (p *Parser) parseIdentOrConstructOrScope() ast.ExprID {
	tok := p.cur
	if tok.Literal == "function" && p.atNext(lexer.LPAREN) {
		return p.parseLambda()
	}
	p.advance()
	if p.at(lexer.DOUBLE_COLON) {
		segs := []string{tok.Literal}
		for p.accept(lexer.DOUBLE_COLON) {
			name, _ := p.expect(lexer.IDENT)
			segs = append(segs, name.Literal)
		}
		id := p.allocExpr(&ast.ScopeExpr{Segments: segs, Sp: tok.Span})
		return id
	}
	// A bare identifier directly followed by '(' with no intervening '.'
	// is an ordinary call; the parser doesn't try to distinguish a
	// constructor call from a function call here (both parse as CallExpr
	// with an Identifier callee) — semantic analysis disambiguates once
	// names are resolved, since only the registry knows whether `Foo` is
	// a type or a function at this point in parsing.
	return p.allocExpr(&ast.Identifier{Name: tok.Literal, Sp: tok.Span})
}

// parseLambda parses AngelScript's anonymous-function expression. "function"
// is not a reserved word in its own right — it is recognized as an IDENT
// whose text is "function" directly followed by '(', the same structural
// trick the grammar uses for constructors.
func (p *Parser) parseLambda() ast.ExprID {
	sp := p.cur.Span
	p.advance() // consume 'function'
	p.advance() // consume '('
	var params []ast.LambdaParam
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		var typ ast.TypeExprID
		if p.atTypeStart() && (p.atNext(lexer.IDENT) || p.atNext(lexer.AT) || p.atNext(lexer.LBRACKET)) {
			typ = p.parseParamType()
		}
		name, _ := p.expect(lexer.IDENT)
		params = append(params, ast.LambdaParam{Type: typ, Name: name.Literal})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	if _, ok := p.expect(lexer.RPAREN); !ok {
		p.synchronizeDeclList(lexer.RPAREN)
		p.accept(lexer.RPAREN)
	}
	body := p.parseBlock()
	return p.allocExpr(&ast.LambdaExpr{Params: params, Body: body, Sp: sp})
}

func (p *Parser) parseScope() ast.ExprID {
	tok := p.cur
	p.advance()
	segs := []string{""}
	name, _ := p.expect(lexer.IDENT)
	segs = append(segs, name.Literal)
	for p.accept(lexer.DOUBLE_COLON) {
		next, _ := p.expect(lexer.IDENT)
		segs = append(segs, next.Literal)
	}
	return p.allocExpr(&ast.ScopeExpr{Segments: segs, Sp: tok.Span})
}

func (p *Parser) parseNamedArgs(closer lexer.Kind) []ast.NamedArg {
	var args []ast.NamedArg
	for !p.at(closer) && !p.at(lexer.EOF) {
		var name string
		if p.at(lexer.IDENT) && p.atNext(lexer.COLON) {
			name = p.cur.Literal
			p.advance()
			p.advance()
		}
		val := p.parseExpr(ASSIGN)
		args = append(args, ast.NamedArg{Name: name, Value: val})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	if _, ok := p.expect(closer); !ok {
		p.synchronizeDeclList(closer)
		p.accept(closer)
	}
	return args
}

func (p *Parser) parseCall(callee ast.ExprID) ast.ExprID {
	sp := p.cur.Span
	p.advance() // consume '('
	args := p.parseNamedArgs(lexer.RPAREN)
	return p.allocExpr(&ast.CallExpr{Callee: callee, Args: args, Sp: sp})
}

func (p *Parser) parseIndex(obj ast.ExprID) ast.ExprID {
	sp := p.cur.Span
	p.advance() // consume '['
	args := p.parseNamedArgs(lexer.RBRACKET)
	return p.allocExpr(&ast.IndexExpr{Object: obj, Args: args, Sp: sp})
}

func (p *Parser) parseMember(obj ast.ExprID) ast.ExprID {
	sp := p.cur.Span
	p.advance() // consume '.'
	name, _ := p.expect(lexer.IDENT)
	return p.allocExpr(&ast.MemberExpr{Object: obj, Member: name.Literal, Sp: sp})
}

func (p *Parser) parseTernary(cond ast.ExprID) ast.ExprID {
	sp := p.cur.Span
	p.advance() // consume '?'
	then := p.parseExpr(ASSIGN)
	p.expect(lexer.COLON)
	els := p.parseExpr(TERNARY)
	return p.allocExpr(&ast.TernaryExpr{Cond: cond, Then: then, Else: els, Sp: sp})
}

func (p *Parser) parsePostfix(operand ast.ExprID) ast.ExprID {
	tok := p.cur
	p.advance()
	op := ast.OpPostInc
	if tok.Kind == lexer.DEC {
		op = ast.OpPostDec
	}
	return p.allocExpr(&ast.UnaryExpr{Op: op, Operand: operand, Sp: tok.Span})
}

var assignOps = map[lexer.Kind]ast.AssignOp{
	lexer.ASSIGN: ast.AssignPlain, lexer.PLUS_ASSIGN: ast.AssignAdd, lexer.MINUS_ASSIGN: ast.AssignSub,
	lexer.STAR_ASSIGN: ast.AssignMul, lexer.SLASH_ASSIGN: ast.AssignDiv, lexer.PERCENT_ASSIGN: ast.AssignMod,
	lexer.POW_ASSIGN: ast.AssignPow, lexer.AMP_ASSIGN: ast.AssignBitAnd, lexer.PIPE_ASSIGN: ast.AssignBitOr,
	lexer.CARET_ASSIGN: ast.AssignBitXor, lexer.SHL_ASSIGN: ast.AssignShl, lexer.SHR_ASSIGN: ast.AssignShr,
	lexer.USHR_ASSIGN: ast.AssignUShr, lexer.HANDLE_ASSIGN: ast.AssignHandle,
}

func (p *Parser) parseAssign(target ast.ExprID) ast.ExprID {
	tok := p.cur
	op := assignOps[tok.Kind]
	p.advance()
	value := p.parseExpr(ASSIGN - 1) // right-associative
	return p.allocExpr(&ast.AssignExpr{Op: op, Target: target, Value: value, Sp: tok.Span})
}

var binaryOps = map[lexer.Kind]ast.BinaryOp{
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub, lexer.STAR: ast.OpMul, lexer.SLASH: ast.OpDiv,
	lexer.PERCENT: ast.OpMod, lexer.POW: ast.OpPow,
	lexer.EQ: ast.OpEq, lexer.NEQ: ast.OpNeq, lexer.LT: ast.OpLt, lexer.LE: ast.OpLe,
	lexer.GT: ast.OpGt, lexer.GE: ast.OpGe,
	lexer.AMP_AMP: ast.OpAnd, lexer.AND: ast.OpAnd,
	lexer.PIPE_PIPE: ast.OpOr, lexer.OR: ast.OpOr,
	lexer.CARET_CARET: ast.OpXorLogical, lexer.XOR: ast.OpXorLogical,
	lexer.AMP: ast.OpBitAnd, lexer.PIPE: ast.OpBitOr, lexer.CARET: ast.OpBitXor,
	lexer.SHL: ast.OpShl, lexer.SHR: ast.OpShr, lexer.USHR: ast.OpUShr,
}

func (p *Parser) parseBinary(left ast.ExprID) ast.ExprID {
	tok := p.cur
	prec := p.peekPrecedence()
	op, ok := binaryOps[tok.Kind]
	if !ok {
		p.errorf(diag.KindUnexpectedToken, tok.Span, "unexpected token %s", tok.Kind)
		p.advance()
		return left
	}
	p.advance()
	right := p.parseExpr(prec)
	return p.allocExpr(&ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: tok.Span})
}

func (p *Parser) parseListInit(targetType ast.TypeExprID) ast.ExprID {
	sp := p.cur.Span
	p.advance() // consume '{'
	var elems []ast.ExprID
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		elems = append(elems, p.parseExpr(ASSIGN))
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	if _, ok := p.expect(lexer.RBRACE); !ok {
		p.synchronizeStatement()
	}
	return p.allocExpr(&ast.ListInitExpr{Type: targetType, Elements: elems, Sp: sp})
}

func (p *Parser) parseCast() ast.ExprID {
	sp := p.cur.Span
	p.advance() // consume 'cast'
	p.expect(lexer.LT)
	target := p.parseTypeExpr()
	p.expect(lexer.GT)
	p.expect(lexer.LPAREN)
	value := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	return p.allocExpr(&ast.CastExpr{Target: target, Value: value, Sp: sp})
}
