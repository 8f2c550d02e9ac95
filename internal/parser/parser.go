// Package parser implements a recursive-descent parser with a Pratt
// expression parser for AngelScript source, producing an arena-allocated
// internal/ast.Module.
package parser

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = += -= ...
	TERNARY     // ?:
	COALESCE    // ??
	LOGICAL_OR  // || or
	LOGICAL_AND // && and
	BITOR       // |
	BITXOR      // ^ xor
	BITAND      // &
	EQUALS      // == != is
	RELATIONAL  // < > <= >=
	SHIFT       // << >> >>>
	SUM         // + -
	PRODUCT     // * / %
	POWER       // **
	PREFIX      // -x !x ~x ++x --x @x
	POSTFIX     // x++ x--
	CALL_INDEX  // f(x) a[x] a.b
)

var precedences = map[lexer.Kind]int{
	lexer.ASSIGN: ASSIGN, lexer.PLUS_ASSIGN: ASSIGN, lexer.MINUS_ASSIGN: ASSIGN,
	lexer.STAR_ASSIGN: ASSIGN, lexer.SLASH_ASSIGN: ASSIGN, lexer.PERCENT_ASSIGN: ASSIGN,
	lexer.POW_ASSIGN: ASSIGN, lexer.AMP_ASSIGN: ASSIGN, lexer.PIPE_ASSIGN: ASSIGN,
	lexer.CARET_ASSIGN: ASSIGN, lexer.SHL_ASSIGN: ASSIGN, lexer.SHR_ASSIGN: ASSIGN,
	lexer.USHR_ASSIGN: ASSIGN, lexer.HANDLE_ASSIGN: ASSIGN,
	lexer.QUESTION: TERNARY,
	lexer.QUESTION_QUESTION: COALESCE,
	lexer.PIPE_PIPE: LOGICAL_OR, lexer.OR: LOGICAL_OR,
	lexer.AMP_AMP: LOGICAL_AND, lexer.AND: LOGICAL_AND,
	lexer.PIPE: BITOR,
	lexer.CARET_CARET: BITXOR, lexer.XOR: BITXOR,
	lexer.AMP: BITAND,
	lexer.EQ: EQUALS, lexer.NEQ: EQUALS, lexer.IS: EQUALS,
	lexer.LT: RELATIONAL, lexer.GT: RELATIONAL, lexer.LE: RELATIONAL, lexer.GE: RELATIONAL,
	lexer.SHL: SHIFT, lexer.SHR: SHIFT, lexer.USHR: SHIFT,
	lexer.PLUS: SUM, lexer.MINUS: SUM,
	lexer.STAR: PRODUCT, lexer.SLASH: PRODUCT, lexer.PERCENT: PRODUCT,
	lexer.POW: POWER,
	lexer.LPAREN: CALL_INDEX, lexer.LBRACKET: CALL_INDEX, lexer.DOT: CALL_INDEX,
	lexer.INC: POSTFIX, lexer.DEC: POSTFIX,
}

// Parser holds a lexer (read one token at a time into a two-token window,
// cur and next), the arenas it allocates nodes into, and the diagnostic sink
// every error is reported to. A Parser never halts on the first error: it
// records a diagnostic and resynchronizes (see synchronize*) so one parse
// can surface a batch of independent syntax errors.
type Parser struct {
	l      *lexer.Lexer
	arenas *ast.Arenas
	sink   *diag.Sink

	cur  lexer.Token
	next lexer.Token

	strict bool // set by WithStrictMode; no parse rule reads it
}

// Option configures a Parser.
type Option func(*Parser)

// WithStrictMode sets the Parser's strict flag. No parse rule reads the
// flag: a strict Parser accepts and rejects the same input, with the same
// diagnostics, as a non-strict one (a bare assignment used as a condition
// is not rejected).
func WithStrictMode(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

// New creates a Parser over source that reports to sink; the file name for
// the resulting Module is given later, to Parse.
func New(source string, sink *diag.Sink, opts ...Option) *Parser {
	p := &Parser{l: lexer.New(source), arenas: ast.NewArenas(), sink: sink}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	p.advance()
	for _, e := range p.l.Errors() {
		p.sink.Add(e)
	}
	return p
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.l.NextToken()
}

func (p *Parser) at(k lexer.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) atNext(k lexer.Kind) bool { return p.next.Kind == k }

func (p *Parser) accept(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, bool) {
	if p.at(k) {
		tok := p.cur
		p.advance()
		return tok, true
	}
	p.errorf(diag.KindExpectedToken, p.cur.Span, "expected %s, found %s", k, p.cur.Kind)
	return p.cur, false
}

func (p *Parser) errorf(kind diag.Kind, span diag.Span, format string, args ...any) {
	p.sink.Errorf(kind, span, format, args...)
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return LOWEST
}

// Parse parses a whole compilation unit (a sequence of top-level items)
// and returns the resulting Module. Parse always returns a Module, even
// when errors were recorded — partial results let later passes still
// report downstream diagnostics in a single compiler run.
func (p *Parser) Parse(path string) *ast.Module {
	var items []ast.ItemID
	for !p.at(lexer.EOF) {
		before := p.cur
		if id, ok := p.parseItem(); ok {
			items = append(items, id)
		}
		if p.cur == before {
			// No progress: force advance to avoid an infinite loop on a
			// token no item-starter recognizes.
			p.advance()
		}
	}
	return &ast.Module{Path: path, Items: items, Arenas: p.arenas}
}

// synchronizeStatement resynchronizes after a malformed statement by
// consuming tokens up to and including the next ';', or up to but not
// including the next '}'.
func (p *Parser) synchronizeStatement() {
	for !p.at(lexer.EOF) {
		if p.at(lexer.SEMICOLON) {
			p.advance()
			return
		}
		if p.at(lexer.RBRACE) {
			return
		}
		p.advance()
	}
}

// synchronizeDeclList resynchronizes inside a declaration list (parameter
// lists, enum bodies) by consuming up to the next ',' or the closing
// token, without consuming the closer itself.
func (p *Parser) synchronizeDeclList(closer lexer.Kind) {
	for !p.at(lexer.EOF) && !p.at(lexer.COMMA) && !p.at(closer) {
		p.advance()
	}
}
