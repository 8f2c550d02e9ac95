package ast

import "github.com/angelscript-go/asc/internal/diag"

// LitKind discriminates a literal expression's payload, mirroring the
// lexer's LiteralKind.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitDouble
	LitString
	LitHeredoc
	LitBool
	LitNull
)

// Literal is any constant token: an int/float/double/string/bool/null.
type Literal struct {
	Kind LitKind
	Text string // raw source text (for int/float/double, parsed numerically later)
	Raw  string // unescaped payload, for string/heredoc literals
	Bool bool   // valid when Kind == LitBool
	Sp   diag.Span
}

func (e *Literal) Span() diag.Span { return e.Sp }
func (e *Literal) exprNode()       {}

// Identifier is a bare name reference, resolved later by internal/resolve.
type Identifier struct {
	Name string
	Sp   diag.Span
}

func (e *Identifier) Span() diag.Span { return e.Sp }
func (e *Identifier) exprNode()       {}

// ScopeExpr is an explicitly namespace-qualified reference, `A::B::name`.
// A leading `::` (global-scope override) is recorded as an empty first
// segment.
type ScopeExpr struct {
	Segments []string
	Sp       diag.Span
}

func (e *ScopeExpr) Span() diag.Span { return e.Sp }
func (e *ScopeExpr) exprNode()       {}

// ThisExpr is the implicit `this` handle inside a method body.
type ThisExpr struct{ Sp diag.Span }

func (e *ThisExpr) Span() diag.Span { return e.Sp }
func (e *ThisExpr) exprNode()       {}

// SuperExpr names the base-class constructor in a super(...) call.
type SuperExpr struct{ Sp diag.Span }

func (e *SuperExpr) Span() diag.Span { return e.Sp }
func (e *SuperExpr) exprNode()       {}

// MemberExpr is `obj.Member`.
type MemberExpr struct {
	Object ExprID
	Member string
	Sp     diag.Span
}

func (e *MemberExpr) Span() diag.Span { return e.Sp }
func (e *MemberExpr) exprNode()       {}

// NamedArg is one argument in a call or index expression, optionally
// preceded by `name: `.
type NamedArg struct {
	Name  string // empty when positional
	Value ExprID
}

// CallExpr is `callee(args)`. Callee is either a bare/qualified name
// (resolved against functions and funcdef-typed values) or a member
// expression (method call).
type CallExpr struct {
	Callee ExprID
	Args   []NamedArg
	Sp     diag.Span
}

func (e *CallExpr) Span() diag.Span { return e.Sp }
func (e *CallExpr) exprNode()       {}

// ConstructExpr is `Type(args)`. The parser never produces it: a name
// directly followed by `(` parses as a CallExpr with an Identifier callee,
// whether the name denotes a type or a function.
type ConstructExpr struct {
	Type TypeExprID
	Args []NamedArg
	Sp   diag.Span
}

func (e *ConstructExpr) Span() diag.Span { return e.Sp }
func (e *ConstructExpr) exprNode()       {}

// IndexExpr is `obj[args]`, with the same named-argument grammar as calls
// so opIndex overloads can accept named parameters.
type IndexExpr struct {
	Object ExprID
	Args   []NamedArg
	Sp     diag.Span
}

func (e *IndexExpr) Span() diag.Span { return e.Sp }
func (e *IndexExpr) exprNode()       {}

// BinaryOp enumerates binary operators, keyed the way overload resolution
// keys them to opXxx / opXxxR method names.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpXorLogical
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpUShr
)

type BinaryExpr struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
	Sp    diag.Span
}

func (e *BinaryExpr) Span() diag.Span { return e.Sp }
func (e *BinaryExpr) exprNode()       {}

// UnaryOp enumerates prefix/postfix unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
	OpHandleOf // '@' applied to an expression to take a handle
)

type UnaryExpr struct {
	Op      UnaryOp
	Operand ExprID
	Sp      diag.Span
}

func (e *UnaryExpr) Span() diag.Span { return e.Sp }
func (e *UnaryExpr) exprNode()       {}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Cond ExprID
	Then ExprID
	Else ExprID
	Sp   diag.Span
}

func (e *TernaryExpr) Span() diag.Span { return e.Sp }
func (e *TernaryExpr) exprNode()       {}

// AssignOp enumerates plain and compound assignment operators.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignPow
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShl
	AssignShr
	AssignUShr
	AssignHandle // '@='
)

type AssignExpr struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
	Sp     diag.Span
}

func (e *AssignExpr) Span() diag.Span { return e.Sp }
func (e *AssignExpr) exprNode()       {}

// CastExpr is the `cast<T>(expr)` syntax: Target is T, Value is expr.
type CastExpr struct {
	Target TypeExprID
	Value  ExprID
	Sp     diag.Span
}

func (e *CastExpr) Span() diag.Span { return e.Sp }
func (e *CastExpr) exprNode()       {}

// LambdaParam is one parameter of a lambda expression; Type may be nil when
// the parameter's type is inferred from a funcdef-typed context.
type LambdaParam struct {
	Type TypeExprID // zero ID when omitted
	Name string
}

// LambdaExpr is `function(params) { body }` or the bare-arrow-less
// AngelScript anonymous-function form.
type LambdaExpr struct {
	Params []LambdaParam
	Body   StmtID
	Sp     diag.Span
}

func (e *LambdaExpr) Span() diag.Span { return e.Sp }
func (e *LambdaExpr) exprNode()       {}

// ListInitExpr is `{1, 2, 3}` or `Type = {1, 2, 3}`, used to initialize
// array/object list-construction behaviors.
type ListInitExpr struct {
	Type     TypeExprID // zero ID when the target type is inferred from context
	Elements []ExprID
	Sp       diag.Span
}

func (e *ListInitExpr) Span() diag.Span { return e.Sp }
func (e *ListInitExpr) exprNode()       {}
