package ast

import "github.com/angelscript-go/asc/internal/diag"

// BlockStmt is a `{ ... }` sequence, introducing its own scope.
type BlockStmt struct {
	Stmts []StmtID
	Sp    diag.Span
}

func (s *BlockStmt) Span() diag.Span { return s.Sp }
func (s *BlockStmt) stmtNode()       {}

// VarDeclarator is one `name` or `name = init` inside a (possibly
// multi-name) variable declaration statement: `int a, b = 2, c;`.
type VarDeclarator struct {
	Name string
	Init ExprID // zero ID when omitted
}

// VarDeclStmt declares one or more local variables sharing a type.
type VarDeclStmt struct {
	Type        TypeExprID
	Declarators []VarDeclarator
	Sp          diag.Span
}

func (s *VarDeclStmt) Span() diag.Span { return s.Sp }
func (s *VarDeclStmt) stmtNode()       {}

// ExprStmt is an expression evaluated for its side effect and discarded.
type ExprStmt struct {
	Expr ExprID
	Sp   diag.Span
}

func (s *ExprStmt) Span() diag.Span { return s.Sp }
func (s *ExprStmt) stmtNode()       {}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // zero ID when absent
	Sp   diag.Span
}

func (s *IfStmt) Span() diag.Span { return s.Sp }
func (s *IfStmt) stmtNode()       {}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond ExprID
	Body StmtID
	Sp   diag.Span
}

func (s *WhileStmt) Span() diag.Span { return s.Sp }
func (s *WhileStmt) stmtNode()       {}

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	Body StmtID
	Cond ExprID
	Sp   diag.Span
}

func (s *DoWhileStmt) Span() diag.Span { return s.Sp }
func (s *DoWhileStmt) stmtNode()       {}

// ForStmt is `for (init; cond; post) body`. Init may be a VarDeclStmt or an
// ExprStmt; Cond and each Post entry may be absent (zero ID / empty slice).
type ForStmt struct {
	Init StmtID
	Cond ExprID
	Post []ExprID
	Body StmtID
	Sp   diag.Span
}

func (s *ForStmt) Span() diag.Span { return s.Sp }
func (s *ForStmt) stmtNode()       {}

// ForeachBinding is one `Type name` slot in a foreach's binding list; a
// multi-binding foreach destructures each opForNext return tuple into one
// binding per slot, in declaration order.
type ForeachBinding struct {
	Type TypeExprID
	Name string
}

// ForeachStmt is `foreach (Type a, Type b : range) body`.
type ForeachStmt struct {
	Bindings []ForeachBinding
	Range    ExprID
	Body     StmtID
	Sp       diag.Span
}

func (s *ForeachStmt) Span() diag.Span { return s.Sp }
func (s *ForeachStmt) stmtNode()       {}

// CaseClause is one `case expr:` / `default:` arm of a switch. Exprs is
// empty for the default arm.
type CaseClause struct {
	Exprs []ExprID
	Body  []StmtID
}

// SwitchStmt is `switch (subject) { case ...: ... default: ... }`.
type SwitchStmt struct {
	Subject ExprID
	Cases   []CaseClause
	Sp      diag.Span
}

func (s *SwitchStmt) Span() diag.Span { return s.Sp }
func (s *SwitchStmt) stmtNode()       {}

// BreakStmt exits the nearest enclosing loop or switch.
type BreakStmt struct{ Sp diag.Span }

func (s *BreakStmt) Span() diag.Span { return s.Sp }
func (s *BreakStmt) stmtNode()       {}

// ContinueStmt restarts the nearest enclosing loop.
type ContinueStmt struct{ Sp diag.Span }

func (s *ContinueStmt) Span() diag.Span { return s.Sp }
func (s *ContinueStmt) stmtNode()       {}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Value ExprID // zero ID for a bare `return;`
	Sp    diag.Span
}

func (s *ReturnStmt) Span() diag.Span { return s.Sp }
func (s *ReturnStmt) stmtNode()       {}

// TryCatchStmt is `try body catch body`. AngelScript's catch clause binds
// no exception variable and no type filter; it always matches.
type TryCatchStmt struct {
	Try   StmtID
	Catch StmtID
	Sp    diag.Span
}

func (s *TryCatchStmt) Span() diag.Span { return s.Sp }
func (s *TryCatchStmt) stmtNode()       {}
