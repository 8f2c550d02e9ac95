// Package ast defines the arena-backed Abstract Syntax Tree node types for
// AngelScript source.
//
// Nodes never carry a mutable "resolved type" field the way a tree-walking
// interpreter's AST might: a node's computed type and value category live
// in the semantic layer's side table (see internal/semantic), keyed by the
// node's arena.ID. The tree itself is write-once, produced by one parse and
// read by every later pass.
package ast

import (
	"github.com/angelscript-go/asc/internal/arena"
	"github.com/angelscript-go/asc/internal/diag"
)

// Node is the base capability every AST node provides: its source span.
type Node interface {
	Span() diag.Span
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// Item is any top-level or namespace-level declaration.
type Item interface {
	Node
	itemNode()
}

// TypeExpr is a syntactic type reference as written in source — a name, a
// handle modifier, a const modifier, or an array suffix — before the
// registry resolves it to a concrete TypeHash.
type TypeExpr interface {
	Node
	typeExprNode()
}

// ExprID / StmtID / ItemID / TypeExprID are arena handles, not pointers:
// cross-references within the tree (and from the semantic side table) are
// always by ID, so the whole tree can be dropped in one shot by dropping
// its Arenas. Nodes hold children by ID and look them up through the
// Arenas their Module carries, rather than embedding pointers.
type ExprID = arena.ID
type StmtID = arena.ID
type ItemID = arena.ID
type TypeExprID = arena.ID

// Arenas owns every node allocated while parsing one compilation unit. A
// Module holds the IDs of its top-level items; everything reachable from
// those IDs lives in one of these four arenas.
type Arenas struct {
	Exprs     *arena.Arena[Expr]
	Stmts     *arena.Arena[Stmt]
	Items     *arena.Arena[Item]
	TypeExprs *arena.Arena[TypeExpr]
}

// NewArenas creates an empty set of arenas for one compilation unit.
func NewArenas() *Arenas {
	return &Arenas{
		Exprs:     arena.New[Expr](),
		Stmts:     arena.New[Stmt](),
		Items:     arena.New[Item](),
		TypeExprs: arena.New[TypeExpr](),
	}
}

// Expr looks up an expression node by ID.
func (a *Arenas) Expr(id ExprID) Expr { return *a.Exprs.Get(id) }

// Stmt looks up a statement node by ID.
func (a *Arenas) Stmt(id StmtID) Stmt { return *a.Stmts.Get(id) }

// Item looks up an item node by ID.
func (a *Arenas) Item(id ItemID) Item { return *a.Items.Get(id) }

// TypeExpr looks up a type-expression node by ID.
func (a *Arenas) TypeExpr(id TypeExprID) TypeExpr { return *a.TypeExprs.Get(id) }

// Module is the root of one parsed compilation unit: a flat list of
// top-level items (global namespace content; nested namespaces are items
// themselves, see NamespaceDecl).
type Module struct {
	Path  string // diagnostic file name
	Items []ItemID
	Arenas *Arenas
}
