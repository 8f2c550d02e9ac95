package semantic

import "github.com/angelscript-go/asc/internal/types"

// ValueSource classifies where an expression's value comes from, the axis
// overload resolution and assignment checking need beyond DataType alone
// (a member access and a local variable can share a DataType but differ in
// whether `this` needs to be alive, or whether the expression can be
// captured by a lambda).
type ValueSource int

const (
	SourceTemporary ValueSource = iota
	SourceLocal
	SourceGlobal
	SourceMember
	SourceThis
)

// ExprInfo is the semantic layer's side table entry for one expression
// node: its resolved DataType, whether it denotes an assignable location,
// whether that location may be mutated (a const local or a const method's
// `this` member makes IsLValue true but IsMutable false), and where the
// value comes from. AST expression nodes never carry this themselves (see
// the internal/ast package doc comment); it is always looked up by the
// node's arena.ID from the Result the Analyzer returns.
type ExprInfo struct {
	Type      types.DataType
	IsLValue  bool
	IsMutable bool
	Source    ValueSource
}
