package ast

import "github.com/angelscript-go/asc/internal/diag"

// NamedType is a bare or scoped type name: `int`, `string`, `A::B::Matrix`.
// Scope segments are stored pre-split; `::`-qualified names never carry
// template arguments in a scope path (only the final segment may).
type NamedType struct {
	Scope   []string // leading namespace segments, possibly empty
	Name    string
	TypeArgs []TypeExprID // non-empty only for a template instantiation
	Sp      diag.Span
}

func (t *NamedType) Span() diag.Span  { return t.Sp }
func (t *NamedType) typeExprNode()    {}

// HandleType is `T@` or `T@ const` (a handle, optionally itself const —
// i.e. the handle variable cannot be reseated, independent of whether the
// pointee is const).
type HandleType struct {
	Inner      TypeExprID
	HandleConst bool
	Sp         diag.Span
}

func (t *HandleType) Span() diag.Span { return t.Sp }
func (t *HandleType) typeExprNode()   {}

// ConstType is `const T` applied to the pointee (for a handle, `const T@`
// is a handle-to-const, distinct from `T@ const`'s const handle).
type ConstType struct {
	Inner TypeExprID
	Sp    diag.Span
}

func (t *ConstType) Span() diag.Span { return t.Sp }
func (t *ConstType) typeExprNode()   {}

// ArrayType is the `T[]` suffix sugar for `array<T>`.
type ArrayType struct {
	Elem TypeExprID
	Sp   diag.Span
}

func (t *ArrayType) Span() diag.Span { return t.Sp }
func (t *ArrayType) typeExprNode()   {}

// RefType marks a parameter type's reference modifier: `&in`, `&out`,
// `&inout`, or a plain `&` with direction inferred by context.
type RefDirection int

const (
	RefNone RefDirection = iota
	RefIn
	RefOut
	RefInOut
)

type RefTypeExpr struct {
	Inner     TypeExprID
	Direction RefDirection
	Sp        diag.Span
}

func (t *RefTypeExpr) Span() diag.Span { return t.Sp }
func (t *RefTypeExpr) typeExprNode()   {}

// AutoType is the `auto` placeholder for local-variable type inference.
type AutoType struct {
	Sp diag.Span
}

func (t *AutoType) Span() diag.Span { return t.Sp }
func (t *AutoType) typeExprNode()   {}
