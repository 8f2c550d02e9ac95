package ast

import "github.com/angelscript-go/asc/internal/diag"

// Param is one formal parameter of a function/method/funcdef declaration.
type Param struct {
	Type    TypeExprID
	Name    string // may be empty (funcdef parameters need not be named)
	Default ExprID // zero ID when no default
}

// FuncModifiers carries the trailing/leading qualifiers a function or
// method declaration may carry: const (methods only), final, override,
// explicit (constructors/conversion operators), shared, and a class
// member's private/protected access.
type FuncModifiers struct {
	Const    bool
	Final    bool
	Override bool
	Explicit bool
	Shared   bool
	Private  bool
	Protected bool
}

// FuncDecl is a free function, method, constructor, destructor, or
// behavior/operator declaration. An operator overload (opAdd, opEquals,
// opIndex, ...) carries nothing beyond its Name here; the registry derives
// overload semantics from Name.
type FuncDecl struct {
	Name      string
	ReturnType TypeExprID // zero ID for constructors/destructors
	Params    []Param
	Body      StmtID // zero ID for an interface method / funcdef signature
	Modifiers FuncModifiers
	Sp        diag.Span
}

func (d *FuncDecl) Span() diag.Span { return d.Sp }
func (d *FuncDecl) itemNode()       {}

// FieldDecl is a class data member.
type FieldDecl struct {
	Type    TypeExprID
	Name    string
	Private bool
	Protected bool
	Sp      diag.Span
}

func (d *FieldDecl) Span() diag.Span { return d.Sp }
func (d *FieldDecl) itemNode()       {}

// PropertyAccessor is one `get_Name`/`set_Name` virtual-property method,
// carried inline on PropertyDecl rather than as a separate FuncDecl so the
// getter/setter pair stays associated with its property name.
type PropertyAccessor struct {
	Body   StmtID
	Params []Param // empty for get, one value parameter for set
}

// PropertyDecl is a virtual property: `Type Name { get {...} set {...} }`.
type PropertyDecl struct {
	Type   TypeExprID
	Name   string
	Get    *PropertyAccessor // nil if absent
	Set    *PropertyAccessor // nil if absent
	Sp     diag.Span
}

func (d *PropertyDecl) Span() diag.Span { return d.Sp }
func (d *PropertyDecl) itemNode()       {}

// ClassDecl is `class Name : Base, IFace1, IFace2 { members }`. The first
// base name may be a class (single inheritance) or an interface; any
// further names are interfaces. Disambiguation happens in the registry
// once base names are resolved to TypeEntry kinds.
type ClassDecl struct {
	Name    string
	Bases   []string // unresolved base/interface names, in written order
	Fields  []ItemID // FieldDecl
	Methods []ItemID // FuncDecl
	Props   []ItemID // PropertyDecl
	Final   bool
	Shared  bool
	Mixin   bool
	Sp      diag.Span
}

func (d *ClassDecl) Span() diag.Span { return d.Sp }
func (d *ClassDecl) itemNode()       {}

// InterfaceMethod is one method signature inside an interface body: no
// body, no modifiers beyond the signature itself.
type InterfaceMethod struct {
	Name       string
	ReturnType TypeExprID
	Params     []Param
	Sp         diag.Span
}

// InterfaceDecl is `interface Name : Base1, Base2 { methods }`.
type InterfaceDecl struct {
	Name    string
	Bases   []string
	Methods []InterfaceMethod
	Sp      diag.Span
}

func (d *InterfaceDecl) Span() diag.Span { return d.Sp }
func (d *InterfaceDecl) itemNode()       {}

// EnumMember is one `Name` or `Name = value` entry in an enum body.
type EnumMember struct {
	Name  string
	Value ExprID // zero ID when the value is implicit (prev + 1, or 0 for the first)
}

// EnumDecl is `enum Name { members }`.
type EnumDecl struct {
	Name    string
	Members []EnumMember
	Sp      diag.Span
}

func (d *EnumDecl) Span() diag.Span { return d.Sp }
func (d *EnumDecl) itemNode()       {}

// FuncdefDecl is `funcdef ReturnType Name(Params)`, declaring a function
// pointer type.
type FuncdefDecl struct {
	Name       string
	ReturnType TypeExprID
	Params     []Param
	Sp         diag.Span
}

func (d *FuncdefDecl) Span() diag.Span { return d.Sp }
func (d *FuncdefDecl) itemNode()       {}

// NamespaceDecl is `namespace Name { items }`, nestable via dotted or
// nested-brace syntax; nested namespaces are represented as further
// NamespaceDecl items inside Items.
type NamespaceDecl struct {
	Name  string
	Items []ItemID
	Sp    diag.Span
}

func (d *NamespaceDecl) Span() diag.Span { return d.Sp }
func (d *NamespaceDecl) itemNode()       {}

// GlobalVarDecl declares one or more global variables sharing a type,
// mirroring VarDeclStmt's shape at item scope.
type GlobalVarDecl struct {
	Type        TypeExprID
	Declarators []VarDeclarator
	Const       bool
	Sp          diag.Span
}

func (d *GlobalVarDecl) Span() diag.Span { return d.Sp }
func (d *GlobalVarDecl) itemNode()       {}

// ImportDecl is `import ReturnType Name(Params) from "module";`, binding a
// funcdef-typed symbol to a function expected from another module.
type ImportDecl struct {
	ReturnType TypeExprID
	Name       string
	Params     []Param
	FromModule string
	Sp         diag.Span
}

func (d *ImportDecl) Span() diag.Span { return d.Sp }
func (d *ImportDecl) itemNode()       {}

// TypedefDecl is `typedef Type Name;`, a primitive type alias (AngelScript
// restricts typedef to primitive target types).
type TypedefDecl struct {
	Target TypeExprID
	Name   string
	Sp     diag.Span
}

func (d *TypedefDecl) Span() diag.Span { return d.Sp }
func (d *TypedefDecl) itemNode()       {}
