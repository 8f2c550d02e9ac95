package semantic

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/convert"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/overload"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/types"
)

var voidType = types.DataType{}

// Checker walks one function body, building the ExprInfo side table and
// reporting type errors to sink. A fresh Checker is used per function;
// Scope chains and the `this` binding don't carry over between functions.
type Checker struct {
	reg    *registry.TypeRegistry
	arenas *ast.Arenas
	sink   *diag.Sink
	ctx    registryContext

	exprs map[ast.ExprID]ExprInfo
	scope *Scope

	nsScope  resolve.Scope
	thisHash types.TypeHash
	thisSet  bool
	thisConst bool

	returnType types.DataType
	loopDepth  int
}

// NewChecker creates a Checker over reg, recording results into infos (the
// Analyzer's shared side table across every function in a compilation) and
// reporting problems to sink.
func NewChecker(reg *registry.TypeRegistry, arenas *ast.Arenas, sink *diag.Sink, infos map[ast.ExprID]ExprInfo) *Checker {
	return &Checker{reg: reg, arenas: arenas, sink: sink, ctx: registryContext{reg: reg}, exprs: infos}
}

// CheckFunction type-checks fn's body (a no-op if fn has none, i.e. an
// interface method or funcdef signature). receiver is the class hash fn is
// a method of (zero for a free function); thisConst marks a const method's
// `this` as non-mutable.
func (c *Checker) CheckFunction(fn *ast.FuncDecl, ns []string, receiver types.TypeHash, thisConst bool) {
	if fn.Body == 0 {
		return
	}
	c.nsScope = resolve.Scope{Namespace: ns}
	c.scope = NewScope(nil)
	c.thisHash = receiver
	c.thisSet = receiver != 0
	c.thisConst = thisConst
	c.loopDepth = 0

	if fn.ReturnType != 0 {
		if rt, err := resolveType(c.reg, c.arenas, fn.ReturnType, c.nsScope); err == nil {
			c.returnType = rt
		}
	} else {
		c.returnType = voidType
	}

	for _, p := range fn.Params {
		dt, err := resolveType(c.reg, c.arenas, p.Type, c.nsScope)
		if err != nil {
			continue
		}
		if p.Name != "" {
			c.scope.Define(&Symbol{Name: p.Name, Type: dt, Const: dt.Const})
		}
	}

	c.checkStmt(fn.Body)

	if c.returnType.Hash != 0 && !isVoidReturn(c.returnType) {
		switch checkReturns(c.arenas, fn.Body) {
		case returnNever, returnSometimes:
			c.sink.Errorf(diag.KindNotAllPathsReturn, fn.Sp, "function %s does not return a value on every path", fn.Name)
		}
	}
}

func isVoidReturn(dt types.DataType) bool {
	return dt.Hash == types.HashPrimitive("void")
}

func (c *Checker) checkStmt(id ast.StmtID) {
	if id == 0 {
		return
	}
	switch s := c.arenas.Stmt(id).(type) {
	case *ast.BlockStmt:
		outer := c.scope
		c.scope = NewScope(outer)
		for _, sub := range s.Stmts {
			c.checkStmt(sub)
		}
		c.scope = outer

	case *ast.VarDeclStmt:
		c.checkVarDecl(s.Type, s.Declarators, s.Sp)

	case *ast.ExprStmt:
		c.checkExpr(s.Expr)

	case *ast.IfStmt:
		c.checkCondExpr(s.Cond)
		c.checkStmt(s.Then)
		c.checkStmt(s.Else)

	case *ast.WhileStmt:
		c.checkCondExpr(s.Cond)
		c.loopDepth++
		c.checkStmt(s.Body)
		c.loopDepth--

	case *ast.DoWhileStmt:
		c.loopDepth++
		c.checkStmt(s.Body)
		c.loopDepth--
		c.checkCondExpr(s.Cond)

	case *ast.ForStmt:
		outer := c.scope
		c.scope = NewScope(outer)
		c.checkStmt(s.Init)
		if s.Cond != 0 {
			c.checkCondExpr(s.Cond)
		}
		for _, p := range s.Post {
			c.checkExpr(p)
		}
		c.loopDepth++
		c.checkStmt(s.Body)
		c.loopDepth--
		c.scope = outer

	case *ast.ForeachStmt:
		outer := c.scope
		c.scope = NewScope(outer)
		c.checkExpr(s.Range)
		for _, b := range s.Bindings {
			dt, err := resolveType(c.reg, c.arenas, b.Type, c.nsScope)
			if err != nil {
				continue
			}
			c.scope.Define(&Symbol{Name: b.Name, Type: dt})
		}
		c.loopDepth++
		c.checkStmt(s.Body)
		c.loopDepth--
		c.scope = outer

	case *ast.SwitchStmt:
		c.checkExpr(s.Subject)
		c.loopDepth++
		for _, cc := range s.Cases {
			for _, e := range cc.Exprs {
				c.checkExpr(e)
			}
			for _, sub := range cc.Body {
				c.checkStmt(sub)
			}
		}
		c.loopDepth--

	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.sink.Errorf(diag.KindBreakOutsideLoop, s.Sp, "break outside of a loop or switch")
		}

	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.sink.Errorf(diag.KindContinueOutsideLoop, s.Sp, "continue outside of a loop")
		}

	case *ast.ReturnStmt:
		c.checkReturnStmt(s)

	case *ast.TryCatchStmt:
		c.checkStmt(s.Try)
		c.checkStmt(s.Catch)
	}
}

func (c *Checker) checkReturnStmt(s *ast.ReturnStmt) {
	if s.Value == 0 {
		if !isVoidReturn(c.returnType) {
			c.sink.Errorf(diag.KindTypeMismatch, s.Sp, "missing return value")
		}
		return
	}
	info := c.checkExpr(s.Value)
	if isVoidReturn(c.returnType) {
		c.sink.Errorf(diag.KindVoidExpression, s.Sp, "function does not return a value")
		return
	}
	if _, ok := convert.Convert(info.Type, c.returnType, c.ctx, false); !ok {
		c.sink.Errorf(diag.KindTypeMismatch, s.Sp, "cannot return value of this type from the declared return type")
	}
}

func (c *Checker) checkCondExpr(id ast.ExprID) {
	info := c.checkExpr(id)
	boolHash := types.HashPrimitive("bool")
	if info.Type.Hash != boolHash {
		if _, ok := convert.Convert(info.Type, types.DataType{Hash: boolHash}, c.ctx, false); !ok {
			c.sink.Errorf(diag.KindTypeMismatch, c.arenas.Expr(id).Span(), "condition must be a bool")
		}
	}
}

func (c *Checker) checkVarDecl(texpr ast.TypeExprID, decls []ast.VarDeclarator, sp diag.Span) {
	_, isAuto := c.arenas.TypeExpr(texpr).(*ast.AutoType)

	var declared types.DataType
	var declErr error
	if !isAuto {
		declared, declErr = resolveType(c.reg, c.arenas, texpr, c.nsScope)
	}

	for _, d := range decls {
		dt := declared
		if isAuto {
			if d.Init == 0 {
				c.sink.Errorf(diag.KindTypeMismatch, sp, "auto variable %s needs an initializer", d.Name)
				continue
			}
			info := c.checkExpr(d.Init)
			dt = info.Type
		} else if declErr != nil {
			c.sink.Errorf(diag.KindUnresolvedName, sp, "%s", declErr)
			continue
		} else if d.Init != 0 {
			info := c.checkExpr(d.Init)
			if _, ok := convert.Convert(info.Type, dt, c.ctx, false); !ok {
				c.sink.Errorf(diag.KindTypeMismatch, sp, "cannot initialize %s from this expression's type", d.Name)
			}
		}
		if !c.scope.Define(&Symbol{Name: d.Name, Type: dt, Const: dt.Const}) {
			c.sink.Errorf(diag.KindDuplicateDecl, sp, "%s is already declared in this scope", d.Name)
		}
	}
}

// checkExpr dispatches on the expression's concrete kind, records its
// ExprInfo in the side table, and returns it for the caller's convenience.
func (c *Checker) checkExpr(id ast.ExprID) ExprInfo {
	if id == 0 {
		return ExprInfo{}
	}
	var info ExprInfo
	switch e := c.arenas.Expr(id).(type) {
	case *ast.Literal:
		info = c.checkLiteral(e)
	case *ast.Identifier:
		info = c.checkIdentifier(e)
	case *ast.ScopeExpr:
		info = c.checkScopeExpr(e)
	case *ast.ThisExpr:
		info = c.checkThis(e)
	case *ast.SuperExpr:
		info = ExprInfo{Type: types.DataType{Hash: c.thisHash}, Source: SourceThis}
	case *ast.MemberExpr:
		info = c.checkMember(e)
	case *ast.CallExpr:
		info = c.checkCall(e)
	case *ast.ConstructExpr:
		info = c.checkConstruct(e)
	case *ast.IndexExpr:
		info = c.checkIndex(e)
	case *ast.BinaryExpr:
		info = c.checkBinary(e)
	case *ast.UnaryExpr:
		info = c.checkUnary(e)
	case *ast.TernaryExpr:
		info = c.checkTernary(e)
	case *ast.AssignExpr:
		info = c.checkAssign(e)
	case *ast.CastExpr:
		info = c.checkCast(e)
	case *ast.ListInitExpr:
		info = c.checkListInit(e)
	case *ast.LambdaExpr:
		info = ExprInfo{Source: SourceTemporary}
	default:
		info = ExprInfo{}
	}
	c.exprs[id] = info
	return info
}

func (c *Checker) checkLiteral(e *ast.Literal) ExprInfo {
	var hash types.TypeHash
	switch e.Kind {
	case ast.LitInt:
		hash = types.HashPrimitive("int")
	case ast.LitFloat:
		hash = types.HashPrimitive("float")
	case ast.LitDouble:
		hash = types.HashPrimitive("double")
	case ast.LitBool:
		hash = types.HashPrimitive("bool")
	case ast.LitString, ast.LitHeredoc:
		if entry, ok := c.reg.LookupQualified("string"); ok {
			hash = entry.TypeHash()
		}
	case ast.LitNull:
		return ExprInfo{Type: types.DataType{Handle: true}, Source: SourceTemporary}
	}
	return ExprInfo{Type: types.DataType{Hash: hash}, Source: SourceTemporary}
}

func (c *Checker) checkIdentifier(e *ast.Identifier) ExprInfo {
	if sym, ok := c.scope.Lookup(e.Name); ok {
		return ExprInfo{Type: sym.Type, IsLValue: true, IsMutable: !sym.Const, Source: SourceLocal}
	}
	qualified, err := resolve.Lookup([]string{e.Name}, c.nsScope, func(n string) bool {
		_, ok := c.reg.Global(n)
		return ok
	})
	if err == nil {
		if dt, ok := c.reg.Global(qualified); ok {
			return ExprInfo{Type: dt, IsLValue: true, IsMutable: !dt.Const, Source: SourceGlobal}
		}
	}
	if c.thisSet {
		if cls, ok := c.classOf(c.thisHash); ok {
			for _, f := range cls.Fields {
				if f.Name == e.Name {
					return ExprInfo{Type: f.Type, IsLValue: true, IsMutable: !c.thisConst && !f.Type.Const, Source: SourceMember}
				}
			}
		}
	}
	c.sink.Errorf(diag.KindUnresolvedName, e.Sp, "undeclared identifier %q", e.Name)
	return ExprInfo{}
}

func (c *Checker) classOf(h types.TypeHash) (*types.ClassType, bool) {
	entry, ok := c.reg.Lookup(h)
	if !ok {
		return nil, false
	}
	cls, ok := entry.(*types.ClassType)
	return cls, ok
}

func (c *Checker) checkScopeExpr(e *ast.ScopeExpr) ExprInfo {
	qualified, err := resolve.Lookup(e.Segments, c.nsScope, func(n string) bool {
		_, ok := c.reg.Global(n)
		return ok
	})
	if err != nil {
		c.sink.Errorf(diag.KindUnresolvedName, e.Sp, "%s", err)
		return ExprInfo{}
	}
	dt, _ := c.reg.Global(qualified)
	return ExprInfo{Type: dt, IsLValue: true, IsMutable: !dt.Const, Source: SourceGlobal}
}

func (c *Checker) checkThis(e *ast.ThisExpr) ExprInfo {
	if !c.thisSet {
		c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "'this' is not valid outside a method")
		return ExprInfo{}
	}
	return ExprInfo{Type: types.DataType{Hash: c.thisHash, Handle: true}, Source: SourceThis, IsMutable: !c.thisConst}
}

func (c *Checker) checkMember(e *ast.MemberExpr) ExprInfo {
	obj := c.checkExpr(e.Object)
	cls, ok := c.classOf(obj.Type.Hash)
	if !ok {
		c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "member access on a non-class type")
		return ExprInfo{}
	}
	for _, f := range cls.Fields {
		if f.Name == e.Member {
			return ExprInfo{Type: f.Type, IsLValue: true, IsMutable: obj.IsMutable && !f.Type.Const, Source: SourceMember}
		}
	}
	for _, p := range cls.Properties {
		if p.Name == e.Member {
			return ExprInfo{Type: p.Type, IsLValue: p.Setter != nil, IsMutable: obj.IsMutable && p.Setter != nil, Source: SourceMember}
		}
	}
	c.sink.Errorf(diag.KindUnresolvedName, e.Sp, "type %s has no member %q", cls.Name, e.Member)
	return ExprInfo{}
}

func (c *Checker) checkArgs(args []ast.NamedArg) []overload.Arg {
	out := make([]overload.Arg, len(args))
	for i, a := range args {
		info := c.checkExpr(a.Value)
		out[i] = overload.Arg{Type: info.Type, Name: a.Name}
	}
	return out
}

func (c *Checker) checkCall(e *ast.CallExpr) ExprInfo {
	args := c.checkArgs(e.Args)

	switch callee := c.arenas.Expr(e.Callee).(type) {
	case *ast.Identifier:
		return c.resolveCallByName(nil, callee.Name, args, e.Sp)
	case *ast.ScopeExpr:
		return c.resolveCallByName(callee.Segments[:len(callee.Segments)-1], callee.Segments[len(callee.Segments)-1], args, e.Sp)
	case *ast.MemberExpr:
		obj := c.checkExpr(callee.Object)
		cls, ok := c.classOf(obj.Type.Hash)
		if !ok {
			c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "method call on a non-class type")
			return ExprInfo{}
		}
		fns := c.reg.Functions(cls.QualifiedName() + "::" + callee.Member)
		return c.resolveOverload(fns, args, e.Sp, callee.Member)
	default:
		c.checkExpr(e.Callee)
		c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "expression is not callable")
		return ExprInfo{}
	}
}

func (c *Checker) resolveCallByName(scopePath []string, name string, args []overload.Arg, sp diag.Span) ExprInfo {
	qualified, err := resolve.Lookup(append(append([]string{}, scopePath...), name), c.nsScope, func(n string) bool {
		return len(c.reg.Functions(n)) > 0
	})
	if err != nil {
		c.sink.Errorf(diag.KindUnresolvedName, sp, "%s", err)
		return ExprInfo{}
	}
	return c.resolveOverload(c.reg.Functions(qualified), args, sp, name)
}

func (c *Checker) resolveOverload(fns []*types.FunctionDef, args []overload.Arg, sp diag.Span, name string) ExprInfo {
	if len(fns) == 0 {
		c.sink.Errorf(diag.KindUnresolvedName, sp, "no function named %q", name)
		return ExprInfo{}
	}
	candidates := make([]overload.Candidate, len(fns))
	for i, fn := range fns {
		candidates[i] = overload.Candidate{Fn: fn, Ctx: c.ctx}
	}
	fn, err := overload.Resolve(candidates, args)
	if err != nil {
		c.sink.Errorf(diag.KindNoMatchingOverload, sp, "%s: %s", name, err)
		return ExprInfo{}
	}
	return ExprInfo{Type: fn.Return, Source: SourceTemporary}
}

func (c *Checker) checkConstruct(e *ast.ConstructExpr) ExprInfo {
	args := c.checkArgs(e.Args)
	dt, err := resolveType(c.reg, c.arenas, e.Type, c.nsScope)
	if err != nil {
		c.sink.Errorf(diag.KindUnresolvedName, e.Sp, "%s", err)
		return ExprInfo{}
	}
	cls, ok := c.classOf(dt.Hash)
	if !ok {
		return ExprInfo{Type: dt, Source: SourceTemporary}
	}
	ctors := cls.Behaviors.Constructors
	if len(ctors) == 0 {
		return ExprInfo{Type: dt, Source: SourceTemporary}
	}
	candidates := make([]overload.Candidate, len(ctors))
	for i, fn := range ctors {
		candidates[i] = overload.Candidate{Fn: fn, Ctx: c.ctx}
	}
	if _, err := overload.Resolve(candidates, args); err != nil {
		c.sink.Errorf(diag.KindNoMatchingOverload, e.Sp, "%s constructor: %s", cls.Name, err)
	}
	return ExprInfo{Type: dt, Source: SourceTemporary}
}

func (c *Checker) checkIndex(e *ast.IndexExpr) ExprInfo {
	obj := c.checkExpr(e.Object)
	args := c.checkArgs(e.Args)
	fns := c.ctx.Operators(obj.Type.Hash, types.OpIndex)
	if len(fns) == 0 {
		c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "type has no opIndex overload")
		return ExprInfo{}
	}
	return c.resolveOverload(fns, args, e.Sp, "opIndex")
}

func (c *Checker) checkBinary(e *ast.BinaryExpr) ExprInfo {
	lhs := c.checkExpr(e.Left)
	rhs := c.checkExpr(e.Right)

	boolType := types.DataType{Hash: types.HashPrimitive("bool")}
	switch e.Op {
	case ast.OpAnd, ast.OpOr, ast.OpXorLogical:
		return ExprInfo{Type: boolType, Source: SourceTemporary}
	case ast.OpEq, ast.OpNeq:
		if lhs.Type.Equal(rhs.Type) {
			return ExprInfo{Type: boolType, Source: SourceTemporary}
		}
		if info, ok := c.operatorOverload(lhs, rhs, e.Op, e.Sp); ok {
			info.Type = boolType
			return info
		}
		return ExprInfo{Type: boolType, Source: SourceTemporary}
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if _, _, _, ok := c.ctx.PrimitiveInfo(lhs.Type.Hash); ok {
			return ExprInfo{Type: boolType, Source: SourceTemporary}
		}
		if info, ok := c.operatorOverload(lhs, rhs, e.Op, e.Sp); ok {
			info.Type = boolType
			return info
		}
		c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "no matching opCmp overload for this comparison")
		return ExprInfo{Type: boolType, Source: SourceTemporary}
	}

	if bits, float, signed, ok := c.ctx.PrimitiveInfo(lhs.Type.Hash); ok {
		if bits2, float2, signed2, ok2 := c.ctx.PrimitiveInfo(rhs.Type.Hash); ok2 {
			return ExprInfo{Type: widestPrimitive(c.reg, bits, float, signed, bits2, float2, signed2), Source: SourceTemporary}
		}
	}

	if info, ok := c.operatorOverload(lhs, rhs, e.Op, e.Sp); ok {
		return info
	}
	c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "no matching operator for this binary expression")
	return ExprInfo{}
}

// operatorOverload resolves the opXxx overload (or its opXxx_r reverse) for
// a binary operator against the operand types, returning the winning
// function's return type.
func (c *Checker) operatorOverload(lhs, rhs ExprInfo, op ast.BinaryOp, sp diag.Span) (ExprInfo, bool) {
	kind := binaryOpKind(op)
	if kind == types.OperatorNone {
		return ExprInfo{}, false
	}
	if fns := c.ctx.Operators(lhs.Type.Hash, kind); len(fns) > 0 {
		return c.resolveOverload(fns, []overload.Arg{{Type: rhs.Type}}, sp, "operator"), true
	}
	if kind.IsReversible() {
		if fns := c.ctx.Operators(rhs.Type.Hash, kind.Reverse()); len(fns) > 0 {
			return c.resolveOverload(fns, []overload.Arg{{Type: lhs.Type}}, sp, "operator"), true
		}
	}
	return ExprInfo{}, false
}

func binaryOpKind(op ast.BinaryOp) types.OperatorKind {
	switch op {
	case ast.OpAdd:
		return types.OpAdd
	case ast.OpSub:
		return types.OpSub
	case ast.OpMul:
		return types.OpMul
	case ast.OpDiv:
		return types.OpDiv
	case ast.OpMod:
		return types.OpMod
	case ast.OpPow:
		return types.OpPow
	case ast.OpEq, ast.OpNeq:
		return types.OpEquals
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return types.OpCmp
	default:
		return types.OperatorNone
	}
}

func widestPrimitive(reg *registry.TypeRegistry, bitsA int, floatA, signedA bool, bitsB int, floatB, signedB bool) types.DataType {
	float := floatA || floatB
	bits := bitsA
	if bitsB > bits {
		bits = bitsB
	}
	name := primitiveNameFor(bits, float, signedA && signedB)
	entry, _ := reg.LookupQualified(name)
	if entry == nil {
		return types.DataType{}
	}
	return types.DataType{Hash: entry.TypeHash()}
}

func primitiveNameFor(bits int, float, signed bool) string {
	if float {
		if bits > 32 {
			return "double"
		}
		return "float"
	}
	switch {
	case bits <= 8:
		if signed {
			return "int8"
		}
		return "uint8"
	case bits <= 16:
		if signed {
			return "int16"
		}
		return "uint16"
	case bits <= 32:
		if signed {
			return "int"
		}
		return "uint"
	default:
		if signed {
			return "int64"
		}
		return "uint64"
	}
}

func (c *Checker) checkUnary(e *ast.UnaryExpr) ExprInfo {
	operand := c.checkExpr(e.Operand)
	switch e.Op {
	case ast.OpHandleOf:
		dt := operand.Type
		dt.Handle = true
		return ExprInfo{Type: dt, Source: SourceTemporary}
	case ast.OpNot:
		return ExprInfo{Type: types.DataType{Hash: types.HashPrimitive("bool")}, Source: SourceTemporary}
	case ast.OpPreInc, ast.OpPreDec, ast.OpPostInc, ast.OpPostDec:
		if !operand.IsMutable {
			c.sink.Errorf(diag.KindCannotModifyConst, e.Sp, "cannot modify a const or non-lvalue expression")
		}
		return ExprInfo{Type: operand.Type, Source: SourceTemporary}
	default:
		return ExprInfo{Type: operand.Type, Source: SourceTemporary}
	}
}

func (c *Checker) checkTernary(e *ast.TernaryExpr) ExprInfo {
	c.checkCondExpr(e.Cond)
	then := c.checkExpr(e.Then)
	els := c.checkExpr(e.Else)
	if then.Type.Equal(els.Type) {
		return ExprInfo{Type: then.Type, Source: SourceTemporary}
	}
	if _, ok := convert.Convert(els.Type, then.Type, c.ctx, false); ok {
		return ExprInfo{Type: then.Type, Source: SourceTemporary}
	}
	if _, ok := convert.Convert(then.Type, els.Type, c.ctx, false); ok {
		return ExprInfo{Type: els.Type, Source: SourceTemporary}
	}
	c.sink.Errorf(diag.KindTypeMismatch, e.Sp, "ternary branches have incompatible types")
	return ExprInfo{Type: then.Type, Source: SourceTemporary}
}

func (c *Checker) checkAssign(e *ast.AssignExpr) ExprInfo {
	target := c.checkExpr(e.Target)
	value := c.checkExpr(e.Value)

	if !target.IsLValue {
		c.sink.Errorf(diag.KindNotAnLvalue, e.Sp, "assignment target is not an lvalue")
	} else if !target.IsMutable {
		c.sink.Errorf(diag.KindCannotModifyConst, e.Sp, "cannot assign to a const value")
	}

	if e.Op == ast.AssignHandle {
		if !target.Type.IsHandle() {
			c.sink.Errorf(diag.KindInvalidOperation, e.Sp, "'@=' requires a handle-typed target")
		}
		return ExprInfo{Type: target.Type, Source: SourceTemporary}
	}

	if _, ok := convert.Convert(value.Type, target.Type, c.ctx, false); !ok {
		c.sink.Errorf(diag.KindTypeMismatch, e.Sp, "cannot assign this value to the target's type")
	}
	return ExprInfo{Type: target.Type, Source: SourceTemporary}
}

func (c *Checker) checkCast(e *ast.CastExpr) ExprInfo {
	value := c.checkExpr(e.Value)
	target, err := resolveType(c.reg, c.arenas, e.Target, c.nsScope)
	if err != nil {
		c.sink.Errorf(diag.KindUnresolvedName, e.Sp, "%s", err)
		return ExprInfo{}
	}
	if _, ok := convert.Convert(value.Type, target, c.ctx, true); !ok {
		c.sink.Errorf(diag.KindTypeMismatch, e.Sp, "invalid cast")
	}
	return ExprInfo{Type: target, Source: SourceTemporary}
}

func (c *Checker) checkListInit(e *ast.ListInitExpr) ExprInfo {
	var dt types.DataType
	if e.Type != 0 {
		if t, err := resolveType(c.reg, c.arenas, e.Type, c.nsScope); err == nil {
			dt = t
		}
	}
	for _, el := range e.Elements {
		c.checkExpr(el)
	}
	return ExprInfo{Type: dt, Source: SourceTemporary}
}
