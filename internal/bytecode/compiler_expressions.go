package bytecode

import (
	"math"
	"strconv"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/overload"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/semantic"
	"github.com/angelscript-go/asc/internal/types"
)

// compileExpr emits the instructions that leave id's value on top of the
// stack. It never re-validates that id type-checks — semantic.Analyze
// already did that — but it does re-derive which concrete overload a
// call or operator expression bound to, since ExprInfo only keeps the
// result type, not the winning FunctionDef.
func (c *Compiler) compileExpr(id ast.ExprID) {
	line := c.arenas.Expr(id).Span().Line
	switch e := c.arenas.Expr(id).(type) {
	case *ast.Literal:
		c.compileLiteral(e, line)
	case *ast.Identifier:
		c.compileIdentifier(id, e, line)
	case *ast.ScopeExpr:
		c.compileScopeExpr(e, line)
	case *ast.ThisExpr:
		c.chunk.Emit(OpGetThis, line)
	case *ast.SuperExpr:
		c.chunk.Emit(OpGetThis, line)
	case *ast.MemberExpr:
		c.compileMember(e, line)
	case *ast.CallExpr:
		c.compileCall(id, e, line)
	case *ast.ConstructExpr:
		c.compileConstruct(id, e, line)
	case *ast.IndexExpr:
		c.compileIndex(id, e, line)
	case *ast.BinaryExpr:
		c.compileBinary(id, e, line)
	case *ast.UnaryExpr:
		c.compileUnary(id, e, line)
	case *ast.TernaryExpr:
		c.compileTernary(e, line)
	case *ast.AssignExpr:
		c.compileAssign(id, e, line)
	case *ast.CastExpr:
		c.compileCast(id, e, line)
	case *ast.ListInitExpr:
		c.compileListInit(id, e, line)
	case *ast.LambdaExpr:
		c.chunk.Emit(OpPushNull, line)
	default:
		c.chunk.Emit(OpPushNull, line)
	}
}

func (c *Compiler) compileLiteral(e *ast.Literal, line int) {
	switch e.Kind {
	case ast.LitNull:
		c.chunk.Emit(OpPushNull, line)
	case ast.LitBool:
		if e.Bool {
			c.chunk.Emit(OpPushTrue, line)
		} else {
			c.chunk.Emit(OpPushFalse, line)
		}
	case ast.LitInt:
		v, _ := strconv.ParseInt(e.Text, 0, 64)
		c.pushInt(v, line)
	case ast.LitFloat, ast.LitDouble:
		v, _ := strconv.ParseFloat(e.Text, 64)
		c.pushFloat(v, line)
	case ast.LitString, ast.LitHeredoc:
		idx := c.mod.Constants.AddString(e.Raw)
		c.emitConstant(idx, line)
	}
}

func (c *Compiler) pushInt(v int64, line int) {
	switch v {
	case 0:
		c.chunk.Emit(OpPushZero, line)
	case 1:
		c.chunk.Emit(OpPushOne, line)
	default:
		c.emitConstant(c.mod.Constants.AddInt(v), line)
	}
}

func (c *Compiler) pushFloat(v float64, line int) {
	if v == 0 && !math.Signbit(v) {
		c.chunk.Emit(OpPushZero, line)
		return
	}
	c.emitConstant(c.mod.Constants.AddFloat(v), line)
}

func (c *Compiler) emitConstant(idx int, line int) {
	if idx <= 0xFF {
		c.chunk.Emit(OpConstant, line, uint32(idx))
		return
	}
	c.chunk.Emit(OpConstantWide, line, uint32(idx))
}

// compileIdentifier dispatches on ExprInfo.Source rather than re-deriving
// which kind of name e.Name is: Checker.checkIdentifier already decided
// that (local scope, then a namespace-qualified global, then a `this`
// field) and recorded which one won, so re-running the same search here
// could only either repeat that work or, worse, disagree with it (a bare
// global lookup by unqualified name, for instance, would silently miss a
// global declared inside the current namespace).
func (c *Compiler) compileIdentifier(id ast.ExprID, e *ast.Identifier, line int) {
	switch c.info(id).Source {
	case semantic.SourceLocal:
		if slot, ok := c.resolveLocal(e.Name); ok {
			op, operand := c.getLocalOp(slot)
			c.chunk.Emit(op, line, operand)
			return
		}

	case semantic.SourceGlobal:
		if qualified, err := c.resolveGlobalName(e.Name); err == nil {
			c.chunk.Emit(OpGetGlobal, line, uint32(c.mod.Refs.GlobalIndex(qualified)))
			return
		}

	case semantic.SourceThis, semantic.SourceMember:
		if c.thisSet {
			if cls, ok := c.classOf(c.thisHash); ok {
				if idx, ok := fieldIndex(cls, e.Name); ok {
					c.chunk.Emit(OpGetThis, line)
					c.chunk.Emit(OpGetField, line, uint32(idx))
					return
				}
			}
		}
	}
	c.chunk.Emit(OpPushNull, line)
}

// resolveGlobalName re-derives the namespace-qualified name
// Checker.checkIdentifier resolved name to, the same way (innermost
// namespace first, then imports, then the global namespace).
func (c *Compiler) resolveGlobalName(name string) (string, error) {
	return resolve.Lookup([]string{name}, c.nsScope, func(n string) bool {
		_, ok := c.reg.Global(n)
		return ok
	})
}

func (c *Compiler) compileScopeExpr(e *ast.ScopeExpr, line int) {
	qualified, err := resolve.Lookup(e.Segments, c.nsScope, func(n string) bool {
		_, ok := c.reg.Global(n)
		return ok
	})
	if err != nil {
		c.chunk.Emit(OpPushNull, line)
		return
	}
	c.chunk.Emit(OpGetGlobal, line, uint32(c.mod.Refs.GlobalIndex(qualified)))
}

func fieldIndex(cls *types.ClassType, name string) (int, bool) {
	for i, f := range cls.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (c *Compiler) compileMember(e *ast.MemberExpr, line int) {
	objInfo := c.info(e.Object)
	c.compileExpr(e.Object)
	cls, ok := c.classOf(objInfo.Type.Hash)
	if !ok {
		return
	}
	if idx, ok := fieldIndex(cls, e.Member); ok {
		c.chunk.Emit(OpGetField, line, uint32(idx))
		return
	}
	for _, p := range cls.Properties {
		if p.Name == e.Member && p.Getter != nil {
			c.emitCall(OpCallMethod, p.Getter, 0, line)
			return
		}
	}
}

func (c *Compiler) emitCall(op OpCode, fn *types.FunctionDef, argc int, line int) {
	c.chunk.Emit(op, line, uint32(c.mod.Refs.FuncIndex(fn)), uint32(argc))
}

func (c *Compiler) compileArgs(args []ast.NamedArg) []overload.Arg {
	out := make([]overload.Arg, len(args))
	for i, a := range args {
		out[i] = overload.Arg{Type: c.info(a.Value).Type, Name: a.Name}
	}
	for _, a := range args {
		c.compileExpr(a.Value)
	}
	return out
}

func (c *Compiler) resolveFn(fns []*types.FunctionDef, args []overload.Arg) *types.FunctionDef {
	candidates := make([]overload.Candidate, len(fns))
	for i, fn := range fns {
		candidates[i] = overload.Candidate{Fn: fn, Ctx: c.ctx}
	}
	fn, err := overload.Resolve(candidates, args)
	if err != nil {
		return nil
	}
	return fn
}

func (c *Compiler) compileCall(id ast.ExprID, e *ast.CallExpr, line int) {
	args := c.compileArgs(e.Args)
	switch callee := c.arenas.Expr(e.Callee).(type) {
	case *ast.Identifier:
		qualified, err := resolve.Lookup([]string{callee.Name}, c.nsScope, func(n string) bool { return len(c.reg.Functions(n)) > 0 })
		if err != nil {
			return
		}
		if fn := c.resolveFn(c.reg.Functions(qualified), args); fn != nil {
			c.emitCall(OpCall, fn, len(e.Args), line)
		}
	case *ast.ScopeExpr:
		qualified, err := resolve.Lookup(callee.Segments, c.nsScope, func(n string) bool { return len(c.reg.Functions(n)) > 0 })
		if err != nil {
			return
		}
		if fn := c.resolveFn(c.reg.Functions(qualified), args); fn != nil {
			c.emitCall(OpCall, fn, len(e.Args), line)
		}
	case *ast.MemberExpr:
		objInfo := c.info(callee.Object)
		c.compileExpr(callee.Object)
		cls, ok := c.classOf(objInfo.Type.Hash)
		if !ok {
			return
		}
		fns := c.reg.Functions(cls.QualifiedName() + "::" + callee.Member)
		fn := c.resolveFn(fns, args)
		if fn == nil {
			return
		}
		op := OpCallMethod
		if isOverridable(cls, callee.Member) {
			op = OpCallVirtual
		}
		c.emitCall(op, fn, len(e.Args), line)
	}
}

// isOverridable reports whether a call site should dispatch virtually:
// true when name is declared on cls's own method list or when cls has a
// base class. The registry doesn't track finalized methods, so every
// class method call it approves is emitted as CallVirtual; CallMethod is
// reserved for behaviors/operators invoked directly by the emitter itself.
func isOverridable(cls *types.ClassType, name string) bool {
	for _, n := range cls.MethodNames {
		if n == name {
			return true
		}
	}
	return cls.Base != 0
}

// compileConstruct emits NEW/NEW_FACTORY with the constructed type's index
// and the argument count; which specific constructor/factory overload runs
// is picked at the call site by type and argc together, the same pair New/
// NewFactory's operands already carry, so there is nothing further to
// encode here beyond evaluating the arguments in order.
func (c *Compiler) compileConstruct(id ast.ExprID, e *ast.ConstructExpr, line int) {
	info := c.info(id)
	c.compileArgs(e.Args)
	cls, ok := c.classOf(info.Type.Hash)
	if !ok {
		return
	}
	typeIdx := c.mod.Refs.TypeIndex(info.Type.Hash)
	if len(cls.Behaviors.Factories) > 0 {
		c.chunk.Emit(OpNewFactory, line, uint32(typeIdx), uint32(len(e.Args)))
		return
	}
	c.chunk.Emit(OpNew, line, uint32(typeIdx), uint32(len(e.Args)))
}

func (c *Compiler) compileIndex(id ast.ExprID, e *ast.IndexExpr, line int) {
	objInfo := c.info(e.Object)
	c.compileExpr(e.Object)
	args := c.compileArgs(e.Args)
	fns := c.ctx.Operators(objInfo.Type.Hash, types.OpIndex)
	fn := c.resolveFn(fns, args)
	if fn == nil {
		return
	}
	c.emitCall(OpCallMethod, fn, len(e.Args), line)
}

var primitiveBinaryOps = map[ast.BinaryOp]OpCode{
	ast.OpAdd: OpAdd, ast.OpSub: OpSub, ast.OpMul: OpMul, ast.OpDiv: OpDiv,
	ast.OpMod: OpMod, ast.OpPow: OpPow,
	ast.OpBitAnd: OpBitAnd, ast.OpBitOr: OpBitOr, ast.OpBitXor: OpBitXor,
	ast.OpShl: OpShl, ast.OpShr: OpShr, ast.OpUShr: OpUshr,
	ast.OpEq: OpEq, ast.OpLt: OpLt, ast.OpLe: OpLe, ast.OpGt: OpGt, ast.OpGe: OpGe,
}

func (c *Compiler) compileBinary(id ast.ExprID, e *ast.BinaryExpr, line int) {
	switch e.Op {
	case ast.OpAnd:
		c.compileShortCircuit(e.Left, e.Right, line, OpJumpIfFalse)
		return
	case ast.OpOr:
		c.compileShortCircuit(e.Left, e.Right, line, OpJumpIfTrue)
		return
	case ast.OpXorLogical:
		c.compileExpr(e.Left)
		c.compileExpr(e.Right)
		c.chunk.Emit(OpEq, line)
		c.chunk.Emit(OpNot, line)
		return
	}

	lhs := c.info(e.Left)
	rhs := c.info(e.Right)

	if e.Op == ast.OpNeq {
		c.compileEquality(lhs, rhs, e.Left, e.Right, line)
		c.chunk.Emit(OpNot, line)
		return
	}
	if e.Op == ast.OpEq {
		c.compileEquality(lhs, rhs, e.Left, e.Right, line)
		return
	}

	if _, _, _, ok := c.ctx.PrimitiveInfo(lhs.Type.Hash); ok {
		if _, _, _, ok2 := c.ctx.PrimitiveInfo(rhs.Type.Hash); ok2 {
			c.compileExpr(e.Left)
			c.compileExpr(e.Right)
			c.chunk.Emit(primitiveBinaryOps[e.Op], line)
			return
		}
	}

	c.compileOperatorCall(lhs, rhs, e.Left, e.Right, binaryOpKind(e.Op), line)
}

func (c *Compiler) compileEquality(lhs, rhs semantic.ExprInfo, leftID, rightID ast.ExprID, line int) {
	if lhs.Type.Equal(rhs.Type) {
		c.compileExpr(leftID)
		c.compileExpr(rightID)
		c.chunk.Emit(OpEq, line)
		return
	}
	c.compileOperatorCall(lhs, rhs, leftID, rightID, types.OpEquals, line)
}

// compileOperatorCall emits the CallMethod for whichever side declares the
// opXxx (or opXxx_r) overload, mirroring semantic.Checker.operatorOverload
// exactly so the emitted call matches what was type-checked.
func (c *Compiler) compileOperatorCall(lhs, rhs semantic.ExprInfo, leftID, rightID ast.ExprID, kind types.OperatorKind, line int) {
	if kind == types.OperatorNone {
		c.chunk.Emit(OpPushNull, line)
		return
	}
	if fns := c.ctx.Operators(lhs.Type.Hash, kind); len(fns) > 0 {
		c.compileExpr(leftID)
		fn := c.resolveFn(fns, []overload.Arg{{Type: rhs.Type}})
		c.compileExpr(rightID)
		if fn != nil {
			c.emitCall(OpCallMethod, fn, 1, line)
		}
		return
	}
	if kind.IsReversible() {
		if fns := c.ctx.Operators(rhs.Type.Hash, kind.Reverse()); len(fns) > 0 {
			c.compileExpr(rightID)
			fn := c.resolveFn(fns, []overload.Arg{{Type: lhs.Type}})
			c.compileExpr(leftID)
			if fn != nil {
				c.emitCall(OpCallMethod, fn, 1, line)
			}
			return
		}
	}
	c.chunk.Emit(OpPushNull, line)
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
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return types.OpCmp
	default:
		return types.OperatorNone
	}
}

// compileShortCircuit emits `left && right` / `left || right` without
// evaluating right unless necessary: the conditional jump only peeks at
// the left operand, so when it is taken left stays on the stack as the
// whole expression's value; otherwise left is popped and right evaluated.
func (c *Compiler) compileShortCircuit(leftID, rightID ast.ExprID, line int, jumpOp OpCode) {
	c.compileExpr(leftID)
	jump := c.chunk.EmitJump(jumpOp, line)
	c.chunk.Emit(OpPop, line)
	c.compileExpr(rightID)
	c.chunk.PatchJump(jump)
}

func (c *Compiler) compileUnary(id ast.ExprID, e *ast.UnaryExpr, line int) {
	switch e.Op {
	case ast.OpNeg:
		c.compileExpr(e.Operand)
		c.chunk.Emit(OpNeg, line)
	case ast.OpNot:
		c.compileExpr(e.Operand)
		c.chunk.Emit(OpNot, line)
	case ast.OpBitNot:
		c.compileExpr(e.Operand)
		c.chunk.Emit(OpBitNot, line)
	case ast.OpHandleOf:
		c.compileExpr(e.Operand)
		c.chunk.Emit(OpHandleOf, line)
	case ast.OpPreInc, ast.OpPreDec:
		c.compileIncDec(e.Operand, e.Op == ast.OpPreInc, false, line)
	case ast.OpPostInc, ast.OpPostDec:
		c.compileIncDec(e.Operand, e.Op == ast.OpPostInc, true, line)
	}
}

// compileIncDec materializes the old value before mutating when
// postOrder is set, so a postfix `x++` yields the pre-increment value
// while still only evaluating the lvalue target once. Only a plain local
// variable is handled as a true read-modify-write; a member, global, or
// indexed target falls back to reading its value without storing the
// incremented result, for the same reason compileCompoundAssign can't
// avoid a double receiver evaluation there: addressing the same location
// twice (once to read, once to write) needs the receiver kept live across
// both, which has no compact encoding here yet.
func (c *Compiler) compileIncDec(target ast.ExprID, increment, postOrder bool, line int) {
	ident, isLocal := c.arenas.Expr(target).(*ast.Identifier)
	if !isLocal {
		c.compileExpr(target)
		return
	}
	slot, ok := c.resolveLocal(ident.Name)
	if !ok {
		c.compileExpr(target)
		return
	}
	getOp, getOperand := c.getLocalOp(slot)
	setOp, setOperand := c.setLocalOp(slot)

	c.chunk.Emit(getOp, line, getOperand)
	if postOrder {
		c.chunk.Emit(OpDup, line)
	}
	c.pushInt(1, line)
	if increment {
		c.chunk.Emit(OpAdd, line)
	} else {
		c.chunk.Emit(OpSub, line)
	}
	if !postOrder {
		c.chunk.Emit(OpDup, line)
	}
	c.chunk.Emit(setOp, line, setOperand)
	if postOrder {
		c.chunk.Emit(OpPop, line)
	}
}

func (c *Compiler) compileTernary(e *ast.TernaryExpr, line int) {
	c.compileExpr(e.Cond)
	elseJump := c.chunk.EmitJump(OpJumpIfFalse, line)
	c.chunk.Emit(OpPop, line)
	c.compileExpr(e.Then)
	endJump := c.chunk.EmitJump(OpJump, line)
	c.chunk.PatchJump(elseJump)
	c.chunk.Emit(OpPop, line)
	c.compileExpr(e.Else)
	c.chunk.PatchJump(endJump)
}

func (c *Compiler) compileAssign(id ast.ExprID, e *ast.AssignExpr, line int) {
	if e.Op == ast.AssignHandle {
		c.compileExpr(e.Value)
		c.chunk.Emit(OpDup, line)
		c.storeTo(e.Target, line)
		return
	}
	if e.Op != ast.AssignPlain {
		c.compileCompoundAssign(e, line)
		return
	}
	c.compileExpr(e.Value)
	c.chunk.Emit(OpDup, line)
	c.storeTo(e.Target, line)
}

var compoundOps = map[ast.AssignOp]OpCode{
	ast.AssignAdd: OpAdd, ast.AssignSub: OpSub, ast.AssignMul: OpMul,
	ast.AssignDiv: OpDiv, ast.AssignMod: OpMod, ast.AssignPow: OpPow,
	ast.AssignBitAnd: OpBitAnd, ast.AssignBitOr: OpBitOr, ast.AssignBitXor: OpBitXor,
	ast.AssignShl: OpShl, ast.AssignShr: OpShr, ast.AssignUShr: OpUshr,
}

// compileCompoundAssign evaluates target twice: once to read its current
// value, once more inside storeTo to address it for the write. For a
// plain local or global that's free; for a member target with a
// side-effecting receiver expression (a function call returning a
// handle, say) the receiver genuinely runs twice. Avoiding that needs the
// receiver kept on the stack across both the read and the write, which
// this instruction set has no compact way to express yet.
func (c *Compiler) compileCompoundAssign(e *ast.AssignExpr, line int) {
	c.compileExpr(e.Target)
	c.compileExpr(e.Value)
	c.chunk.Emit(compoundOps[e.Op], line)
	c.chunk.Emit(OpDup, line)
	c.storeTo(e.Target, line)
}

// storeTo emits the instructions that pop the stack's top value into
// target's storage location, leaving nothing behind (the caller already
// Dup'd the value if it needs it as the assignment expression's result).
func (c *Compiler) storeTo(target ast.ExprID, line int) {
	switch t := c.arenas.Expr(target).(type) {
	case *ast.Identifier:
		switch c.info(target).Source {
		case semantic.SourceLocal:
			if slot, ok := c.resolveLocal(t.Name); ok {
				op, operand := c.setLocalOp(slot)
				c.chunk.Emit(op, line, operand)
				return
			}
		case semantic.SourceGlobal:
			if qualified, err := c.resolveGlobalName(t.Name); err == nil {
				c.chunk.Emit(OpSetGlobal, line, uint32(c.mod.Refs.GlobalIndex(qualified)))
				return
			}
		case semantic.SourceThis, semantic.SourceMember:
			if c.thisSet {
				if cls, ok := c.classOf(c.thisHash); ok {
					if idx, ok := fieldIndex(cls, t.Name); ok {
						c.chunk.Emit(OpGetThis, line)
						c.chunk.Emit(OpSetField, line, uint32(idx))
						return
					}
				}
			}
		}
		c.chunk.Emit(OpPop, line)
	case *ast.MemberExpr:
		objInfo := c.info(t.Object)
		c.compileExpr(t.Object)
		cls, ok := c.classOf(objInfo.Type.Hash)
		if !ok {
			c.chunk.Emit(OpPop, line)
			return
		}
		if idx, ok := fieldIndex(cls, t.Member); ok {
			c.chunk.Emit(OpSetField, line, uint32(idx))
			return
		}
		for _, p := range cls.Properties {
			if p.Name == t.Member && p.Setter != nil {
				c.emitCall(OpCallMethod, p.Setter, 1, line)
				return
			}
		}
		c.chunk.Emit(OpPop, line)
	default:
		c.chunk.Emit(OpPop, line)
	}
}

func (c *Compiler) compileCast(id ast.ExprID, e *ast.CastExpr, line int) {
	info := c.info(id)
	valInfo := c.info(e.Value)
	c.compileExpr(e.Value)

	if fb, ffloat, fsigned, fok := c.ctx.PrimitiveInfo(valInfo.Type.Hash); fok {
		if tb, tfloat, tsigned, tok := c.ctx.PrimitiveInfo(info.Type.Hash); tok {
			fromName := c.ctx.primitiveName(valInfo.Type.Hash)
			toName := c.ctx.primitiveName(info.Type.Hash)
			if op, ok := convOpCode(fromName, toName); ok && fromName != toName {
				c.chunk.Emit(op, line)
			}
			_ = fb
			_ = ffloat
			_ = fsigned
			_ = tb
			_ = tfloat
			_ = tsigned
			return
		}
	}

	if m := c.ctx.ConversionMethod(valInfo.Type.Hash, info.Type, true); m != nil {
		c.emitCall(OpCallMethod, m, 0, line)
		return
	}

	if c.ctx.IsBaseOf(info.Type.Hash, valInfo.Type.Hash) {
		c.chunk.Emit(OpDerivedToBase, line, uint32(c.mod.Refs.TypeIndex(info.Type.Hash)))
		return
	}
	if c.ctx.Implements(valInfo.Type.Hash, info.Type.Hash) {
		c.chunk.Emit(OpClassToInterface, line, uint32(c.mod.Refs.TypeIndex(info.Type.Hash)))
		return
	}
	c.chunk.Emit(OpCast, line, uint32(c.mod.Refs.TypeIndex(info.Type.Hash)))
}

func (c *Compiler) compileListInit(id ast.ExprID, e *ast.ListInitExpr, line int) {
	info := c.info(id)
	c.chunk.Emit(OpInitListBegin, line, uint32(c.mod.Refs.TypeIndex(info.Type.Hash)))
	for _, el := range e.Elements {
		c.compileExpr(el)
	}
	c.chunk.Emit(OpInitListEnd, line)
}
