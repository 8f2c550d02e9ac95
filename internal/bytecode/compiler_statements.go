package bytecode

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/types"
)

// compileStmt emits id's instructions, leaving the stack depth unchanged
// (every pushed intermediate value is consumed or popped before the
// statement ends).
func (c *Compiler) compileStmt(id ast.StmtID) {
	if id == 0 {
		return
	}
	line := c.arenas.Stmt(id).Span().Line
	switch s := c.arenas.Stmt(id).(type) {
	case *ast.BlockStmt:
		c.beginScope()
		for _, sub := range s.Stmts {
			c.compileStmt(sub)
		}
		c.endScope(line)

	case *ast.VarDeclStmt:
		c.compileVarDecl(s)

	case *ast.ExprStmt:
		c.compileExpr(s.Expr)
		c.chunk.Emit(OpPop, line)

	case *ast.IfStmt:
		c.compileExpr(s.Cond)
		elseJump := c.chunk.EmitJump(OpJumpIfFalse, line)
		c.chunk.Emit(OpPop, line)
		c.compileStmt(s.Then)
		if s.Else != 0 {
			endJump := c.chunk.EmitJump(OpJump, line)
			c.chunk.PatchJump(elseJump)
			c.chunk.Emit(OpPop, line)
			c.compileStmt(s.Else)
			c.chunk.PatchJump(endJump)
		} else {
			endJump := c.chunk.EmitJump(OpJump, line)
			c.chunk.PatchJump(elseJump)
			c.chunk.Emit(OpPop, line)
			c.chunk.PatchJump(endJump)
		}

	case *ast.WhileStmt:
		c.compileWhile(s, line)

	case *ast.DoWhileStmt:
		c.compileDoWhile(s, line)

	case *ast.ForStmt:
		c.compileFor(s, line)

	case *ast.ForeachStmt:
		c.compileForeach(s, line)

	case *ast.SwitchStmt:
		c.compileSwitch(s, line)

	case *ast.BreakStmt:
		if loop := c.currentLoop(); loop != nil {
			loop.breakJumps = append(loop.breakJumps, c.chunk.EmitJump(OpJump, line))
		}

	case *ast.ContinueStmt:
		if loop := c.currentLoop(); loop != nil {
			loop.continueJumps = append(loop.continueJumps, c.chunk.EmitJump(OpJump, line))
		}

	case *ast.ReturnStmt:
		if s.Value == 0 {
			c.chunk.Emit(OpReturnVoid, line)
			return
		}
		c.compileExpr(s.Value)
		c.chunk.Emit(OpReturn, line)

	case *ast.TryCatchStmt:
		handler := c.chunk.EmitJump(OpTryBegin, line)
		c.compileStmt(s.Try)
		c.chunk.Emit(OpTryEnd, line)
		skipCatch := c.chunk.EmitJump(OpJump, line)
		c.chunk.PatchJump(handler)
		c.compileStmt(s.Catch)
		c.chunk.PatchJump(skipCatch)
	}
}

func (c *Compiler) compileVarDecl(s *ast.VarDeclStmt) {
	_, isAuto := c.arenas.TypeExpr(s.Type).(*ast.AutoType)
	var declared types.DataType
	if !isAuto {
		declared, _ = resolveType(c.reg, c.arenas, s.Type, c.nsScope)
	}
	for _, d := range s.Declarators {
		line := s.Sp.Line
		dt := declared
		if d.Init != 0 {
			if isAuto {
				dt = c.info(d.Init).Type
			}
			c.compileExpr(d.Init)
		} else {
			c.chunk.Emit(OpPushNull, line)
		}
		c.declareLocal(d.Name, dt)
		slot := len(c.locals) - 1
		op, operand := c.setLocalOp(slot)
		c.chunk.Emit(op, line, operand)
		c.chunk.Emit(OpPop, line)
	}
}

func (c *Compiler) compileWhile(s *ast.WhileStmt, line int) {
	c.pushLoop()
	start := len(c.chunk.Code)
	c.compileExpr(s.Cond)
	exitJump := c.chunk.EmitJump(OpJumpIfFalse, line)
	c.chunk.Emit(OpPop, line)
	c.compileStmt(s.Body)
	c.patchContinueTo(start)
	c.chunk.EmitLoop(start, line)
	c.chunk.PatchJump(exitJump)
	c.chunk.Emit(OpPop, line)
	c.finishLoop()
}

func (c *Compiler) compileDoWhile(s *ast.DoWhileStmt, line int) {
	c.pushLoop()
	start := len(c.chunk.Code)
	c.compileStmt(s.Body)
	condStart := len(c.chunk.Code)
	c.patchContinueTo(condStart)
	c.compileExpr(s.Cond)
	c.chunk.Emit(OpNot, line)
	exitJump := c.chunk.EmitJump(OpJumpIfFalse, line)
	c.chunk.Emit(OpPop, line)
	c.chunk.EmitLoop(start, line)
	c.chunk.PatchJump(exitJump)
	c.chunk.Emit(OpPop, line)
	c.finishLoop()
}

func (c *Compiler) compileFor(s *ast.ForStmt, line int) {
	c.beginScope()
	c.compileStmt(s.Init)
	c.pushLoop()
	start := len(c.chunk.Code)
	var exitJump int
	hasCond := s.Cond != 0
	if hasCond {
		c.compileExpr(s.Cond)
		exitJump = c.chunk.EmitJump(OpJumpIfFalse, line)
		c.chunk.Emit(OpPop, line)
	}
	c.compileStmt(s.Body)
	postStart := len(c.chunk.Code)
	c.patchContinueTo(postStart)
	for _, p := range s.Post {
		c.compileExpr(p)
		c.chunk.Emit(OpPop, line)
	}
	c.chunk.EmitLoop(start, line)
	if hasCond {
		c.chunk.PatchJump(exitJump)
		c.chunk.Emit(OpPop, line)
	}
	c.finishLoop()
	c.endScope(line)
}

// compileForeach evaluates the range expression and discards its value,
// declares each binding as a local initialized to null, and compiles the
// body once inside a loop context with no back edge (a continue jumps to
// the start of the body). It does not iterate: no element is read from the
// range and the bindings are never assigned an element.
func (c *Compiler) compileForeach(s *ast.ForeachStmt, line int) {
	c.beginScope()
	c.compileExpr(s.Range)
	c.chunk.Emit(OpPop, line)
	for _, b := range s.Bindings {
		dt, _ := resolveType(c.reg, c.arenas, b.Type, c.nsScope)
		c.chunk.Emit(OpPushNull, line)
		c.declareLocal(b.Name, dt)
		slot := len(c.locals) - 1
		op, operand := c.setLocalOp(slot)
		c.chunk.Emit(op, line, operand)
		c.chunk.Emit(OpPop, line)
	}
	c.pushLoop()
	start := len(c.chunk.Code)
	c.compileStmt(s.Body)
	c.patchContinueTo(start)
	c.finishLoop()
	c.endScope(line)
}

// compileSwitch walks the case list as a chain of dup-compare-jump tests.
// The subject is pushed once and must be popped exactly once on every
// path out of the chain — each case body pops it right before running
// (it no longer needs comparing against once a body is entered), and the
// final no-match fallthrough pops it too.
func (c *Compiler) compileSwitch(s *ast.SwitchStmt, line int) {
	c.compileExpr(s.Subject)
	c.pushLoop()

	if len(s.Cases) == 0 {
		c.chunk.Emit(OpPop, line)
	}

	nextCaseJump := -1
	for _, cc := range s.Cases {
		if nextCaseJump >= 0 {
			c.chunk.PatchJump(nextCaseJump)
		}
		if len(cc.Exprs) == 0 {
			c.chunk.Emit(OpPop, line) // discard the subject
			for _, sub := range cc.Body {
				c.compileStmt(sub)
			}
			nextCaseJump = -1
			continue
		}
		var matchJumps []int
		for _, e := range cc.Exprs {
			c.chunk.Emit(OpDup, line)
			c.compileExpr(e)
			c.chunk.Emit(OpEq, line)
			matchJumps = append(matchJumps, c.chunk.EmitJump(OpJumpIfTrue, line))
			c.chunk.Emit(OpPop, line)
		}
		nextCaseJump = c.chunk.EmitJump(OpJump, line)
		for _, j := range matchJumps {
			c.chunk.PatchJump(j)
		}
		c.chunk.Emit(OpPop, line) // discard the peeked true
		c.chunk.Emit(OpPop, line) // discard the subject
		for _, sub := range cc.Body {
			c.compileStmt(sub)
		}
	}
	if nextCaseJump >= 0 {
		c.chunk.PatchJump(nextCaseJump)
		c.chunk.Emit(OpPop, line) // discard the subject; no case matched
	}

	loop := c.popLoop()
	for _, j := range loop.breakJumps {
		c.chunk.PatchJump(j)
	}
	// A `continue` written inside a switch continues the enclosing loop,
	// not the switch itself (AngelScript has no per-switch continue
	// target), so any continue jumps collected while this switch was the
	// innermost loop context are handed to whatever loop encloses it.
	if parent := c.currentLoop(); parent != nil {
		parent.continueJumps = append(parent.continueJumps, loop.continueJumps...)
	}
}

// patchContinueTo records target as the current loop's continue
// destination and patches every continue collected so far to jump there.
// Each loop calls it after compiling its whole body, so every continue in
// the body (however deeply nested) is already collected; finishLoop
// patches only breaks.
func (c *Compiler) patchContinueTo(target int) {
	loop := c.currentLoop()
	if loop == nil {
		return
	}
	loop.continueTarget = target
	loop.continueTargetKnown = true
	for _, j := range loop.continueJumps {
		c.chunk.PatchJump(j)
	}
	loop.continueJumps = nil
}

// finishLoop pops the loop context and patches any break jumps to land
// here, just past the loop. Every continue jump is already patched by the
// time this runs: patchContinueTo is always called once the loop's
// continue target (the retest/increment point) is reached, which happens
// before compileStmt returns control to finishLoop's caller.
func (c *Compiler) finishLoop() {
	loop := c.popLoop()
	for _, j := range loop.breakJumps {
		c.chunk.PatchJump(j)
	}
}
