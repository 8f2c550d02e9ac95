package semantic

import "github.com/angelscript-go/asc/internal/ast"

// returnState is the three-state verdict the return-path checker produces
// for a statement: whether control reaching that statement is guaranteed to
// leave via a return, guaranteed to fall through, or depends on a runtime
// condition the checker can't resolve statically.
type returnState int

const (
	returnNever returnState = iota
	returnAlways
	returnSometimes
)

// checkReturns walks body (a function's block statement) and reports
// whether every path through it reaches a return. A void function is
// exempt; its body never needs to be checked here, the caller guards that.
func checkReturns(arenas *ast.Arenas, body ast.StmtID) returnState {
	return checkStmt(arenas, body)
}

func checkStmt(arenas *ast.Arenas, id ast.StmtID) returnState {
	if id == 0 {
		return returnNever
	}
	switch s := arenas.Stmt(id).(type) {
	case *ast.ReturnStmt:
		return returnAlways

	case *ast.BlockStmt:
		state := returnNever
		for _, sub := range s.Stmts {
			sub := checkStmt(arenas, sub)
			if sub == returnAlways {
				return returnAlways
			}
			if sub == returnSometimes {
				state = returnSometimes
			}
		}
		return state

	case *ast.IfStmt:
		then := checkStmt(arenas, s.Then)
		if s.Else == 0 {
			if then == returnAlways {
				return returnSometimes
			}
			return then
		}
		els := checkStmt(arenas, s.Else)
		if then == returnAlways && els == returnAlways {
			return returnAlways
		}
		if then == returnNever && els == returnNever {
			return returnNever
		}
		return returnSometimes

	case *ast.WhileStmt:
		// A `while` guarded by a non-constant condition may execute zero
		// times, so even a body that always returns doesn't guarantee the
		// statement does; `while (true)` with no break would, but the
		// checker doesn't trace break targets that deeply.
		if isTrueLiteral(arenas, s.Cond) {
			inner := checkStmt(arenas, s.Body)
			if inner == returnNever {
				return returnNever
			}
			return returnAlways
		}
		if checkStmt(arenas, s.Body) == returnNever {
			return returnNever
		}
		return returnSometimes

	case *ast.DoWhileStmt:
		inner := checkStmt(arenas, s.Body)
		if inner == returnAlways {
			return returnAlways
		}
		if inner == returnNever {
			return returnNever
		}
		return returnSometimes

	case *ast.ForStmt:
		if checkStmt(arenas, s.Body) == returnNever {
			return returnNever
		}
		return returnSometimes

	case *ast.ForeachStmt:
		if checkStmt(arenas, s.Body) == returnNever {
			return returnNever
		}
		return returnSometimes

	case *ast.SwitchStmt:
		if len(s.Cases) == 0 {
			return returnNever
		}
		hasDefault := false
		all := returnAlways
		for _, c := range s.Cases {
			if len(c.Exprs) == 0 {
				hasDefault = true
			}
			state := returnNever
			for _, sub := range c.Body {
				sub := checkStmt(arenas, sub)
				if sub == returnAlways {
					state = returnAlways
					break
				}
				if sub == returnSometimes {
					state = returnSometimes
				}
			}
			if state != returnAlways {
				all = returnSometimes
			}
		}
		if !hasDefault {
			return returnSometimes
		}
		return all

	case *ast.TryCatchStmt:
		tryState := checkStmt(arenas, s.Try)
		catchState := checkStmt(arenas, s.Catch)
		if tryState == returnAlways && catchState == returnAlways {
			return returnAlways
		}
		if tryState == returnNever && catchState == returnNever {
			return returnNever
		}
		return returnSometimes

	default:
		return returnNever
	}
}

func isTrueLiteral(arenas *ast.Arenas, id ast.ExprID) bool {
	if id == 0 {
		return false
	}
	lit, ok := arenas.Expr(id).(*ast.Literal)
	return ok && lit.Kind == ast.LitBool && lit.Bool
}
