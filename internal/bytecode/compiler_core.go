package bytecode

import (
	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/resolve"
	"github.com/angelscript-go/asc/internal/semantic"
	"github.com/angelscript-go/asc/internal/types"
)

// local is one function-local slot the emitter has allocated: its
// lexical-block depth (for scope-pop bookkeeping) and whether it holds a
// handle (so leaving its scope needs a Release).
type local struct {
	name    string
	depth   int
	typ     types.DataType
	isHandle bool
}

// loopCtx tracks the patch-lists an in-progress loop's break/continue
// statements need filled in once the loop's bounds are known: every break
// jumps to the loop's exit, every continue jumps to its increment/retest
// step.
type loopCtx struct {
	breakJumps    []int
	continueJumps []int
	continueTarget int
	continueTargetKnown bool
}

// Module is the result of compiling one ast.Module: one Chunk per
// function/method/property-accessor body, sharing a ConstantPool and
// RefTable.
type Module struct {
	Constants *ConstantPool
	Refs      *RefTable
	Functions map[*types.FunctionDef]*Chunk

	// Init is the synthetic chunk that assigns every global variable's
	// initializer expression, run once before any script function can
	// observe a global's value (there is no registry.FunctionDef for it;
	// nothing in script source can call it directly).
	Init *Chunk
}

// Compiler lowers one function body at a time into a Chunk, given the
// ExprInfo side table a prior semantic.Analyze already populated — it
// never re-derives whether an expression type-checks, only which concrete
// opcodes realize an already-checked expression (re-resolving the winning
// overload where the type checker only recorded the result type, e.g. for
// Call/operator dispatch, since ExprInfo intentionally carries no pointer
// back to the FunctionDef that won).
type Compiler struct {
	reg    *registry.TypeRegistry
	arenas *ast.Arenas
	exprs  map[ast.ExprID]semantic.ExprInfo
	sink   *diag.Sink
	ctx    typeContext

	mod *Module

	chunk      *Chunk
	locals     []local
	scopeDepth int
	loops      []loopCtx

	nsScope    resolve.Scope
	thisHash   types.TypeHash
	thisSet    bool
	thisConst  bool
	returnType types.DataType
}

// NewModule creates an empty compiled-module accumulator: a fresh
// ConstantPool and RefTable shared by every chunk compiled into it.
func NewModule() *Module {
	return &Module{
		Constants: NewConstantPool(),
		Refs:      NewRefTable(),
		Functions: make(map[*types.FunctionDef]*Chunk),
	}
}

// NewCompiler creates a Compiler over reg, sharing mod's constant pool and
// ref table and recording diagnostics (only ever an internal-error sentinel;
// a well-formed input already passed semantic.Analyze) to sink.
func NewCompiler(reg *registry.TypeRegistry, arenas *ast.Arenas, exprs map[ast.ExprID]semantic.ExprInfo, sink *diag.Sink, mod *Module) *Compiler {
	return &Compiler{reg: reg, arenas: arenas, exprs: exprs, sink: sink, ctx: typeContext{reg: reg}, mod: mod}
}

func (c *Compiler) info(id ast.ExprID) semantic.ExprInfo {
	return c.exprs[id]
}

// beginScope pushes a new lexical block.
func (c *Compiler) beginScope() { c.scopeDepth++ }

// endScope pops the current lexical block, emitting Release for each
// handle local that went out of scope, in reverse declaration order, then
// discarding the locals themselves.
func (c *Compiler) endScope(line int) {
	c.scopeDepth--
	n := len(c.locals)
	for n > 0 && c.locals[n-1].depth > c.scopeDepth {
		n--
	}
	for i := len(c.locals) - 1; i >= n; i-- {
		if c.locals[i].isHandle {
			c.chunk.Emit(OpGetLocal, line, uint32(i))
			c.chunk.Emit(OpRelease, line)
		}
	}
	c.locals = c.locals[:n]
}

// declareLocal allocates the next slot for name, returning its index.
func (c *Compiler) declareLocal(name string, typ types.DataType) int {
	slot := len(c.locals)
	c.locals = append(c.locals, local{name: name, depth: c.scopeDepth, typ: typ, isHandle: typ.IsHandle()})
	if len(c.locals) > c.chunk.LocalCount {
		c.chunk.LocalCount = len(c.locals)
	}
	return slot
}

// resolveLocal finds name's slot in the innermost-first active locals,
// mirroring a lexical scope chain without needing a separate Scope type:
// shadowing within a function works because an inner declareLocal always
// appends after any outer local of the same name, so the last match wins.
func (c *Compiler) resolveLocal(name string) (int, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return i, true
		}
	}
	return 0, false
}

func (c *Compiler) getLocalOp(slot int) (OpCode, uint32) {
	if slot <= 0xFF {
		return OpGetLocal, uint32(slot)
	}
	return OpGetLocalWide, uint32(slot)
}

func (c *Compiler) setLocalOp(slot int) (OpCode, uint32) {
	if slot <= 0xFF {
		return OpSetLocal, uint32(slot)
	}
	return OpSetLocalWide, uint32(slot)
}

func (c *Compiler) classOf(h types.TypeHash) (*types.ClassType, bool) {
	entry, ok := c.reg.Lookup(h)
	if !ok {
		return nil, false
	}
	cls, ok := entry.(*types.ClassType)
	return cls, ok
}

func (c *Compiler) pushLoop() *loopCtx {
	c.loops = append(c.loops, loopCtx{})
	return &c.loops[len(c.loops)-1]
}

func (c *Compiler) popLoop() loopCtx {
	l := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	return l
}

func (c *Compiler) currentLoop() *loopCtx {
	if len(c.loops) == 0 {
		return nil
	}
	return &c.loops[len(c.loops)-1]
}
