package bytecode

import "github.com/angelscript-go/asc/internal/types"

// RefTable assigns stable u16 indices to the functions, types and globals
// a module's compiled chunks refer to (FuncIndex, TypeIndex, GlobalIndex):
// a Call instruction
// carries a small index into this table rather than a full 64-bit
// TypeHash or a FunctionDef pointer, keeping every operand within the
// widths operandWidths in opcode.go declares. One RefTable is shared by every
// function compiled from the same module, mirroring the per-module
// ConstantPool.
type RefTable struct {
	funcs     []*types.FunctionDef
	funcIdx   map[*types.FunctionDef]int
	typeRefs  []types.TypeHash
	typeIdx   map[types.TypeHash]int
	globals   []string
	globalIdx map[string]int
}

// NewRefTable creates an empty table.
func NewRefTable() *RefTable {
	return &RefTable{
		funcIdx:   make(map[*types.FunctionDef]int),
		typeIdx:   make(map[types.TypeHash]int),
		globalIdx: make(map[string]int),
	}
}

// GlobalIndex interns name (a qualified global variable or function
// name), returning the index GetGlobal/SetGlobal opcodes should encode.
// Globals are indexed by name rather than by TypeHash because a global
// variable has no TypeHash of its own — only its DataType does, and two
// globals of the same type must still get distinct slots.
func (t *RefTable) GlobalIndex(name string) uint16 {
	if i, ok := t.globalIdx[name]; ok {
		return uint16(i)
	}
	i := len(t.globals)
	t.globals = append(t.globals, name)
	t.globalIdx[name] = i
	return uint16(i)
}

// Global resolves an index back to its qualified name.
func (t *RefTable) Global(i uint16) string { return t.globals[i] }

// FuncIndex interns fn, returning the index Call/CallMethod/... opcodes
// should encode.
func (t *RefTable) FuncIndex(fn *types.FunctionDef) uint16 {
	if i, ok := t.funcIdx[fn]; ok {
		return uint16(i)
	}
	i := len(t.funcs)
	t.funcs = append(t.funcs, fn)
	t.funcIdx[fn] = i
	return uint16(i)
}

// Func resolves an index back to its FunctionDef (used by the
// disassembler and by tests asserting which overload a call site bound).
func (t *RefTable) Func(i uint16) *types.FunctionDef { return t.funcs[i] }

// TypeIndex interns h, returning the index New/NewFactory/Cast/
// InstanceOf/... opcodes should encode.
func (t *RefTable) TypeIndex(h types.TypeHash) uint16 {
	if i, ok := t.typeIdx[h]; ok {
		return uint16(i)
	}
	i := len(t.typeRefs)
	t.typeRefs = append(t.typeRefs, h)
	t.typeIdx[h] = i
	return uint16(i)
}

// Type resolves an index back to its TypeHash.
func (t *RefTable) Type(i uint16) types.TypeHash { return t.typeRefs[i] }
