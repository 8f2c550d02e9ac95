// Package bytecode lowers a checked AST (an ast.Module plus the
// semantic.Result a prior Analyze produced) into a compact stack-based
// instruction stream: one opcode byte followed by zero to five operand
// bytes, with the VM (not in scope here) consuming a per-module Chunk of
// such bytes plus its constant pool.
package bytecode

// OpCode identifies one bytecode instruction. Rather than a fixed-width
// 32-bit instruction word, every instruction here is an
// opcode byte followed by however many operand bytes operandWidths says
// it has — some instructions take none, some take up to five (the widest,
// CallInterface, packs an interface type index, a vtable slot, and an argument
// count).
type OpCode byte

const (
	// Push constants.
	OpPushNull OpCode = iota
	OpPushTrue
	OpPushFalse
	OpPushZero
	OpPushOne
	OpConstant     // u8 constant-pool index
	OpConstantWide // u16 constant-pool index

	// Locals / globals / fields.
	OpGetLocal      // u8 slot
	OpSetLocal      // u8 slot
	OpGetLocalWide  // u16 slot
	OpSetLocalWide  // u16 slot
	OpGetGlobal     // u16 global index
	OpSetGlobal     // u16 global index
	OpGetField      // u16 field index
	OpSetField      // u16 field index
	OpGetThis       // no operand

	// Arithmetic / bitwise (operands already on stack, typed by the
	// conversions the expression compiler inserted beforehand).
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpPow
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpShl
	OpShr
	OpUshr

	// Comparison / logical.
	OpEq
	OpLt
	OpLe
	OpGt
	OpGe
	OpNot

	// Control flow.
	OpJump        // i16
	OpJumpIfFalse // i16
	OpJumpIfTrue  // i16
	OpLoop        // i16, backward
	OpTryBegin    // u16 handler offset
	OpTryEnd

	// Calls / construction.
	OpCall          // u16 func index, u8 argc
	OpCallMethod    // u16 func index, u8 argc
	OpCallVirtual   // u16 func index, u8 argc
	OpCallInterface // u16 interface type index, u16 slot, u8 argc
	OpNew           // u16 type index, u8 argc
	OpNewFactory    // u16 type index, u8 argc
	OpCallFuncPtr   // u8 argc

	// Object lifetime.
	OpAddRef
	OpRelease
	OpHandleOf
	OpValueToHandle
	OpHandleToConst
	OpDerivedToBase   // u16 base type index
	OpClassToInterface // u16 interface type index
	OpInstanceOf       // u16 type index
	OpCast             // u16 type index

	// List initialization.
	OpInitListBegin // u16 type index
	OpInitListEnd

	// Stack manipulation.
	OpDup
	OpPop
	OpPopN // u8 count
	OpPick // u8 depth
	OpSwap

	// Returns.
	OpReturn
	OpReturnVoid

	// opConvBase marks the start of the primitive-pair conversion block;
	// every OpCode from here on is computed by convOpCode, not named.
	opConvBase
)

// primitiveConvNames lists every primitive name the registry pre-registers
// except void (see internal/registry.New), in the fixed order the conversion-opcode
// block indexes them by. bool participates (ToBool/FromBool-style
// conversions are common at AngelScript call boundaries), even though most
// bool<->numeric pairs are never actually emitted by the expression
// compiler — see convOpCode's doc comment.
var primitiveConvNames = []string{
	"bool",
	"int8", "int16", "int", "int64",
	"uint8", "uint16", "uint", "uint64",
	"float", "double",
}

func primitiveConvIndex(name string) (int, bool) {
	for i, n := range primitiveConvNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// convOpCode returns the single fixed, zero-operand opcode for a from->to
// primitive conversion. Rather than hand-naming the full N*N cross product
// of one opcode per primitive-pair conversion, the block is generated from
// primitiveConvNames — from and to each contribute an index into a flat
// opConvBase-relative table, so the opcode space still holds one distinct,
// argument-free instruction per ordered pair (the VM, were one plugged in,
// would never need to decode a type tag at runtime: the opcode alone says
// which conversion to run). from == to has a slot as well; compileCast
// looks the pair up and emits the opcode only when the two names differ.
func convOpCode(from, to string) (OpCode, bool) {
	fi, ok := primitiveConvIndex(from)
	if !ok {
		return 0, false
	}
	ti, ok := primitiveConvIndex(to)
	if !ok {
		return 0, false
	}
	n := len(primitiveConvNames)
	return opConvBase + OpCode(fi*n+ti), true
}

func convOpCodeName(op OpCode) string {
	idx := int(op - opConvBase)
	n := len(primitiveConvNames)
	if idx < 0 || idx >= n*n {
		return ""
	}
	from, to := primitiveConvNames[idx/n], primitiveConvNames[idx%n]
	return "CONVERT_" + from + "_TO_" + to
}

// maxOpCode is one past the last valid conversion opcode; OpCode values
// past this are invalid.
var maxOpCode = opConvBase + OpCode(len(primitiveConvNames)*len(primitiveConvNames))

// opNames names every fixed (non-conversion) opcode for disassembly.
var opNames = [...]string{
	OpPushNull: "PUSH_NULL", OpPushTrue: "PUSH_TRUE", OpPushFalse: "PUSH_FALSE",
	OpPushZero: "PUSH_ZERO", OpPushOne: "PUSH_ONE",
	OpConstant: "CONSTANT", OpConstantWide: "CONSTANT_WIDE",
	OpGetLocal: "GET_LOCAL", OpSetLocal: "SET_LOCAL",
	OpGetLocalWide: "GET_LOCAL_WIDE", OpSetLocalWide: "SET_LOCAL_WIDE",
	OpGetGlobal: "GET_GLOBAL", OpSetGlobal: "SET_GLOBAL",
	OpGetField: "GET_FIELD", OpSetField: "SET_FIELD", OpGetThis: "GET_THIS",
	OpAdd: "ADD", OpSub: "SUB", OpMul: "MUL", OpDiv: "DIV", OpMod: "MOD",
	OpNeg: "NEG", OpPow: "POW",
	OpBitAnd: "BIT_AND", OpBitOr: "BIT_OR", OpBitXor: "BIT_XOR", OpBitNot: "BIT_NOT",
	OpShl: "SHL", OpShr: "SHR", OpUshr: "USHR",
	OpEq: "EQ", OpLt: "LT", OpLe: "LE", OpGt: "GT", OpGe: "GE", OpNot: "NOT",
	OpJump: "JUMP", OpJumpIfFalse: "JUMP_IF_FALSE", OpJumpIfTrue: "JUMP_IF_TRUE",
	OpLoop: "LOOP", OpTryBegin: "TRY_BEGIN", OpTryEnd: "TRY_END",
	OpCall: "CALL", OpCallMethod: "CALL_METHOD", OpCallVirtual: "CALL_VIRTUAL",
	OpCallInterface: "CALL_INTERFACE", OpNew: "NEW", OpNewFactory: "NEW_FACTORY",
	OpCallFuncPtr: "CALL_FUNC_PTR",
	OpAddRef: "ADD_REF", OpRelease: "RELEASE", OpHandleOf: "HANDLE_OF",
	OpValueToHandle: "VALUE_TO_HANDLE", OpHandleToConst: "HANDLE_TO_CONST",
	OpDerivedToBase: "DERIVED_TO_BASE", OpClassToInterface: "CLASS_TO_INTERFACE",
	OpInstanceOf: "INSTANCE_OF", OpCast: "CAST",
	OpInitListBegin: "INIT_LIST_BEGIN", OpInitListEnd: "INIT_LIST_END",
	OpDup: "DUP", OpPop: "POP", OpPopN: "POP_N", OpPick: "PICK", OpSwap: "SWAP",
	OpReturn: "RETURN", OpReturnVoid: "RETURN_VOID",
}

// String renders op's mnemonic, falling back to the generated
// CONVERT_x_TO_y name for the conversion block.
func (op OpCode) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	if name := convOpCodeName(op); name != "" {
		return name
	}
	return "UNKNOWN"
}

// operandWidths lists the byte width of each operand OpCode op takes, in
// encoding order. A jump offset's width (2) is the same whether the value
// is interpreted signed (Jump/Loop) or as a plain index (Constant's u16
// form); the disassembler and the return-path/line-map bookkeeping only
// need the byte count, not the signedness.
func (op OpCode) operandWidths() []int {
	switch op {
	case OpConstant, OpGetLocal, OpSetLocal, OpCallFuncPtr, OpPopN, OpPick:
		return []int{1}
	case OpConstantWide, OpGetLocalWide, OpSetLocalWide, OpGetGlobal, OpSetGlobal,
		OpGetField, OpSetField, OpJump, OpJumpIfFalse, OpJumpIfTrue, OpLoop,
		OpTryBegin, OpDerivedToBase, OpClassToInterface, OpInstanceOf, OpCast,
		OpInitListBegin:
		return []int{2}
	case OpCall, OpCallMethod, OpCallVirtual, OpNew, OpNewFactory:
		return []int{2, 1}
	case OpCallInterface:
		return []int{2, 2, 1}
	default:
		if op >= opConvBase && op < maxOpCode {
			return nil
		}
		return nil
	}
}

// Len returns the total encoded length of op (1 opcode byte plus its
// operand bytes).
func (op OpCode) Len() int {
	n := 1
	for _, w := range op.operandWidths() {
		n += w
	}
	return n
}
