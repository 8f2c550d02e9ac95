package bytecode

import (
	"fmt"
	"math"
	"strings"
)

// Disassemble renders chunk's instruction stream as one line per
// instruction: byte offset, source line (blank when unchanged from the
// previous instruction — a line number is only repeated when it actually
// changes), mnemonic, and decoded operands.
func Disassemble(chunk *Chunk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", chunk.Name)
	lastLine := -1
	offset := 0
	for offset < len(chunk.Code) {
		op := OpCode(chunk.Code[offset])
		widths := op.operandWidths()
		line := chunk.LineAt(offset)
		if line == lastLine {
			fmt.Fprintf(&b, "%04d    | %-20s", offset, op.String())
		} else {
			fmt.Fprintf(&b, "%04d %5d %-20s", offset, line, op.String())
			lastLine = line
		}
		pos := offset + 1
		for _, w := range widths {
			v := readOperand(chunk.Code, pos, w)
			fmt.Fprintf(&b, " %d", v)
			pos += w
		}
		if op == OpConstant || op == OpConstantWide {
			idx := readOperand(chunk.Code, offset+1, widths[0])
			fmt.Fprintf(&b, "  ; %s", formatConstant(chunk.Constants.Get(int(idx))))
		}
		b.WriteByte('\n')
		offset += op.Len()
	}
	return b.String()
}

func readOperand(code []byte, pos, width int) uint32 {
	switch width {
	case 1:
		return uint32(code[pos])
	case 2:
		return uint32(code[pos])<<8 | uint32(code[pos+1])
	default:
		return 0
	}
}

func formatConstant(c Constant) string {
	switch c.Kind {
	case ConstInt64:
		return fmt.Sprintf("%d", c.Int)
	case ConstFloat64:
		return fmt.Sprintf("%g", math.Float64frombits(c.Bits))
	case ConstString:
		return fmt.Sprintf("%q", c.Str)
	default:
		return "?"
	}
}
