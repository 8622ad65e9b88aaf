package chunk

import (
	"fmt"
	"strings"
)

// Disassemble produces a complete human-readable listing of c, prefixed by
// a "== name ==" banner, one line per instruction.
func (c *Chunk) Disassemble(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	offset := 0
	for offset < len(c.Code) {
		var line string
		line, offset = c.DisassembleInstruction(offset)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// DisassembleInstruction renders the single instruction at offset and
// returns the offset of the instruction that follows it: offset+1 for
// zero-operand opcodes, offset+2 for OP_CONSTANT.
//
// The line column prints the source line right-aligned in a 4-character field,
// or "   |" when it repeats the previous byte's line - this is purely a
// display compaction, the underlying Lines table still has one entry per
// byte.
func (c *Chunk) DisassembleInstruction(offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", c.Lines[offset])
	}

	op := OpCode(c.Code[offset])
	if op == OP_CONSTANT {
		idx := c.Code[offset+1]
		value := c.Constants.Get(idx)
		fmt.Fprintf(&b, "%-16s %4d '%s'", op, idx, value.String())
		return b.String(), offset + 2
	}

	fmt.Fprintf(&b, "%-16s", op)
	return b.String(), offset + 1
}
