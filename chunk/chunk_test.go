package chunk

import (
	"testing"

	"ember/value"

	"github.com/stretchr/testify/require"
)

func TestWriteKeepsCodeAndLinesParallel(t *testing.T) {
	var c Chunk
	c.WriteOp(OP_NIL, 1)
	c.WriteOp(OP_RETURN, 1)
	require.Equal(t, len(c.Code), len(c.Lines))
	require.Equal(t, []byte{byte(OP_NIL), byte(OP_RETURN)}, c.Code)
}

func TestWriteConstantEmitsIndexByte(t *testing.T) {
	var c Chunk
	idx, err := c.AddConstant(value.Number(7))
	require.NoError(t, err)
	c.WriteConstant(idx, 3)
	require.Equal(t, []byte{byte(OP_CONSTANT), idx}, c.Code)
	require.Equal(t, []int{3, 3}, c.Lines)
}

func TestDisassembleInstructionAdvancesOffsetByOperandWidth(t *testing.T) {
	var c Chunk
	idx, _ := c.AddConstant(value.Number(5))
	c.WriteConstant(idx, 1)
	c.WriteOp(OP_RETURN, 1)

	_, next := c.DisassembleInstruction(0)
	require.Equal(t, 2, next, "OP_CONSTANT is a 2-byte instruction")

	_, next = c.DisassembleInstruction(next)
	require.Equal(t, 3, next, "OP_RETURN is a 1-byte instruction")
}

func TestDisassembleIsIdempotent(t *testing.T) {
	var c Chunk
	idx, _ := c.AddConstant(value.Number(5))
	c.WriteConstant(idx, 1)
	c.WriteOp(OP_RETURN, 1)

	first := c.Disassemble("test")
	second := c.Disassemble("test")
	require.Equal(t, first, second)
}

func TestDisassembleCompactsRepeatedLines(t *testing.T) {
	var c Chunk
	c.WriteOp(OP_NIL, 1)
	c.WriteOp(OP_RETURN, 1)

	listing := c.Disassemble("test")
	require.Contains(t, listing, "   | ")
}

func TestEmptyChunkDisassemblesToJustTheBanner(t *testing.T) {
	var c Chunk
	require.Equal(t, "== empty ==\n", c.Disassemble("empty"))
}

func TestAddConstantPastCapacitySubstitutesIndexZero(t *testing.T) {
	var c Chunk
	for i := 0; i < 256; i++ {
		_, err := c.AddConstant(value.Number(float64(i)))
		require.NoError(t, err)
	}
	idx, err := c.AddConstant(value.Number(999))
	require.Error(t, err)
	require.Equal(t, byte(0), idx)
	require.Equal(t, value.Number(0), c.Constants.Get(0))
}
