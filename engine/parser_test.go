package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperandTypes(t *testing.T) {
	instrs, errs, _ := Parse("IMM R1 5\nSTORE #3 R1\nOUT %2 R1\n")
	require.Empty(t, errs)
	require.Len(t, instrs, 3)

	assert.Equal(t, Register, instrs[0].A.Kind)
	assert.Equal(t, Immediate, instrs[0].B.Kind)
	assert.EqualValues(t, 5, instrs[0].B.Data)

	assert.Equal(t, MemoryAddress, instrs[1].A.Kind)
	assert.EqualValues(t, 3, instrs[1].A.Data)

	assert.Equal(t, Port, instrs[2].A.Kind)
	assert.EqualValues(t, 2, instrs[2].A.Data)
}

func TestParseIsCaseInsensitive(t *testing.T) {
	upper, errsU, warnsU := Parse("IMM R1 5\nADD R2 R1 R1\n")
	lower, errsL, warnsL := Parse("imm r1 5\nadd r2 r1 r1\n")
	require.Empty(t, errsU)
	require.Empty(t, errsL)
	assert.Equal(t, lower, upper)
	assert.Equal(t, warnsL, warnsU)
}

func TestParseLabelResolution(t *testing.T) {
	instrs, errs, _ := Parse("LOOP:\n\tIMM R1 1\n\tJMP LOOP\n")
	require.Empty(t, errs)
	require.Len(t, instrs, 2)
	assert.Equal(t, Immediate, instrs[1].A.Kind)
	assert.EqualValues(t, 0, instrs[1].A.Data, "LOOP should resolve to address 0")
}

func TestParseLabelOnSameLineAsInstruction(t *testing.T) {
	instrs, errs, _ := Parse("NOOP\nTARGET: IMM R1 7\nJMP TARGET\n")
	require.Empty(t, errs)
	require.Len(t, instrs, 3)
	assert.EqualValues(t, 1, instrs[1].Address)
	assert.EqualValues(t, 1, instrs[2].A.Data)
}

func TestParsePrefixes(t *testing.T) {
	instrs, errs, _ := Parse("SADD R1 R2 R3\nUADD R1 R2\nXADD R2\n")
	require.Empty(t, errs)
	require.Len(t, instrs, 3)
	assert.Equal(t, ArgS, instrs[0].ArgMode)
	assert.Equal(t, ArgU, instrs[1].ArgMode)
	assert.Equal(t, ArgX, instrs[2].ArgMode)
	// XADD only needs operand B.
	assert.Equal(t, Immediate, instrs[2].A.Kind)
	assert.EqualValues(t, 0, instrs[2].A.Data)
}

func TestParseUnknownOpcodeError(t *testing.T) {
	_, errs, _ := Parse("FROB R1 R2\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Line 1")
	assert.Contains(t, errs[0], "Invalid operation")
}

func TestParseUnknownLabelError(t *testing.T) {
	_, errs, _ := Parse("JMP NOWHERE\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Invalid value or unknown label")
}

func TestParseBinaryLiteral(t *testing.T) {
	instrs, errs, _ := Parse("IMM R1 B1010\n")
	require.Empty(t, errs)
	require.Len(t, instrs, 1)
	assert.EqualValues(t, 10, instrs[0].B.Data)
}

func TestParseUnderscoreDigitGrouping(t *testing.T) {
	instrs, errs, _ := Parse("IMM R1 1_000\n")
	require.Empty(t, errs)
	require.Len(t, instrs, 1)
	assert.EqualValues(t, 1000, instrs[0].B.Data)
}

func TestParseWarningWriteToR0(t *testing.T) {
	_, _, warns := Parse("IMM R0 7\n")
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "Register 0")
}

func TestParseWarningXPrefixNeverWritesR0(t *testing.T) {
	// X-prefixed arithmetic only consumes operand B (accumulator supplies
	// A), so R0 can never appear as a write target and no warning fires.
	_, _, warns := Parse("XADD R1\n")
	assert.Empty(t, warns)

	// The S-prefixed (or unprefixed) form does write operand A, so R0 as
	// operand A there should warn.
	_, _, warnsS := Parse("SADD R0 R1 R2\n")
	require.Len(t, warnsS, 1)
	assert.Contains(t, warnsS[0], "Register 0")
}

func TestParseWarningOutOfRangeImmediate(t *testing.T) {
	_, _, warns := Parse("IMM R1 256\n")
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "out of 8-bit range")
}

func TestParseWarningControlFlowImmediateExempt(t *testing.T) {
	// JMP's operand A is an address, not a byte, so 256 should not warn.
	_, _, warns := Parse("JMP 256\n")
	assert.Empty(t, warns)
}

func TestParseWarningPortOutOfRange(t *testing.T) {
	// OUT also reads R1 right after IMM writes it, so the static port
	// warning is followed by a RAW hazard warning.
	_, _, warns := Parse("IMM R1 0\nOUT %9 R1\n")
	require.Len(t, warns, 2)
	assert.Contains(t, warns[0], "Port %9")
}

func TestParseWarningRAMOutOfRange(t *testing.T) {
	// STORE also reads R1 right after IMM writes it, so the static RAM
	// warning is followed by a RAW hazard warning.
	_, _, warns := Parse("IMM R1 0\nSTORE #20 R1\n")
	require.Len(t, warns, 2)
	assert.Contains(t, warns[0], "Memory address #20")
}

func TestParseRAWHazard(t *testing.T) {
	_, _, warns := Parse("IMM R1 5\nADD R2 R1 R1\n")
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "RAW Hazard")
	assert.Contains(t, warns[0], "R1")
}

func TestParseRAWHazardNotRaisedForXWrite(t *testing.T) {
	// X-prefixed arithmetic never writes a register, so it cannot be the
	// source of a RAW hazard for the instruction that follows it.
	_, _, warns := Parse("XADD R1\nMOV R2 R1\n")
	for _, w := range warns {
		assert.NotContains(t, w, "RAW Hazard")
	}
}

func TestParseNoopInsertionClearsHazard(t *testing.T) {
	_, _, warns := Parse("IMM R1 5\nNOOP\nADD R2 R1 R1\n")
	for _, w := range warns {
		assert.NotContains(t, w, "RAW Hazard")
	}
}

func TestParseIdempotent(t *testing.T) {
	src := "IMM R1 5\nNOOP\nIMM R2 10\nADD R3 R1 R2\n"
	i1, e1, w1 := Parse(src)
	i2, e2, w2 := Parse(src)
	assert.Equal(t, i1, i2)
	assert.Equal(t, e1, e2)
	assert.Equal(t, w1, w2)
}
