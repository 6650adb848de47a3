package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse is the two-pass assembler's public entry point: given a source
// string it returns the typed instruction stream together with the fatal
// errors and advisory warnings collected along the way. Parsing never
// panics; malformed lines contribute an error and are simply skipped.
func Parse(source string) (instructions []Instruction, errs, warnings []string) {
	lines := strings.Split(source, "\n")

	labels := scanLabels(lines)

	addr := int32(0)
	for i, line := range lines {
		sourceLine := int32(i + 1)

		instr, err := parseLine(line, addr, sourceLine, labels)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Line %d: %s", sourceLine, err))
			continue
		}
		if instr == nil {
			continue
		}

		warnings = append(warnings, checkStaticWarnings(*instr, sourceLine)...)
		if len(instructions) > 0 {
			if reg, ok := writeRegister(instructions[len(instructions)-1]); ok {
				if containsReg(readRegisters(*instr), reg) {
					warnings = append(warnings, fmt.Sprintf(
						"Line %d: RAW Hazard. Reading R%d immediately after writing may yield old value due to pipeline latency. Insert a NOOP.",
						sourceLine, reg))
				}
			}
		}

		instructions = append(instructions, *instr)
		addr++
	}

	return instructions, errs, warnings
}

// scanLabels is pass 0: it walks every line, strips comments, and records
// each label's address as the address the following pass will give to the
// next emitted instruction. Address bookkeeping here must mirror pass 1
// exactly (increment once per non-empty, non-label-only line) or labels
// will resolve to the wrong address.
func scanLabels(lines []string) map[string]int32 {
	labels := make(map[string]int32)
	addr := int32(0)

	for _, line := range lines {
		clean := strings.ToUpper(strings.TrimSpace(stripComment(line)))
		if idx := strings.IndexByte(clean, ':'); idx >= 0 {
			label := clean[:idx]
			if !strings.ContainsAny(label, " \t") && label != "" {
				labels[label] = addr
			}
			after := strings.TrimSpace(clean[idx+1:])
			if after != "" {
				addr++
			}
		} else if clean != "" {
			addr++
		}
	}

	return labels
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// parseLine parses one source line into at most one Instruction. A blank,
// comment-only, or label-only line returns (nil, nil).
func parseLine(line string, address, sourceLine int32, labels map[string]int32) (*Instruction, error) {
	clean := strings.ToUpper(strings.TrimSpace(stripComment(line)))
	if idx := strings.IndexByte(clean, ':'); idx >= 0 {
		clean = strings.TrimSpace(clean[idx+1:])
	}
	if clean == "" {
		return nil, nil
	}

	tokens := strings.Fields(clean)
	if len(tokens) == 0 {
		return nil, nil
	}

	op, mode, err := parseOperation(tokens[0])
	if err != nil {
		return nil, err
	}

	needA, needB := neededOperands(op, mode)

	idx := 1
	a := immediate(0)
	b := immediate(0)
	if needA && idx < len(tokens) {
		a, err = parseOperand(tokens[idx], labels)
		if err != nil {
			return nil, err
		}
		idx++
	}
	if needB && idx < len(tokens) {
		b, err = parseOperand(tokens[idx], labels)
		if err != nil {
			return nil, err
		}
		idx++
	}

	return &Instruction{
		Operation:  op,
		ArgMode:    mode,
		A:          a,
		B:          b,
		Address:    address,
		SourceLine: sourceLine,
	}, nil
}

// parseOperation tries the whole token as a mnemonic first, then treats the
// first character as an S/U/X prefix and retries with the remainder.
func parseOperation(tok string) (Opcode, ArgMode, error) {
	if op, ok := mnemonicToOpcode[tok]; ok {
		return op, ArgNone, nil
	}

	if len(tok) < 2 {
		return 0, 0, fmt.Errorf("Invalid operation: %s", tok)
	}

	prefix, rest := tok[0], tok[1:]
	if op, ok := mnemonicToOpcode[rest]; ok {
		switch prefix {
		case 'S':
			return op, ArgS, nil
		case 'U':
			return op, ArgU, nil
		case 'X':
			return op, ArgX, nil
		}
	}

	return 0, 0, fmt.Errorf("Invalid operation: %s", tok)
}

// neededOperands returns whether operand A and operand B are required,
// per the opcode/arg-mode table in §4.1.
func neededOperands(op Opcode, mode ArgMode) (needA, needB bool) {
	switch op {
	case NOOP, RET:
		return false, false
	case IMM, MOV, SHR, NOT, OUT, STORE, LOAD, ROUT:
		return true, true
	case ADD, ADDC, SUB, OR, XOR, AND:
		if mode == ArgX {
			return false, true
		}
		return true, true
	case JMP, BIE, BIG, BIL, BIO, INP, PUSH, POP, CALL:
		return true, false
	default:
		return false, false
	}
}

// parseOperand types one operand token by its first character, per §4.1.
func parseOperand(tok string, labels map[string]int32) (Operand, error) {
	if tok == "" {
		return Operand{}, fmt.Errorf("Empty operand")
	}

	first := tok[0]
	switch first {
	case 'R', '$':
		val, err := parseNumber(tok[1:])
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: Register, Data: val}, nil
	case '#', '@':
		val, err := parseNumber(tok[1:])
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: MemoryAddress, Data: val}, nil
	case '%':
		val, err := parseNumber(tok[1:])
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: Port, Data: val}, nil
	}

	if val, err := parseNumber(tok); err == nil {
		return Operand{Kind: Immediate, Data: val}, nil
	}
	if addr, ok := labels[tok]; ok {
		return Operand{Kind: Immediate, Data: addr}, nil
	}
	return Operand{}, fmt.Errorf("Invalid value or unknown label: %s", tok)
}

// parseNumber parses a decimal or (with a leading B) binary integer
// literal, after stripping digit-grouping underscores.
func parseNumber(tok string) (int32, error) {
	clean := strings.ReplaceAll(tok, "_", "")
	if clean == "" {
		return 0, fmt.Errorf("Invalid number: %s", tok)
	}

	if strings.HasPrefix(clean, "B") {
		v, err := strconv.ParseInt(clean[1:], 2, 32)
		if err != nil {
			return 0, fmt.Errorf("Invalid binary: %s", tok)
		}
		return int32(v), nil
	}

	v, err := strconv.ParseInt(clean, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("Invalid number: %s", tok)
	}
	return int32(v), nil
}

// controlFlowOpcode is true for the opcodes whose operand A is an address,
// not a byte, and so is exempt from the 8-bit-range warning.
func controlFlowOpcode(op Opcode) bool {
	switch op {
	case JMP, CALL, BIE, BIG, BIL, BIO:
		return true
	default:
		return false
	}
}

// checkStaticWarnings implements the five per-instruction static warnings
// from §4.1.
func checkStaticWarnings(instr Instruction, line int32) []string {
	var warnings []string

	if writesOperandA(instr) && instr.A.Kind == Register && instr.A.Data == 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Line %d: Writing to Register 0 (Zero Register) effectively does nothing.", line))
	}

	if instr.A.Kind == Immediate && (instr.A.Data < 0 || instr.A.Data > 255) && !controlFlowOpcode(instr.Operation) {
		warnings = append(warnings, fmt.Sprintf(
			"Line %d: Immediate value %d is out of 8-bit range (0-255). It will be wrapped.", line, instr.A.Data))
	}
	if instr.B.Kind == Immediate && (instr.B.Data < 0 || instr.B.Data > 255) {
		warnings = append(warnings, fmt.Sprintf(
			"Line %d: Immediate value %d is out of 8-bit range (0-255). It will be wrapped.", line, instr.B.Data))
	}

	if instr.Operation == OUT && instr.A.Kind == Port && (instr.A.Data < 0 || instr.A.Data > 7) {
		warnings = append(warnings, fmt.Sprintf("Line %d: Port %%%d is out of range (0-7).", line, instr.A.Data))
	}

	if instr.Operation == STORE && instr.A.Kind == MemoryAddress && (instr.A.Data < 0 || instr.A.Data > 15) {
		warnings = append(warnings, fmt.Sprintf("Line %d: Memory address #%d is out of RAM range (0-15).", line, instr.A.Data))
	}
	if instr.Operation == LOAD && instr.B.Kind == MemoryAddress && (instr.B.Data < 0 || instr.B.Data > 15) {
		warnings = append(warnings, fmt.Sprintf("Line %d: Memory address #%d is out of RAM range (0-15).", line, instr.B.Data))
	}

	return warnings
}

// writesOperandA is true for the opcodes that write operand A as a
// register, accounting for the X prefix on arithmetic/logic opcodes (which
// writes only the accumulator).
func writesOperandA(instr Instruction) bool {
	switch instr.Operation {
	case IMM, MOV, LOAD, POP, INP, SHR, NOT:
		return true
	case ADD, ADDC, SUB, OR, XOR, AND:
		return instr.ArgMode != ArgX
	default:
		return false
	}
}

// writeRegister returns the register index the instruction writes to
// operand A, and whether it writes a register at all. Used for RAW-hazard
// detection against the following instruction.
func writeRegister(instr Instruction) (int32, bool) {
	if instr.A.Kind != Register {
		return 0, false
	}
	if writesOperandA(instr) {
		return instr.A.Data, true
	}
	return 0, false
}

// readRegisters returns every register operand the instruction consumes,
// per the read table in §4.1.
func readRegisters(instr Instruction) []int32 {
	var regs []int32

	if instr.A.Kind == Register {
		switch instr.Operation {
		case ADD, ADDC, SUB, OR, XOR, AND:
			if instr.ArgMode != ArgU && instr.ArgMode != ArgX {
				regs = append(regs, instr.A.Data)
			}
		case PUSH, ROUT:
			regs = append(regs, instr.A.Data)
		}
	}

	if instr.B.Kind == Register {
		switch instr.Operation {
		case MOV, ADD, ADDC, SUB, AND, OR, XOR, SHR, NOT, OUT, ROUT, STORE:
			regs = append(regs, instr.B.Data)
		}
	}

	return regs
}

func containsReg(regs []int32, want int32) bool {
	for _, r := range regs {
		if r == want {
			return true
		}
	}
	return false
}
