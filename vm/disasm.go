package vm

import "fmt"

var mnemonics = [16]string{
	OP_BR:   "BR",
	OP_ADD:  "ADD",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_JSR:  "JSR",
	OP_AND:  "AND",
	OP_LDR:  "LDR",
	OP_STR:  "STR",
	OP_RTI:  "RTI",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_STI:  "STI",
	OP_JMP:  "JMP",
	OP_RES:  "RES",
	OP_LEA:  "LEA",
	OP_TRAP: "TRAP",
}

var trapNames = map[Word]string{
	TRAP_GETC:  "GETC",
	TRAP_OUT:   "OUT",
	TRAP_PUTS:  "PUTS",
	TRAP_IN:    "IN",
	TRAP_PUTSP: "PUTSP",
	TRAP_HALT:  "HALT",
}

// Disassemble renders one instruction in LC-3 assembly syntax. Offsets are
// signed decimals relative to the incremented PC.
func Disassemble(instruction Word) string {
	op := instruction >> 12
	name := mnemonics[op]

	switch op {
	case OP_ADD, OP_AND:
		if immFlag(instruction) {
			return fmt.Sprintf("%v R%d, R%d, #%d", name, dr(instruction), sr1(instruction), int16(imm5(instruction)))
		}
		return fmt.Sprintf("%v R%d, R%d, R%d", name, dr(instruction), sr1(instruction), sr2(instruction))
	case OP_NOT:
		return fmt.Sprintf("NOT R%d, R%d", dr(instruction), sr1(instruction))
	case OP_BR:
		nzp := dr(instruction)
		if nzp == 0 {
			return "NOP"
		}
		cond := ""
		if nzp&FLAG_NEG != 0 {
			cond += "n"
		}
		if nzp&FLAG_ZRO != 0 {
			cond += "z"
		}
		if nzp&FLAG_POS != 0 {
			cond += "p"
		}
		return fmt.Sprintf("BR%v #%d", cond, int16(offset9(instruction)))
	case OP_JMP:
		if sr1(instruction) == R7 {
			return "RET"
		}
		return fmt.Sprintf("JMP R%d", sr1(instruction))
	case OP_JSR:
		if (instruction>>11)&0b1 == 1 {
			return fmt.Sprintf("JSR #%d", int16(offset11(instruction)))
		}
		return fmt.Sprintf("JSRR R%d", sr1(instruction))
	case OP_LD, OP_LDI, OP_LEA, OP_ST, OP_STI:
		return fmt.Sprintf("%v R%d, #%d", name, dr(instruction), int16(offset9(instruction)))
	case OP_LDR, OP_STR:
		return fmt.Sprintf("%v R%d, R%d, #%d", name, dr(instruction), sr1(instruction), int16(offset6(instruction)))
	case OP_TRAP:
		vector := instruction & 0xFF
		if trapName, ok := trapNames[vector]; ok {
			return trapName
		}
		return fmt.Sprintf("TRAP x%02X", vector)
	}
	return name
}
