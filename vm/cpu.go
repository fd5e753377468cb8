package vm

import (
	"fmt"
	"log"
)

// opcodes
const (
	OP_BR Word = iota
	OP_ADD
	OP_LD
	OP_ST
	OP_JSR
	OP_AND
	OP_LDR
	OP_STR
	OP_RTI
	OP_NOT
	OP_LDI
	OP_STI
	OP_JMP
	OP_RES
	OP_LEA
	OP_TRAP
)

type opHandler func(cpu *cpu, instruction Word) error

// opcodes is indexed by the top four bits of the instruction, so every
// instruction word has a handler.
var opcodes = [16]opHandler{
	OP_BR:   (*cpu).br,
	OP_ADD:  (*cpu).add,
	OP_LD:   (*cpu).ld,
	OP_ST:   (*cpu).st,
	OP_JSR:  (*cpu).jsr,
	OP_AND:  (*cpu).and,
	OP_LDR:  (*cpu).ldr,
	OP_STR:  (*cpu).str,
	OP_RTI:  (*cpu).reserved,
	OP_NOT:  (*cpu).not,
	OP_LDI:  (*cpu).ldi,
	OP_STI:  (*cpu).sti,
	OP_JMP:  (*cpu).jmp,
	OP_RES:  (*cpu).reserved,
	OP_LEA:  (*cpu).lea,
	OP_TRAP: (*cpu).trap,
}

type cpu struct {
	running   bool
	memory    *Memory
	registers Registers
	console   Console
	fault     error
	count     uint64
	trace     *log.Logger
}

func newCpu(memory *Memory, console Console) cpu {
	return cpu{
		running:   true,
		memory:    memory,
		registers: Registers{PC: UserSpaceStart, Cond: FLAG_ZRO},
		console:   console,
	}
}

func (cpu *cpu) stop() {
	cpu.running = false
}

// step fetches, decodes and executes one instruction.
func (cpu *cpu) step() error {
	if !cpu.running {
		return ErrHalted
	}

	pc := cpu.registers.PC
	instruction := cpu.memory.Read(pc)
	cpu.registers.PC++

	if cpu.trace != nil {
		cpu.trace.Printf("0x%04x %v", pc, Disassemble(instruction))
	}

	err := cpu.memory.takeErr()
	if err == nil {
		err = opcodes[instruction>>12](cpu, instruction)
	}
	if err == nil {
		err = cpu.memory.takeErr()
	}
	if err != nil {
		cpu.running = false
		cpu.fault = &Fault{PC: pc, Instruction: instruction, Err: err}
		return cpu.fault
	}

	cpu.count++
	return nil
}

// instruction fields
func dr(instruction Word) Word      { return (instruction >> 9) & 0b111 }
func sr1(instruction Word) Word     { return (instruction >> 6) & 0b111 }
func sr2(instruction Word) Word     { return instruction & 0b111 }
func immFlag(instruction Word) bool { return (instruction>>5)&0b1 == 1 }
func imm5(instruction Word) Word    { return sext(instruction&0x1F, 5) }
func offset6(instruction Word) Word { return sext(instruction&0x3F, 6) }
func offset9(instruction Word) Word { return sext(instruction&0x1FF, 9) }
func offset11(instruction Word) Word {
	return sext(instruction&0x7FF, 11)
}

// sext sign extends the low bitCount bits of x to a full word.
func sext(x, bitCount Word) Word {
	if ((x >> (bitCount - 1)) & 0b1) != 0 {
		x |= (0xFFFF << bitCount)
	}
	return x
}

func (cpu *cpu) operand2(instruction Word) Word {
	if immFlag(instruction) {
		return imm5(instruction)
	}
	return cpu.registers.R[sr2(instruction)]
}

func (cpu *cpu) add(instruction Word) error {
	cpu.registers.set(dr(instruction), cpu.registers.R[sr1(instruction)]+cpu.operand2(instruction))
	return nil
}

func (cpu *cpu) and(instruction Word) error {
	cpu.registers.set(dr(instruction), cpu.registers.R[sr1(instruction)]&cpu.operand2(instruction))
	return nil
}

func (cpu *cpu) not(instruction Word) error {
	cpu.registers.set(dr(instruction), ^cpu.registers.R[sr1(instruction)])
	return nil
}

func (cpu *cpu) br(instruction Word) error {
	nzp := dr(instruction)
	if nzp&cpu.registers.Cond != 0 {
		cpu.registers.PC += offset9(instruction)
	}
	return nil
}

// jmp also covers RET, which is JMP R7.
func (cpu *cpu) jmp(instruction Word) error {
	cpu.registers.PC = cpu.registers.R[sr1(instruction)]
	return nil
}

func (cpu *cpu) jsr(instruction Word) error {
	// read the base register before R7 is overwritten so JSRR R7 jumps to the old R7
	target := cpu.registers.R[sr1(instruction)]
	if (instruction>>11)&0b1 == 1 {
		target = cpu.registers.PC + offset11(instruction)
	}
	cpu.registers.R[R7] = cpu.registers.PC
	cpu.registers.PC = target
	return nil
}

func (cpu *cpu) ld(instruction Word) error {
	cpu.registers.set(dr(instruction), cpu.memory.Read(cpu.registers.PC+offset9(instruction)))
	return nil
}

func (cpu *cpu) ldi(instruction Word) error {
	addr := cpu.memory.Read(cpu.registers.PC + offset9(instruction))
	cpu.registers.set(dr(instruction), cpu.memory.Read(addr))
	return nil
}

func (cpu *cpu) ldr(instruction Word) error {
	cpu.registers.set(dr(instruction), cpu.memory.Read(cpu.registers.R[sr1(instruction)]+offset6(instruction)))
	return nil
}

func (cpu *cpu) lea(instruction Word) error {
	cpu.registers.set(dr(instruction), cpu.registers.PC+offset9(instruction))
	return nil
}

func (cpu *cpu) st(instruction Word) error {
	cpu.memory.Write(cpu.registers.PC+offset9(instruction), cpu.registers.R[dr(instruction)])
	return nil
}

func (cpu *cpu) sti(instruction Word) error {
	addr := cpu.memory.Read(cpu.registers.PC + offset9(instruction))
	cpu.memory.Write(addr, cpu.registers.R[dr(instruction)])
	return nil
}

func (cpu *cpu) str(instruction Word) error {
	cpu.memory.Write(cpu.registers.R[sr1(instruction)]+offset6(instruction), cpu.registers.R[dr(instruction)])
	return nil
}

// reserved handles RTI and RES, which this machine does not implement.
func (cpu *cpu) reserved(instruction Word) error {
	return fmt.Errorf("%w: %v", ErrInvalidOpcode, mnemonics[instruction>>12])
}
