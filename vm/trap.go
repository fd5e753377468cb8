package vm

import "fmt"

const (
	TRAP_GETC  Word = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TRAP_OUT   Word = 0x21 /* output a character */
	TRAP_PUTS  Word = 0x22 /* output a word string */
	TRAP_IN    Word = 0x23 /* get character from keyboard, echoed onto the terminal */
	TRAP_PUTSP Word = 0x24 /* output a byte string */
	TRAP_HALT  Word = 0x25 /* halt the program */
)

const inPrompt = "Enter a character: "

type trapRoutine func(cpu *cpu) error

var traps = map[Word]trapRoutine{
	TRAP_GETC:  (*cpu).getc,
	TRAP_OUT:   (*cpu).out,
	TRAP_PUTS:  (*cpu).puts,
	TRAP_IN:    (*cpu).in,
	TRAP_PUTSP: (*cpu).putsp,
	TRAP_HALT:  (*cpu).halt,
}

func (cpu *cpu) trap(instruction Word) error {
	vector := instruction & 0xFF
	routine, ok := traps[vector]
	if !ok {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidTrap, vector)
	}

	cpu.registers.R[R7] = cpu.registers.PC
	return routine(cpu)
}

func (cpu *cpu) getc() error {
	c, err := cpu.console.ReadChar(false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	cpu.registers.set(R0, Word(c))
	return nil
}

func (cpu *cpu) out() error {
	if err := cpu.console.WriteChar(byte(cpu.registers.R[R0])); err != nil {
		return err
	}
	return cpu.console.Flush()
}

func (cpu *cpu) puts() error {
	for addr := cpu.registers.R[R0]; ; addr++ {
		c := cpu.memory.Read(addr)
		if c == 0 {
			break
		}
		if err := cpu.console.WriteChar(byte(c)); err != nil {
			return err
		}
	}
	return cpu.console.Flush()
}

func (cpu *cpu) in() error {
	if err := cpu.writeString(inPrompt); err != nil {
		return err
	}
	c, err := cpu.console.ReadChar(true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	cpu.registers.set(R0, Word(c))
	return cpu.console.Flush()
}

// putsp writes two characters per word, low byte first.
func (cpu *cpu) putsp() error {
	for addr := cpu.registers.R[R0]; ; addr++ {
		w := cpu.memory.Read(addr)
		if w == 0 {
			break
		}
		if err := cpu.console.WriteChar(byte(w)); err != nil {
			return err
		}
		if hi := byte(w >> 8); hi != 0 {
			if err := cpu.console.WriteChar(hi); err != nil {
				return err
			}
		}
	}
	return cpu.console.Flush()
}

func (cpu *cpu) halt() error {
	cpu.stop()
	if err := cpu.writeString("HALT\n"); err != nil {
		return err
	}
	return cpu.console.Flush()
}

func (cpu *cpu) writeString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := cpu.console.WriteChar(s[i]); err != nil {
			return err
		}
	}
	return nil
}
