package vm

import (
	"errors"

	"github.com/aryanA101a/lulu/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrInvalidOpcode = errors.New(f("invalid opcode"))
	ErrInvalidTrap   = errors.New(f("invalid trap vector"))
	ErrInput         = errors.New(f("input device"))
	ErrHalted        = errors.New(f("machine halted"))

	// Image errors
	ErrImageTooShort  = errors.New(f("image too short"))
	ErrImageOddLength = errors.New(f("image has odd length"))
	ErrImageTooLarge  = errors.New(f("image does not fit in memory"))
)

// Fault stops the machine. PC is the address the instruction was fetched from.
type Fault struct {
	PC          Word
	Instruction Word
	Err         error
}

func (err *Fault) Error() string {
	return f("0x%04x: %v (instruction 0x%04x %v)", err.PC, err.Err, err.Instruction, Disassemble(err.Instruction))
}

func (err *Fault) Unwrap() error {
	return err.Err
}
