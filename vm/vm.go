package vm

import (
	"fmt"
	"log"
)

// VM is one LC-3 machine. All of its state lives here, so any number of
// machines can run side by side.
type VM struct {
	memory *Memory
	cpu    cpu
}

// NewVM returns a machine ready to run from UserSpaceStart with the
// condition flags set to Z. A nil console gives a machine with no input.
func NewVM(console Console) *VM {
	if console == nil {
		console = NewBufferConsole("")
	}
	mem := newMemory(console)
	return &VM{
		memory: mem,
		cpu:    newCpu(mem, console),
	}
}

// SetTrace logs every executed instruction to logger. nil disables tracing.
func (vm *VM) SetTrace(logger *log.Logger) {
	vm.cpu.trace = logger
}

// Load copies words into memory starting at origin.
func (vm *VM) Load(origin Word, words []Word) {
	vm.memory.Load(origin, words)
}

func (vm *VM) LoadImage(img Image) {
	vm.Load(img.Origin, img.Words)
}

// Step executes a single instruction. It returns ErrHalted once the machine
// has stopped, and a *Fault when the instruction cannot be executed.
func (vm *VM) Step() error {
	return vm.cpu.step()
}

// Run executes instructions until HALT or a fault. A clean HALT returns nil.
func (vm *VM) Run() error {
	for vm.cpu.running {
		if err := vm.cpu.step(); err != nil {
			return err
		}
	}
	return vm.cpu.fault
}

// Stop ends Run after the current instruction.
func (vm *VM) Stop() {
	vm.cpu.stop()
}

func (vm *VM) Running() bool {
	return vm.cpu.running
}

// Fault returns the error that stopped the machine, if any.
func (vm *VM) Fault() error {
	return vm.cpu.fault
}

// Instructions returns how many instructions completed.
func (vm *VM) Instructions() uint64 {
	return vm.cpu.count
}

func (vm *VM) Registers() Registers {
	return vm.cpu.registers
}

// SetRegisters replaces the register file, for tests and debuggers.
func (vm *VM) SetRegisters(registers Registers) {
	vm.cpu.registers = registers
}

func (vm *VM) Memory() *Memory {
	return vm.memory
}

// DumpRegisters formats the register file on one line.
func (vm *VM) DumpRegisters() string {
	r := vm.cpu.registers
	return fmt.Sprintf("R0=%04x R1=%04x R2=%04x R3=%04x R4=%04x R5=%04x R6=%04x R7=%04x PC=%04x COND=%v",
		r.R[0], r.R[1], r.R[2], r.R[3], r.R[4], r.R[5], r.R[6], r.R[7], r.PC, flagName(r.Cond))
}
