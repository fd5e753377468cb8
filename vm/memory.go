package vm

import "fmt"

const MemorySize = 1 << 16
const (
	Trap_Vector_Table_Start    = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR Word = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR Word = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
)

const kbsrReady Word = 0x8000

// Memory is the full LC-3 address space. Addresses are 16 bits wide, so every
// access lands inside the array.
type Memory struct {
	cells    [MemorySize]Word
	keyboard Console
	err      error
}

func newMemory(keyboard Console) *Memory {
	return &Memory{keyboard: keyboard}
}

// Read returns the word at addr. The keyboard registers are served by the
// console: KBSR polls without blocking, KBDR blocks for one character.
func (mem *Memory) Read(addr Word) Word {
	switch addr {
	case KBSR:
		if mem.keyboard != nil && mem.keyboard.Poll() {
			return kbsrReady
		}
		return 0
	case KBDR:
		if mem.keyboard == nil {
			return mem.cells[KBDR]
		}
		c, err := mem.keyboard.ReadChar(false)
		if err != nil {
			mem.fail(err)
			return 0
		}
		mem.cells[KBDR] = Word(c)
	}
	return mem.cells[addr]
}

// Write stores value at addr. The device registers are plain storage on write.
func (mem *Memory) Write(addr, value Word) {
	mem.cells[addr] = value
}

// Load copies words into memory starting at origin.
func (mem *Memory) Load(origin Word, words []Word) {
	addr := origin
	for _, w := range words {
		mem.cells[addr] = w
		addr++
	}
}

func (mem *Memory) fail(err error) {
	if mem.err == nil {
		mem.err = fmt.Errorf("%w: %w", ErrInput, err)
	}
}

// takeErr returns and clears the first device error since the last call.
func (mem *Memory) takeErr() error {
	err := mem.err
	mem.err = nil
	return err
}
