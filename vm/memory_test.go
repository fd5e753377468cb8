package vm

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := newMemory(NewBufferConsole(""))

	mem.Write(0x0000, 0x1234)
	mem.Write(0xFFFF, 0xABCD)
	mem.Write(UserSpaceStart, 0x5555)

	assert.Equal(Word(0x1234), mem.Read(0x0000))
	assert.Equal(Word(0xABCD), mem.Read(0xFFFF))
	assert.Equal(Word(0x5555), mem.Read(UserSpaceStart))
	assert.NoError(mem.takeErr())
}

func TestMemoryLoadWraps(t *testing.T) {
	assert := assert.New(t)

	mem := newMemory(nil)
	mem.Load(0xFFFE, []Word{1, 2, 3})

	assert.Equal(Word(1), mem.Read(0xFFFE))
	assert.Equal(Word(2), mem.Read(0xFFFF))
	assert.Equal(Word(3), mem.Read(0x0000))
}

func TestKeyboardStatus(t *testing.T) {
	assert := assert.New(t)

	console := NewBufferConsole("")
	mem := newMemory(console)

	assert.Equal(Word(0), mem.Read(KBSR))

	console.Feed("x")
	assert.Equal(Word(0x8000), mem.Read(KBSR))
	assert.Equal(Word(0x8000), mem.Read(KBSR))
	assert.True(console.Poll())

	assert.Equal(Word('x'), mem.Read(KBDR))
	assert.Equal(Word(0), mem.Read(KBSR))
	assert.NoError(mem.takeErr())
}

func TestKeyboardRegistersReadFromDevice(t *testing.T) {
	assert := assert.New(t)

	console := NewBufferConsole("k")
	mem := newMemory(console)

	mem.Write(KBSR, 0)
	mem.Write(KBDR, 'j')

	assert.Equal(Word(0x8000), mem.Read(KBSR))
	assert.Equal(Word('k'), mem.Read(KBDR))
}

func TestKeyboardDataExhausted(t *testing.T) {
	assert := assert.New(t)

	mem := newMemory(NewBufferConsole(""))

	assert.Equal(Word(0), mem.Read(KBDR))

	err := mem.takeErr()
	assert.ErrorIs(err, ErrInput)
	assert.ErrorIs(err, io.EOF)
	assert.NoError(mem.takeErr())
}

func TestKeyboardPollingProgram(t *testing.T) {
	assert := assert.New(t)

	machine, console := newTestVM("q",
		ldi(R0, 3),
		br(FLAG_ZRO|FLAG_POS, -2),
		ldi(R0, 2),
		trap(TRAP_HALT),
		KBSR,
		KBDR,
	)

	assert.NoError(machine.Run())
	assert.Equal(Word('q'), machine.Registers().R[R0])
	assert.Equal("HALT\n", string(console.Output))
}

func TestKeyboardFaultStopsMachine(t *testing.T) {
	assert := assert.New(t)

	machine, _ := newTestVM("", ldi(R0, 0), KBDR)

	err := machine.Run()
	assert.ErrorIs(err, ErrInput)
	assert.False(machine.Running())
	assert.Zero(machine.Instructions())
}
