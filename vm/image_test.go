package vm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImage(t *testing.T) {
	assert := assert.New(t)

	img, err := ParseImage([]byte{0x30, 0x00, 0x12, 0x34, 0xAB, 0xCD})
	require.NoError(t, err)
	assert.Equal(Word(0x3000), img.Origin)
	assert.Equal([]Word{0x1234, 0xABCD}, img.Words)

	img, err = ParseImage([]byte{0x40, 0x00})
	require.NoError(t, err)
	assert.Equal(Word(0x4000), img.Origin)
	assert.Empty(img.Words)

	img, err = ParseImage([]byte{0xFF, 0xFF, 0x00, 0x01})
	require.NoError(t, err)
	assert.Equal([]Word{1}, img.Words)
}

func TestParseImageErrors(t *testing.T) {
	table := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, ErrImageTooShort},
		{"one_byte", []byte{0x30}, ErrImageTooShort},
		{"odd", []byte{0x30, 0x00, 0x12}, ErrImageOddLength},
		{"too_large", []byte{0xFF, 0xFF, 0x00, 0x01, 0x00, 0x02}, ErrImageTooLarge},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			_, err := ParseImage(entry.data)
			assert.ErrorIs(t, err, entry.err)
		})
	}
}

func TestReadImageFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.obj")

	// LEA R0, #2; PUTS; HALT; "Hi"
	data := []byte{
		0x30, 0x00,
		0xE0, 0x02,
		0xF0, 0x22,
		0xF0, 0x25,
		0x00, 0x48,
		0x00, 0x69,
		0x00, 0x00,
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := ReadImageFile(path)
	require.NoError(t, err)

	console := NewBufferConsole("")
	machine := NewVM(console)
	machine.LoadImage(img)

	assert.NoError(machine.Run())
	assert.Equal("HiHALT\n", string(console.Output))
	assert.Equal(uint64(3), machine.Instructions())

	_, err = ReadImageFile(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.obj")
	require.NoError(t, os.WriteFile(bad, []byte{0x30}, 0o644))
	_, err = ReadImageFile(bad)
	assert.ErrorIs(err, ErrImageTooShort)
	assert.Contains(err.Error(), bad)
}

func TestLoadImagesInOrder(t *testing.T) {
	assert := assert.New(t)

	machine := NewVM(nil)
	machine.LoadImage(Image{Origin: 0x3000, Words: []Word{1, 2, 3}})
	machine.LoadImage(Image{Origin: 0x3001, Words: []Word{9}})

	assert.Equal(Word(1), machine.Memory().Read(0x3000))
	assert.Equal(Word(9), machine.Memory().Read(0x3001))
	assert.Equal(Word(3), machine.Memory().Read(0x3002))
}
