package vm

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferConsole(t *testing.T) {
	assert := assert.New(t)

	console := NewBufferConsole("a")
	assert.True(console.Poll())

	c, err := console.ReadChar(true)
	assert.NoError(err)
	assert.Equal(byte('a'), c)
	assert.False(console.Poll())
	assert.Equal("a", string(console.Output))

	_, err = console.ReadChar(false)
	assert.ErrorIs(err, io.EOF)

	console.Feed("bc")
	c, err = console.ReadChar(false)
	assert.NoError(err)
	assert.Equal(byte('b'), c)
	assert.Equal("a", string(console.Output))
}

func TestTerminalConsolePipe(t *testing.T) {
	assert := assert.New(t)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	var out bytes.Buffer
	console := NewTerminalConsole(r, &out)

	// a pipe is not a terminal, so raw mode is left alone
	assert.NoError(console.EnableRawMode())
	assert.NoError(console.DisableRawMode())

	assert.False(console.Poll())

	_, err = w.Write([]byte("xy"))
	require.NoError(t, err)
	assert.True(console.Poll())

	assert.NoError(console.WriteChar('>'))
	assert.Empty(out.String())

	c, err := console.ReadChar(false)
	assert.NoError(err)
	assert.Equal(byte('x'), c)
	assert.Equal(">", out.String())

	c, err = console.ReadChar(true)
	assert.NoError(err)
	assert.Equal(byte('y'), c)
	assert.Equal(">y", out.String())

	require.NoError(t, w.Close())
	_, err = console.ReadChar(false)
	assert.ErrorIs(err, io.EOF)
}
