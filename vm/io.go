package vm

import (
	"bufio"
	"errors"
	goIO "io"
	"log"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Console is the character device behind the keyboard registers and the
// trap routines.
type Console interface {
	// Poll reports whether a character can be read without blocking.
	Poll() bool
	// ReadChar blocks for one character, writing it back out when echo is set.
	ReadChar(echo bool) (byte, error)
	WriteChar(c byte) error
	Flush() error
}

// TerminalConsole reads unbuffered characters from a file descriptor,
// usually stdin, and buffers output until Flush.
type TerminalConsole struct {
	in                     *os.File
	out                    *bufio.Writer
	originalTerminalConfig unix.Termios
	raw                    bool
}

func NewTerminalConsole(in *os.File, out goIO.Writer) *TerminalConsole {
	return &TerminalConsole{
		in:  in,
		out: bufio.NewWriter(out),
	}
}

// EnableRawMode turns off line buffering and echo so every keypress reaches
// the machine as soon as it is typed. It does nothing if in is not a terminal.
func (tc *TerminalConsole) EnableRawMode() error {
	if !term.IsTerminal(int(tc.in.Fd())) {
		return nil
	}
	log.Printf("enabling raw mode...")
	if err := termios.Tcgetattr(tc.in.Fd(), &tc.originalTerminalConfig); err != nil {
		return err
	}
	newTermios := tc.originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(tc.in.Fd(), termios.TCSANOW, &newTermios); err != nil {
		return err
	}
	tc.raw = true
	return nil
}

// DisableRawMode restores the terminal settings saved by EnableRawMode.
func (tc *TerminalConsole) DisableRawMode() error {
	if !tc.raw {
		return nil
	}
	log.Printf("disabling raw mode...")
	tc.raw = false
	return termios.Tcsetattr(tc.in.Fd(), termios.TCSANOW, &tc.originalTerminalConfig)
}

func (tc *TerminalConsole) Poll() bool {
	fds := []unix.PollFd{{Fd: int32(tc.in.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 {
		return false
	}
	return fds[0].Revents&unix.POLLIN != 0
}

func (tc *TerminalConsole) ReadChar(echo bool) (byte, error) {
	if err := tc.out.Flush(); err != nil {
		return 0, err
	}

	buf := make([]byte, 1)
	for {
		n, err := tc.in.Read(buf)
		if n == 1 {
			break
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, err
		}
	}

	if echo {
		if err := tc.WriteChar(buf[0]); err != nil {
			return 0, err
		}
		if err := tc.Flush(); err != nil {
			return 0, err
		}
	}
	return buf[0], nil
}

func (tc *TerminalConsole) WriteChar(c byte) error {
	return tc.out.WriteByte(c)
}

func (tc *TerminalConsole) Flush() error {
	return tc.out.Flush()
}

// BufferConsole serves scripted input and collects output in memory.
type BufferConsole struct {
	input  []byte
	Output []byte
}

func NewBufferConsole(input string) *BufferConsole {
	return &BufferConsole{input: []byte(input)}
}

// Feed queues more input.
func (bc *BufferConsole) Feed(input string) {
	bc.input = append(bc.input, input...)
}

func (bc *BufferConsole) Poll() bool {
	return len(bc.input) > 0
}

// ReadChar returns io.EOF once the scripted input is used up.
func (bc *BufferConsole) ReadChar(echo bool) (byte, error) {
	if len(bc.input) == 0 {
		return 0, goIO.EOF
	}
	c := bc.input[0]
	bc.input = bc.input[1:]
	if echo {
		bc.Output = append(bc.Output, c)
	}
	return c, nil
}

func (bc *BufferConsole) WriteChar(c byte) error {
	bc.Output = append(bc.Output, c)
	return nil
}

func (bc *BufferConsole) Flush() error {
	return nil
}
