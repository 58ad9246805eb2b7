// ABOUTME: Raw-terminal keyboard command reader
// ABOUTME: Maps single key presses to playback commands on a channel
package keys

import (
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// Command is one of the recognized playback commands.
type Command int

const (
	CmdToggle   Command = iota // p: pause/resume
	CmdPrevious                // j: previous track
	CmdNext                    // k: next track
)

// Reader puts the terminal into raw mode and converts key presses into
// commands. Unrecognized keys are dropped. Close restores the terminal.
type Reader struct {
	oldState   *term.State
	commands   chan Command
	interrupts chan struct{}
	done       chan struct{}
}

// Open switches stdin to raw mode and starts the read loop.
func Open() (*Reader, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "set raw terminal mode")
	}

	r := &Reader{
		oldState:   state,
		commands:   make(chan Command, 4),
		interrupts: make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	go r.readLoop()
	return r, nil
}

// Commands returns the channel of decoded commands.
func (r *Reader) Commands() <-chan Command {
	return r.commands
}

// Interrupts signals an operator interrupt. Raw mode disables terminal
// signal generation, so Ctrl-C arrives as a plain byte and is forwarded
// here instead.
func (r *Reader) Interrupts() <-chan struct{} {
	return r.interrupts
}

// etx is the byte Ctrl-C produces in raw mode.
const etx = 0x03

func (r *Reader) readLoop() {
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}

		var cmd Command
		switch buf[0] {
		case 'p':
			cmd = CmdToggle
		case 'j':
			cmd = CmdPrevious
		case 'k':
			cmd = CmdNext
		case etx:
			select {
			case r.interrupts <- struct{}{}:
			default:
			}
			continue
		default:
			continue
		}

		select {
		case r.commands <- cmd:
		case <-r.done:
			return
		}
	}
}

// Close restores the terminal state.
func (r *Reader) Close() error {
	close(r.done)
	if r.oldState == nil {
		return nil
	}
	return term.Restore(int(os.Stdin.Fd()), r.oldState)
}
