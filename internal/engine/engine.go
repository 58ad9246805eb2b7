// ABOUTME: Output engine interface definition
// ABOUTME: Common contract for hardware audio output backends
package engine

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/wavdeck/wavdeck/internal/audio"
)

// ErrDevice marks failures negotiating with or opening the output sink.
var ErrDevice = errors.New("audio device error")

// errUnderflow is reported on the engine's error channel when the device
// signals an output underflow. Pre-allocated so the real-time callback
// never constructs an error value.
var errUnderflow = errors.New("output underflow reported by device")

// FillFunc supplies one callback period of interleaved float32 samples.
// It runs on the output subsystem's real-time thread and must complete in
// bounded time without allocating or performing I/O.
type FillFunc func(out []float32)

// Stream is a live connection to the output device. Stop is idempotent;
// once it returns, the fill callback is never invoked again.
type Stream interface {
	Stop() error
}

// Engine owns the connection to the audio output subsystem. At most one
// stream should be live at a time; the playback controller enforces that.
type Engine interface {
	// Negotiate returns the default output sink's preferred configuration.
	Negotiate() (audio.Config, error)

	// Open starts hardware delivery, invoking fill from the device's own
	// real-time thread whenever it needs more frames.
	Open(cfg audio.Config, fill FillFunc) (Stream, error)

	// Errors delivers asynchronous stream faults. The channel is never
	// closed and sends never block; unread faults are dropped.
	Errors() <-chan error

	// Close releases the output subsystem.
	Close() error
}

// encodeSamples converts normalized float32 samples to 16-bit
// little-endian PCM, clamping out-of-range values.
func encodeSamples(dst []byte, src []float32) {
	for i, s := range src {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(int16(s*32767)))
	}
}
