//go:build cgo

// ABOUTME: PortAudio output backend
// ABOUTME: Callback-driven playback against the default output device
package engine

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gordonklaus/portaudio"

	"github.com/wavdeck/wavdeck/internal/audio"
)

// PortAudio drives the default output device through portaudio's
// callback API. The hardware pulls frames on its own schedule; each
// callback drains the player's sample buffer via the registered FillFunc.
type PortAudio struct {
	frames int
	errs   chan error
}

// New initializes the portaudio subsystem.
func New(framesPerBuffer int) (Engine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "initialize portaudio"), ErrDevice)
	}
	return &PortAudio{
		frames: framesPerBuffer,
		errs:   make(chan error, 8),
	}, nil
}

// Negotiate reads the default output device's preferred configuration.
func (e *PortAudio) Negotiate() (audio.Config, error) {
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return audio.Config{}, errors.Mark(errors.Wrap(err, "no default output device"), ErrDevice)
	}

	channels := dev.MaxOutputChannels
	if channels > 2 {
		channels = 2
	}
	return audio.Config{
		SampleRate: int(dev.DefaultSampleRate),
		Channels:   channels,
	}, nil
}

// Open starts a callback stream bound to fill. Underflow flags raised by
// the device are forwarded to the error channel without blocking the
// real-time thread.
func (e *PortAudio) Open(cfg audio.Config, fill FillFunc) (Stream, error) {
	callback := func(out []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
		fill(out)
		if flags&portaudio.OutputUnderflow != 0 {
			select {
			case e.errs <- errUnderflow:
			default:
			}
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, cfg.Channels, float64(cfg.SampleRate), e.frames, callback)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "open output stream"), ErrDevice)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, errors.Mark(errors.Wrap(err, "start output stream"), ErrDevice)
	}

	return &paStream{stream: stream}, nil
}

// Errors returns the asynchronous fault channel.
func (e *PortAudio) Errors() <-chan error {
	return e.errs
}

// Close terminates the portaudio subsystem.
func (e *PortAudio) Close() error {
	return portaudio.Terminate()
}

type paStream struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	stopped bool
}

// Stop detaches the stream from hardware. portaudio's Stop drains
// pending buffers synchronously, so after it returns the callback no
// longer touches the sample buffer.
func (s *paStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true

	if err := s.stream.Stop(); err != nil {
		return errors.Mark(errors.Wrap(err, "stop output stream"), ErrDevice)
	}
	return s.stream.Close()
}
